package similarity

import "testing"

func TestTermFrequencyIdenticalTexts(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	text := "built data pipelines in Go and Python"
	got := e.TermFrequency(text, text)
	if got < 0.999 {
		t.Fatalf("identical texts scored %f, want ~1.0", got)
	}
}

func TestTermFrequencyEmptyInput(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	if got := e.TermFrequency("", "anything"); got != 0.0 {
		t.Fatalf("empty input scored %f, want 0.0", got)
	}
	if got := e.TermFrequency("anything", "   "); got != 0.0 {
		t.Fatalf("blank input scored %f, want 0.0", got)
	}
}

func TestTermFrequencyOverlap(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	related := e.TermFrequency("Acme Corp", "Acme Corporation Group")
	unrelated := e.TermFrequency("Acme Corp", "Zenith Industries")
	if related <= unrelated {
		t.Fatalf("related=%f should exceed unrelated=%f", related, unrelated)
	}
	if unrelated != 0.0 {
		t.Fatalf("disjoint vocabularies scored %f, want 0.0", unrelated)
	}
}

func TestTermFrequencyTitleSuffix(t *testing.T) {
	t.Parallel()

	// "Data Analyst" vs "Data Analyst Intern" shares the unigrams and one of
	// two bigrams; IDF down-weights nothing shared, so the score lands in the
	// moderate 0.50-0.69 band used by verification.
	e := newTestEngine()
	got := e.TermFrequency("Data Analyst", "Data Analyst Intern")
	if got < 0.5 || got >= 0.7 {
		t.Fatalf("suffixed title scored %f, expected the 0.50-0.69 band", got)
	}
}

func TestTermFrequencyAbbreviationFolding(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	if got := e.TermFrequency("Acme Corp", "Acme Corporation"); got < 0.8 {
		t.Fatalf("abbreviated institution scored %f, want >= 0.8", got)
	}
	// Short tokens are never folded.
	if got := e.TermFrequency("go services", "golang services"); got >= 1.0 {
		t.Fatalf("short token unexpectedly folded: %f", got)
	}
}

func TestTermFrequencyStopwordFallback(t *testing.T) {
	t.Parallel()

	// All terms are stopwords, so the vocabulary degenerates and the score
	// falls back to Jaccard overlap of the raw tokens.
	e := newTestEngine()
	got := e.TermFrequency("the and of", "the and of")
	if got != 1.0 {
		t.Fatalf("degenerate vocabulary fallback scored %f, want 1.0", got)
	}
	partial := e.TermFrequency("the and", "the with")
	if partial <= 0.0 || partial >= 1.0 {
		t.Fatalf("partial Jaccard fallback scored %f, expected (0,1)", partial)
	}
}

func TestTermFrequencyDeterministic(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	a := "designed and deployed a real-time ingestion service handling millions of events"
	b := "deployed an ingestion service for real-time event processing at scale"
	first := e.TermFrequency(a, b)
	for i := 0; i < 10; i++ {
		if got := e.TermFrequency(a, b); got != first {
			t.Fatalf("score not deterministic: %f != %f", got, first)
		}
	}
}
