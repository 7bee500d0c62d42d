package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	n := New(nil)

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "accents stripped", in: "Sociéte Générale", want: "societegenerale"},
		{name: "noise suffix dropped", in: "Acme Group Ltd", want: "acme"},
		{name: "employment type dropped", in: "Data Analyst Internship", want: "dataanalyst"},
		{name: "bullets and punctuation dropped", in: "• Built-APIs!", want: "builtapis"},
		{name: "noise only", in: "Ltd", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := n.Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	n := New(nil)
	inputs := []string{
		"Sociéte Générale",
		"Acme Corporation",
		"data analyst internship",
		"  • Développeur Logiciel — Groupe XYZ  ",
		"",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		if twice := n.Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeCustomNoiseTerms(t *testing.T) {
	t.Parallel()

	n := New([]string{"gmbh"})
	if got := n.Normalize("Beispiel GmbH"); got != "beispiel" {
		t.Fatalf("custom noise term not stripped: %q", got)
	}
	// Default terms are not applied once a custom set is given.
	if got := n.Normalize("Acme Ltd"); got != "acmeltd" {
		t.Fatalf("default terms unexpectedly applied: %q", got)
	}
}

func TestCleanSentence(t *testing.T) {
	t.Parallel()

	if got := CleanSentence("•   Built   a dashboard. "); got != "Built a dashboard." {
		t.Fatalf("unexpected cleaned sentence: %q", got)
	}
	if got := CleanSentence("- Shipped v2"); got != "Shipped v2" {
		t.Fatalf("unexpected cleaned sentence: %q", got)
	}
}
