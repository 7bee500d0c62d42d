package sentence

import "testing"

func TestTokenizerSegmentsProse(t *testing.T) {
	t.Parallel()

	tokenizer, err := NewTokenizer()
	if err != nil {
		t.Fatalf("build tokenizer: %v", err)
	}

	got := tokenizer.Segment("Built a reporting dashboard. Reduced load times by 40%.")
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(got), got)
	}
	if got[0] != "Built a reporting dashboard." {
		t.Fatalf("unexpected first sentence: %q", got[0])
	}
}

func TestTokenizerSegmentsBulletLines(t *testing.T) {
	t.Parallel()

	tokenizer, err := NewTokenizer()
	if err != nil {
		t.Fatalf("build tokenizer: %v", err)
	}

	got := tokenizer.Segment("• Led a team of four engineers\n• Shipped the billing migration")
	if len(got) != 2 {
		t.Fatalf("expected 2 bullet sentences, got %d: %v", len(got), got)
	}
	if got[0] != "Led a team of four engineers" {
		t.Fatalf("bullet marker not stripped: %q", got[0])
	}
}

func TestTokenizerSegmentEmpty(t *testing.T) {
	t.Parallel()

	tokenizer, err := NewTokenizer()
	if err != nil {
		t.Fatalf("build tokenizer: %v", err)
	}
	if got := tokenizer.Segment("   \n  "); got != nil {
		t.Fatalf("expected nil for blank text, got %v", got)
	}
}

func TestUsable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want bool
	}{
		{name: "normal sentence", in: "Built a reporting dashboard for finance.", want: true},
		{name: "too short", in: "Shipped v2.", want: false},
		{name: "skills enumeration", in: "Skills: Python, SQL, Docker, Kubernetes", want: false},
		{name: "technologies enumeration", in: "Technologies used: Go, Postgres, Redis", want: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Usable(tc.in); got != tc.want {
				t.Fatalf("Usable(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestEnumeration(t *testing.T) {
	t.Parallel()

	if Enumeration("Shipped v2.") {
		t.Fatal("short narrative sentence is not an enumeration")
	}
	if !Enumeration("Skills: Python, SQL, Docker, Kubernetes") {
		t.Fatal("skills list not flagged as enumeration")
	}
}
