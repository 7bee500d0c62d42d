package langdetect

import "testing"

func TestDetectISO6391(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", ""},
		{"whitespace", "   \n ", ""},
		{"too short", "ok 12", ""},
		{"english prose", "Built and maintained data pipelines for the analytics teams across three regions.", "en"},
		{"french prose", "Conception et maintenance de pipelines de données pour les équipes d'analyse.", "fr"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectISO6391(tc.text); got != tc.want {
				t.Fatalf("DetectISO6391(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}
