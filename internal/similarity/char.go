package similarity

import "github.com/agnivade/levenshtein"

// Char returns the normalized character-sequence ratio of the two strings
// after canonicalization: 1 - editDistance/maxLen. Symmetric; exactly 1.0 iff
// the normalized forms are equal and non-empty; 0.0 when either side
// normalizes to empty, so noise-only strings never match each other.
func (e *Engine) Char(a, b string) float64 {
	normA := e.normalizer.Normalize(a)
	normB := e.normalizer.Normalize(b)
	if normA == "" || normB == "" {
		return 0.0
	}
	if normA == normB {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(normA, normB)
	longest := len([]rune(normA))
	if l := len([]rune(normB)); l > longest {
		longest = l
	}
	if distance >= longest {
		return 0.0
	}
	return 1.0 - float64(distance)/float64(longest)
}
