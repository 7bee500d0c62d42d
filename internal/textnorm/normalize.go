// Package textnorm canonicalizes strings for similarity comparison.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultNoiseTerms are substrings stripped before comparison: employment-type
// markers and legal-entity suffixes that vary between a résumé and a reference
// profile without changing identity.
var DefaultNoiseTerms = []string{
	"internship",
	"stage",
	"apprenticeship",
	"alternance",
	"group",
	"groupe",
	"ltd",
	"s.a.",
	"official account",
}

// Normalizer produces canonical comparison keys. The zero value is not usable;
// construct with New.
type Normalizer struct {
	// noise terms pre-normalized into token sequences, so stripping respects
	// word boundaries and Normalize stays idempotent.
	noiseSequences [][]string
}

func New(noiseTerms []string) *Normalizer {
	if noiseTerms == nil {
		noiseTerms = DefaultNoiseTerms
	}
	sequences := make([][]string, 0, len(noiseTerms))
	for _, term := range noiseTerms {
		tokens := tokenize(foldMarks(term))
		if len(tokens) > 0 {
			sequences = append(sequences, tokens)
		}
	}
	return &Normalizer{noiseSequences: sequences}
}

// Normalize decomposes accented characters and drops combining marks,
// lowercases, strips noise terms at token boundaries, and concatenates the
// remaining alphanumeric runs. Pure and idempotent. Empty and noise-only
// inputs normalize to ""; callers must never treat two empty normalized
// strings as similar.
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	tokens := tokenize(foldMarks(s))
	tokens = n.stripNoise(tokens)
	return strings.Join(tokens, "")
}

func (n *Normalizer) stripNoise(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if length := n.noiseMatchAt(tokens, i); length > 0 {
			i += length
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

func (n *Normalizer) noiseMatchAt(tokens []string, start int) int {
	for _, sequence := range n.noiseSequences {
		if start+len(sequence) > len(tokens) {
			continue
		}
		matched := true
		for j, noiseToken := range sequence {
			if tokens[start+j] != noiseToken {
				matched = false
				break
			}
		}
		if matched {
			return len(sequence)
		}
	}
	return 0
}

// foldMarks applies NFD decomposition, drops combining marks, and lowercases.
func foldMarks(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// tokenize splits into maximal alphanumeric runs.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// CleanSentence trims leading bullet markers and collapses inner whitespace
// without dropping punctuation or case. Used for display text, not for
// comparison keys.
func CleanSentence(s string) string {
	trimmed := strings.TrimLeft(s, " \t\r\n•-*")
	return strings.Join(strings.Fields(trimmed), " ")
}
