// Package sentence splits free-text description blocks into candidate
// sentences for deduplication.
package sentence

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"horse.fit/vitae/internal/textnorm"
)

// minSentenceLength drops fragments too short to carry a verifiable claim.
const minSentenceLength = 20

// enumeration prefixes identifying pure skill/technology lists, which add
// noise rather than narrative content.
var enumerationPrefixes = []string{"skills", "technologies"}

// Segmenter produces ordered sentences from a text block. Implementations are
// pure from the caller's perspective.
type Segmenter interface {
	Segment(text string) []string
}

// Tokenizer segments with a trained English sentence-boundary model.
// Description inputs are either bullet lists or running prose; bullet
// boundaries are honored alongside linguistic ones.
type Tokenizer struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

func NewTokenizer() (*Tokenizer, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load sentence tokenizer: %w", err)
	}
	return &Tokenizer{tokenizer: tokenizer}, nil
}

func (t *Tokenizer) Segment(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	// Newlines separate bullet items that rarely end with a period.
	fragments := strings.Split(text, "\n")
	out := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if strings.TrimSpace(fragment) == "" {
			continue
		}
		for _, s := range t.tokenizer.Tokenize(fragment) {
			cleaned := textnorm.CleanSentence(s.Text)
			if cleaned != "" {
				out = append(out, cleaned)
			}
		}
	}
	return out
}

// Usable filters out degenerate sentences: too short after cleaning, or
// pure skill/technology enumerations.
func Usable(cleaned string) bool {
	return len(cleaned) >= minSentenceLength && !Enumeration(cleaned)
}

// Enumeration reports whether a sentence is a pure skill/technology list.
func Enumeration(cleaned string) bool {
	lowered := strings.ToLower(cleaned)
	for _, prefix := range enumerationPrefixes {
		if strings.HasPrefix(lowered, prefix) {
			return true
		}
	}
	return false
}
