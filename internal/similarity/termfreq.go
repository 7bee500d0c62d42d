package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

const (
	// maxVocabularyTerms caps the unigram+bigram vocabulary built per pair.
	maxVocabularyTerms = 100
	// minAbbreviationLen is the shortest token folded into a longer token it
	// prefixes, so "corp" counts as "corporation" but "go" stays distinct
	// from "golang".
	minAbbreviationLen = 4
)

// TermFrequency scores the two texts by cosine similarity of unigram+bigram
// term vectors built over the vocabulary of exactly the two inputs, stopwords
// removed, with smoothed inverse-document-frequency weighting across the pair.
// Abbreviated tokens are folded into the longer token they prefix, which keeps
// "Acme Corp" close to "Acme Corporation". When the vocabulary degenerates
// (for example, both texts are pure stopwords) it falls back to Jaccard
// overlap of the raw whitespace-split tokens; degeneracy is a documented
// fallback, not an error.
func (e *Engine) TermFrequency(a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0.0
	}

	tokensA := contentTokens(a)
	tokensB := contentTokens(b)

	canonical := abbreviationFolding(tokensA, tokensB)
	termsA := ngramTerms(tokensA, canonical)
	termsB := ngramTerms(tokensB, canonical)

	vocabulary, weights := buildVocabulary(termsA, termsB)
	if len(vocabulary) == 0 {
		return jaccardTokens(a, b)
	}

	vectorA := weightedVector(termsA, vocabulary, weights)
	vectorB := weightedVector(termsB, vocabulary, weights)

	score := cosine(vectorA, vectorB)
	if math.IsNaN(score) {
		return jaccardTokens(a, b)
	}
	return clamp01(score)
}

// contentTokens lowercases, splits on non-alphanumerics, and drops stopwords.
func contentTokens(text string) []string {
	raw := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		if isStopword(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// abbreviationFolding maps each token to the longest token across the pair
// that it strictly prefixes. Longest-match with a lexicographic tie-break
// keeps the mapping deterministic.
func abbreviationFolding(tokensA, tokensB []string) map[string]string {
	all := make(map[string]struct{}, len(tokensA)+len(tokensB))
	for _, t := range tokensA {
		all[t] = struct{}{}
	}
	for _, t := range tokensB {
		all[t] = struct{}{}
	}

	ordered := make([]string, 0, len(all))
	for t := range all {
		ordered = append(ordered, t)
	}
	sort.Strings(ordered)

	canonical := make(map[string]string, len(ordered))
	for _, token := range ordered {
		target := token
		if len(token) >= minAbbreviationLen {
			for _, candidate := range ordered {
				if candidate == token || !strings.HasPrefix(candidate, token) {
					continue
				}
				if len(candidate) > len(target) || (len(candidate) == len(target) && candidate < target) {
					target = candidate
				}
			}
		}
		canonical[token] = target
	}
	return canonical
}

// ngramTerms emits canonicalized unigrams plus adjacent bigrams.
func ngramTerms(tokens []string, canonical map[string]string) []string {
	folded := make([]string, len(tokens))
	for i, token := range tokens {
		folded[i] = canonical[token]
	}

	terms := make([]string, 0, 2*len(folded))
	terms = append(terms, folded...)
	for i := 0; i+1 < len(folded); i++ {
		terms = append(terms, folded[i]+" "+folded[i+1])
	}
	return terms
}

// buildVocabulary selects up to maxVocabularyTerms terms, highest corpus
// frequency first with lexicographic tie-break, and assigns each term a
// smoothed IDF weight over the two-document corpus: terms shared by both
// texts weigh 1, terms unique to one side weigh ln(3/2)+1.
func buildVocabulary(termsA, termsB []string) (map[string]int, []float64) {
	countA := termCounts(termsA)
	countB := termCounts(termsB)

	frequency := make(map[string]int, len(countA)+len(countB))
	for term, c := range countA {
		frequency[term] += c
	}
	for term, c := range countB {
		frequency[term] += c
	}
	if len(frequency) == 0 {
		return nil, nil
	}

	ordered := make([]string, 0, len(frequency))
	for term := range frequency {
		ordered = append(ordered, term)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if frequency[ordered[i]] != frequency[ordered[j]] {
			return frequency[ordered[i]] > frequency[ordered[j]]
		}
		return ordered[i] < ordered[j]
	})
	if len(ordered) > maxVocabularyTerms {
		ordered = ordered[:maxVocabularyTerms]
	}

	sharedIDF := 1.0
	uniqueIDF := math.Log(3.0/2.0) + 1.0

	vocabulary := make(map[string]int, len(ordered))
	weights := make([]float64, len(ordered))
	for i, term := range ordered {
		vocabulary[term] = i
		if countA[term] > 0 && countB[term] > 0 {
			weights[i] = sharedIDF
		} else {
			weights[i] = uniqueIDF
		}
	}
	return vocabulary, weights
}

func termCounts(terms []string) map[string]int {
	counts := make(map[string]int, len(terms))
	for _, term := range terms {
		counts[term]++
	}
	return counts
}

func weightedVector(terms []string, vocabulary map[string]int, weights []float64) []float64 {
	vector := make([]float64, len(vocabulary))
	for _, term := range terms {
		if index, found := vocabulary[term]; found {
			vector[index] += weights[index]
		}
	}
	return vector
}

func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return math.NaN()
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// jaccardTokens is the degenerate-vocabulary fallback: set overlap of the raw
// whitespace-split tokens, stopwords included.
func jaccardTokens(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for token := range setA {
		if _, found := setB[token]; found {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(strings.ToLower(text)) {
		set[token] = struct{}{}
	}
	return set
}
