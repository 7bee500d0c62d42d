// Package match pairs semantically-equivalent items between two ordered lists
// using similarity thresholds rather than exact identity.
package match

// Key describes one field both sides are compared on. Weight defaults to 1
// when zero or negative.
type Key[T any] struct {
	Name   string
	Weight float64
	Value  func(T) string
}

// Pair links a primary-list index to the secondary-list index it consumed,
// with the combined similarity score that won the match.
type Pair struct {
	Primary   int
	Secondary int
	Score     float64
}

// Result of one matching run. Unmatched holds the secondary indices no
// primary item consumed, in original order; callers treat those as new
// entities. Absence of a match is a normal outcome, never an error.
type Result struct {
	Pairs     []Pair
	Unmatched []int
}

// Matcher is a greedy single-pass bipartite matcher parameterized by a string
// similarity function. Scoring across multiple keys is an explicit weighted
// mean: keys where either side is empty are excluded, and an item pair with
// no comparable keys scores 0.
type Matcher[T any] struct {
	// Similarity scores two field values in [0,1].
	Similarity func(a, b string) float64
	// Keys compared per item pair.
	Keys []Key[T]
	// Threshold a combined score must exceed to accept a pair.
	Threshold float64
}

// Match walks the primary list in order and, for each item, consumes the
// not-yet-consumed secondary item with the highest combined score above the
// threshold. There is no backtracking: a secondary item consumed by an
// earlier primary item stays unavailable even if it would fit a later one
// better. Greedy one-pass matching trades global optimality for determinism
// and linear scans, and each secondary index is consumed at most once.
func (m *Matcher[T]) Match(primary, secondary []T) Result {
	consumed := make([]bool, len(secondary))
	pairs := make([]Pair, 0, len(primary))

	for primaryIndex := range primary {
		bestIndex := -1
		bestScore := 0.0

		for secondaryIndex := range secondary {
			if consumed[secondaryIndex] {
				continue
			}
			score := m.score(primary[primaryIndex], secondary[secondaryIndex])
			if score > m.Threshold && score > bestScore {
				bestScore = score
				bestIndex = secondaryIndex
			}
		}

		if bestIndex >= 0 {
			consumed[bestIndex] = true
			pairs = append(pairs, Pair{
				Primary:   primaryIndex,
				Secondary: bestIndex,
				Score:     bestScore,
			})
		}
	}

	unmatched := make([]int, 0, len(secondary))
	for secondaryIndex := range secondary {
		if !consumed[secondaryIndex] {
			unmatched = append(unmatched, secondaryIndex)
		}
	}

	return Result{Pairs: pairs, Unmatched: unmatched}
}

func (m *Matcher[T]) score(primaryItem, secondaryItem T) float64 {
	var weightedSum, totalWeight float64
	for _, key := range m.Keys {
		valueA := key.Value(primaryItem)
		valueB := key.Value(secondaryItem)
		if valueA == "" || valueB == "" {
			continue
		}
		weight := key.Weight
		if weight <= 0 {
			weight = 1
		}
		weightedSum += weight * m.Similarity(valueA, valueB)
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0.0
	}
	return weightedSum / totalWeight
}
