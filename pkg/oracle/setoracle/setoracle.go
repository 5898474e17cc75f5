// Package setoracle implements the classic four-feature, three-value Set
// judge: a card id is a base-3 number whose digits are its features
// (color, count, shape, shading in the paper game), and three cards form
// a legal set iff every feature is either all-the-same or all-different
// across them. It is the default oracle cmd/setgame runs against; any
// other card encoding can be plugged in by implementing oracle.Oracle.
package setoracle

import "math"

// Oracle judges sets over a deck of numValues^numFeatures cards.
type Oracle struct {
	numFeatures int
	numValues   int
}

// New returns an Oracle sized to cover deckSize cards with base-3 digits,
// the smallest number of features such that 3^numFeatures >= deckSize.
func New(deckSize int) *Oracle {
	numFeatures := 1
	for pow(3, numFeatures) < deckSize {
		numFeatures++
	}
	return &Oracle{numFeatures: numFeatures, numValues: 3}
}

func pow(base, exp int) int {
	return int(math.Pow(float64(base), float64(exp)))
}

// features decomposes card into its base-3 digit vector.
func (o *Oracle) features(card int) []int {
	digits := make([]int, o.numFeatures)
	for i := 0; i < o.numFeatures; i++ {
		digits[i] = card % o.numValues
		card /= o.numValues
	}
	return digits
}

// TestSet reports whether cards (must be exactly 3) form a legal set:
// every feature dimension is all-the-same or all-different.
func (o *Oracle) TestSet(cards []int) bool {
	if len(cards) != 3 {
		return false
	}
	a, b, c := o.features(cards[0]), o.features(cards[1]), o.features(cards[2])
	for i := 0; i < o.numFeatures; i++ {
		same := a[i] == b[i] && b[i] == c[i]
		allDiff := a[i] != b[i] && b[i] != c[i] && a[i] != c[i]
		if !same && !allDiff {
			return false
		}
	}
	return true
}

// FindSets enumerates legal 3-card sets among cards, up to maxCount (0
// or less means unbounded).
func (o *Oracle) FindSets(cards []int, maxCount int) [][]int {
	var result [][]int
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			for k := j + 1; k < len(cards); k++ {
				if maxCount > 0 && len(result) >= maxCount {
					return result
				}
				candidate := []int{cards[i], cards[j], cards[k]}
				if o.TestSet(candidate) {
					result = append(result, candidate)
				}
			}
		}
	}
	return result
}

// CardsToFeatures maps each card to its feature digit vector, for hint
// output only.
func (o *Oracle) CardsToFeatures(cards []int) [][]int {
	out := make([][]int, len(cards))
	for i, c := range cards {
		out[i] = o.features(c)
	}
	return out
}
