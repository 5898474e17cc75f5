// Package oracle declares the set-validity judge the engine consumes but
// never implements: the interpretation of a card id into features (color,
// shape, count, shading) belongs to whatever deck definition the caller
// supplies, not to the concurrency core.
package oracle

// Oracle is the pure, side-effect-free predicate the Dealer arbitrates
// candidate sets against. Card ids are opaque to the engine; only an
// Oracle implementation knows what makes featureSize of them a legal set.
type Oracle interface {
	// TestSet reports whether the given card ids form a legal set.
	TestSet(cards []int) bool

	// FindSets returns up to maxCount legal sets found among cards. A
	// maxCount of 0 or less means unbounded.
	FindSets(cards []int, maxCount int) [][]int

	// CardsToFeatures maps each card id to its feature vector, for
	// diagnostic/hint output only.
	CardsToFeatures(cards []int) [][]int
}
