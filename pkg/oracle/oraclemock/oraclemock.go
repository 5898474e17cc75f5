// Package oraclemock provides a testify-mock double for oracle.Oracle, in
// the same hand-maintained-mock convention the teacher's test suite pulls
// its queue.Queue mock from.
package oraclemock

import "github.com/stretchr/testify/mock"

// Oracle is a mock implementation of oracle.Oracle.
type Oracle struct {
	mock.Mock
}

func New() *Oracle {
	return &Oracle{}
}

func (m *Oracle) TestSet(cards []int) bool {
	args := m.Called(cards)
	return args.Bool(0)
}

func (m *Oracle) FindSets(cards []int, maxCount int) [][]int {
	args := m.Called(cards, maxCount)
	if sets, ok := args.Get(0).([][]int); ok {
		return sets
	}
	return nil
}

func (m *Oracle) CardsToFeatures(cards []int) [][]int {
	args := m.Called(cards)
	if features, ok := args.Get(0).([][]int); ok {
		return features
	}
	return nil
}
