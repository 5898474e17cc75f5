package setoracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOracle_TestSet_AllSameFeaturesIsLegal(t *testing.T) {
	o := New(81)
	// card 0 repeated is degenerate but exercises the all-same branch.
	assert.True(t, o.TestSet([]int{0, 0, 0}))
}

func TestOracle_TestSet_MixedSameAndDifferentIsIllegal(t *testing.T) {
	o := New(81)
	// features(0)=[0,0,0,0], features(1)=[1,0,0,0], features(3)=[0,1,0,0]:
	// digit 0 is {0,1,0} which is neither all-same nor all-different.
	assert.False(t, o.TestSet([]int{0, 1, 3}))
}

func TestOracle_TestSet_AllDifferentFeaturesIsLegal(t *testing.T) {
	o := New(81)
	// features(0)=[0,0,0,0], features(1)=[1,0,0,0], features(2)=[2,0,0,0]:
	// digit 0 is {0,1,2}, all others all-same.
	assert.True(t, o.TestSet([]int{0, 1, 2}))
}

func TestOracle_FindSets_RespectsMaxCount(t *testing.T) {
	o := New(81)
	cards := []int{0, 1, 2, 3, 4, 5}
	sets := o.FindSets(cards, 1)
	assert.Len(t, sets, 1)
}

func TestOracle_CardsToFeatures_LengthMatchesDeckDigits(t *testing.T) {
	o := New(81)
	features := o.CardsToFeatures([]int{0, 80})
	assert.Len(t, features[0], 4)
	assert.Equal(t, []int{2, 2, 2, 2}, features[1])
}
