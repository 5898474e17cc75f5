package table

import (
	"testing"
	"time"

	"github.com/cbodonnell/setgame/pkg/ui/uitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T) (*Table, *uitest.Recorder) {
	t.Helper()
	rec := uitest.New()
	tbl := New(Options{
		TableSize:  12,
		DeckSize:   81,
		TableDelay: 0,
		Sink:       rec,
	})
	return tbl, rec
}

func TestTable_PlaceRemoveCardRoundTrip(t *testing.T) {
	tbl, rec := newTestTable(t)

	tbl.PlaceCard(5, 2)
	assert.Equal(t, 5, tbl.GetCardFromSlot(2))

	tbl.RemoveCard(2)
	assert.Equal(t, emptySlot, tbl.GetCardFromSlot(2))
	assert.Equal(t, 1, rec.CountKind("placeCard"))
	assert.Equal(t, 1, rec.CountKind("removeCard"))
}

func TestTable_RemoveCard_EmptySlotIsSilentNoOp(t *testing.T) {
	tbl, rec := newTestTable(t)
	tbl.RemoveCard(3)
	assert.Equal(t, 0, rec.CountKind("removeCard"))
}

func TestTable_PlaceToken_FailsSilentlyOnEmptySlot(t *testing.T) {
	tbl, rec := newTestTable(t)
	ok := tbl.PlaceToken(0, 4)
	assert.False(t, ok)
	assert.Equal(t, 0, tbl.NumTokens(0))
	assert.Equal(t, 0, rec.CountKind("placeToken"))
}

func TestTable_PlaceRemoveTokenRoundTrip(t *testing.T) {
	tbl, _ := newTestTable(t)
	tbl.PlaceCard(1, 0)

	ok := tbl.PlaceToken(7, 0)
	require.True(t, ok)
	assert.Equal(t, []int{0}, tbl.GetTokens(7))

	removed := tbl.RemoveToken(7, 0)
	assert.True(t, removed)
	assert.Empty(t, tbl.GetTokens(7))

	// removing again is a no-op that reports false
	assert.False(t, tbl.RemoveToken(7, 0))
}

func TestTable_TokenMirrorInvariant(t *testing.T) {
	tbl, _ := newTestTable(t)
	tbl.PlaceCard(1, 0)
	tbl.PlaceCard(2, 1)

	tbl.PlaceToken(1, 0)
	tbl.PlaceToken(2, 0)
	tbl.PlaceToken(1, 1)

	assert.ElementsMatch(t, []int{0, 1}, tbl.GetTokens(1))
	assert.ElementsMatch(t, []int{0}, tbl.GetTokens(2))

	tbl.RemoveTokensFromSlot(0)
	assert.Empty(t, tbl.GetTokens(2))
	assert.ElementsMatch(t, []int{1}, tbl.GetTokens(1))
}

func TestTable_OldestToken(t *testing.T) {
	tbl, _ := newTestTable(t)
	tbl.PlaceCard(1, 0)
	tbl.PlaceCard(2, 1)
	tbl.PlaceCard(3, 2)

	_, ok := tbl.OldestToken(9)
	assert.False(t, ok)

	tbl.PlaceToken(9, 0)
	tbl.PlaceToken(9, 1)
	tbl.PlaceToken(9, 2)

	oldest, ok := tbl.OldestToken(9)
	require.True(t, ok)
	assert.Equal(t, 0, oldest)
}

func TestTable_EmptySlotsAndOnTableCards(t *testing.T) {
	tbl, _ := newTestTable(t)
	tbl.PlaceCard(4, 0)
	tbl.PlaceCard(8, 3)

	empties := tbl.EmptySlots()
	assert.NotContains(t, empties, 0)
	assert.NotContains(t, empties, 3)
	assert.Len(t, empties, 10)

	assert.ElementsMatch(t, []int{4, 8}, tbl.OnTableCards())
}

func TestTable_PlaceCard_RespectsTableDelay(t *testing.T) {
	rec := uitest.New()
	tbl := New(Options{
		TableSize:  1,
		DeckSize:   1,
		TableDelay: 20 * time.Millisecond,
		Sink:       rec,
	})

	start := time.Now()
	tbl.PlaceCard(0, 0)
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
}

func TestTable_ConcurrentTokenTogglesAreSerializable(t *testing.T) {
	tbl, _ := newTestTable(t)
	tbl.PlaceCard(1, 0)

	done := make(chan struct{})
	for p := 0; p < 8; p++ {
		go func(p int) {
			defer func() { done <- struct{}{} }()
			tbl.PlaceToken(p, 0)
		}(p)
	}
	for p := 0; p < 8; p++ {
		<-done
	}

	tbl.tokensLock.Lock()
	total := len(tbl.slotTokens[0])
	tbl.tokensLock.Unlock()
	assert.Equal(t, 8, total)
}
