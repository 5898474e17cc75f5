// Package table implements the shared grid of cards and player tokens
// every worker in the engine contends over. It is guarded by two
// independent mutexes, one per sub-state, following the discipline
// spec.md lays out: cardsLock is never acquired while holding tokensLock,
// and every reader gets a copy, never an alias into internal state.
package table

import (
	"sync"
	"time"

	"github.com/cbodonnell/setgame/pkg/log"
	"github.com/cbodonnell/setgame/pkg/oracle"
	"github.com/cbodonnell/setgame/pkg/ui"
)

// EmptySlot is the sentinel GetCardFromSlot returns for an undefined
// mapping.
const EmptySlot = -1

const emptySlot = EmptySlot

// Table is the shared grid of cards and per-player token placements.
type Table struct {
	tableSize   int
	tableDelay  time.Duration
	sink        ui.Sink
	oracle      oracle.Oracle
	logger      *log.Logger

	cardsLock  sync.Mutex
	slotToCard []int
	cardToSlot []int

	tokensLock   sync.Mutex
	playerTokens map[int][]int
	slotTokens   map[int][]int
}

// Options configures a new Table.
type Options struct {
	TableSize  int
	DeckSize   int
	TableDelay time.Duration
	Sink       ui.Sink
	Oracle     oracle.Oracle // may be nil; only Hints needs it
	Logger     *log.Logger   // may be nil; falls back to the package logger
}

// New returns an empty Table: every slot and every card starts undefined.
func New(opts Options) *Table {
	slotToCard := make([]int, opts.TableSize)
	for i := range slotToCard {
		slotToCard[i] = emptySlot
	}
	cardToSlot := make([]int, opts.DeckSize)
	for i := range cardToSlot {
		cardToSlot[i] = emptySlot
	}

	return &Table{
		tableSize:    opts.TableSize,
		tableDelay:   opts.TableDelay,
		sink:         opts.Sink,
		oracle:       opts.Oracle,
		logger:       opts.Logger,
		slotToCard:   slotToCard,
		cardToSlot:   cardToSlot,
		playerTokens: make(map[int][]int),
		slotTokens:   make(map[int][]int),
	}
}

func (t *Table) logf(format string, args ...interface{}) {
	if t.logger != nil {
		t.logger.Debug(format, args...)
		return
	}
	log.Debug(format, args...)
}

// PlaceCard places card in slot. The simulated hardware delay happens
// before any lock is acquired, so concurrent placements do not serialize
// on the delay itself, only on the map mutation.
func (t *Table) PlaceCard(card, slot int) {
	time.Sleep(t.tableDelay)

	t.cardsLock.Lock()
	t.slotToCard[slot] = card
	t.cardToSlot[card] = slot
	t.cardsLock.Unlock()

	t.sink.PlaceCard(card, slot)
}

// RemoveCard clears slot, if it holds a card. It does not touch tokens on
// that slot; callers clear them separately with RemoveTokensFromSlot.
func (t *Table) RemoveCard(slot int) {
	time.Sleep(t.tableDelay)

	t.cardsLock.Lock()
	card := t.slotToCard[slot]
	if card == emptySlot {
		t.cardsLock.Unlock()
		return
	}
	t.slotToCard[slot] = emptySlot
	t.cardToSlot[card] = emptySlot
	t.cardsLock.Unlock()

	t.sink.RemoveCard(slot)
}

// PlaceToken places player's token on slot, unless slot has no card, in
// which case it is a silent no-op and PlaceToken returns false.
func (t *Table) PlaceToken(player, slot int) bool {
	t.cardsLock.Lock()
	hasCard := t.slotToCard[slot] != emptySlot
	t.cardsLock.Unlock()
	if !hasCard {
		return false
	}

	t.tokensLock.Lock()
	t.playerTokens[player] = append(t.playerTokens[player], slot)
	t.slotTokens[slot] = append(t.slotTokens[slot], player)
	t.tokensLock.Unlock()

	t.sink.PlaceToken(player, slot)
	return true
}

// RemoveToken removes player's token from slot, reporting whether the
// pair existed.
func (t *Table) RemoveToken(player, slot int) bool {
	t.tokensLock.Lock()
	pi := indexOf(t.playerTokens[player], slot)
	if pi == -1 {
		t.tokensLock.Unlock()
		return false
	}
	t.playerTokens[player] = removeAt(t.playerTokens[player], pi)

	si := indexOf(t.slotTokens[slot], player)
	if si != -1 {
		t.slotTokens[slot] = removeAt(t.slotTokens[slot], si)
	}
	t.tokensLock.Unlock()

	t.sink.RemoveToken(player, slot)
	return true
}

// RemoveTokensFromSlot removes every player's token from slot, in the
// order they were placed.
func (t *Table) RemoveTokensFromSlot(slot int) {
	t.tokensLock.Lock()
	players := append([]int(nil), t.slotTokens[slot]...)
	t.tokensLock.Unlock()

	for _, p := range players {
		t.RemoveToken(p, slot)
	}
}

// OldestToken returns the slot of player's earliest still-placed token,
// without removing it.
func (t *Table) OldestToken(player int) (slot int, ok bool) {
	t.tokensLock.Lock()
	defer t.tokensLock.Unlock()
	tokens := t.playerTokens[player]
	if len(tokens) == 0 {
		return 0, false
	}
	return tokens[0], true
}

// Size returns the number of slots on the table.
func (t *Table) Size() int {
	return t.tableSize
}

// EmptySlots returns every slot with no card, in slot-index order.
func (t *Table) EmptySlots() []int {
	t.cardsLock.Lock()
	defer t.cardsLock.Unlock()
	var empties []int
	for slot, card := range t.slotToCard {
		if card == emptySlot {
			empties = append(empties, slot)
		}
	}
	return empties
}

// OnTableCards returns every card currently placed on the table.
func (t *Table) OnTableCards() []int {
	t.cardsLock.Lock()
	defer t.cardsLock.Unlock()
	var cards []int
	for _, card := range t.slotToCard {
		if card != emptySlot {
			cards = append(cards, card)
		}
	}
	return cards
}

// GetCardFromSlot returns the card in slot, or -1 if the slot is empty.
func (t *Table) GetCardFromSlot(slot int) int {
	t.cardsLock.Lock()
	defer t.cardsLock.Unlock()
	return t.slotToCard[slot]
}

// NumTokens reports how many tokens player currently has placed.
func (t *Table) NumTokens(player int) int {
	t.tokensLock.Lock()
	defer t.tokensLock.Unlock()
	return len(t.playerTokens[player])
}

// GetTokens returns a copy of player's tokens, oldest first.
func (t *Table) GetTokens(player int) []int {
	t.tokensLock.Lock()
	defer t.tokensLock.Unlock()
	return append([]int(nil), t.playerTokens[player]...)
}

// Hints prints every legal set currently on the table to the operator
// console via the logger, using the oracle supplied at construction. It
// is a no-op if no oracle was configured.
func (t *Table) Hints() {
	if t.oracle == nil {
		return
	}
	cards := t.OnTableCards()
	sets := t.oracle.FindSets(cards, 0)
	for _, set := range sets {
		features := t.oracle.CardsToFeatures(set)
		t.logf("hint: set found cards=%v features=%v", set, features)
	}
}

func indexOf(xs []int, v int) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}

func removeAt(xs []int, i int) []int {
	return append(xs[:i], xs[i+1:]...)
}
