// Package dealer implements the arbiter: it owns the deck, drives the
// round lifecycle (shuffle, place, timed play, reap), serializes
// candidate-set verification through a request queue, and decides when
// the game ends.
package dealer

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cbodonnell/setgame/pkg/log"
	"github.com/cbodonnell/setgame/pkg/oracle"
	"github.com/cbodonnell/setgame/pkg/reqqueue"
	"github.com/cbodonnell/setgame/pkg/table"
	"github.com/cbodonnell/setgame/pkg/ui"
)

// Seat is the narrow view of a Player the Dealer depends on. *player.Player
// satisfies it without any adapter.
type Seat interface {
	ID() int
	Score() int
	Point()
	Penalty()
	Invalidate()
	Run(ctx context.Context)
}

// Options configures a new Dealer.
type Options struct {
	Table  *table.Table
	Oracle oracle.Oracle
	Sink   ui.Sink
	Seats  []Seat

	DeckSize    int
	FeatureSize int

	TurnTimeout        time.Duration
	TurnTimeoutWarning time.Duration
	Hints              bool

	// Rand, if non-nil, is used for shuffling. Tests inject a seeded
	// source for determinism; production leaves it nil.
	Rand *rand.Rand

	Logger *log.Logger
}

// Dealer is the round arbiter.
type Dealer struct {
	table  *table.Table
	oracle oracle.Oracle
	sink   ui.Sink

	seats    []Seat
	seatByID map[int]Seat

	deck        []int
	featureSize int

	turnTimeout        time.Duration
	turnTimeoutWarning time.Duration
	hints              bool

	rng      *rand.Rand
	reqQueue *reqqueue.Queue
	logger   *log.Logger

	// reshuffleDeadline is UnixNano; timerLoop is the only writer but
	// CountdownRemaining reads it from the status API's goroutine.
	reshuffleDeadline atomic.Int64
}

// New returns a Dealer with a full, unshuffled deck.
func New(opts Options) *Dealer {
	deck := make([]int, opts.DeckSize)
	for i := range deck {
		deck[i] = i
	}

	seatByID := make(map[int]Seat, len(opts.Seats))
	for _, s := range opts.Seats {
		seatByID[s.ID()] = s
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Dealer{
		table:              opts.Table,
		oracle:             opts.Oracle,
		sink:               opts.Sink,
		seats:              opts.Seats,
		seatByID:           seatByID,
		deck:               deck,
		featureSize:        opts.FeatureSize,
		turnTimeout:        opts.TurnTimeout,
		turnTimeoutWarning: opts.TurnTimeoutWarning,
		hints:              opts.Hints,
		rng:                rng,
		reqQueue:           reqqueue.New(),
		logger:             opts.Logger,
	}
}

func (d *Dealer) logf(format string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Info(format, args...)
		return
	}
	log.Info(format, args...)
}

// CheckPlayerRequest enqueues playerID's candidate set for verification
// and wakes the timer loop. It returns immediately; the player blocks on
// its own verdict channel, not on this call.
func (d *Dealer) CheckPlayerRequest(playerID int) {
	d.reqQueue.Enqueue(playerID)
}

// Run starts every seat, drives rounds until the game ends, then joins
// every seat and announces the winners.
func (d *Dealer) Run(ctx context.Context) []int {
	d.logf("dealer: starting %d seats", len(d.seats))

	roundCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range d.seats {
		wg.Add(1)
		go func(s Seat) {
			defer wg.Done()
			s.Run(roundCtx)
		}(s)
	}

	for !d.shouldFinish(roundCtx) {
		d.shuffleDeck()
		d.placeCardsOnTable()
		d.timerLoop(roundCtx)
		d.removeAllCardsFromTable()
	}

	cancel()
	wg.Wait()

	winners := d.announceWinners()
	d.logf("dealer: game over, winners=%v", winners)
	return winners
}

// shouldFinish reports whether the game should end: the caller canceled,
// or no legal set exists anywhere in the deck plus on-table cards.
func (d *Dealer) shouldFinish(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	cards := append(append([]int(nil), d.deck...), d.table.OnTableCards()...)
	sets := d.oracle.FindSets(cards, 1)
	return len(sets) == 0
}

func (d *Dealer) shuffleDeck() {
	d.rng.Shuffle(len(d.deck), func(i, j int) {
		d.deck[i], d.deck[j] = d.deck[j], d.deck[i]
	})
}

// placeCardsOnTable fills every empty slot from the deck head, in a
// randomized slot order, until either runs out.
func (d *Dealer) placeCardsOnTable() {
	empties := d.table.EmptySlots()
	d.rng.Shuffle(len(empties), func(i, j int) {
		empties[i], empties[j] = empties[j], empties[i]
	})

	placed := false
	for _, slot := range empties {
		if len(d.deck) == 0 {
			break
		}
		card := d.deck[0]
		d.deck = d.deck[1:]
		d.table.PlaceCard(card, slot)
		placed = true
	}

	if d.hints && placed {
		d.table.Hints()
	}
}

// timerLoop runs the timed-play phase of a round: it ticks the countdown,
// drains and verifies player requests, and refills the table, until the
// deadline elapses or the caller cancels.
func (d *Dealer) timerLoop(ctx context.Context) {
	d.reshuffleDeadline.Store(time.Now().Add(d.turnTimeout + time.Second).UnixNano())
	defer d.reshuffleDeadline.Store(0)

	for ctx.Err() == nil {
		remaining := time.Until(time.Unix(0, d.reshuffleDeadline.Load()))
		if remaining <= 0 {
			return
		}

		warning := remaining <= d.turnTimeoutWarning
		tick := time.Second
		if warning {
			tick = 100 * time.Millisecond
		}
		if tick > remaining {
			tick = remaining
		}

		select {
		case <-ctx.Done():
			return
		case <-d.reqQueue.Wake():
		case <-time.After(tick):
		}

		remaining = time.Until(time.Unix(0, d.reshuffleDeadline.Load()))
		if remaining < 0 {
			remaining = 0
		}
		d.sink.SetCountdown(remaining, remaining <= d.turnTimeoutWarning)

		if d.processRequests() {
			d.reshuffleDeadline.Store(time.Now().Add(d.turnTimeout + time.Second).UnixNano())
		}
		d.placeCardsOnTable()
	}
}

// CountdownRemaining reports the time left before the current round's
// reshuffle deadline, and whether a round is currently timing (false
// before the first round starts or once the game has ended). Guarded the
// same way timerLoop reads the deadline: an atomic load, no lock.
func (d *Dealer) CountdownRemaining() (time.Duration, bool) {
	deadline := d.reshuffleDeadline.Load()
	if deadline == 0 {
		return 0, false
	}
	remaining := time.Until(time.Unix(0, deadline))
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// processRequests drains the request queue and verifies each candidate
// set in submission order. It reports whether any set was accepted (the
// timer loop resets the deadline on acceptance, since it means the round
// is progressing).
func (d *Dealer) processRequests() bool {
	ids := d.reqQueue.DrainAll()
	accepted := false

	for _, id := range ids {
		seat, ok := d.seatByID[id]
		if !ok {
			continue
		}

		slots := d.table.GetTokens(id)
		if len(slots) != d.featureSize {
			// Another player's acceptance reaped one of these slots
			// while this request was in flight. No penalty: the race
			// is not this player's fault.
			seat.Invalidate()
			continue
		}

		cards := make([]int, len(slots))
		for i, slot := range slots {
			cards[i] = d.table.GetCardFromSlot(slot)
		}

		if d.oracle.TestSet(cards) {
			for _, slot := range slots {
				d.table.RemoveTokensFromSlot(slot)
				d.table.RemoveCard(slot)
			}
			seat.Point()
			accepted = true
		} else {
			seat.Penalty()
		}
	}

	return accepted
}

// removeAllCardsFromTable drains every on-table card back into the deck,
// clearing tokens on each affected slot.
func (d *Dealer) removeAllCardsFromTable() {
	for slot := 0; slot < d.table.Size(); slot++ {
		card := d.table.GetCardFromSlot(slot)
		if card == table.EmptySlot {
			continue
		}
		d.table.RemoveTokensFromSlot(slot)
		d.table.RemoveCard(slot)
		d.deck = append(d.deck, card)
	}
}

// announceWinners reports every seat tied at the maximum score.
func (d *Dealer) announceWinners() []int {
	maxScore := -1
	for _, s := range d.seats {
		if score := s.Score(); score > maxScore {
			maxScore = score
		}
	}

	var winners []int
	for _, s := range d.seats {
		if s.Score() == maxScore {
			winners = append(winners, s.ID())
		}
	}

	d.sink.AnnounceWinner(winners)
	return winners
}
