// Package uitest provides a concurrency-safe ui.Sink recorder for tests
// that need to assert on the sequence or presence of emitted events.
package uitest

import (
	"sync"
	"time"
)

// Event is a single recorded ui.Sink call.
type Event struct {
	Kind     string
	Card     int
	Slot     int
	Player   int
	Score    int
	Duration time.Duration
	Warning  bool
	Winners  []int
}

// Recorder implements ui.Sink and stores every call it receives in order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func New() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of every event recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// CountKind returns how many recorded events have the given Kind.
func (r *Recorder) CountKind(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Recorder) PlaceCard(card, slot int) {
	r.record(Event{Kind: "placeCard", Card: card, Slot: slot})
}

func (r *Recorder) RemoveCard(slot int) {
	r.record(Event{Kind: "removeCard", Slot: slot})
}

func (r *Recorder) PlaceToken(player, slot int) {
	r.record(Event{Kind: "placeToken", Player: player, Slot: slot})
}

func (r *Recorder) RemoveToken(player, slot int) {
	r.record(Event{Kind: "removeToken", Player: player, Slot: slot})
}

func (r *Recorder) SetScore(player, score int) {
	r.record(Event{Kind: "setScore", Player: player, Score: score})
}

func (r *Recorder) SetFreeze(player int, remaining time.Duration) {
	r.record(Event{Kind: "setFreeze", Player: player, Duration: remaining})
}

func (r *Recorder) SetCountdown(remaining time.Duration, warning bool) {
	r.record(Event{Kind: "setCountdown", Duration: remaining, Warning: warning})
}

func (r *Recorder) AnnounceWinner(playerIDs []int) {
	r.record(Event{Kind: "announceWinner", Winners: append([]int(nil), playerIDs...)})
}
