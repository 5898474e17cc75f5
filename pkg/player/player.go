// Package player implements the per-seat worker: it consumes key presses,
// toggles tokens on the shared table, forwards a candidate set to the
// dealer once it has a full set of tokens, and enforces the freeze that
// follows a verdict.
package player

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cbodonnell/setgame/pkg/keygen"
	"github.com/cbodonnell/setgame/pkg/log"
	"github.com/cbodonnell/setgame/pkg/table"
	"github.com/cbodonnell/setgame/pkg/ui"
)

type verdictKind int

const (
	verdictAccepted verdictKind = iota
	verdictRejected
	verdictInvalidated
)

// RequestFunc forwards a completed candidate set to the dealer. It must
// not block: the dealer only needs the player id enqueued, the player
// blocks on its own verdict channel afterward.
type RequestFunc func(playerID int)

// Options configures a new Player.
type Options struct {
	ID          int
	Human       bool
	FeatureSize int
	TableSize   int

	Table   *table.Table
	Sink    ui.Sink
	Request RequestFunc

	PointFreeze   time.Duration
	PenaltyFreeze time.Duration

	KeyGenMinDelay time.Duration
	KeyGenMaxDelay time.Duration

	Logger *log.Logger
}

// Player is a single seat's worker.
type Player struct {
	id          int
	human       bool
	featureSize int
	tableSize   int

	table   *table.Table
	sink    ui.Sink
	request RequestFunc
	logger  *log.Logger

	pointFreeze   time.Duration
	penaltyFreeze time.Duration

	score          atomic.Int64
	freezeDeadline atomic.Int64 // UnixNano; 0 means unfrozen

	keyCh     chan int
	resumeCh  chan struct{}
	verdictCh chan verdictKind

	keygen     *keygen.Worker
	keygenDone chan struct{}
}

// New returns a Player ready to Run. If opts.Human is false, a KeyGen
// worker is created and started/joined alongside this Player.
func New(opts Options) *Player {
	p := &Player{
		id:            opts.ID,
		human:         opts.Human,
		featureSize:   opts.FeatureSize,
		tableSize:     opts.TableSize,
		table:         opts.Table,
		sink:          opts.Sink,
		request:       opts.Request,
		logger:        opts.Logger,
		pointFreeze:   opts.PointFreeze,
		penaltyFreeze: opts.PenaltyFreeze,
		keyCh:         make(chan int, opts.FeatureSize),
		resumeCh:      make(chan struct{}, 1),
		verdictCh:     make(chan verdictKind, 1),
	}

	if !opts.Human {
		p.keygen = keygen.New(keygen.Options{
			PlayerID:  opts.ID,
			TableSize: opts.TableSize,
			Player:    p,
			MinDelay:  opts.KeyGenMinDelay,
			MaxDelay:  opts.KeyGenMaxDelay,
			Logger:    opts.Logger,
		})
	}

	return p
}

// ID returns the player's seat id.
func (p *Player) ID() int { return p.id }

// Human reports whether this seat is keyboard-driven.
func (p *Player) Human() bool { return p.human }

// Score returns the player's current score.
func (p *Player) Score() int { return int(p.score.Load()) }

// FrozenRemaining reports how long the player's freeze penalty has left,
// or 0 if they're not frozen. Guarded the same way enforceFreeze reads
// freezeDeadline: an atomic load, no lock.
func (p *Player) FrozenRemaining() time.Duration {
	deadline := p.freezeDeadline.Load()
	if deadline == 0 {
		return 0
	}
	remaining := time.Until(time.Unix(0, deadline))
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (p *Player) logf(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(format, args...)
		return
	}
	log.Debug(format, args...)
}

// KeyPressed delivers a slot press. It never blocks: if the channel is
// already at capacity, the oldest pending press is dropped to make room
// for the new one.
func (p *Player) KeyPressed(slot int) {
	for {
		select {
		case p.keyCh <- slot:
			return
		default:
		}
		select {
		case <-p.keyCh:
		default:
		}
	}
}

// Full reports whether the key channel is topped up to capacity. It
// satisfies keygen.Handle.
func (p *Player) Full() bool {
	return len(p.keyCh) >= cap(p.keyCh)
}

// Resume satisfies keygen.Handle: KeyGen waits on this after filling the
// channel, and the Player signals it once room has freed up.
func (p *Player) Resume() <-chan struct{} {
	return p.resumeCh
}

// Run drives the player's main loop until ctx is canceled, starting and
// joining its KeyGen if this seat is non-human.
func (p *Player) Run(ctx context.Context) {
	p.logf("player %d: started (human=%v)", p.id, p.human)
	defer p.logf("player %d: stopped", p.id)

	if p.keygen != nil {
		p.keygenDone = make(chan struct{})
		go func() {
			p.keygen.Run(ctx)
			close(p.keygenDone)
		}()
		defer func() { <-p.keygenDone }()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case slot := <-p.keyCh:
			if !p.handleKey(ctx, slot) {
				return
			}
			if len(p.keyCh) == 0 {
				p.signalResume()
			}
		}
	}
}

// handleKey processes a single key press through capacity eviction,
// token toggling, and (if a full candidate set results) submission and
// freeze. It returns false if ctx was canceled mid-flight.
func (p *Player) handleKey(ctx context.Context, slot int) bool {
	if p.table.NumTokens(p.id) >= p.featureSize {
		if oldest, ok := p.table.OldestToken(p.id); ok {
			p.table.RemoveToken(p.id, oldest)
		}
	}

	if hasToken(p.table.GetTokens(p.id), slot) {
		p.table.RemoveToken(p.id, slot)
	} else {
		p.table.PlaceToken(p.id, slot)
	}

	if p.table.NumTokens(p.id) != p.featureSize {
		return true
	}

	if !p.submitAndAwaitVerdict(ctx) {
		return false
	}
	if !p.enforceFreeze(ctx) {
		return false
	}
	p.drainPendingKeys()
	p.signalResume()
	return true
}

func (p *Player) submitAndAwaitVerdict(ctx context.Context) bool {
	p.request(p.id)
	select {
	case <-ctx.Done():
		return false
	case <-p.verdictCh:
		return true
	}
}

func (p *Player) enforceFreeze(ctx context.Context) bool {
	for {
		deadline := p.freezeDeadline.Load()
		if deadline == 0 {
			return true
		}
		remaining := time.Until(time.Unix(0, deadline))
		if remaining <= 0 {
			p.freezeDeadline.Store(0)
			p.sink.SetFreeze(p.id, 0)
			return true
		}

		p.sink.SetFreeze(p.id, remaining)

		tick := remaining
		if tick > time.Second {
			tick = time.Second
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(tick):
		}
	}
}

func (p *Player) drainPendingKeys() {
	for {
		select {
		case <-p.keyCh:
		default:
			return
		}
	}
}

func (p *Player) signalResume() {
	select {
	case p.resumeCh <- struct{}{}:
	default:
	}
}

// Point is called by the dealer when this player's candidate set is
// accepted: it increments the score, sets the point freeze, and wakes
// the player's main loop.
func (p *Player) Point() {
	newScore := p.score.Add(1)
	p.sink.SetScore(p.id, int(newScore))
	p.freezeDeadline.Store(time.Now().Add(p.pointFreeze).UnixNano())
	p.sendVerdict(verdictAccepted)
}

// Penalty is called by the dealer when this player's candidate set is
// rejected: it sets the penalty freeze and wakes the player's main loop.
func (p *Player) Penalty() {
	p.freezeDeadline.Store(time.Now().Add(p.penaltyFreeze).UnixNano())
	p.sendVerdict(verdictRejected)
}

// Invalidate is called by the dealer when this player's tokens were
// reaped by another player's acceptance before this candidate could be
// verified. No freeze is applied.
func (p *Player) Invalidate() {
	p.sendVerdict(verdictInvalidated)
}

func (p *Player) sendVerdict(kind verdictKind) {
	select {
	case p.verdictCh <- kind:
	default:
	}
}

func hasToken(tokens []int, slot int) bool {
	for _, s := range tokens {
		if s == slot {
			return true
		}
	}
	return false
}
