// Package keygen implements the AI worker paired 1:1 with a non-human
// Player: it keeps the Player's key channel topped up at a randomized
// cadence and backs off cooperatively when the Player says it is full.
package keygen

import (
	"context"
	"math/rand"
	"time"

	"github.com/cbodonnell/setgame/pkg/log"
)

// Handle is the narrow view of a Player that KeyGen depends on. It is a
// weak back-reference, not ownership: KeyGen never stores anything beyond
// this interface, and the Player joins KeyGen on exit, never the reverse.
type Handle interface {
	// KeyPressed delivers a slot press. It must not block.
	KeyPressed(slot int)
	// Full reports whether the Player considers its key channel topped
	// up (featureSize pending presses).
	Full() bool
	// Resume returns a channel that receives a value each time the
	// Player has drained its key channel. Cancellation is not signaled
	// here; KeyGen observes it through its context.
	Resume() <-chan struct{}
}

// Options configures a new worker.
type Options struct {
	PlayerID  int
	TableSize int
	Player    Handle

	// MinDelay/MaxDelay bound the randomized inter-press interval.
	// Neither is required for correctness; they exist so KeyGen does
	// not dominate scheduling by hammering the key channel.
	MinDelay time.Duration
	MaxDelay time.Duration

	Logger *log.Logger
}

// Worker is the AI key-press generator for a single non-human seat.
type Worker struct {
	playerID  int
	tableSize int
	player    Handle
	minDelay  time.Duration
	maxDelay  time.Duration
	rng       *rand.Rand
	logger    *log.Logger
}

// New returns a Worker ready to Run.
func New(opts Options) *Worker {
	minDelay := opts.MinDelay
	maxDelay := opts.MaxDelay
	if maxDelay <= 0 {
		minDelay = 10 * time.Millisecond
		maxDelay = 50 * time.Millisecond
	}
	return &Worker{
		playerID:  opts.PlayerID,
		tableSize: opts.TableSize,
		player:    opts.Player,
		minDelay:  minDelay,
		maxDelay:  maxDelay,
		rng:       rand.New(rand.NewSource(int64(opts.PlayerID) + 1)),
		logger:    opts.Logger,
	}
}

func (w *Worker) logf(format string, args ...interface{}) {
	if w.logger != nil {
		w.logger.Debug(format, args...)
		return
	}
	log.Debug(format, args...)
}

// Run presses keys until ctx is canceled. It fills the Player's key
// channel up to capacity, then waits on the Player's resume signal or
// cancellation before pressing again.
func (w *Worker) Run(ctx context.Context) {
	w.logf("keygen %d: started", w.playerID)
	defer w.logf("keygen %d: stopped", w.playerID)

	for {
		if ctx.Err() != nil {
			return
		}

		for !w.player.Full() {
			if ctx.Err() != nil {
				return
			}
			slot := w.rng.Intn(w.tableSize)
			w.player.KeyPressed(slot)

			if !w.sleepInterruptible(ctx, w.randomDelay()) {
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-w.player.Resume():
		}
	}
}

func (w *Worker) randomDelay() time.Duration {
	if w.maxDelay <= w.minDelay {
		return w.minDelay
	}
	span := w.maxDelay - w.minDelay
	return w.minDelay + time.Duration(w.rng.Int63n(int64(span)))
}

// sleepInterruptible sleeps for d, or returns false early if ctx is
// canceled first.
func (w *Worker) sleepInterruptible(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
