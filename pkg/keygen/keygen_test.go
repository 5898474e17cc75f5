package keygen

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakePlayer struct {
	mu       sync.Mutex
	pressed  []int
	capacity int
	resume   chan struct{}
}

func newFakePlayer(capacity int) *fakePlayer {
	return &fakePlayer{
		capacity: capacity,
		resume:   make(chan struct{}, 1),
	}
}

func (f *fakePlayer) KeyPressed(slot int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pressed = append(f.pressed, slot)
}

func (f *fakePlayer) Full() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pressed) >= f.capacity
}

func (f *fakePlayer) Resume() <-chan struct{} {
	return f.resume
}

func (f *fakePlayer) drain() {
	f.mu.Lock()
	f.pressed = nil
	f.mu.Unlock()
	select {
	case f.resume <- struct{}{}:
	default:
	}
}

func (f *fakePlayer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pressed)
}

func TestWorker_FillsUpToCapacityThenBlocks(t *testing.T) {
	player := newFakePlayer(3)
	w := New(Options{
		PlayerID:  0,
		TableSize: 12,
		Player:    player,
		MinDelay:  time.Millisecond,
		MaxDelay:  2 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return player.count() == 3
	}, time.Second, time.Millisecond, "expected key channel to fill to capacity")

	// Give it a moment to confirm it does not overshoot capacity while blocked.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 3, player.count())

	cancel()
	<-done
}

func TestWorker_ResumesAfterDrain(t *testing.T) {
	player := newFakePlayer(2)
	w := New(Options{
		PlayerID:  1,
		TableSize: 12,
		Player:    player,
		MinDelay:  time.Millisecond,
		MaxDelay:  2 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return player.count() == 2
	}, time.Second, time.Millisecond)

	player.drain()

	assert.Eventually(t, func() bool {
		return player.count() == 2
	}, time.Second, time.Millisecond, "expected refill after drain+resume signal")

	cancel()
	<-done
}

func TestWorker_StopsPromptlyOnCancel(t *testing.T) {
	player := newFakePlayer(1)
	w := New(Options{
		PlayerID:  2,
		TableSize: 12,
		Player:    player,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop within a second of cancellation")
	}
}
