package stdin

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTarget struct {
	mu     sync.Mutex
	pressed []int
}

func (f *fakeTarget) KeyPressed(slot int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pressed = append(f.pressed, slot)
}

func (f *fakeTarget) snapshot() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.pressed...)
}

func TestReader_DispatchesValidLinesToTargets(t *testing.T) {
	p0 := &fakeTarget{}
	p1 := &fakeTarget{}
	input := "0 3\n1 7\nbad line\n0 5\nnosuchplayer 1\n"

	r := New(strings.NewReader(input), map[int]KeyPresser{0: p0, 1: p1}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r.Run(ctx)

	assert.Equal(t, []int{3, 5}, p0.snapshot())
	assert.Equal(t, []int{7}, p1.snapshot())
}

func TestReader_StopsOnContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	r := New(pr, map[int]KeyPresser{}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reader did not stop within a second of cancellation")
	}
}
