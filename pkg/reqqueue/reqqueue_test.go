package reqqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_EnqueueDrainOrder(t *testing.T) {
	q := New()
	q.Enqueue(3)
	q.Enqueue(1)
	q.Enqueue(2)

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []int{3, 1, 2}, q.DrainAll())
	assert.Equal(t, 0, q.Len())
	assert.Nil(t, q.DrainAll())
}

func TestQueue_WakeSignalsOnEnqueue(t *testing.T) {
	q := New()
	select {
	case <-q.Wake():
		t.Fatal("wake fired before any enqueue")
	default:
	}

	q.Enqueue(1)
	select {
	case <-q.Wake():
	case <-time.After(time.Second):
		t.Fatal("expected wake signal after enqueue")
	}
}

func TestQueue_ManyEnqueuesCollapseToOneWake(t *testing.T) {
	q := New()
	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)

	select {
	case <-q.Wake():
	default:
		t.Fatal("expected a pending wake")
	}
	select {
	case <-q.Wake():
		t.Fatal("wake channel should have collapsed to a single pending signal")
	default:
	}

	require.Equal(t, []int{1, 2, 3}, q.DrainAll())
}
