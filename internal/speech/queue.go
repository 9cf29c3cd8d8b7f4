package speech

import (
	"sync"
	"time"
)

// FrameQueue is the bounded FIFO connecting the producer and the consumer.
// Its fixed capacity bounds memory and creates backpressure: a slow consumer
// throttles the producer instead of letting frames pile up or get dropped.
// It is safe for exactly one producer and one consumer.
type FrameQueue struct {
	ch chan Item
}

// NewFrameQueue creates a frame queue with the given capacity. A capacity
// below one falls back to DefaultQueueCapacity.
func NewFrameQueue(capacity int) *FrameQueue {
	if capacity < 1 {
		capacity = DefaultQueueCapacity
	}
	return &FrameQueue{ch: make(chan Item, capacity)}
}

// Push attempts to enqueue an item, blocking up to timeout. It returns false
// if the queue was still full when the timeout elapsed. A false return is a
// would-block signal, not an error: the caller is expected to check its stop
// flag and retry.
func (q *FrameQueue) Push(it Item, timeout time.Duration) bool {
	select {
	case q.ch <- it:
		return true
	default:
	}

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case q.ch <- it:
		return true
	case <-t.C:
		return false
	}
}

// TryPush enqueues the item only if space is immediately available.
func (q *FrameQueue) TryPush(it Item) bool {
	select {
	case q.ch <- it:
		return true
	default:
		return false
	}
}

// Pop blocks until an item is available and dequeues it.
func (q *FrameQueue) Pop() Item {
	return <-q.ch
}

// Clear drops all pending items. Any producer blocked on a full queue is
// unblocked as space opens up.
func (q *FrameQueue) Clear() {
	for {
		select {
		case <-q.ch:
		default:
			return
		}
	}
}

// Len returns the number of enqueued items.
func (q *FrameQueue) Len() int {
	return len(q.ch)
}

// Cap returns the queue capacity.
func (q *FrameQueue) Cap() int {
	return cap(q.ch)
}

// textEntry is one pending line, or the termination token that makes the
// producer exit immediately.
type textEntry struct {
	text      string
	terminate bool
}

// TextQueue is the unbounded FIFO feeding text lines into the producer.
// Enqueueing never blocks; the bound on memory belongs to the downstream
// frame queue, not here.
type TextQueue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	entries  []textEntry
}

// NewTextQueue creates an empty text queue.
func NewTextQueue() *TextQueue {
	q := &TextQueue{}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Push enqueues a line of text. It never blocks.
func (q *TextQueue) Push(text string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, textEntry{text: text})
	q.notEmpty.Signal()
}

// PushTerminate enqueues the termination token.
func (q *TextQueue) PushTerminate() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, textEntry{terminate: true})
	q.notEmpty.Signal()
}

// Pop blocks until an entry is available. It returns the dequeued text and
// false, or "" and true for the termination token.
func (q *TextQueue) Pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.entries) == 0 {
		q.notEmpty.Wait()
	}

	e := q.entries[0]
	q.entries = q.entries[1:]
	return e.text, e.terminate
}

// Clear drops all pending entries.
func (q *TextQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = nil
}

// Len returns the number of pending entries.
func (q *TextQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
