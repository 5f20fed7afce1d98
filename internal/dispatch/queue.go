// Package dispatch carries events from background goroutines to the render
// loop.
//
// Driver callbacks and timers run on goroutines the UI does not own. They
// never touch UI state; instead they post an Event to a Queue, which is an
// unbounded FIFO whose Post never blocks. The render loop is the only
// consumer. It receives one event at a time through the tea.Cmd returned by
// Dispatcher.Wait and re-arms that command after handling each event, so
// events are processed strictly in posting order.
package dispatch

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Next once the queue is closed and drained.
var ErrClosed = errors.New("dispatch: queue closed")

// Queue is an unbounded goroutine-safe FIFO of events.
type Queue struct {
	mu     sync.Mutex
	items  []Event
	closed bool
	signal chan struct{}
	done   chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Post appends e and reports whether it was accepted. It never blocks;
// events posted after Close are dropped.
func (q *Queue) Post(e Event) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, e)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// Next removes and returns the oldest event, blocking until one is posted,
// ctx ends or the queue is closed and empty.
func (q *Queue) Next(ctx context.Context) (Event, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			e := q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
			q.mu.Unlock()
			return e, nil
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return nil, ErrClosed
		}

		select {
		case <-q.signal:
		case <-q.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close stops accepting events. Queued events can still be read.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.done)
	}
}
