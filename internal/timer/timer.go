// Package timer runs one-shot delayed callbacks on their own goroutines.
//
// A callback fires exactly once after its delay. Errors it returns and panics
// it raises are logged and otherwise swallowed, so one failing timer never
// affects another or the code that scheduled it. There is no cancellation:
// callers that may no longer care about a timer make its callback inert, for
// example by posting an event tagged with a generation number that the
// receiver compares against its current state.
//
// Callbacks must not touch UI state directly. The dashboard's callbacks only
// post events to the dispatcher queue.
package timer

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/buzzdavidson/ozwcommander/internal/logging"
)

// Callback is the work a timer performs when it fires.
type Callback func() error

// AfterFunc arranges for f to run on its own goroutine after d.
type AfterFunc func(d time.Duration, f func())

// Option configures a Service.
type Option func(*Service)

// WithAfterFunc replaces the clock used to arm timers.
func WithAfterFunc(af AfterFunc) Option {
	return func(s *Service) {
		s.afterFunc = af
	}
}

// Service schedules callbacks.
type Service struct {
	afterFunc AfterFunc

	mu      sync.Mutex
	closed  bool
	pending int
	wg      sync.WaitGroup
}

// New creates a Service using time.AfterFunc unless overridden.
func New(opts ...Option) *Service {
	s := &Service{
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule arms cb to run once after delay and reports whether it was
// accepted. Timers scheduled after Close are dropped.
func (s *Service) Schedule(tag string, delay time.Duration, cb Callback) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		logging.LogTimer(tag, "dropped", delay)
		return false
	}
	s.pending++
	s.wg.Add(1)
	s.mu.Unlock()

	logging.LogTimer(tag, "scheduled", delay)
	s.afterFunc(delay, func() {
		s.fire(tag, delay, cb)
	})
	return true
}

func (s *Service) fire(tag string, delay time.Duration, cb Callback) {
	defer func() {
		s.mu.Lock()
		s.pending--
		s.mu.Unlock()
		s.wg.Done()
	}()

	logging.LogTimer(tag, "fired", delay)
	if err := run(cb); err != nil {
		logging.Error("Timer callback failed",
			zap.String("tag", tag),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
	}
}

func run(cb Callback) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if cb == nil {
		return nil
	}
	return cb()
}

// Pending returns the number of timers that have not finished firing.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Wait blocks until every accepted timer has fired and returned.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Close stops accepting new timers. Timers already armed still fire.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
