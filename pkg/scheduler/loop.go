package scheduler

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopClosed is returned when work is submitted to a stopped loop.
var ErrLoopClosed = errors.New("loop closed")

// Loop runs submitted functions one at a time, in submission order, on its own goroutine.
type Loop struct {
	queue chan func()
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewLoop starts a loop with the given queue capacity.
func NewLoop(capacity int) *Loop {
	if capacity <= 0 {
		capacity = 64
	}
	l := &Loop{
		queue: make(chan func(), capacity),
		done:  make(chan struct{}),
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case f := <-l.queue:
			f()
		case <-l.done:
			return
		}
	}
}

// Post enqueues f. It blocks while the queue is full and reports false once the loop is closed.
// The lock is released before the send so Close can run while Post waits.
func (l *Loop) Post(f func()) bool {
	l.mu.RLock()
	closed := l.closed
	l.mu.RUnlock()
	if closed {
		return false
	}
	select {
	case l.queue <- f:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	if !l.Post(func() { result <- fn() }) {
		return ErrLoopClosed
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		// fn may still have run before shutdown
		select {
		case err := <-result:
			return err
		default:
			return ErrLoopClosed
		}
	}
}

// Close stops the loop. Queued functions that did not start are discarded.
// Close must not be called from the loop goroutine.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.done)
	l.mu.Unlock()
	l.wg.Wait()
}
