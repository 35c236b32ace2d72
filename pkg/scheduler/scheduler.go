package scheduler

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/careergraph/internal/logging"
)

// Task is one scheduled unit of work.
type Task struct {
	Name  string
	Delay time.Duration
	Run   func()
}

type entry struct {
	id    uint64
	name  string
	due   time.Time
	timer Timer
}

// Scheduler owns every pending timer of one view.
type Scheduler struct {
	clock  Clock
	logger *slog.Logger

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]*entry
	closed  bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger configures a logger for the Scheduler.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// New creates a Scheduler driven by clock.
func New(clock Clock, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:   clock,
		logger:  logging.NewNop(),
		pending: make(map[uint64]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Clock returns the time source of the scheduler.
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// Schedule runs fn after delay. It reports false when the scheduler is closed.
func (s *Scheduler) Schedule(name string, delay time.Duration, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.logger.Debug("Schedule after close ignored", "task", name)
		return false
	}

	s.nextID++
	e := &entry{id: s.nextID, name: name, due: s.clock.Now().Add(delay)}
	s.pending[e.id] = e
	id := e.id
	e.timer = s.clock.AfterFunc(delay, func() { s.fire(id, fn) })
	return true
}

// Run schedules every task; delays are relative to now.
// It returns the number of tasks accepted.
func (s *Scheduler) Run(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if s.Schedule(t.Name, t.Delay, t.Run) {
			n++
		}
	}
	return n
}

func (s *Scheduler) fire(id uint64, fn func()) {
	s.mu.Lock()
	e, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	closed := s.closed
	s.mu.Unlock()

	if !ok {
		// Stop lost the race against a real timer; the entry was already cancelled.
		if closed {
			s.logger.Debug("Dropped callback of a closed scheduler", "task_id", id)
		}
		return
	}
	fn()
	s.logger.Debug("Task fired", "task", e.name)
}

// Pending returns the names of the tasks still waiting, earliest first.
func (s *Scheduler) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]*entry, 0, len(s.pending))
	for _, e := range s.pending {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].due.Equal(entries[j].due) {
			return entries[i].id < entries[j].id
		}
		return entries[i].due.Before(entries[j].due)
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// CancelAll stops every pending task and returns how many were cancelled.
func (s *Scheduler) CancelAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.pending)
	for id, e := range s.pending {
		e.timer.Stop()
		delete(s.pending, id)
	}
	return n
}

// Close cancels every pending task and rejects new ones.
func (s *Scheduler) Close() int {
	n := s.CancelAll()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return n
}
