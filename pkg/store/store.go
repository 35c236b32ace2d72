// Package store holds the expansion/highlight state of one graph view.
//
// A Store is an explicit, injectable state service: readers take snapshots or
// subscribe, writers dispatch actions. It is the only writer of domain.RevealState.
package store

import (
	"sync"

	"github.com/aretw0/careergraph/pkg/domain"
)

// Action is an intent applied to the state. Apply mutates s in place and
// reports whether anything changed. The set is closed: only the actions of
// this package keep the reveal latch and the revealed set monotonic.
type Action interface {
	Apply(s *domain.RevealState) bool
	action()
}

func (StartReveal) action()         {}
func (MarkCompanyRevealed) action() {}
func (ExpandNode) action()          {}
func (CollapseNode) action()        {}
func (ToggleNode) action()          {}

// StartReveal latches HasStartedReveal.
type StartReveal struct{}

// Apply implements Action.
func (StartReveal) Apply(s *domain.RevealState) bool {
	if s.HasStartedReveal {
		return false
	}
	s.HasStartedReveal = true
	return true
}

// MarkCompanyRevealed adds a timeline id to the revealed set.
type MarkCompanyRevealed struct{ ID string }

// Apply implements Action.
func (a MarkCompanyRevealed) Apply(s *domain.RevealState) bool {
	if s.RevealedCompanies[a.ID] {
		return false
	}
	s.RevealedCompanies[a.ID] = true
	return true
}

// ExpandNode opens the detail view of an achievement.
type ExpandNode struct{ ID string }

// Apply implements Action.
func (a ExpandNode) Apply(s *domain.RevealState) bool {
	if s.ExpandedNodes[a.ID] {
		return false
	}
	s.ExpandedNodes[a.ID] = true
	return true
}

// CollapseNode closes the detail view of an achievement.
type CollapseNode struct{ ID string }

// Apply implements Action.
func (a CollapseNode) Apply(s *domain.RevealState) bool {
	if !s.ExpandedNodes[a.ID] {
		return false
	}
	delete(s.ExpandedNodes, a.ID)
	return true
}

// ToggleNode flips the detail view of an achievement.
type ToggleNode struct{ ID string }

// Apply implements Action.
func (a ToggleNode) Apply(s *domain.RevealState) bool {
	if s.ExpandedNodes[a.ID] {
		return CollapseNode(a).Apply(s)
	}
	return ExpandNode(a).Apply(s)
}

// Listener receives the committed snapshot after every change.
type Listener func(domain.RevealState)

// Store is the single source of truth for one view's RevealState.
// Mutations are synchronous; a read always sees the latest committed snapshot.
type Store struct {
	mu        sync.RWMutex
	state     domain.RevealState
	listeners map[int]Listener
	nextID    int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		state:     domain.NewRevealState(),
		listeners: make(map[int]Listener),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() domain.RevealState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe registers fn and returns a function removing it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Dispatch applies a and notifies listeners when the state changed.
func (s *Store) Dispatch(a Action) bool {
	s.mu.Lock()
	changed := a.Apply(&s.state)
	var snap domain.RevealState
	var listeners []Listener
	if changed {
		snap = s.state.Clone()
		listeners = make([]Listener, 0, len(s.listeners))
		for id := 0; id < s.nextID; id++ {
			if fn, ok := s.listeners[id]; ok {
				listeners = append(listeners, fn)
			}
		}
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	return changed
}

// StartReveal latches the reveal; it reports true only for the first call.
func (s *Store) StartReveal() bool {
	return s.Dispatch(StartReveal{})
}

// HasStartedReveal reports whether the reveal latch is set.
func (s *Store) HasStartedReveal() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.HasStartedReveal
}

// MarkCompanyRevealed records id as revealed; it reports true only for the first call per id.
func (s *Store) MarkCompanyRevealed(id string) bool {
	return s.Dispatch(MarkCompanyRevealed{ID: id})
}

// IsCompanyRevealed reports whether id already had its achievements revealed.
func (s *Store) IsCompanyRevealed(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.RevealedCompanies[id]
}

// ExpandNode opens id's detail view.
func (s *Store) ExpandNode(id string) bool {
	return s.Dispatch(ExpandNode{ID: id})
}

// CollapseNode closes id's detail view.
func (s *Store) CollapseNode(id string) bool {
	return s.Dispatch(CollapseNode{ID: id})
}

// ToggleNode flips id's detail view.
func (s *Store) ToggleNode(id string) bool {
	return s.Dispatch(ToggleNode{ID: id})
}

// IsExpanded reports whether id shows its detail view.
func (s *Store) IsExpanded(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ExpandedNodes[id]
}
