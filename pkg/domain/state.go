package domain

import "sort"

// RevealState is the snapshot owned by the expansion store.
type RevealState struct {
	// HasStartedReveal latches true once and is never reset.
	HasStartedReveal bool `json:"hasStartedReveal"`

	// RevealedCompanies only grows: a timeline id enters exactly once.
	RevealedCompanies map[string]bool `json:"revealedCompanies"`

	// ExpandedNodes holds the achievements currently showing detail.
	ExpandedNodes map[string]bool `json:"expandedNodes"`
}

// NewRevealState returns an empty state.
func NewRevealState() RevealState {
	return RevealState{
		RevealedCompanies: make(map[string]bool),
		ExpandedNodes:     make(map[string]bool),
	}
}

// Clone returns a deep copy so callers can never mutate the owner's sets.
func (s RevealState) Clone() RevealState {
	c := RevealState{
		HasStartedReveal:  s.HasStartedReveal,
		RevealedCompanies: make(map[string]bool, len(s.RevealedCompanies)),
		ExpandedNodes:     make(map[string]bool, len(s.ExpandedNodes)),
	}
	for k, v := range s.RevealedCompanies {
		c.RevealedCompanies[k] = v
	}
	for k, v := range s.ExpandedNodes {
		c.ExpandedNodes[k] = v
	}
	return c
}

// Revealed returns the revealed timeline ids sorted.
func (s RevealState) Revealed() []string {
	return sortedKeys(s.RevealedCompanies)
}

// Expanded returns the expanded achievement ids sorted.
func (s RevealState) Expanded() []string {
	return sortedKeys(s.ExpandedNodes)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k, ok := range m {
		if ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
