package session

import (
	"sync"

	"github.com/aretw0/careergraph/pkg/domain"
)

// Update is one change pushed by a view.
type Update struct {
	// Diff is nil for camera-only updates.
	Diff *domain.CanvasDiff `json:"diff,omitempty"`
	// Fit is set when the camera recentered.
	Fit *domain.FitViewCommand `json:"fit,omitempty"`
}

// Feed implements ports.Surface and ports.Camera by recording the current canvas
// and broadcasting diffs. Subscribers that fall behind miss updates instead of blocking the view.
type Feed struct {
	sessionID string

	mu     sync.RWMutex
	snap   domain.CanvasSnapshot
	fits   int
	subs   map[int]chan Update
	nextID int
	closed bool
}

// NewFeed creates an empty feed for sessionID.
func NewFeed(sessionID string) *Feed {
	return &Feed{
		sessionID: sessionID,
		snap:      domain.CanvasSnapshot{SessionID: sessionID},
		subs:      make(map[int]chan Update),
	}
}

// SetNodes implements ports.Surface.
func (f *Feed) SetNodes(nodes []domain.PositionedNode) {
	f.publish(func(s *domain.CanvasSnapshot) { s.Nodes = nodes })
}

// SetEdges implements ports.Surface.
func (f *Feed) SetEdges(edges []domain.RenderEdge) {
	f.publish(func(s *domain.CanvasSnapshot) { s.Edges = edges })
}

// FitView implements ports.Camera.
func (f *Feed) FitView(cmd domain.FitViewCommand) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fits++
	f.broadcast(Update{Fit: &cmd})
}

func (f *Feed) publish(apply func(*domain.CanvasSnapshot)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev := f.snap
	next := prev
	apply(&next)
	f.snap = next
	if diff := domain.Diff(&prev, &next); diff != nil {
		f.broadcast(Update{Diff: diff})
	}
}

// broadcast must be called with f.mu held.
func (f *Feed) broadcast(u Update) {
	if f.closed {
		return
	}
	for _, ch := range f.subs {
		select {
		case ch <- u:
		default:
		}
	}
}

// Snapshot returns what the surface shows.
func (f *Feed) Snapshot() domain.CanvasSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snap
}

// Fits returns the number of camera commands received.
func (f *Feed) Fits() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fits
}

// Subscribe returns a channel of updates and a function removing it.
// The first update carries the full current canvas.
func (f *Feed) Subscribe(buffer int) (<-chan Update, func()) {
	if buffer < 1 {
		buffer = 16
	}
	ch := make(chan Update, buffer)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		close(ch)
		return ch, func() {}
	}
	if diff := domain.Diff(nil, &f.snap); diff != nil {
		ch <- Update{Diff: diff}
	}
	id := f.nextID
	f.nextID++
	f.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if c, ok := f.subs[id]; ok {
				delete(f.subs, id)
				close(c)
			}
		})
	}
}

// Close closes every subscriber channel.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
}
