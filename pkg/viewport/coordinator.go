// Package viewport coordinates camera recenter requests.
package viewport

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/careergraph/internal/logging"
	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/aretw0/careergraph/pkg/ports"
	"github.com/aretw0/careergraph/pkg/scheduler"
)

const (
	// DebounceWindow is the trailing quiet period collapsing a burst of requests.
	DebounceWindow = 150 * time.Millisecond
	// SettleDelay is the wait of the immediate path, letting a batch mutation render first.
	SettleDelay = 50 * time.Millisecond
)

// DefaultFitView is the fixed recenter command issued after layout mutations.
var DefaultFitView = domain.FitViewCommand{
	Padding:    0.2,
	MinZoom:    0.5,
	MaxZoom:    1.5,
	DurationMs: 800,
}

const (
	PathDebounced = "debounced"
	PathImmediate = "immediate"
)

// Coordinator debounces fit requests and runs the immediate fit path.
// It is not safe for concurrent use; callers run it on one logical thread.
type Coordinator struct {
	clock  scheduler.Clock
	camera ports.Camera
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	ctx    context.Context

	debounce     time.Duration
	settle       time.Duration
	trailing     scheduler.Timer
	trailingCmd  domain.FitViewCommand
	trailingGen  uint64
	collapsed    int
	immediate    scheduler.Timer
	immediateGen uint64
	cancelled    bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger configures a logger for the Coordinator.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks (OnFitView).
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Coordinator) {
		c.hooks = hooks
	}
}

// WithContext sets the context handed to hooks.
func WithContext(ctx context.Context) Option {
	return func(c *Coordinator) {
		c.ctx = ctx
	}
}

// WithDebounce overrides the trailing window.
func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) {
		c.debounce = d
	}
}

// New creates a Coordinator issuing commands to camera.
func New(clock scheduler.Clock, camera ports.Camera, opts ...Option) *Coordinator {
	c := &Coordinator{
		clock:    clock,
		camera:   camera,
		logger:   logging.NewNop(),
		ctx:      context.Background(),
		debounce: DebounceWindow,
		settle:   SettleDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request is RequestFit with DefaultFitView.
func (c *Coordinator) Request() {
	c.RequestFit(DefaultFitView)
}

// RequestFit schedules cmd after the debounce window, replacing any request still waiting.
func (c *Coordinator) RequestFit(cmd domain.FitViewCommand) {
	if c.cancelled {
		c.logger.Debug("Fit request after cancel ignored")
		return
	}
	if c.trailing != nil {
		c.trailing.Stop()
	}
	c.trailingCmd = cmd
	c.collapsed++
	c.trailingGen++
	gen := c.trailingGen
	c.trailing = c.clock.AfterFunc(c.debounce, func() { c.fireTrailing(gen) })
}

// fireTrailing runs only for the latest arm. A stopped timer whose callback
// was already queued reaches here with an old generation.
func (c *Coordinator) fireTrailing(gen uint64) {
	if c.cancelled {
		c.logger.Error("Debounced fit fired after cancel")
		return
	}
	if gen != c.trailingGen {
		c.logger.Debug("Stale debounced fit dropped", "generation", gen)
		return
	}
	cmd, collapsed := c.trailingCmd, c.collapsed
	c.trailing = nil
	c.collapsed = 0
	c.issue(cmd, PathDebounced, collapsed)
}

// FitNow recenters after the settle delay without debouncing.
// A second call before the first fired replaces it.
func (c *Coordinator) FitNow(cmd domain.FitViewCommand) {
	if c.cancelled {
		c.logger.Debug("Immediate fit after cancel ignored")
		return
	}
	if c.immediate != nil {
		c.immediate.Stop()
	}
	c.immediateGen++
	gen := c.immediateGen
	c.immediate = c.clock.AfterFunc(c.settle, func() {
		if c.cancelled {
			c.logger.Error("Immediate fit fired after cancel")
			return
		}
		if gen != c.immediateGen {
			c.logger.Debug("Stale immediate fit dropped", "generation", gen)
			return
		}
		c.immediate = nil
		c.issue(cmd, PathImmediate, 1)
	})
}

// Pending reports whether a debounced or immediate fit is waiting.
func (c *Coordinator) Pending() bool {
	return c.trailing != nil || c.immediate != nil
}

// Cancel clears both paths. The coordinator ignores every later request.
func (c *Coordinator) Cancel() {
	c.cancelled = true
	if c.trailing != nil {
		c.trailing.Stop()
		c.trailing = nil
	}
	if c.immediate != nil {
		c.immediate.Stop()
		c.immediate = nil
	}
	c.collapsed = 0
}

func (c *Coordinator) issue(cmd domain.FitViewCommand, path string, collapsed int) {
	c.logger.Debug("Fit view", "path", path, "collapsed", collapsed)
	c.camera.FitView(cmd)
	if c.hooks.OnFitView != nil {
		c.hooks.OnFitView(c.ctx, &domain.FitEvent{
			EventBase: domain.EventBase{Timestamp: c.clock.Now(), Type: domain.EventFitView},
			Command:   cmd,
			Path:      path,
			Collapsed: collapsed,
		})
	}
}
