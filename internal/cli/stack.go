package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/careergraph"
	"github.com/aretw0/careergraph/internal/config"
	"github.com/aretw0/careergraph/internal/logging"
	"github.com/aretw0/careergraph/pkg/adapters/file"
	loamadapter "github.com/aretw0/careergraph/pkg/adapters/loam"
	"github.com/aretw0/careergraph/pkg/adapters/memory"
	redisadapter "github.com/aretw0/careergraph/pkg/adapters/redis"
	"github.com/aretw0/careergraph/pkg/observability"
	"github.com/aretw0/careergraph/pkg/ports"
	"github.com/aretw0/careergraph/pkg/session"
)

// Stack is the wired runtime shared by every command.
type Stack struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics
	Engine  *careergraph.Engine

	closers []func() error
}

// NewStack wires the engine from cfg with standard CLI conventions.
func NewStack(ctx context.Context, cfg config.Config) (*Stack, error) {
	logger := logging.New(logging.ParseLevel(cfg.Log.Level), logging.Format(cfg.Log.Format))
	return NewStackWithLogger(ctx, cfg, logger)
}

// NewStackWithLogger is NewStack with an explicit logger.
func NewStackWithLogger(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Stack, error) {
	st := &Stack{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	}

	source, err := DatasetSource(cfg)
	if err != nil {
		return nil, err
	}

	opts := []careergraph.Option{
		careergraph.WithLogger(logger),
		careergraph.WithDatasetSource(source),
		careergraph.WithMargins(cfg.Margins),
		careergraph.WithLifecycleHooks(observability.LoggingHooks(logger).Merge(st.Metrics.Hooks())),
		careergraph.WithCacheObserver(st.Metrics.ObserveCache),
	}

	if cfg.Redis.Addr != "" {
		cache := redisadapter.New(cfg.Redis.Addr,
			redisadapter.WithPrefix(cfg.Redis.Prefix),
			redisadapter.WithTTL(cfg.Redis.TTL),
		)
		if err := cache.Ping(ctx); err != nil {
			_ = cache.Close()
			return nil, fmt.Errorf("redis layout cache at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("Using redis layout cache", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		opts = append(opts, careergraph.WithLayoutCache(cache))
		st.closers = append(st.closers, cache.Close)
	}

	eng, err := careergraph.New(ctx, opts...)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	st.Engine = eng

	if report := eng.Report(); !report.OK() {
		logger.Warn("Dataset has integrity issues", "report", report.String())
	}
	return st, nil
}

// DatasetSource picks the dataset source: a file or the embedded dataset,
// with an achievement library merged over it when configured.
func DatasetSource(cfg config.Config) (ports.DatasetSource, error) {
	var base ports.DatasetSource = memory.NewDefaultLoader()
	if cfg.Dataset != "" {
		base = file.NewLoader(cfg.Dataset)
	}
	if cfg.Achievements == "" {
		return base, nil
	}
	loader, err := loamadapter.Open(cfg.Achievements, base)
	if err != nil {
		return nil, fmt.Errorf("open achievement library: %w", err)
	}
	return loader, nil
}

// Sessions creates a session manager that reports to the stack's metrics.
func (st *Stack) Sessions() *session.Manager {
	return st.Engine.Sessions(
		session.WithQueueSize(st.Config.Session.QueueSize),
		session.WithCountObserver(func(live int) {
			st.Metrics.ActiveSessions.Set(float64(live))
		}),
	)
}

// Close releases external connections.
func (st *Stack) Close() error {
	var errs []error
	for _, c := range st.closers {
		errs = append(errs, c())
	}
	st.closers = nil
	return errors.Join(errs...)
}
