package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/careergraph/pkg/domain"
)

// LoggingHooks returns lifecycle hooks writing one structured line per event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRevealStarted: func(ctx context.Context, e *domain.RevealEvent) {
			logger.InfoContext(ctx, "reveal_started", "session_id", e.SessionID)
		},
		OnNodeRevealed: func(ctx context.Context, e *domain.RevealEvent) {
			logger.DebugContext(ctx, "node_revealed", "session_id", e.SessionID, "stage", e.Stage, "node_ids", e.NodeIDs)
		},
		OnEdgesRevealed: func(ctx context.Context, e *domain.RevealEvent) {
			logger.DebugContext(ctx, "edges_revealed", "session_id", e.SessionID, "stage", e.Stage, "edge_ids", e.EdgeIDs)
		},
		OnFitView: func(ctx context.Context, e *domain.FitEvent) {
			logger.DebugContext(ctx, "fit_view", "path", e.Path, "collapsed", e.Collapsed)
		},
		OnEdgeDropped: func(ctx context.Context, e *domain.IntegrityEvent) {
			logger.WarnContext(ctx, "edge_dropped", "edge", e.Edge.ID(), "reason", e.Reason)
		},
	}
}
