package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/careergraph"
)

// WatchAndReload rebuilds eng whenever its source reports a change and calls
// onReload after each successful rebuild. It blocks until ctx is done.
func WatchAndReload(ctx context.Context, eng *careergraph.Engine, logger *slog.Logger, onReload func(id string)) error {
	changes, err := eng.Watch(ctx)
	if err != nil {
		return err
	}
	logger.Info("Watching dataset source for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case id, ok := <-changes:
			if !ok {
				return nil
			}
			if err := eng.Reload(ctx); err != nil {
				logger.Error("Reload failed, keeping the previous graph", "changed", id, "err", err)
				continue
			}
			logger.Info("Dataset reloaded", "changed", id, "fingerprint", eng.Fingerprint())
			if onReload != nil {
				onReload(id)
			}
		}
	}
}
