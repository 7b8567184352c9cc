package building

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunReaper periodically sweeps abandoned holds until the context is
// canceled. A client that books and then disappears would otherwise lock
// capacity forever.
func RunReaper(ctx context.Context, engine ReservationEngine, interval, maxAge time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := engine.ReapExpired(maxAge); n > 0 {
				logger.Info("reaper sweep released capacity", zap.Int("reaped", n))
			}
		}
	}
}
