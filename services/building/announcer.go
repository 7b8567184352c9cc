package building

import (
	"context"
	"time"

	"conferencerent/messaging"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RunAnnouncer broadcasts the building's name on the discovery channel:
// once immediately at startup, then on a fixed period after an initial
// delay, until the context is canceled. Lost announcements are harmless;
// the next period heals them.
func RunAnnouncer(ctx context.Context, rdb *redis.Client, building string, delay, period time.Duration, logger *zap.Logger) {
	if err := messaging.Announce(ctx, rdb, building); err != nil {
		logger.Warn("initial announce failed", zap.Error(err))
	} else {
		logger.Info("announced on discovery channel", zap.String("channel", messaging.AnnounceChannel))
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(delay):
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		if err := messaging.Announce(ctx, rdb, building); err != nil {
			logger.Warn("announce failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
