package agent

import (
	"context"
	"errors"

	"conferencerent/messaging"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RunDiscovery consumes building announcements into the registry until the
// context is canceled. The subscription is ephemeral and private to this
// agent process; announcements missed while down are recovered from the
// building's next periodic announce.
func RunDiscovery(ctx context.Context, rdb *redis.Client, registry *Registry, logger *zap.Logger) error {
	listener, err := messaging.ListenAnnouncements(ctx, rdb)
	if err != nil {
		return err
	}
	defer listener.Close()

	logger.Info("listening for building announcements",
		zap.String("channel", messaging.AnnounceChannel),
	)

	for {
		building, err := listener.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		if building == "" {
			continue
		}
		registry.Observe(building)
	}
}
