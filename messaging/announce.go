package messaging

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Announce broadcasts a building name on the discovery fan-out channel.
// Every currently subscribed agent receives a copy; there is no delivery
// guarantee, and none is needed since buildings re-announce periodically.
func Announce(ctx context.Context, rdb *redis.Client, building string) error {
	if err := rdb.Publish(ctx, AnnounceChannel, building).Err(); err != nil {
		return fmt.Errorf("announcing %s: %w", building, err)
	}
	return nil
}

// AnnounceListener is an agent's ephemeral subscription to the discovery
// channel.
type AnnounceListener struct {
	pubsub *redis.PubSub
	ch     <-chan *redis.Message
}

// ListenAnnouncements subscribes to the discovery channel.
func ListenAnnouncements(ctx context.Context, rdb *redis.Client) (*AnnounceListener, error) {
	pubsub := rdb.Subscribe(ctx, AnnounceChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribing announce channel: %w", err)
	}
	return &AnnounceListener{pubsub: pubsub, ch: pubsub.Channel()}, nil
}

// Next blocks until an announcement arrives or the context expires and
// returns the announced building name.
func (l *AnnounceListener) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case msg, ok := <-l.ch:
		if !ok {
			return "", fmt.Errorf("announce channel closed")
		}
		return msg.Payload, nil
	}
}

// Close tears down the subscription.
func (l *AnnounceListener) Close() error {
	return l.pubsub.Close()
}
