package messaging

import (
	"context"
	"fmt"

	"conferencerent/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ReplySender delivers replies to a client's private channel. Buildings and
// agents sign replies with their own name; the client id routes the message.
type ReplySender interface {
	ReplyOutcome(ctx context.Context, clientID string, t models.MessageType, sender string, out models.Outcome) error
	ReplyError(ctx context.Context, clientID, sender, message string) error
}

// RedisReplySender publishes replies over Redis pub/sub. Replies are
// intentionally not persisted: they are only useful to a live client.
type RedisReplySender struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewRedisReplySender creates a reply sender on the bus client.
func NewRedisReplySender(rdb *redis.Client, logger *zap.Logger) *RedisReplySender {
	return &RedisReplySender{rdb: rdb, logger: logger}
}

// ReplyOutcome sends an operation outcome to the client's reply channel.
func (s *RedisReplySender) ReplyOutcome(ctx context.Context, clientID string, t models.MessageType, sender string, out models.Outcome) error {
	env, err := NewEnvelope(t, sender, out)
	if err != nil {
		return err
	}
	return s.publish(ctx, clientID, env)
}

// ReplyError sends an ERROR notice to the client's reply channel.
func (s *RedisReplySender) ReplyError(ctx context.Context, clientID, sender, message string) error {
	env, err := NewEnvelope(models.TypeError, sender, models.ErrorNotice{Message: message})
	if err != nil {
		return err
	}
	return s.publish(ctx, clientID, env)
}

func (s *RedisReplySender) publish(ctx context.Context, clientID string, env models.Envelope) error {
	body, err := EncodeEnvelope(env)
	if err != nil {
		return err
	}
	if err := s.rdb.Publish(ctx, ReplyChannel(clientID), body).Err(); err != nil {
		return fmt.Errorf("publishing reply to %s: %w", clientID, err)
	}
	s.logger.Debug("reply sent",
		zap.String("client", clientID),
		zap.String("type", string(env.Type)),
		zap.String("sender", env.Sender),
	)
	return nil
}

// ReplyListener is a client's subscription to its own reply channel.
type ReplyListener struct {
	pubsub *redis.PubSub
	ch     <-chan *redis.Message
}

// ListenReplies subscribes to the client's private reply channel. The
// subscription is confirmed before returning so a reply published right
// after a command cannot be missed.
func ListenReplies(ctx context.Context, rdb *redis.Client, clientID string) (*ReplyListener, error) {
	pubsub := rdb.Subscribe(ctx, ReplyChannel(clientID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribing reply channel for %s: %w", clientID, err)
	}
	return &ReplyListener{pubsub: pubsub, ch: pubsub.Channel()}, nil
}

// Next blocks until a reply arrives or the context expires.
func (l *ReplyListener) Next(ctx context.Context) (models.Envelope, error) {
	select {
	case <-ctx.Done():
		return models.Envelope{}, ctx.Err()
	case msg, ok := <-l.ch:
		if !ok {
			return models.Envelope{}, fmt.Errorf("reply channel closed")
		}
		return DecodeEnvelope([]byte(msg.Payload))
	}
}

// Drain discards any buffered replies, e.g. a late reply from a request
// that already timed out locally.
func (l *ReplyListener) Drain() {
	for {
		select {
		case <-l.ch:
		default:
			return
		}
	}
}

// Close tears down the subscription.
func (l *ReplyListener) Close() error {
	return l.pubsub.Close()
}
