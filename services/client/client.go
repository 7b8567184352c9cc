package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"conferencerent/messaging"
	"conferencerent/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultBookingClient implements BookingAPI over the bus. It owns one
// private reply channel and issues one request at a time: a reply is
// correlated to the single outstanding request, so a new command is not
// sent before the previous reply arrived or timed out locally.
type DefaultBookingClient struct {
	clientID  string
	publisher *messaging.Publisher
	listener  *messaging.ReplyListener
	timeout   time.Duration
	logger    *zap.Logger

	mu sync.Mutex // serializes request/reply round trips
}

// NewBookingClient subscribes the client's private reply channel and
// prepares the command publisher. The client id must be unique across
// concurrently running clients; it doubles as the reply routing key.
func NewBookingClient(ctx context.Context, clientID string, rdb *redis.Client, opt asynq.RedisClientOpt, timeout time.Duration, logger *zap.Logger) (*DefaultBookingClient, error) {
	if clientID == "" {
		clientID = "client-" + uuid.NewString()[:8]
	}
	listener, err := messaging.ListenReplies(ctx, rdb, clientID)
	if err != nil {
		return nil, err
	}
	logger.Info("client ready",
		zap.String("client", clientID),
		zap.String("reply_channel", messaging.ReplyChannel(clientID)),
	)
	return &DefaultBookingClient{
		clientID:  clientID,
		publisher: messaging.NewPublisher(opt, logger),
		listener:  listener,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// ClientID returns the identity replies are routed by.
func (c *DefaultBookingClient) ClientID() string {
	return c.clientID
}

// RequestBuildingList asks the agents for the building directory.
func (c *DefaultBookingClient) RequestBuildingList(ctx context.Context) (string, error) {
	env, err := messaging.NewEnvelope(models.TypeRequestBuildings, c.clientID, nil)
	if err != nil {
		return "", err
	}
	reply, err := c.roundTrip(ctx, env)
	if err != nil {
		return "", err
	}
	if reply.Type == models.TypeError {
		notice, err := messaging.DecodeErrorNotice(reply)
		if err != nil {
			return "", err
		}
		return "", fmt.Errorf("%s: %s", reply.Sender, notice.Message)
	}
	out, err := messaging.DecodeOutcome(reply)
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

// BookRoom requests a provisional hold. The idempotency token minted here
// stays stable for the lifetime of the command, so bus-level redelivery of
// the same booking cannot double-book.
func (c *DefaultBookingClient) BookRoom(ctx context.Context, building string, rooms int, date string, hours int) (models.Outcome, error) {
	intent := models.HoldIntent{
		Building: building,
		Rooms:    rooms,
		Date:     date,
		Hours:    hours,
		Token:    uuid.NewString(),
	}
	return c.command(ctx, models.TypeBookRoom, intent)
}

// ConfirmReservation finalizes a pending hold.
func (c *DefaultBookingClient) ConfirmReservation(ctx context.Context, building, reservationID string) (models.Outcome, error) {
	ref := models.ReservationRef{Building: building, ReservationID: reservationID}
	return c.command(ctx, models.TypeConfirmReservation, ref)
}

// CancelReservation cancels a pending or confirmed reservation.
func (c *DefaultBookingClient) CancelReservation(ctx context.Context, building, reservationID string) (models.Outcome, error) {
	ref := models.ReservationRef{Building: building, ReservationID: reservationID}
	return c.command(ctx, models.TypeCancelReservation, ref)
}

// Close releases the reply subscription and publisher connection.
func (c *DefaultBookingClient) Close() error {
	if err := c.listener.Close(); err != nil {
		c.publisher.Close()
		return err
	}
	return c.publisher.Close()
}

func (c *DefaultBookingClient) command(ctx context.Context, t models.MessageType, payload any) (models.Outcome, error) {
	env, err := messaging.NewEnvelope(t, c.clientID, payload)
	if err != nil {
		return models.Outcome{}, err
	}
	reply, err := c.roundTrip(ctx, env)
	if err != nil {
		return models.Outcome{}, err
	}
	if reply.Type == models.TypeError {
		notice, err := messaging.DecodeErrorNotice(reply)
		if err != nil {
			return models.Outcome{}, err
		}
		return models.Outcome{}, fmt.Errorf("%s: %s", reply.Sender, notice.Message)
	}
	return messaging.DecodeOutcome(reply)
}

// roundTrip publishes a command and waits for the next reply on the
// private channel. A stale reply from a previously timed-out request is
// discarded before sending.
func (c *DefaultBookingClient) roundTrip(ctx context.Context, env models.Envelope) (models.Envelope, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listener.Drain()

	if err := c.publisher.SendToAgents(ctx, env); err != nil {
		return models.Envelope{}, err
	}
	c.logger.Debug("command sent", zap.String("type", string(env.Type)))

	waitCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reply, err := c.listener.Next(waitCtx)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("waiting for %s reply: %w", env.Type, err)
	}
	return reply, nil
}
