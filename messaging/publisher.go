package messaging

import (
	"context"
	"fmt"
	"time"

	"conferencerent/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Publishing options for the durable command paths. Retries cover transient
// consumer failures; the handler side keeps operations idempotent so a
// redelivered command cannot re-apply destructively.
const (
	commandMaxRetry = 5
	commandTimeout  = 30 * time.Second
)

// BuildingForwarder forwards a command envelope to a building's
// direct-routed queue.
type BuildingForwarder interface {
	ForwardToBuilding(ctx context.Context, building string, env models.Envelope) error
}

// Publisher enqueues command envelopes on the durable asynq queues.
type Publisher struct {
	client *asynq.Client
	logger *zap.Logger
}

// NewPublisher creates a publisher connected to the bus Redis instance.
func NewPublisher(opt asynq.RedisClientOpt, logger *zap.Logger) *Publisher {
	return &Publisher{
		client: asynq.NewClient(opt),
		logger: logger,
	}
}

// SendToAgents publishes a client command on the shared agent work queue.
func (p *Publisher) SendToAgents(ctx context.Context, env models.Envelope) error {
	return p.enqueue(ctx, QueueAgents, env)
}

// ForwardToBuilding publishes a command on a building's direct-routed
// queue. The envelope is forwarded unmodified so the original sender is
// preserved and the building can reply straight to the client.
func (p *Publisher) ForwardToBuilding(ctx context.Context, building string, env models.Envelope) error {
	return p.enqueue(ctx, BuildingQueue(building), env)
}

func (p *Publisher) enqueue(ctx context.Context, queue string, env models.Envelope) error {
	taskType, ok := TaskTypeFor(env.Type)
	if !ok {
		return fmt.Errorf("message type %s is not a command", env.Type)
	}
	body, err := EncodeEnvelope(env)
	if err != nil {
		return err
	}
	task := asynq.NewTask(taskType, body)
	info, err := p.client.EnqueueContext(ctx, task,
		asynq.Queue(queue),
		asynq.MaxRetry(commandMaxRetry),
		asynq.Timeout(commandTimeout),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s on %s: %w", taskType, queue, err)
	}
	p.logger.Debug("command enqueued",
		zap.String("task", taskType),
		zap.String("queue", queue),
		zap.String("task_id", info.ID),
		zap.String("sender", env.Sender),
	)
	return nil
}

// Close releases the underlying asynq client connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}
