package agent

import (
	"context"

	"conferencerent/messaging"
	"conferencerent/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker consumes the shared client → agent queue. Running several agent
// processes makes them competing consumers: the bus distributes commands
// round-robin, no application logic involved.
type Worker struct {
	agent  *RentalAgent
	logger *zap.Logger
}

// NewWorker creates the queue worker for a rental agent.
func NewWorker(agent *RentalAgent, logger *zap.Logger) *Worker {
	return &Worker{agent: agent, logger: logger}
}

// Run consumes the agent queue until the context is canceled.
func (w *Worker) Run(ctx context.Context, opt asynq.RedisClientOpt, concurrency int) error {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			messaging.QueueAgents: 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(messaging.TaskDirectory, w.handleDirectory)
	mux.HandleFunc(messaging.TaskBook, w.handleCommand)
	mux.HandleFunc(messaging.TaskConfirm, w.handleCommand)
	mux.HandleFunc(messaging.TaskCancel, w.handleCommand)

	if err := srv.Start(mux); err != nil {
		return err
	}
	w.logger.Info("listening on agent queue", zap.String("queue", messaging.QueueAgents))

	<-ctx.Done()
	srv.Shutdown()
	return nil
}

func (w *Worker) handleDirectory(ctx context.Context, task *asynq.Task) error {
	env, ok := w.decode(task)
	if !ok {
		return nil
	}
	return w.agent.HandleDirectory(ctx, env)
}

func (w *Worker) handleCommand(ctx context.Context, task *asynq.Task) error {
	env, ok := w.decode(task)
	if !ok {
		return nil
	}
	return w.agent.HandleCommand(ctx, env)
}

// decode unwraps the task envelope, dropping (with an ack) anything that
// cannot be answered.
func (w *Worker) decode(task *asynq.Task) (models.Envelope, bool) {
	env, err := messaging.DecodeEnvelope(task.Payload())
	if err != nil {
		w.logger.Error("dropping undecodable command", zap.Error(err))
		return models.Envelope{}, false
	}
	if env.Sender == "" {
		w.logger.Error("dropping command without sender", zap.String("type", string(env.Type)))
		return models.Envelope{}, false
	}
	return env, true
}
