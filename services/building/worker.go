package building

import (
	"context"

	"conferencerent/messaging"
	"conferencerent/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker consumes the building's direct-routed inbox queue and drives the
// reservation engine.
//
// Acknowledgement contract: a handler returning nil acknowledges the task;
// returning an error rejects it for redelivery. Validation and routing
// failures reply ERROR and acknowledge — retrying a malformed command
// cannot succeed. Reply-publish failures propagate so the bus redelivers;
// the engine's idempotency rules make the replay safe.
type Worker struct {
	engine  ReservationEngine
	replies messaging.ReplySender
	logger  *zap.Logger
}

// NewWorker wires a reservation engine to the bus.
func NewWorker(engine ReservationEngine, replies messaging.ReplySender, logger *zap.Logger) *Worker {
	return &Worker{engine: engine, replies: replies, logger: logger}
}

// Run consumes the building's inbox until the context is canceled.
func (w *Worker) Run(ctx context.Context, opt asynq.RedisClientOpt, concurrency int) error {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			messaging.BuildingQueue(w.engine.Name()): 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(messaging.TaskBook, w.handleBook)
	mux.HandleFunc(messaging.TaskConfirm, w.handleConfirm)
	mux.HandleFunc(messaging.TaskCancel, w.handleCancel)

	if err := srv.Start(mux); err != nil {
		return err
	}
	w.logger.Info("listening on building inbox",
		zap.String("queue", messaging.BuildingQueue(w.engine.Name())),
	)

	<-ctx.Done()
	srv.Shutdown()
	return nil
}

func (w *Worker) handleBook(ctx context.Context, task *asynq.Task) error {
	env, ok := w.decode(task)
	if !ok {
		return nil
	}
	intent, err := messaging.DecodeHoldIntent(env)
	if err != nil {
		return w.ackWithError(ctx, env.Sender, err.Error())
	}

	out, err := w.engine.Book(intent)
	if err != nil {
		return w.ackWithError(ctx, env.Sender, err.Error())
	}
	return w.replies.ReplyOutcome(ctx, env.Sender, models.TypeBookRoom, w.engine.Name(), out)
}

func (w *Worker) handleConfirm(ctx context.Context, task *asynq.Task) error {
	env, ok := w.decode(task)
	if !ok {
		return nil
	}
	ref, err := messaging.DecodeReservationRef(env)
	if err != nil {
		return w.ackWithError(ctx, env.Sender, err.Error())
	}

	out, err := w.engine.Confirm(ref)
	if err != nil {
		return w.ackWithError(ctx, env.Sender, err.Error())
	}
	return w.replies.ReplyOutcome(ctx, env.Sender, models.TypeConfirmReservation, w.engine.Name(), out)
}

func (w *Worker) handleCancel(ctx context.Context, task *asynq.Task) error {
	env, ok := w.decode(task)
	if !ok {
		return nil
	}
	ref, err := messaging.DecodeReservationRef(env)
	if err != nil {
		return w.ackWithError(ctx, env.Sender, err.Error())
	}

	out, err := w.engine.Cancel(ref)
	if err != nil {
		return w.ackWithError(ctx, env.Sender, err.Error())
	}
	return w.replies.ReplyOutcome(ctx, env.Sender, models.TypeCancelReservation, w.engine.Name(), out)
}

// decode unwraps the task envelope. A task that cannot be decoded or that
// carries no sender is dropped with an ack: there is nobody to answer, and
// redelivery cannot fix a malformed body.
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

// ackWithError replies ERROR to the client and acknowledges the command.
func (w *Worker) ackWithError(ctx context.Context, clientID, message string) error {
	if err := w.replies.ReplyError(ctx, clientID, w.engine.Name(), message); err != nil {
		w.logger.Warn("error reply failed",
			zap.String("client", clientID),
			zap.Error(err),
		)
	}
	return nil
}
