package agent

import (
	"context"
	"fmt"
	"strings"

	"conferencerent/messaging"
	"conferencerent/models"

	"go.uber.org/zap"
)

// RentalAgent validates and routes client commands. It holds no booking
// state of its own — only the discovery registry — and forwards command
// envelopes unmodified so buildings reply straight to the client.
type RentalAgent struct {
	name      string
	registry  *Registry
	forwarder messaging.BuildingForwarder
	replies   messaging.ReplySender
	logger    *zap.Logger
}

// NewRentalAgent wires the agent's collaborators together.
func NewRentalAgent(name string, registry *Registry, forwarder messaging.BuildingForwarder, replies messaging.ReplySender, logger *zap.Logger) *RentalAgent {
	return &RentalAgent{
		name:      name,
		registry:  registry,
		forwarder: forwarder,
		replies:   replies,
		logger:    logger,
	}
}

// Name returns the agent's identity, used to sign synthesized replies.
func (a *RentalAgent) Name() string {
	return a.name
}

// HandleDirectory answers REQUEST_BUILDINGS from the local registry. The
// request is never forwarded to a building.
func (a *RentalAgent) HandleDirectory(ctx context.Context, env models.Envelope) error {
	names := a.registry.Names()
	out := models.Outcome{
		Success: true,
		Message: "[" + strings.Join(names, ", ") + "]",
	}
	return a.replies.ReplyOutcome(ctx, env.Sender, models.TypeResponseBuildings, a.name, out)
}

// HandleCommand validates a booking command and forwards it to the
// addressed building. Validation and routing failures answer ERROR and do
// not forward; forwarding failures are returned to the caller so the
// command is redelivered.
func (a *RentalAgent) HandleCommand(ctx context.Context, env models.Envelope) error {
	building, err := a.validate(env)
	if err != nil {
		return a.ackWithError(ctx, env.Sender, err.Error())
	}

	if !a.registry.Known(building) {
		return a.ackWithError(ctx, env.Sender, fmt.Sprintf("Unknown building: %s", building))
	}

	if err := a.forwarder.ForwardToBuilding(ctx, building, env); err != nil {
		a.logger.Error("forward failed",
			zap.String("building", building),
			zap.String("type", string(env.Type)),
			zap.Error(err),
		)
		if replyErr := a.replies.ReplyError(ctx, env.Sender, a.name, "Internal error at agent"); replyErr != nil {
			a.logger.Warn("error reply failed", zap.Error(replyErr))
		}
		return err
	}

	a.logger.Info("command forwarded",
		zap.String("building", building),
		zap.String("type", string(env.Type)),
		zap.String("client", env.Sender),
	)
	return nil
}

// validate checks that the payload shape matches the declared message type
// and returns the addressed building.
func (a *RentalAgent) validate(env models.Envelope) (string, error) {
	switch env.Type {
	case models.TypeBookRoom:
		intent, err := messaging.DecodeHoldIntent(env)
		if err != nil {
			return "", err
		}
		if intent.Building == "" || intent.Rooms <= 0 || intent.Date == "" || intent.Hours <= 0 {
			return "", fmt.Errorf("missing fields for %s (need building, rooms, date, hours)", env.Type)
		}
		return intent.Building, nil

	case models.TypeConfirmReservation, models.TypeCancelReservation:
		ref, err := messaging.DecodeReservationRef(env)
		if err != nil {
			return "", err
		}
		if ref.Building == "" || ref.ReservationID == "" {
			return "", fmt.Errorf("missing fields for %s (need building, reservation_id)", env.Type)
		}
		return ref.Building, nil

	default:
		return "", fmt.Errorf("unsupported message type: %s", env.Type)
	}
}

// ackWithError replies ERROR to the client and acknowledges the command.
func (a *RentalAgent) ackWithError(ctx context.Context, clientID, message string) error {
	if err := a.replies.ReplyError(ctx, clientID, a.name, message); err != nil {
		a.logger.Warn("error reply failed",
			zap.String("client", clientID),
			zap.Error(err),
		)
	}
	return nil
}
