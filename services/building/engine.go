package building

import (
	"fmt"
	"sync"
	"time"

	"conferencerent/models"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// DefaultReservationEngine implements ReservationEngine. All state is
// process-local: records live exactly as long as the building process.
// Canceled reservations are kept, never deleted, so repeated cancels and
// confirms of dead ids answer idempotently.
type DefaultReservationEngine struct {
	name   string
	ledger *CapacityLedger
	logger *zap.Logger

	mu      sync.Mutex
	records map[string]*models.Reservation
	status  map[string]models.ReservationStatus
	tokens  map[string]string // booking idempotency token -> reservation id
}

// NewReservationEngine creates the engine for one building.
func NewReservationEngine(name string, capacityPerDay int, logger *zap.Logger) *DefaultReservationEngine {
	return &DefaultReservationEngine{
		name:    name,
		ledger:  NewCapacityLedger(capacityPerDay),
		logger:  logger,
		records: make(map[string]*models.Reservation),
		status:  make(map[string]models.ReservationStatus),
		tokens:  make(map[string]string),
	}
}

// Name returns the building this engine serves.
func (e *DefaultReservationEngine) Name() string {
	return e.name
}

// Ledger exposes the capacity ledger, mainly for observability.
func (e *DefaultReservationEngine) Ledger() *CapacityLedger {
	return e.ledger
}

// Book validates a hold intent, applies the atomic capacity guard and, on
// success, mints a PENDING reservation. A replayed intent (same idempotency
// token, e.g. after redelivery of a command whose first attempt was never
// acknowledged) returns the originally minted reservation without touching
// the ledger again.
func (e *DefaultReservationEngine) Book(intent models.HoldIntent) (models.Outcome, error) {
	if intent.Building != e.name {
		return models.Outcome{}, fmt.Errorf("wrong building: expected %s but got %s", e.name, intent.Building)
	}
	if intent.Rooms <= 0 || intent.Hours <= 0 {
		return models.Outcome{}, fmt.Errorf("rooms and hours must be > 0")
	}
	if _, err := time.Parse(dateLayout, intent.Date); err != nil {
		return models.Outcome{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", intent.Date)
	}
	if intent.Token == "" {
		return models.Outcome{}, fmt.Errorf("missing idempotency token for booking")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if id, seen := e.tokens[intent.Token]; seen {
		e.logger.Info("duplicate booking collapsed",
			zap.String("reservation_id", id),
			zap.String("token", intent.Token),
		)
		return holdCreated(id), nil
	}

	if _, ok := e.ledger.Reserve(intent.Date, intent.Rooms); !ok {
		return models.Outcome{
			Success: false,
			Message: fmt.Sprintf("No availability on %s (requested %d, capacity %d)",
				intent.Date, intent.Rooms, e.ledger.Capacity()),
		}, nil
	}

	r := models.NewReservation(intent.Building, intent.Rooms, intent.Date, intent.Hours)
	e.records[r.ID] = r
	e.status[r.ID] = models.StatusPending
	e.tokens[intent.Token] = r.ID

	e.logger.Info("hold created",
		zap.String("reservation_id", r.ID),
		zap.String("date", r.Date),
		zap.Int("rooms", r.Rooms),
	)
	return holdCreated(r.ID), nil
}

// Confirm transitions PENDING → CONFIRMED. Confirming an already confirmed
// reservation succeeds without a state change; confirming a canceled one is
// an error — there is no resurrection out of CANCELED.
func (e *DefaultReservationEngine) Confirm(ref models.ReservationRef) (models.Outcome, error) {
	if ref.Building != e.name {
		return models.Outcome{}, fmt.Errorf("wrong building: expected %s but got %s", e.name, ref.Building)
	}
	if ref.ReservationID == "" {
		return models.Outcome{}, fmt.Errorf("missing reservation id for confirm")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, found := e.records[ref.ReservationID]; !found {
		return models.Outcome{}, fmt.Errorf("unknown reservation: %s", ref.ReservationID)
	}

	switch e.status[ref.ReservationID] {
	case models.StatusConfirmed:
		return models.Outcome{Success: true, ReservationID: ref.ReservationID, Message: "Already confirmed"}, nil
	case models.StatusCanceled:
		return models.Outcome{}, fmt.Errorf("reservation already canceled: %s", ref.ReservationID)
	}

	e.status[ref.ReservationID] = models.StatusConfirmed
	e.logger.Info("reservation confirmed", zap.String("reservation_id", ref.ReservationID))
	return models.Outcome{Success: true, ReservationID: ref.ReservationID, Message: "Confirmed"}, nil
}

// Cancel transitions to CANCELED and releases the held rooms exactly once.
// An unknown id is a soft failure rather than an error: cancellation is
// safe to retry against state the caller no longer remembers. Canceling an
// already canceled reservation succeeds idempotently.
func (e *DefaultReservationEngine) Cancel(ref models.ReservationRef) (models.Outcome, error) {
	if ref.Building != e.name {
		return models.Outcome{}, fmt.Errorf("wrong building: expected %s but got %s", e.name, ref.Building)
	}
	if ref.ReservationID == "" {
		return models.Outcome{}, fmt.Errorf("missing reservation id for cancel")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	r, found := e.records[ref.ReservationID]
	if !found {
		return models.Outcome{
			Success:       false,
			ReservationID: ref.ReservationID,
			Message:       "Not found (already canceled or never existed)",
		}, nil
	}

	if e.status[ref.ReservationID] == models.StatusCanceled {
		return models.Outcome{Success: true, ReservationID: ref.ReservationID, Message: "Already canceled"}, nil
	}

	e.cancelLocked(r)
	e.logger.Info("reservation canceled", zap.String("reservation_id", r.ID))
	return models.Outcome{Success: true, ReservationID: r.ID, Message: "Canceled"}, nil
}

// ReapExpired forces abandoned holds through the cancel transition. A hold
// is abandoned when it is still PENDING after maxAge.
func (e *DefaultReservationEngine) ReapExpired(maxAge time.Duration) int {
	now := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	reaped := 0
	for id, r := range e.records {
		if e.status[id] != models.StatusPending {
			continue
		}
		if now.Sub(r.CreatedAt) <= maxAge {
			continue
		}
		e.cancelLocked(r)
		reaped++
		e.logger.Info("expired hold reaped",
			zap.String("reservation_id", id),
			zap.String("date", r.Date),
			zap.Int("rooms", r.Rooms),
		)
	}
	return reaped
}

// cancelLocked applies the cancel transition. Caller holds e.mu and has
// verified the reservation is not already canceled.
func (e *DefaultReservationEngine) cancelLocked(r *models.Reservation) {
	e.status[r.ID] = models.StatusCanceled
	e.ledger.Release(r.Date, r.Rooms)
}

func holdCreated(id string) models.Outcome {
	return models.Outcome{
		Success:       true,
		ReservationID: id,
		Message:       "Provisional hold created; please confirm",
	}
}
