package building

import (
	"time"

	"conferencerent/models"
)

// ReservationEngine owns all authoritative state for one building: the
// capacity ledger and the reservation records. Methods return an Outcome
// for normal protocol replies (including failed bookings and soft cancel
// misses) and an error for conditions that must surface as an ERROR reply
// to the client (validation failures, wrong building, unknown id on
// confirm). Engine errors never indicate partial state changes.
type ReservationEngine interface {
	Book(intent models.HoldIntent) (models.Outcome, error)
	Confirm(ref models.ReservationRef) (models.Outcome, error)
	Cancel(ref models.ReservationRef) (models.Outcome, error)

	// ReapExpired cancels PENDING holds older than maxAge, releasing their
	// capacity, and returns how many were reaped.
	ReapExpired(maxAge time.Duration) int

	// Name returns the building this engine is authoritative for.
	Name() string
}
