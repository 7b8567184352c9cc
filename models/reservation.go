package models

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus tracks a reservation through its lifecycle.
type ReservationStatus string

const (
	// StatusPending is the initial state after booking: the rooms are held
	// but not finalized, and the hold expires if never confirmed.
	StatusPending ReservationStatus = "PENDING"
	// StatusConfirmed means the reservation is active.
	StatusConfirmed ReservationStatus = "CONFIRMED"
	// StatusCanceled is terminal. Capacity has been released.
	StatusCanceled ReservationStatus = "CANCELED"
)

// Reservation is a room reservation owned exclusively by the building
// engine that created it.
type Reservation struct {
	ID        string    `json:"id"`         // Unique reservation identifier
	Building  string    `json:"building"`   // Building the rooms belong to
	Rooms     int       `json:"rooms"`      // Number of rooms held
	Date      string    `json:"date"`       // Reservation date in "YYYY-MM-DD" format
	Hours     int       `json:"hours"`      // Duration in hours
	CreatedAt time.Time `json:"created_at"` // Timestamp when the hold was created
}

// NewReservation creates a reservation with a freshly minted unique id.
func NewReservation(building string, rooms int, date string, hours int) *Reservation {
	return &Reservation{
		ID:        uuid.NewString(),
		Building:  building,
		Rooms:     rooms,
		Date:      date,
		Hours:     hours,
		CreatedAt: time.Now(),
	}
}
