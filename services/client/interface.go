package client

import (
	"context"

	"conferencerent/models"
)

// BookingAPI defines the operations a ConferenceRent client can perform
// through the distributed system. Replies for booking operations are the
// Outcome sent by the owning building; the building directory is
// synthesized by whichever agent picked up the request.
type BookingAPI interface {
	// RequestBuildingList returns the sorted building directory as text.
	RequestBuildingList(ctx context.Context) (string, error)

	// BookRoom requests a provisional hold on rooms for a date. On success
	// the outcome carries the reservation id to confirm or cancel with.
	BookRoom(ctx context.Context, building string, rooms int, date string, hours int) (models.Outcome, error)

	// ConfirmReservation finalizes a pending hold.
	ConfirmReservation(ctx context.Context, building, reservationID string) (models.Outcome, error)

	// CancelReservation cancels a pending or confirmed reservation.
	CancelReservation(ctx context.Context, building, reservationID string) (models.Outcome, error)

	// Close releases the reply subscription and bus connections.
	Close() error
}
