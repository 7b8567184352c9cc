package models

// HoldIntent is the payload of a BOOK_ROOM command: a request for a new
// provisional hold.
type HoldIntent struct {
	Building string `json:"building"`        // Target building name
	Rooms    int    `json:"rooms"`           // Number of rooms requested, > 0
	Date     string `json:"date"`            // Booking date in "YYYY-MM-DD" format
	Hours    int    `json:"hours"`           // Duration in hours, > 0
	Token    string `json:"token,omitempty"` // Client-minted idempotency token, stable across redelivery
}

// ReservationRef is the payload of CONFIRM_RESERVATION and
// CANCEL_RESERVATION commands: a reference to an existing hold.
type ReservationRef struct {
	Building      string `json:"building"`       // Building that owns the reservation
	ReservationID string `json:"reservation_id"` // Identifier returned by the booking reply
}

// Outcome is the generic reply for booking operations and directory
// requests. ReservationID is set only when the operation references or
// creates a reservation.
type Outcome struct {
	Success       bool   `json:"success"`
	ReservationID string `json:"reservation_id,omitempty"`
	Message       string `json:"message"`
}

// ErrorNotice is the payload of an ERROR reply.
type ErrorNotice struct {
	Message string `json:"message"`
}
