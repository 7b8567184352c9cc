package models

import "encoding/json"

// MessageType identifies the operation or response carried by an Envelope.
type MessageType string

const (
	// TypeRequestBuildings asks agents for the list of known buildings.
	TypeRequestBuildings MessageType = "REQUEST_BUILDINGS"
	// TypeResponseBuildings carries the building directory back to a client.
	TypeResponseBuildings MessageType = "RESPONSE_BUILDINGS"
	// TypeBookRoom creates a provisional hold. Flow: client → agent → building.
	TypeBookRoom MessageType = "BOOK_ROOM"
	// TypeConfirmReservation finalizes a pending hold. Flow: client → agent → building.
	TypeConfirmReservation MessageType = "CONFIRM_RESERVATION"
	// TypeCancelReservation cancels a pending or confirmed reservation.
	TypeCancelReservation MessageType = "CANCEL_RESERVATION"
	// TypeError is an error response sent from any component to the client.
	TypeError MessageType = "ERROR"
)

// Envelope is the wire message exchanged between actors. Sender is always
// the originating client id, preserved across agent forwarding, so a
// building can reply directly on the client's private channel. The payload
// shape is determined by Type.
type Envelope struct {
	Type    MessageType     `json:"type"`
	Sender  string          `json:"sender"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
