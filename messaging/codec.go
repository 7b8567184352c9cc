package messaging

import (
	"encoding/json"
	"fmt"

	"conferencerent/models"
)

// EncodeEnvelope serializes an envelope for the wire.
func EncodeEnvelope(env models.Envelope) ([]byte, error) {
	b, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	return b, nil
}

// DecodeEnvelope deserializes a wire message.
func DecodeEnvelope(data []byte) (models.Envelope, error) {
	var env models.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return models.Envelope{}, fmt.Errorf("decoding envelope: %w", err)
	}
	return env, nil
}

// NewEnvelope builds an envelope around the given payload.
func NewEnvelope(t models.MessageType, sender string, payload any) (models.Envelope, error) {
	env := models.Envelope{Type: t, Sender: sender}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return models.Envelope{}, fmt.Errorf("encoding %s payload: %w", t, err)
		}
		env.Payload = b
	}
	return env, nil
}

// DecodeHoldIntent extracts a HoldIntent payload from a BOOK_ROOM envelope.
func DecodeHoldIntent(env models.Envelope) (models.HoldIntent, error) {
	var intent models.HoldIntent
	if len(env.Payload) == 0 {
		return intent, fmt.Errorf("missing payload for %s", env.Type)
	}
	if err := json.Unmarshal(env.Payload, &intent); err != nil {
		return intent, fmt.Errorf("invalid payload for %s: %w", env.Type, err)
	}
	return intent, nil
}

// DecodeReservationRef extracts a ReservationRef payload from a confirm or
// cancel envelope.
func DecodeReservationRef(env models.Envelope) (models.ReservationRef, error) {
	var ref models.ReservationRef
	if len(env.Payload) == 0 {
		return ref, fmt.Errorf("missing payload for %s", env.Type)
	}
	if err := json.Unmarshal(env.Payload, &ref); err != nil {
		return ref, fmt.Errorf("invalid payload for %s: %w", env.Type, err)
	}
	return ref, nil
}

// DecodeOutcome extracts an Outcome payload from a reply envelope.
func DecodeOutcome(env models.Envelope) (models.Outcome, error) {
	var out models.Outcome
	if err := json.Unmarshal(env.Payload, &out); err != nil {
		return out, fmt.Errorf("invalid payload for %s: %w", env.Type, err)
	}
	return out, nil
}

// DecodeErrorNotice extracts an ErrorNotice payload from an ERROR envelope.
func DecodeErrorNotice(env models.Envelope) (models.ErrorNotice, error) {
	var notice models.ErrorNotice
	if err := json.Unmarshal(env.Payload, &notice); err != nil {
		return notice, fmt.Errorf("invalid payload for %s: %w", env.Type, err)
	}
	return notice, nil
}
