// Package messaging binds the booking protocol to its Redis-backed bus.
//
// The durable, acknowledged paths (client → agents, agent → building) ride
// on asynq queues: tasks are persisted in Redis, delivered to exactly one
// consumer, acknowledged when the handler returns nil and requeued when it
// returns an error. The deliberately non-durable paths (building discovery
// broadcasts and per-client replies) ride on Redis pub/sub: discovery loss
// heals on the next announce, and a reply is only useful to a live client.
package messaging

import (
	"conferencerent/models"
)

// Queue and channel names.
const (
	// QueueAgents is the shared client → agent work queue. Multiple agent
	// processes consume it; the bus distributes round-robin.
	QueueAgents = "agents"

	// buildingQueuePrefix namespaces the per-building direct-routed queues.
	buildingQueuePrefix = "building."

	// AnnounceChannel is the fan-out pub/sub channel buildings announce on.
	AnnounceChannel = "cr:announce"

	// replyChannelPrefix namespaces per-client private reply channels.
	replyChannelPrefix = "cr:reply:"
)

// Task types carried on the asynq queues, one per client-originated command.
const (
	TaskDirectory = "booking:directory"
	TaskBook      = "booking:book"
	TaskConfirm   = "booking:confirm"
	TaskCancel    = "booking:cancel"
)

// BuildingQueue returns the direct-routed queue name for a building.
func BuildingQueue(building string) string {
	return buildingQueuePrefix + building
}

// ReplyChannel returns the private reply channel name for a client.
func ReplyChannel(clientID string) string {
	return replyChannelPrefix + clientID
}

// TaskTypeFor maps a command message type to its asynq task type.
func TaskTypeFor(t models.MessageType) (string, bool) {
	switch t {
	case models.TypeRequestBuildings:
		return TaskDirectory, true
	case models.TypeBookRoom:
		return TaskBook, true
	case models.TypeConfirmReservation:
		return TaskConfirm, true
	case models.TypeCancelReservation:
		return TaskCancel, true
	default:
		return "", false
	}
}
