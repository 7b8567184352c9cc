package messaging

import (
	"testing"

	"conferencerent/models"

	"github.com/stretchr/testify/assert"
)

func TestTaskTypeFor(t *testing.T) {
	for _, msgType := range []models.MessageType{
		models.TypeRequestBuildings,
		models.TypeBookRoom,
		models.TypeConfirmReservation,
		models.TypeCancelReservation,
	} {
		_, ok := TaskTypeFor(msgType)
		assert.True(t, ok, "%s is a client command", msgType)
	}

	_, ok := TaskTypeFor(models.TypeError)
	assert.False(t, ok, "replies are never enqueued as commands")
	_, ok = TaskTypeFor(models.TypeResponseBuildings)
	assert.False(t, ok)
}

func TestQueueAndChannelNames(t *testing.T) {
	assert.Equal(t, "building.BuildingA", BuildingQueue("BuildingA"))
	assert.Equal(t, "cr:reply:Client1", ReplyChannel("Client1"))
}
