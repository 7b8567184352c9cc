package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnounceReachesEverySubscriber(t *testing.T) {
	rdb := setupBus(t)
	ctx := context.Background()

	// Two agents, both subscribed to the same fan-out channel.
	first, err := ListenAnnouncements(ctx, rdb)
	require.NoError(t, err)
	defer first.Close()
	second, err := ListenAnnouncements(ctx, rdb)
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, Announce(ctx, rdb, "BuildingA"))

	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	name, err := first.Next(waitCtx)
	require.NoError(t, err)
	assert.Equal(t, "BuildingA", name)

	name, err = second.Next(waitCtx)
	require.NoError(t, err)
	assert.Equal(t, "BuildingA", name)
}

func TestAnnouncementsAreNotReplayed(t *testing.T) {
	rdb := setupBus(t)
	ctx := context.Background()

	// Announce before anyone listens: fan-out has no memory.
	require.NoError(t, Announce(ctx, rdb, "BuildingA"))

	late, err := ListenAnnouncements(ctx, rdb)
	require.NoError(t, err)
	defer late.Close()

	waitCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = late.Next(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
