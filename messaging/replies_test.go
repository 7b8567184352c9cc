package messaging

import (
	"context"
	"testing"
	"time"

	"conferencerent/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupBus(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestReplyOutcomeRoundTrip(t *testing.T) {
	rdb := setupBus(t)
	ctx := context.Background()

	listener, err := ListenReplies(ctx, rdb, "Client1")
	require.NoError(t, err)
	defer listener.Close()

	sender := NewRedisReplySender(rdb, zap.NewNop())
	out := models.Outcome{Success: true, ReservationID: "res-1", Message: "Confirmed"}
	require.NoError(t, sender.ReplyOutcome(ctx, "Client1", models.TypeConfirmReservation, "BuildingA", out))

	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	env, err := listener.Next(waitCtx)
	require.NoError(t, err)

	assert.Equal(t, models.TypeConfirmReservation, env.Type)
	assert.Equal(t, "BuildingA", env.Sender)
	got, err := DecodeOutcome(env)
	require.NoError(t, err)
	assert.Equal(t, out, got)
}

func TestReplyErrorRoundTrip(t *testing.T) {
	rdb := setupBus(t)
	ctx := context.Background()

	listener, err := ListenReplies(ctx, rdb, "Client1")
	require.NoError(t, err)
	defer listener.Close()

	sender := NewRedisReplySender(rdb, zap.NewNop())
	require.NoError(t, sender.ReplyError(ctx, "Client1", "Agent1", "Unknown building: Ghost"))

	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	env, err := listener.Next(waitCtx)
	require.NoError(t, err)

	assert.Equal(t, models.TypeError, env.Type)
	notice, err := DecodeErrorNotice(env)
	require.NoError(t, err)
	assert.Equal(t, "Unknown building: Ghost", notice.Message)
}

func TestRepliesAreRoutedByClient(t *testing.T) {
	rdb := setupBus(t)
	ctx := context.Background()

	listener, err := ListenReplies(ctx, rdb, "Client2")
	require.NoError(t, err)
	defer listener.Close()

	sender := NewRedisReplySender(rdb, zap.NewNop())
	require.NoError(t, sender.ReplyError(ctx, "Client1", "Agent1", "not for client two"))

	waitCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = listener.Next(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNextHonorsContextCancellation(t *testing.T) {
	rdb := setupBus(t)
	ctx := context.Background()

	listener, err := ListenReplies(ctx, rdb, "Client1")
	require.NoError(t, err)
	defer listener.Close()

	waitCtx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = listener.Next(waitCtx)
	assert.ErrorIs(t, err, context.Canceled)
}
