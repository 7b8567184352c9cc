package agent

import (
	"context"
	"testing"
	"time"

	"conferencerent/messaging"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDiscoveryFeedsRegistry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := NewRegistry(zap.NewNop())
	done := make(chan error, 1)
	go func() {
		done <- RunDiscovery(ctx, rdb, registry, zap.NewNop())
	}()

	// Give the subscription a moment, then announce like a building would.
	require.Eventually(t, func() bool {
		require.NoError(t, messaging.Announce(context.Background(), rdb, "BuildingA"))
		return registry.Known("BuildingA")
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, []string{"BuildingA"}, registry.Names())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err, "discovery exits cleanly on shutdown")
	case <-time.After(2 * time.Second):
		t.Fatal("discovery did not stop on context cancellation")
	}
}
