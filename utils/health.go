package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// HealthStatus represents the current status of the message bus connection.
type HealthStatus struct {
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic bus health checks and updates
// in-memory state. State transitions are logged; steady state is not.
func StartHealthMonitor(ctx context.Context, client *redis.Client, logger *zap.Logger) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		wasHealthy := true
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			healthy := client.Ping(ctx).Err() == nil

			healthMu.Lock()
			currentHealth = HealthStatus{Redis: healthy, CheckedAt: time.Now()}
			healthMu.Unlock()

			if healthy != wasHealthy {
				if healthy {
					logger.Info("message bus connection restored")
				} else {
					logger.Warn("message bus connection lost")
				}
				wasHealthy = healthy
			}
		}
	}()
}
