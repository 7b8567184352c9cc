// File: utils/redis.go
package utils

import (
	"context"
	"log"
	"time"

	"conferencerent/config"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// BusClient is the shared Redis client backing the message bus
// (discovery broadcasts and per-client reply channels).
var BusClient *redis.Client

// InitBus initializes the Redis bus client and verifies connectivity.
func InitBus() {
	BusClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisBusDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := BusClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (bus): %v", err)
	}
}

// GetBusClient returns the bus client.
func GetBusClient() *redis.Client {
	if BusClient == nil {
		InitBus()
	}
	return BusClient
}

// AsynqRedisOpt returns the asynq connection options for the same Redis
// instance that carries the bus. Asynq owns the durable queues (shared
// agent inbox and per-building inboxes).
func AsynqRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisBusDB,
	}
}

// IsProductionEnv reports whether the process runs with ENV=production.
func IsProductionEnv() bool {
	return config.IsProduction()
}
