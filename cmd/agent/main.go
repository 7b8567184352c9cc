package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"conferencerent/config"
	"conferencerent/messaging"
	"conferencerent/services/agent"
	"conferencerent/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	name := flag.String("name", config.AppConfig.AgentName, "agent name (default: generated)")
	concurrency := flag.Int("concurrency", config.AppConfig.AgentConcurrency, "command handler concurrency")
	flag.Parse()

	if *name == "" {
		*name = "agent-" + uuid.NewString()[:8]
	}

	logger := utils.ActorLogger("agent", *name)
	defer logger.Sync()

	utils.InitBus()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := agent.NewRegistry(logger)
	go func() {
		if err := agent.RunDiscovery(ctx, utils.GetBusClient(), registry, logger); err != nil {
			logger.Fatal("discovery failed", zap.Error(err))
		}
	}()
	utils.StartHealthMonitor(ctx, utils.GetBusClient(), logger)

	publisher := messaging.NewPublisher(utils.AsynqRedisOpt(), logger)
	defer publisher.Close()
	replies := messaging.NewRedisReplySender(utils.GetBusClient(), logger)

	ra := agent.NewRentalAgent(*name, registry, publisher, replies, logger)
	logger.Info("agent up")

	worker := agent.NewWorker(ra, logger)
	if err := worker.Run(ctx, utils.AsynqRedisOpt(), *concurrency); err != nil {
		logger.Fatal("agent worker failed", zap.Error(err))
	}
	logger.Info("agent down")
}
