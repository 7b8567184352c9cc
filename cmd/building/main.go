package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"conferencerent/config"
	"conferencerent/messaging"
	"conferencerent/services/building"
	"conferencerent/utils"

	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	name := flag.String("name", config.AppConfig.BuildingName, "building name")
	capacity := flag.Int("capacity", config.AppConfig.CapacityPerDay, "rooms available per day")
	concurrency := flag.Int("concurrency", 10, "inbox handler concurrency")
	flag.Parse()

	logger := utils.ActorLogger("building", *name)
	defer logger.Sync()

	utils.InitBus()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := building.NewReservationEngine(*name, *capacity, logger)
	replies := messaging.NewRedisReplySender(utils.GetBusClient(), logger)

	go building.RunAnnouncer(ctx, utils.GetBusClient(), *name,
		config.AppConfig.AnnounceDelay, config.AppConfig.AnnouncePeriod, logger)
	go building.RunReaper(ctx, engine,
		config.AppConfig.ReaperInterval, config.AppConfig.PendingMaxAge, logger)
	utils.StartHealthMonitor(ctx, utils.GetBusClient(), logger)

	logger.Info("building up", zap.Int("capacity_per_day", *capacity))

	worker := building.NewWorker(engine, replies, logger)
	if err := worker.Run(ctx, utils.AsynqRedisOpt(), *concurrency); err != nil {
		logger.Fatal("building worker failed", zap.Error(err))
	}
	logger.Info("building down")
}
