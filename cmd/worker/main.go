package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/petportal/booking-api/internal/config"
	"github.com/petportal/booking-api/internal/repository/postgres"
	"github.com/petportal/booking-api/pkg/messaging/redis"
	"github.com/petportal/booking-api/pkg/metrics"
	"github.com/petportal/booking-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	logger := log.Logger
	broker, err := redis.NewRedisBroker(cfg.Redis, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(postgres.NewBaseRepository(db))
	m := metrics.NewMetrics("petportal_worker")

	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.DefaultOutboxProcessorConfig(), m)

	ctx, cancel := context.WithCancel(context.Background())
	go processor.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cancel()

	log.Info().Msg("worker exited properly")
}
