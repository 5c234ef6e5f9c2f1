package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	itemJob "rewear-backend/internal/domains/item/job"
	"rewear-backend/internal/shared"
	"rewear-backend/pkg/container"
	"rewear-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize container")
	}
	defer c.Cleanup()

	logger.Init(c.Config.App.Environment)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"maintenance": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(shared.TypeCleanupImages, itemJob.NewCleanupImagesHandler(c.Storage))

	if err := srv.Start(mux); err != nil {
		log.Fatal().Err(err).Msg("Failed to start worker")
	}

	log.Info().Msg("Worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Worker shutting down...")
	srv.Shutdown()
	log.Info().Msg("Worker stopped")
}
