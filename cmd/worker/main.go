package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/gianlucap/transcription-wow/internal/config"
	"github.com/gianlucap/transcription-wow/internal/database"
	"github.com/gianlucap/transcription-wow/internal/history"
	"github.com/gianlucap/transcription-wow/internal/llm"
	"github.com/gianlucap/transcription-wow/internal/queue"
	"github.com/gianlucap/transcription-wow/internal/queue/workers"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The worker only embeds transcripts, so unlike the API it cannot run
	// without the database.
	db, err := database.NewPool(context.Background(), cfg.Database)
	if err != nil {
		slog.Error("database required for worker", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := history.NewStore(db)
	gw := llm.NewGateway(cfg.Summary)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	registry := queue.NewHandlersRegistry()

	embedWorker := workers.NewEmbedWorker(store, gw, cfg.Summary.EmbeddingModel)
	registry.Register(queue.TypeTranscriptEmbed, asynq.HandlerFunc(embedWorker.ProcessTask))

	slog.Info("starting worker", "concurrency", 4)
	if err := srv.Run(registry.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
