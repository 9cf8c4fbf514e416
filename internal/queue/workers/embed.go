package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/gianlucap/transcription-wow/internal/history"
	"github.com/gianlucap/transcription-wow/internal/llm"
	"github.com/gianlucap/transcription-wow/internal/queue"
)

// EmbedWorker embeds transcript parts in the background so uploads never
// wait on the embedding API.
type EmbedWorker struct {
	store *history.Store
	gw    llm.Gateway
	model string
}

func NewEmbedWorker(store *history.Store, gw llm.Gateway, model string) *EmbedWorker {
	return &EmbedWorker{store: store, gw: gw, model: model}
}

func (w *EmbedWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.TranscriptEmbedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	partID, err := uuid.Parse(payload.PartID)
	if err != nil {
		return fmt.Errorf("parse part ID: %v: %w", err, asynq.SkipRetry)
	}

	transcript, err := w.store.PartTranscript(ctx, partID)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			// Part was deleted between enqueue and processing.
			return fmt.Errorf("part %s gone: %w", partID, asynq.SkipRetry)
		}
		return fmt.Errorf("load transcript: %w", err)
	}
	if transcript == "" {
		slog.Info("skipping empty transcript", "part_id", partID)
		return nil
	}

	resp, err := w.gw.Embed(ctx, llm.EmbeddingRequest{
		Model: w.model,
		Input: []string{transcript},
	})
	if err != nil {
		return fmt.Errorf("embed transcript: %w", err)
	}
	if len(resp.Embeddings) == 0 {
		return fmt.Errorf("embedding response was empty: %w", asynq.SkipRetry)
	}

	if err := w.store.SetPartEmbedding(ctx, partID, resp.Embeddings[0]); err != nil {
		return fmt.Errorf("store embedding: %w", err)
	}

	slog.Info("embedded transcript part", "part_id", partID, "tokens", resp.Tokens)
	return nil
}
