package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"rewear-backend/internal/shared"
)

// ObjectRemover is the slice of the image store the cleanup worker
// needs.
type ObjectRemover interface {
	RemoveObjects(ctx context.Context, keys []string) error
}

// CleanupImagesHandler reclaims listing images orphaned by a creation
// that failed after some uploads had already succeeded.
type CleanupImagesHandler struct {
	store ObjectRemover
}

func NewCleanupImagesHandler(store ObjectRemover) *CleanupImagesHandler {
	return &CleanupImagesHandler{store: store}
}

// ProcessTask deletes the orphaned objects. Returning an error lets
// asynq retry the sweep.
func (h *CleanupImagesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CleanupImagesPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal CleanupImages payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	if len(payload.Keys) == 0 {
		return nil
	}

	log.Info().
		Int("keys", len(payload.Keys)).
		Str("reason", payload.Reason).
		Msg("Reclaiming orphaned listing images")

	if err := h.store.RemoveObjects(ctx, payload.Keys); err != nil {
		log.Error().
			Err(err).
			Int("keys", len(payload.Keys)).
			Msg("Failed to reclaim orphaned images")
		return fmt.Errorf("remove objects: %w", err)
	}

	return nil
}
