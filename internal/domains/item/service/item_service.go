package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"rewear-backend/internal/domains/item/catalog"
	"rewear-backend/internal/domains/item/model"
	"rewear-backend/internal/domains/item/repository"
	"rewear-backend/internal/shared"
	"rewear-backend/pkg/cache"
	"rewear-backend/pkg/logger"
)

const listCacheTTL = time.Hour

type itemService struct {
	repo    repository.ItemRepository
	uploads UploadOrchestrator
	cache   cache.Cache
	queue   TaskEnqueuer
}

func NewItemService(
	repo repository.ItemRepository,
	uploads UploadOrchestrator,
	c cache.Cache,
	queue TaskEnqueuer,
) ItemService {
	return &itemService{
		repo:    repo,
		uploads: uploads,
		cache:   c,
		queue:   queue,
	}
}

func (s *itemService) CreateItem(ctx context.Context, uploaderID uuid.UUID, req model.CreateItemRequest, files []model.ImageFile) (*model.ItemResponse, error) {
	if uploaderID == uuid.Nil {
		return nil, model.ErrUnauthorized
	}

	// Fail fast on client-input errors before any network work.
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, model.NewValidationError("images", "at least one image is required")
	}

	urls, keys, err := s.uploads.UploadBatch(ctx, files)
	if err != nil {
		// Uploads that finished before the batch failed are orphans;
		// hand them to the reclamation sweep.
		s.enqueueCleanup(keys, "upload batch failed")
		return nil, err
	}

	item := &model.Item{
		Title:       req.Title,
		Description: req.Description,
		Category:    model.Category(req.Category),
		Size:        model.Size(req.Size),
		Condition:   model.Condition(req.Condition),
		Price:       req.Price,
		Tags:        model.ParseTags(req.Tags),
		ImageURLs:   urls,
		Status:      model.StatusAvailable,
		UploaderID:  uploaderID,
	}

	created, err := s.repo.Insert(ctx, item)
	if err != nil {
		// The whole batch is now orphaned.
		s.enqueueCleanup(keys, "item insert failed")
		return nil, err
	}

	s.invalidateListCache(ctx)

	resp := model.ToItemResponse(*created)
	return &resp, nil
}

func (s *itemService) ListCatalog(ctx context.Context, q catalog.Query) ([]model.ItemResponse, error) {
	cacheKey := q.CacheKey()

	var cached []model.ItemResponse
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		// A broken cache must not take the catalog down.
		logger.Error("catalog cache read failed", err)
	}
	if found {
		return cached, nil
	}

	// Only available items ever reach the engine; pending/swapped are
	// filtered at the persistence query.
	snapshot, err := s.repo.ListByStatus(ctx, model.StatusAvailable)
	if err != nil {
		return nil, err
	}

	result := model.ToItemResponses(catalog.Apply(snapshot, q))

	if err := s.cache.Set(ctx, cacheKey, result, listCacheTTL); err != nil {
		logger.Error("catalog cache write failed", err)
	}
	return result, nil
}

func (s *itemService) GetItem(ctx context.Context, id uuid.UUID) (*model.ItemResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := model.ToItemResponse(*item)
	return &resp, nil
}

func (s *itemService) ListByUploader(ctx context.Context, uploaderID uuid.UUID) ([]model.ItemResponse, error) {
	if uploaderID == uuid.Nil {
		return nil, model.ErrUnauthorized
	}
	items, err := s.repo.ListByUploader(ctx, uploaderID)
	if err != nil {
		return nil, err
	}
	return model.ToItemResponses(items), nil
}

func (s *itemService) RequestSwap(ctx context.Context, itemID, actorID uuid.UUID) error {
	return s.transition(ctx, itemID, actorID, model.TriggerRequestSwap)
}

func (s *itemService) RedeemWithPoints(ctx context.Context, itemID, actorID uuid.UUID) error {
	return s.transition(ctx, itemID, actorID, model.TriggerRedeemWithPoints)
}

// transition issues a single unconditional status write. A stale client
// can overwrite a non-available item's status; last write wins.
func (s *itemService) transition(ctx context.Context, itemID, actorID uuid.UUID, trigger model.Trigger) error {
	if actorID == uuid.Nil {
		return model.ErrUnauthorized
	}

	target, ok := model.TransitionTarget(trigger)
	if !ok {
		return model.ErrUndefinedTransition
	}

	if err := s.repo.UpdateStatus(ctx, itemID, target); err != nil {
		return err
	}

	logger.Info("item status transition", map[string]interface{}{
		"item_id": itemID.String(),
		"actor":   actorID.String(),
		"trigger": string(trigger),
		"status":  target.String(),
	})

	s.invalidateListCache(ctx)
	return nil
}

// enqueueCleanup schedules best-effort deletion of orphaned images.
// Failure to enqueue only widens the accepted leak, so it is logged and
// swallowed.
func (s *itemService) enqueueCleanup(keys []string, reason string) {
	if s.queue == nil || len(keys) == 0 {
		return
	}

	payload, err := json.Marshal(shared.CleanupImagesPayload{Keys: keys, Reason: reason})
	if err != nil {
		logger.Error("marshal cleanup payload", err)
		return
	}

	task := asynq.NewTask(shared.TypeCleanupImages, payload)
	if _, err := s.queue.Enqueue(task, asynq.MaxRetry(5), asynq.Queue("maintenance")); err != nil {
		logger.Error("enqueue image cleanup", err)
	}
}

func (s *itemService) invalidateListCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "items:list:*"); err != nil {
		logger.Error("catalog cache invalidation failed", err)
	}
}
