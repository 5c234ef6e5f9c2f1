package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"rewear-backend/internal/domains/item/catalog"
	"rewear-backend/internal/domains/item/model"
)

// ItemService is the business surface of the item domain.
type ItemService interface {
	// CreateItem validates, uploads the image batch, and persists a new
	// listing with status=available. On any failure zero items exist.
	CreateItem(ctx context.Context, uploaderID uuid.UUID, req model.CreateItemRequest, files []model.ImageFile) (*model.ItemResponse, error)

	// ListCatalog returns available listings filtered and sorted by the
	// query configuration.
	ListCatalog(ctx context.Context, q catalog.Query) ([]model.ItemResponse, error)

	// GetItem returns one listing regardless of its lifecycle state.
	GetItem(ctx context.Context, id uuid.UUID) (*model.ItemResponse, error)

	// ListByUploader returns the actor's own listings.
	ListByUploader(ctx context.Context, uploaderID uuid.UUID) ([]model.ItemResponse, error)

	// RequestSwap moves an item to pending on behalf of the actor.
	RequestSwap(ctx context.Context, itemID, actorID uuid.UUID) error

	// RedeemWithPoints moves an item to swapped on behalf of the actor.
	RedeemWithPoints(ctx context.Context, itemID, actorID uuid.UUID) error
}

// TaskEnqueuer is the slice of the asynq client the service uses to
// schedule background work.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
