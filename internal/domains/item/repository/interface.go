package repository

import (
	"context"

	"github.com/google/uuid"

	"rewear-backend/internal/domains/item/model"
)

// ItemRepository is the persistence collaborator for listings.
type ItemRepository interface {
	// Insert persists a new item and returns it with the
	// server-assigned id and creation timestamp.
	Insert(ctx context.Context, item *model.Item) (*model.Item, error)

	// GetByID returns model.ErrItemNotFound for unknown ids.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error)

	// ListByStatus returns the snapshot of items in the given lifecycle
	// state, newest first.
	ListByStatus(ctx context.Context, status model.Status) ([]model.Item, error)

	// ListByUploader returns every listing created by one user,
	// newest first.
	ListByUploader(ctx context.Context, uploaderID uuid.UUID) ([]model.Item, error)

	// UpdateStatus writes the status field unconditionally
	// (last-write-wins). Returns model.ErrItemNotFound when no row
	// matches.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error
}
