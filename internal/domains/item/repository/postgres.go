package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rewear-backend/internal/domains/item/model"
	"rewear-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) ItemRepository {
	return &postgresRepository{pool: pool}
}

const itemColumns = `
	id, title, description, category, size, condition,
	price, tags, image_urls, status, uploader_id, created_at`

func (r *postgresRepository) Insert(ctx context.Context, item *model.Item) (*model.Item, error) {
	const query = `
		INSERT INTO items (
			id, title, description, category, size, condition,
			price, tags, image_urls, status, uploader_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		RETURNING ` + itemColumns

	row := r.pool.QueryRow(ctx, query,
		uuid.New(),
		item.Title,
		item.Description,
		item.Category,
		item.Size,
		item.Condition,
		item.Price,
		item.Tags,
		item.ImageURLs,
		item.Status,
		item.UploaderID,
	)

	created, err := scanItem(row)
	if err != nil {
		logger.Error("Insert: database error", err)
		return nil, fmt.Errorf("%w: failed to insert item: %v", model.ErrPersistence, err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		if errors.Is(err, model.ErrMalformedRecord) {
			return nil, err
		}
		logger.Error("GetByID: database error", err)
		return nil, fmt.Errorf("%w: failed to get item: %v", model.ErrPersistence, err)
	}
	return item, nil
}

func (r *postgresRepository) ListByStatus(ctx context.Context, status model.Status) ([]model.Item, error) {
	// id as secondary key keeps tied orderings deterministic.
	const query = `SELECT ` + itemColumns + `
		FROM items WHERE status = $1
		ORDER BY created_at DESC, id`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		logger.Error("ListByStatus: database error", err)
		return nil, fmt.Errorf("%w: failed to list items: %v", model.ErrPersistence, err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func (r *postgresRepository) ListByUploader(ctx context.Context, uploaderID uuid.UUID) ([]model.Item, error) {
	const query = `SELECT ` + itemColumns + `
		FROM items WHERE uploader_id = $1
		ORDER BY created_at DESC, id`

	rows, err := r.pool.Query(ctx, query, uploaderID)
	if err != nil {
		logger.Error("ListByUploader: database error", err)
		return nil, fmt.Errorf("%w: failed to list items: %v", model.ErrPersistence, err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error {
	const query = `UPDATE items SET status = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		logger.Error("UpdateStatus: database error", err)
		return fmt.Errorf("%w: failed to update status: %v", model.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}
	return nil
}

// scanItem deserializes one row and validates it against the item
// schema. Malformed rows surface as model.ErrMalformedRecord instead of
// leaking into the domain.
func scanItem(row pgx.Row) (*model.Item, error) {
	var it model.Item
	err := row.Scan(
		&it.ID,
		&it.Title,
		&it.Description,
		&it.Category,
		&it.Size,
		&it.Condition,
		&it.Price,
		&it.Tags,
		&it.ImageURLs,
		&it.Status,
		&it.UploaderID,
		&it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := it.ValidateStored(); err != nil {
		return nil, fmt.Errorf("item %s: %w", it.ID, err)
	}
	return &it, nil
}

func collectItems(rows pgx.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			if errors.Is(err, model.ErrMalformedRecord) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: failed to scan item: %v", model.ErrPersistence, err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: row iteration failed: %v", model.ErrPersistence, err)
	}
	return items, nil
}
