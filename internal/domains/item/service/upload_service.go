package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"rewear-backend/internal/domains/item/model"
	"rewear-backend/internal/infrastructure/storage"
	"rewear-backend/pkg/logger"
)

// ImageStore is the slice of the image-hosting collaborator the
// orchestrator needs.
type ImageStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// UploadOrchestrator turns a batch of raw image files into hosted URLs.
type UploadOrchestrator interface {
	// UploadBatch uploads all files concurrently and joins on the full
	// batch. On success the returned URLs and object keys are parallel
	// to the input order. On failure the error is a *model.UploadError
	// identifying the failing index, and the returned keys are the
	// uploads that did succeed (orphans, for the cleanup sweep).
	UploadBatch(ctx context.Context, files []model.ImageFile) ([]string, []string, error)
}

type uploadService struct {
	store     ImageStore
	processor *storage.ImageProcessor
	folder    string
	timeout   time.Duration
}

func NewUploadService(store ImageStore, processor *storage.ImageProcessor, folder string, timeout time.Duration) UploadOrchestrator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &uploadService{
		store:     store,
		processor: processor,
		folder:    folder,
		timeout:   timeout,
	}
}

func (s *uploadService) UploadBatch(ctx context.Context, files []model.ImageFile) ([]string, []string, error) {
	if len(files) == 0 {
		return nil, nil, model.NewValidationError("images", "at least one image is required")
	}

	// Validate every file before any network work.
	for i, f := range files {
		if err := s.processor.ValidateImage(f.Data); err != nil {
			return nil, nil, &model.UploadError{Index: i, Err: err}
		}
	}

	// The submission timestamp plus the batch position makes each
	// object key unique within the batch.
	stamp := time.Now().UnixNano()

	urls := make([]string, len(files))
	keys := make([]string, len(files))
	done := make([]bool, len(files))

	// Fan out one upload per file. Each goroutine owns its result slot,
	// so the join is the only synchronization point. The group context
	// cancels in-flight uploads once any one of them fails.
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			data, contentType, err := s.processor.Normalize(f.Data)
			if err != nil {
				return &model.UploadError{Index: i, Err: err}
			}

			key := fmt.Sprintf("%s/item_%d_%d", s.folder, stamp, i)

			upCtx, cancel := context.WithTimeout(gctx, s.timeout)
			defer cancel()

			url, err := s.store.Upload(upCtx, key, data, contentType)
			if err != nil {
				return &model.UploadError{Index: i, Err: err}
			}

			urls[i] = url
			keys[i] = key
			done[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		orphaned := make([]string, 0, len(files))
		for i := range files {
			if done[i] {
				orphaned = append(orphaned, keys[i])
			}
		}
		logger.Info("image batch upload failed", map[string]interface{}{
			"batch_size": len(files),
			"orphaned":   len(orphaned),
			"error":      err.Error(),
		})
		return nil, orphaned, err
	}

	return urls, keys, nil
}
