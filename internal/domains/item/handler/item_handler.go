package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rewear-backend/internal/domains/item/catalog"
	"rewear-backend/internal/domains/item/model"
	"rewear-backend/internal/domains/item/service"
	"rewear-backend/internal/shared/middleware"
	"rewear-backend/internal/shared/response"
	"rewear-backend/pkg/logger"
)

// maxBatchBytes caps the whole multipart creation request.
const maxBatchBytes = 32 << 20

type ItemHandler struct {
	service service.ItemService
}

func NewItemHandler(svc service.ItemService) *ItemHandler {
	return &ItemHandler{service: svc}
}

// Create handles POST /items. The listing fields and image files arrive
// as one multipart form; the uploader is the authenticated actor.
func (h *ItemHandler) Create(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBatchBytes)
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "invalid multipart form: "+err.Error())
		return
	}

	price := decimal.Zero
	if raw := formValue(form.Value, "price"); raw != "" {
		price, err = decimal.NewFromString(raw)
		if err != nil {
			response.BadRequest(c, "price must be a number")
			return
		}
	}

	req := model.CreateItemRequest{
		Title:       formValue(form.Value, "title"),
		Description: formValue(form.Value, "description"),
		Category:    formValue(form.Value, "category"),
		Size:        formValue(form.Value, "size"),
		Condition:   formValue(form.Value, "condition"),
		Price:       price,
		Tags:        formValue(form.Value, "tags"),
	}

	files, err := readImageFiles(form.File["images"])
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), actorID, req, files)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, item)
}

// List handles GET /items with search/facet/sort query params.
func (h *ItemHandler) List(c *gin.Context) {
	q := catalog.Query{
		SearchTerm: c.Query("search"),
		Category:   c.Query("category"),
		Size:       c.Query("size"),
		Condition:  c.Query("condition"),
		SortBy:     catalog.SortKey(c.Query("sort")),
	}

	items, err := h.service.ListCatalog(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{Total: len(items)})
}

// GetByID handles GET /items/:id.
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}

// ListMine handles GET /items/mine: the actor's own listings.
func (h *ItemHandler) ListMine(c *gin.Context) {
	actorID := middleware.UserIDFromContext(c)

	items, err := h.service.ListByUploader(c.Request.Context(), actorID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{Total: len(items)})
}

// RequestSwap handles POST /items/:id/swap-request.
func (h *ItemHandler) RequestSwap(c *gin.Context) {
	h.transition(c, h.service.RequestSwap)
}

// Redeem handles POST /items/:id/redeem.
func (h *ItemHandler) Redeem(c *gin.Context) {
	h.transition(c, h.service.RedeemWithPoints)
}

func (h *ItemHandler) transition(c *gin.Context, op func(ctx context.Context, itemID, actorID uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	actorID := middleware.UserIDFromContext(c)
	if err := op(c.Request.Context(), id, actorID); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func formValue(values map[string][]string, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}

// readImageFiles loads the multipart image parts into memory in their
// submitted order.
func readImageFiles(headers []*multipart.FileHeader) ([]model.ImageFile, error) {
	files := make([]model.ImageFile, 0, len(headers))
	for i, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("cannot open image %d: %w", i+1, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("cannot read image %d: %w", i+1, err)
		}
		files = append(files, model.ImageFile{
			Data:        data,
			ContentType: fh.Header.Get("Content-Type"),
		})
	}
	return files, nil
}

func (h *ItemHandler) writeError(c *gin.Context, err error) {
	status := model.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("item handler error", err)
	}

	code := "BAD_REQUEST"
	switch status {
	case http.StatusNotFound:
		code = "NOT_FOUND"
	case http.StatusUnauthorized:
		code = "UNAUTHORIZED"
	case http.StatusBadGateway:
		code = "UPLOAD_FAILED"
	case http.StatusInternalServerError:
		code = "INTERNAL_SERVER_ERROR"
	}

	msg := err.Error()
	if errors.Is(err, model.ErrPersistence) {
		// Do not leak store internals to clients.
		msg = "persistence failure"
	}
	response.ErrorResponse(c, status, code, msg)
}
