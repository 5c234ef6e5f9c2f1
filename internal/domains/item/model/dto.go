package model

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemRequest carries the scalar fields of a new listing. Image
// files travel alongside it as an ImageFile batch; the authenticated
// uploader comes from the session, never from the client payload.
type CreateItemRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Size        string          `json:"size"`
	Condition   string          `json:"condition"`
	Price       decimal.Decimal `json:"price"`
	Tags        string          `json:"tags"` // comma-separated, optional
}

// Validate fails fast on client-input errors before any network work.
func (r CreateItemRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
			validation.Length(1, 5000),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.By(enumRule("category", func(v string) bool { return Category(v).IsValid() })),
		),
		validation.Field(&r.Size,
			validation.Required.Error("size is required"),
			validation.By(enumRule("size", func(v string) bool { return Size(v).IsValid() })),
		),
		validation.Field(&r.Condition,
			validation.Required.Error("condition is required"),
			validation.By(enumRule("condition", func(v string) bool { return Condition(v).IsValid() })),
		),
		validation.Field(&r.Price,
			validation.By(func(value interface{}) error {
				price, _ := value.(decimal.Decimal)
				if !price.IsPositive() {
					return fmt.Errorf("must be greater than zero")
				}
				return nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func enumRule(name string, valid func(string) bool) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil // Required rule reports the empty case
		}
		if !valid(s) {
			return fmt.Errorf("is not a valid %s", name)
		}
		return nil
	}
}

// ImageFile is one raw image in a creation batch.
type ImageFile struct {
	Data        []byte
	ContentType string
}

// ItemResponse is the API shape of a listing.
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Size        string          `json:"size"`
	Condition   string          `json:"condition"`
	Price       decimal.Decimal `json:"price"`
	Tags        []string        `json:"tags"`
	ImageURLs   []string        `json:"image_urls"`
	Status      string          `json:"status"`
	UploaderID  uuid.UUID       `json:"uploader_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ToItemResponse(it Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Category:    it.Category.String(),
		Size:        it.Size.String(),
		Condition:   it.Condition.String(),
		Price:       it.Price,
		Tags:        it.Tags,
		ImageURLs:   it.ImageURLs,
		Status:      it.Status.String(),
		UploaderID:  it.UploaderID,
		CreatedAt:   it.CreatedAt,
	}
}

func ToItemResponses(items []Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = ToItemResponse(it)
	}
	return out
}
