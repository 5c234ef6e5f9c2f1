package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is the closed set of clothing categories.
type Category string

const (
	CategoryTops        Category = "tops"
	CategoryDresses     Category = "dresses"
	CategoryJackets     Category = "jackets"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
	CategoryBottoms     Category = "bottoms"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryTops, CategoryDresses, CategoryJackets,
		CategoryShoes, CategoryAccessories, CategoryBottoms:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Size is the closed set of clothing sizes.
type Size string

const (
	SizeXS      Size = "XS"
	SizeS       Size = "S"
	SizeM       Size = "M"
	SizeL       Size = "L"
	SizeXL      Size = "XL"
	SizeXXL     Size = "XXL"
	SizeOneSize Size = "One Size"
)

func (s Size) IsValid() bool {
	switch s {
	case SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL, SizeOneSize:
		return true
	}
	return false
}

func (s Size) String() string {
	return string(s)
}

// Condition is the closed set of wear conditions.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
)

func (c Condition) IsValid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair:
		return true
	}
	return false
}

func (c Condition) String() string {
	return string(c)
}

// Item is a clothing listing. Only Status is mutated after creation.
type Item struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Category    Category        `json:"category" db:"category"`
	Size        Size            `json:"size" db:"size"`
	Condition   Condition       `json:"condition" db:"condition"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Tags        []string        `json:"tags" db:"tags"`
	ImageURLs   []string        `json:"image_urls" db:"image_urls"`
	Status      Status          `json:"status" db:"status"`
	UploaderID  uuid.UUID       `json:"uploader_id" db:"uploader_id"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// ValidateStored checks invariants on an item read back from the store.
// A row that fails here is malformed and must not propagate.
func (i *Item) ValidateStored() error {
	switch {
	case i.ID == uuid.Nil:
		return ErrMalformedRecord
	case !i.Category.IsValid() || !i.Size.IsValid() || !i.Condition.IsValid():
		return ErrMalformedRecord
	case !i.Status.IsValid():
		return ErrMalformedRecord
	case len(i.ImageURLs) == 0:
		return ErrMalformedRecord
	case i.Price.IsNegative():
		return ErrMalformedRecord
	case i.UploaderID == uuid.Nil:
		return ErrMalformedRecord
	}
	return nil
}

// ParseTags splits a comma-separated tag string, trimming whitespace and
// discarding empty entries. Order is preserved but not meaningful.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.TrimSpace(p)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
