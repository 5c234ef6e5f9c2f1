// Package catalog filters and sorts listing snapshots for the browse
// view. It is pure computation over its inputs: no I/O, safe for
// concurrent callers.
package catalog

import (
	"sort"
	"strings"

	"rewear-backend/internal/domains/item/model"
)

// FacetAll is the sentinel meaning "do not filter on this facet".
const FacetAll = "all"

// SortKey selects the catalog ordering.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
)

func (s SortKey) IsValid() bool {
	switch s {
	case SortNewest, SortOldest, SortPriceLow, SortPriceHigh:
		return true
	}
	return false
}

// Query is one browse configuration. Zero value means "everything,
// newest first" once normalized.
type Query struct {
	SearchTerm string
	Category   string
	Size       string
	Condition  string
	SortBy     SortKey
}

// Normalize fills defaults: empty facets become FacetAll and a missing
// or unknown sort key falls back to newest.
func (q Query) Normalize() Query {
	if q.Category == "" {
		q.Category = FacetAll
	}
	if q.Size == "" {
		q.Size = FacetAll
	}
	if q.Condition == "" {
		q.Condition = FacetAll
	}
	if !q.SortBy.IsValid() {
		q.SortBy = SortNewest
	}
	return q
}

// CacheKey returns a stable cache key for this query configuration.
func (q Query) CacheKey() string {
	q = q.Normalize()
	return strings.Join([]string{
		"items:list",
		strings.ToLower(q.SearchTerm),
		q.Category,
		q.Size,
		q.Condition,
		string(q.SortBy),
	}, ":")
}

// Apply runs the filter-then-sort pipeline over the unfiltered
// snapshot and returns a new slice. Each predicate is independent and
// AND-ed, so application order does not affect the result. The sort is
// stable: items with equal keys keep the snapshot's ordering.
func Apply(items []model.Item, q Query) []model.Item {
	q = q.Normalize()

	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if !matchesSearch(it, q.SearchTerm) {
			continue
		}
		if q.Category != FacetAll && it.Category.String() != q.Category {
			continue
		}
		if q.Size != FacetAll && it.Size.String() != q.Size {
			continue
		}
		if q.Condition != FacetAll && it.Condition.String() != q.Condition {
			continue
		}
		out = append(out, it)
	}

	sortItems(out, q.SortBy)
	return out
}

// matchesSearch does a case-insensitive substring match against title or
// category. An empty term matches everything.
func matchesSearch(it model.Item, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(it.Title), term) ||
		strings.Contains(strings.ToLower(it.Category.String()), term)
}

func sortItems(items []model.Item, key SortKey) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price.LessThan(items[j].Price)
		})
	case SortPriceHigh:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price.GreaterThan(items[j].Price)
		})
	case SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		})
	default: // newest
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}
