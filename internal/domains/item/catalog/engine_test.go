package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewear-backend/internal/domains/item/model"
)

func testItem(title string, cat model.Category, size model.Size, cond model.Condition, price int64, createdAt time.Time) model.Item {
	return model.Item{
		ID:          uuid.New(),
		Title:       title,
		Description: "desc",
		Category:    cat,
		Size:        size,
		Condition:   cond,
		Price:       decimal.NewFromInt(price),
		ImageURLs:   []string{"http://img"},
		Status:      model.StatusAvailable,
		UploaderID:  uuid.New(),
		CreatedAt:   createdAt,
	}
}

func testSnapshot() []model.Item {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []model.Item{
		testItem("Vintage Denim Jacket", model.CategoryJackets, model.SizeM, model.ConditionGood, 45, base),
		testItem("Summer Dress", model.CategoryDresses, model.SizeS, model.ConditionExcellent, 25, base.Add(time.Hour)),
		testItem("Leather Boots", model.CategoryShoes, model.SizeL, model.ConditionFair, 80, base.Add(2*time.Hour)),
		testItem("Denim Shorts", model.CategoryBottoms, model.SizeM, model.ConditionGood, 15, base.Add(3*time.Hour)),
	}
}

func titles(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestApplyNoFilters(t *testing.T) {
	got := Apply(testSnapshot(), Query{})

	// Default sort is newest first.
	assert.Equal(t, []string{"Denim Shorts", "Leather Boots", "Summer Dress", "Vintage Denim Jacket"}, titles(got))
}

func TestApplySearchTerm(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"matches title substring", "denim", []string{"Denim Shorts", "Vintage Denim Jacket"}},
		{"case insensitive", "DENIM", []string{"Denim Shorts", "Vintage Denim Jacket"}},
		{"matches category", "shoes", []string{"Leather Boots"}},
		{"empty matches everything", "", []string{"Denim Shorts", "Leather Boots", "Summer Dress", "Vintage Denim Jacket"}},
		{"no match yields empty non-error result", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(testSnapshot(), Query{SearchTerm: tt.term})
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestApplyFacetFilters(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"category facet", Query{Category: "jackets"}, []string{"Vintage Denim Jacket"}},
		{"size facet", Query{Size: "M"}, []string{"Denim Shorts", "Vintage Denim Jacket"}},
		{"condition facet", Query{Condition: "good"}, []string{"Denim Shorts", "Vintage Denim Jacket"}},
		{"facets AND together", Query{Size: "M", Category: "bottoms"}, []string{"Denim Shorts"}},
		{"search AND facet", Query{SearchTerm: "denim", Category: "jackets"}, []string{"Vintage Denim Jacket"}},
		{"all sentinel disables facet", Query{Category: FacetAll, Size: FacetAll, Condition: FacetAll}, []string{"Denim Shorts", "Leather Boots", "Summer Dress", "Vintage Denim Jacket"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(testSnapshot(), tt.q)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

// Relaxing a filter back to "all" must restore items excluded by it, not
// just re-run the remaining filters over the narrowed result.
func TestApplyRelaxingFilterYieldsSuperset(t *testing.T) {
	snapshot := testSnapshot()

	narrow := Apply(snapshot, Query{Size: "M", Category: "bottoms"})
	wide := Apply(snapshot, Query{Size: "M", Category: FacetAll})

	require.NotEmpty(t, narrow)
	for _, it := range narrow {
		assert.Contains(t, titles(wide), it.Title)
	}
	assert.Greater(t, len(wide), len(narrow))
}

func TestApplySorts(t *testing.T) {
	tests := []struct {
		name string
		sort SortKey
		want []string
	}{
		{"price low", SortPriceLow, []string{"Denim Shorts", "Summer Dress", "Vintage Denim Jacket", "Leather Boots"}},
		{"price high", SortPriceHigh, []string{"Leather Boots", "Vintage Denim Jacket", "Summer Dress", "Denim Shorts"}},
		{"newest", SortNewest, []string{"Denim Shorts", "Leather Boots", "Summer Dress", "Vintage Denim Jacket"}},
		{"oldest", SortOldest, []string{"Vintage Denim Jacket", "Summer Dress", "Leather Boots", "Denim Shorts"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(testSnapshot(), Query{SortBy: tt.sort})
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

// With no price ties, price-low and price-high are exact reversals.
func TestApplyPriceSortsAreReversed(t *testing.T) {
	snapshot := testSnapshot()

	low := Apply(snapshot, Query{SortBy: SortPriceLow})
	high := Apply(snapshot, Query{SortBy: SortPriceHigh})

	require.Equal(t, len(low), len(high))
	for i := range low {
		assert.Equal(t, low[i].ID, high[len(high)-1-i].ID)
	}
}

// Stable sort keeps snapshot order for tied keys.
func TestApplySortIsStable(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := testItem("First", model.CategoryTops, model.SizeM, model.ConditionGood, 10, base)
	b := testItem("Second", model.CategoryTops, model.SizeM, model.ConditionGood, 10, base.Add(time.Hour))
	c := testItem("Third", model.CategoryTops, model.SizeM, model.ConditionGood, 10, base.Add(2*time.Hour))

	got := Apply([]model.Item{a, b, c}, Query{SortBy: SortPriceLow})
	assert.Equal(t, []string{"First", "Second", "Third"}, titles(got))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	snapshot := testSnapshot()
	before := titles(snapshot)

	Apply(snapshot, Query{SortBy: SortPriceHigh})

	assert.Equal(t, before, titles(snapshot))
}

func TestApplyUnknownSortFallsBackToNewest(t *testing.T) {
	got := Apply(testSnapshot(), Query{SortBy: "bogus"})
	assert.Equal(t, []string{"Denim Shorts", "Leather Boots", "Summer Dress", "Vintage Denim Jacket"}, titles(got))
}

func TestQueryCacheKey(t *testing.T) {
	q1 := Query{SearchTerm: "Denim", Category: "jackets"}
	q2 := Query{SearchTerm: "denim", Category: "jackets", Size: FacetAll, Condition: FacetAll, SortBy: SortNewest}

	// Normalization makes equivalent queries share a key.
	assert.Equal(t, q1.CacheKey(), q2.CacheKey())

	q3 := Query{SearchTerm: "denim", Category: "tops"}
	assert.NotEqual(t, q1.CacheKey(), q3.CacheKey())
}

// Two available items at prices 45 and 25, everything unfiltered.
// price-low puts 25 first; newest puts the later item first.
func TestApplyPriceAndAgeOrdering(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	older := testItem("Older", model.CategoryTops, model.SizeM, model.ConditionGood, 45, t1)
	newer := testItem("Newer", model.CategoryTops, model.SizeM, model.ConditionGood, 25, t2)
	snapshot := []model.Item{older, newer}

	byPrice := Apply(snapshot, Query{SortBy: SortPriceLow})
	require.Len(t, byPrice, 2)
	assert.Equal(t, int64(25), byPrice[0].Price.IntPart())
	assert.Equal(t, int64(45), byPrice[1].Price.IntPart())

	byNewest := Apply(snapshot, Query{SortBy: SortNewest})
	assert.Equal(t, "Newer", byNewest[0].Title)
	assert.Equal(t, "Older", byNewest[1].Title)
}
