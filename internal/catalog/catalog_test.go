package catalog

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devGospel/jetstores/internal/models"
)

func names(products []models.Product) []string {
	var out []string
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestFilterByCategory(t *testing.T) {
	got := Filter(Products, "Wearables", "")
	require.Equal(t, []string{"Smartwatch", "Fitness Tracker"}, names(got))
	for _, p := range got {
		require.Equal(t, "Wearables", p.Category)
	}
}

func TestFilterNoCategoryPassesAll(t *testing.T) {
	got := Filter(Products, "", "")
	require.Len(t, got, len(Products))
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "lowercase substring",
			query: "watch",
			want:  []string{"Smartwatch"},
		},
		{
			name:  "uppercase query",
			query: "USB",
			want:  []string{"USB-C Charger"},
		},
		{
			name:  "mixed case",
			query: "tRaCk",
			want:  []string{"Fitness Tracker"},
		},
		{
			name:  "no match",
			query: "quadcopter",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, names(Filter(Products, "", tt.query)))
		})
	}
}

func TestFilterEmptyQueryYieldsUnfiltered(t *testing.T) {
	require.Equal(t, names(Products), names(Filter(Products, "", "")))
}

func TestSortPriceLowHigh(t *testing.T) {
	got := Sort(Products, SortPriceLowHigh)
	require.True(t, sort.SliceIsSorted(got, func(i, j int) bool {
		return got[i].Price < got[j].Price
	}))
	require.Len(t, got, len(Products))
}

func TestSortPriceHighLow(t *testing.T) {
	got := Sort(Products, SortPriceHighLow)
	for i := 1; i < len(got); i++ {
		require.GreaterOrEqual(t, got[i-1].Price, got[i].Price)
	}
}

func TestSortName(t *testing.T) {
	got := Sort(Products, SortName)
	require.True(t, sort.SliceIsSorted(got, func(i, j int) bool {
		return got[i].Name < got[j].Name
	}))
}

func TestSortDefaultPreservesOrder(t *testing.T) {
	require.Equal(t, names(Products), names(Sort(Products, SortDefault)))
	// Unknown options behave like default.
	require.Equal(t, names(Products), names(Sort(Products, "surprise-me")))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	before := names(Products)
	_ = Sort(Products, SortPriceLowHigh)
	require.Equal(t, before, names(Products))
}

func TestWearablesPriceLowHighExample(t *testing.T) {
	got := Sort(Filter(Products, "Wearables", ""), SortPriceLowHigh)
	require.Equal(t, []string{"Fitness Tracker", "Smartwatch"}, names(got))
	require.InDelta(t, 129.99*1500, got[0].Price, 0.001)
	require.InDelta(t, 199.99*1500, got[1].Price, 0.001)
}

func TestCategoriesFirstOccurrenceOrder(t *testing.T) {
	require.Equal(t, []string{"Electronics", "Wearables", "Accessories"}, Categories(Products))
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{price: 149990000, want: "₦149,990,000.00"},
		{price: 99.99 * 1500, want: "₦149,985.00"},
		{price: 59.99 * 1500, want: "₦89,985.00"},
		{price: 0, want: "₦0.00"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, FormatPrice(tt.price))
	}
}

func TestByID(t *testing.T) {
	p := ByID(2)
	require.NotNil(t, p)
	require.Equal(t, "Smartwatch", p.Name)
	require.Nil(t, ByID(99))
}
