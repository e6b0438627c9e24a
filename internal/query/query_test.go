package query

import (
	"fmt"
	"testing"

	"product-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []model.Product {
	return []model.Product{
		{ID: "1", Name: "Wireless Headphones", Price: 79.99, Category: "Electronics", Stock: model.IntPtr(45)},
		{ID: "2", Name: "Laptop Stand", Price: 34.99, Category: "Accessories", Stock: model.IntPtr(120)},
		{ID: "3", Name: "desk lamp", Price: 42.50, Category: "Furniture"},
		{ID: "4", Name: "Smart Watch", Price: 199.99, Category: "Electronics", Stock: model.IntPtr(8)},
		{ID: "5", Name: "Office Chair", Price: 299.99, Category: "Furniture", Stock: model.IntPtr(0)},
	}
}

func ids(products []model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func numbered(n int) []model.Product {
	out := make([]model.Product, n)
	for i := range out {
		out[i] = model.Product{ID: fmt.Sprint(i + 1), Name: fmt.Sprintf("Item %02d", i+1), Price: 1, Category: "C"}
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	products := sampleProducts()

	tests := []struct {
		name     string
		search   string
		category string
		expected []string
	}{
		{name: "Empty search and All is identity", search: "", category: model.CategoryAll, expected: []string{"1", "2", "3", "4", "5"}},
		{name: "Empty category matches everything", search: "", category: "", expected: []string{"1", "2", "3", "4", "5"}},
		{name: "Case insensitive", search: "LAPTOP", category: model.CategoryAll, expected: []string{"2"}},
		{name: "Search is trimmed", search: "  lamp ", category: model.CategoryAll, expected: []string{"3"}},
		{name: "Search ignores category text", search: "electronics", category: model.CategoryAll, expected: []string{}},
		{name: "Category exact match", search: "", category: "Furniture", expected: []string{"3", "5"}},
		{name: "Category is case sensitive", search: "", category: "furniture", expected: []string{}},
		{name: "Search and category combined", search: "a", category: "Electronics", expected: []string{"1", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(FilterProducts(products, tt.search, tt.category)))
		})
	}
}

func TestSortProducts(t *testing.T) {
	products := sampleProducts()

	tests := []struct {
		name     string
		key      SortKey
		expected []string
	}{
		{name: "Name ascending uses collation", key: SortNameAsc, expected: []string{"3", "2", "5", "4", "1"}},
		{name: "Name descending", key: SortNameDesc, expected: []string{"1", "4", "5", "2", "3"}},
		{name: "Price ascending", key: SortPriceAsc, expected: []string{"2", "3", "1", "4", "5"}},
		{name: "Price descending", key: SortPriceDesc, expected: []string{"5", "4", "1", "3", "2"}},
		{name: "Stock ascending treats absent as zero", key: SortStockAsc, expected: []string{"3", "5", "4", "1", "2"}},
		{name: "Unknown key keeps input order", key: SortKey("rating-desc"), expected: []string{"1", "2", "3", "4", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted := SortProducts(products, tt.key)
			assert.Equal(t, tt.expected, ids(sorted))
		})
	}

	// input is never reordered
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(products))
}

func TestSortProducts_PriceMonotonic(t *testing.T) {
	asc := SortProducts(sampleProducts(), SortPriceAsc)
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Price, asc[i].Price)
	}

	desc := SortProducts(sampleProducts(), SortPriceDesc)
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].Price, desc[i].Price)
	}
}

func TestPaginate(t *testing.T) {
	products := numbered(10)

	tests := []struct {
		name     string
		page     int
		expected []string
	}{
		{name: "First page holds nine", page: 1, expected: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}},
		{name: "Second page holds the rest", page: 2, expected: []string{"10"}},
		{name: "Past the end is empty", page: 3, expected: []string{}},
		{name: "Zero page is empty", page: 0, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Paginate(products, tt.page, DefaultPageSize)))
		})
	}
}

func TestTotalPagesAndClamp(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 9))
	assert.Equal(t, 1, TotalPages(9, 9))
	assert.Equal(t, 2, TotalPages(10, 9))

	assert.Equal(t, 1, ClampPage(5, 0))
	assert.Equal(t, 1, ClampPage(-2, 3))
	assert.Equal(t, 3, ClampPage(7, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
}

func TestRun(t *testing.T) {
	products := numbered(20)

	result := Run(products, Params{Search: "item 1", Category: model.CategoryAll, Sort: SortNameDesc, Page: 4})

	// "Item 10".."Item 19" match, the requested page is clamped to the last one
	require.Equal(t, 10, result.TotalItems)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, []string{"10"}, ids(result.Items))
	assert.Equal(t, "19", result.Matched[0].ID)
}

func TestCategories(t *testing.T) {
	products := []model.Product{{Category: "B"}, {Category: "A"}, {Category: "B"}}

	assert.Equal(t, []string{"All", "A", "B"}, Categories(products))
	assert.Equal(t, []string{"All"}, Categories(nil))
}

func TestSortKey_Known(t *testing.T) {
	assert.True(t, SortStockAsc.Known())
	assert.False(t, SortKey("stock-desc").Known())
}
