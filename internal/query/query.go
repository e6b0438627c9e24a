// Package query derives the visible page of products: search, category
// filter, sort and page slice, always in that order.
package query

import (
	"sort"
	"strings"

	"product-dashboard/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of the filtered collection.
type SortKey string

const (
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortStockAsc  SortKey = "stock-asc"
)

// DefaultSort is applied before the user picks an ordering.
const DefaultSort = SortNameAsc

// DefaultPageSize is the number of products per page.
const DefaultPageSize = 9

// Known reports whether k is one of the supported orderings.
func (k SortKey) Known() bool {
	switch k {
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc, SortStockAsc:
		return true
	}
	return false
}

// Params describes one pipeline run.
type Params struct {
	Search   string
	Category string
	Sort     SortKey
	Page     int
	PageSize int
}

// Result is the visible slice plus the counts needed to render pagination.
type Result struct {
	Items      []model.Product
	Matched    []model.Product
	TotalItems int
	TotalPages int
	Page       int
}

// Run filters and sorts products, clamps the requested page into range and
// slices it out.
func Run(products []model.Product, p Params) Result {
	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	matched := SortProducts(FilterProducts(products, p.Search, p.Category), p.Sort)
	totalPages := TotalPages(len(matched), pageSize)
	page := ClampPage(p.Page, totalPages)

	return Result{
		Items:      Paginate(matched, page, pageSize),
		Matched:    matched,
		TotalItems: len(matched),
		TotalPages: totalPages,
		Page:       page,
	}
}

// FilterProducts keeps products whose name contains the trimmed search term
// (case-insensitive) and whose category equals category. The sentinel
// model.CategoryAll and an empty category match everything. Input order is kept.
func FilterProducts(products []model.Product, search, category string) []model.Product {
	term := strings.ToLower(strings.TrimSpace(search))
	anyCategory := category == "" || category == model.CategoryAll

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		if !anyCategory && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortProducts returns a sorted copy. An unknown key returns the input order.
func SortProducts(products []model.Product, key SortKey) []model.Product {
	out := make([]model.Product, len(products))
	copy(out, products)

	var less func(a, b model.Product) bool
	switch key {
	case SortNameAsc, SortNameDesc:
		c := collate.New(language.English)
		if key == SortNameAsc {
			less = func(a, b model.Product) bool { return c.CompareString(a.Name, b.Name) < 0 }
		} else {
			less = func(a, b model.Product) bool { return c.CompareString(b.Name, a.Name) < 0 }
		}
	case SortPriceAsc:
		less = func(a, b model.Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b model.Product) bool { return a.Price > b.Price }
	case SortStockAsc:
		less = func(a, b model.Product) bool { return a.StockOrZero() < b.StockOrZero() }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Paginate returns the 1-indexed page of size pageSize. Pages outside the
// collection yield an empty slice; no clamping happens here.
func Paginate(products []model.Product, page, pageSize int) []model.Product {
	if page < 1 || pageSize <= 0 {
		return []model.Product{}
	}

	start := (page - 1) * pageSize
	if start >= len(products) {
		return []model.Product{}
	}
	end := min(start+pageSize, len(products))

	out := make([]model.Product, end-start)
	copy(out, products[start:end])
	return out
}

// TotalPages returns ceil(count / pageSize).
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 || count <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// ClampPage forces page into [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	upper := max(1, totalPages)
	if page < 1 {
		return 1
	}
	if page > upper {
		return upper
	}
	return page
}

// Categories lists the distinct categories of the whole collection,
// alphabetically, with model.CategoryAll first.
func Categories(products []model.Product) []string {
	seen := make(map[string]struct{}, len(products))
	unique := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok || p.Category == model.CategoryAll {
			continue
		}
		seen[p.Category] = struct{}{}
		unique = append(unique, p.Category)
	}
	sort.Strings(unique)

	return append([]string{model.CategoryAll}, unique...)
}
