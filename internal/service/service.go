package service

import (
	"context"

	"product-dashboard/internal/model"
	"product-dashboard/internal/query"
)

// DashboardService owns the product collection and the dashboard's view state.
type DashboardService interface {
	// Load reads the collection once. Until it completes, mutations fail with
	// model.ErrNotLoaded.
	Load(ctx context.Context) error

	// Loaded reports whether Load has completed.
	Loaded() bool

	// View returns the page the user currently sees plus everything around it.
	View() model.DashboardView

	// Products returns the whole collection in insertion order.
	Products() []model.Product

	// Product returns one product by id.
	Product(id string) (*model.Product, error)

	// Matching returns every product that passes the current filters, sorted.
	Matching() []model.Product

	// SetSearch updates the raw search text. The effective term follows after
	// the debounce delay.
	SetSearch(term string)

	// SetCategory filters by category and returns to page 1.
	SetCategory(category string)

	// SetSort changes the ordering and returns to page 1.
	SetSort(key query.SortKey)

	// SetPage selects a page; it is clamped when the view is computed.
	SetPage(page int)

	// SetViewMode switches between card and list layout.
	SetViewMode(mode model.ViewMode) error

	// AddProduct validates fields and appends a new product. Field errors are
	// returned as data with a nil error.
	AddProduct(ctx context.Context, fields model.FormFields) (*model.Product, model.ValidationErrors, error)

	// EditProduct validates fields and replaces the product with id.
	EditProduct(ctx context.Context, id string, fields model.FormFields) (*model.Product, model.ValidationErrors, error)

	// DeleteProduct removes the product with id once confirmer agrees.
	DeleteProduct(ctx context.Context, id string, confirmer Confirmer) error

	// BeginEdit marks id as the form target and returns its pre-filled fields.
	BeginEdit(id string) (model.FormFields, error)

	// CancelEdit clears the form target.
	CancelEdit()

	// SubmitForm edits the current target, or adds a product when there is none.
	// edited reports which of the two it did.
	SubmitForm(ctx context.Context, fields model.FormFields) (product *model.Product, edited bool, invalid model.ValidationErrors, err error)

	// DismissNotification removes a notification from the queue.
	DismissNotification(id string) error

	// Close cancels any pending debounced search.
	Close()
}

// Confirmer gates destructive actions behind a yes/no answer.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// StaticConfirmer answers every prompt the same way.
type StaticConfirmer bool

// Confirm returns the fixed answer.
func (c StaticConfirmer) Confirm(context.Context, string) bool {
	return bool(c)
}
