package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"product-dashboard/internal/analytics"
	"product-dashboard/internal/metrics"
	"product-dashboard/internal/model"
	"product-dashboard/internal/query"
	"product-dashboard/internal/repository"
	"product-dashboard/internal/scheduler"
	"product-dashboard/internal/validation"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/rs/zerolog"
)

const (
	stateLoading = "loading"
	stateReady   = "ready"
	eventLoaded  = "loaded"
)

// DeletePrompt is the question asked before a product is removed.
const DeletePrompt = "Are you sure you want to delete this product?"

const (
	msgAdded      = "Product added successfully"
	msgUpdated    = "Product updated successfully"
	msgDeleted    = "Product deleted successfully"
	msgSaveFailed = "Changes could not be saved and will be lost when the dashboard restarts"
)

// DefaultSearchDebounce is the quiet period before a search term takes effect.
const DefaultSearchDebounce = 500 * time.Millisecond

// Options tunes the controller. A zero PageSize, Clock or NewID selects the
// default; a zero SearchDebounce applies search on the next clock tick.
type Options struct {
	SearchDebounce time.Duration
	PageSize       int
	Clock          clock.Clock
	NewID          func() string
	Metrics        *metrics.Metrics
}

// dashboardService implements DashboardService.
type dashboardService struct {
	repo      repository.ProductRepository
	validator validation.Validator
	metrics   *metrics.Metrics
	newID     func() string
	pageSize  int
	debouncer *scheduler.Debouncer
	lifecycle *fsm.FSM
	logger    zerolog.Logger

	loadMu sync.Mutex

	mu              sync.Mutex
	products        []model.Product
	search          string
	effectiveSearch string
	category        string
	sort            query.SortKey
	page            int
	viewMode        model.ViewMode
	editingID       string
	notifications   []model.Notification
}

// NewDashboardService creates the controller in the loading state.
func NewDashboardService(
	repo repository.ProductRepository,
	validator validation.Validator,
	opts Options,
	logger zerolog.Logger,
) DashboardService {
	if opts.PageSize <= 0 {
		opts.PageSize = query.DefaultPageSize
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.NewID == nil {
		opts.NewID = newTimeOrderedID
	}

	s := &dashboardService{
		repo:      repo,
		validator: validator,
		metrics:   opts.Metrics,
		newID:     opts.NewID,
		pageSize:  opts.PageSize,
		debouncer: scheduler.NewDebouncer(opts.Clock, opts.SearchDebounce),
		logger:    logger.With().Str("service", "dashboard").Logger(),
		category:  model.CategoryAll,
		sort:      query.DefaultSort,
		page:      1,
		viewMode:  model.ViewCard,
	}

	s.lifecycle = fsm.NewFSM(
		stateLoading,
		fsm.Events{
			{Name: eventLoaded, Src: []string{stateLoading}, Dst: stateReady},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				s.logger.Debug().Str("from", e.Src).Str("to", e.Dst).Msg("dashboard state changed")
			},
		},
	)

	return s
}

// newTimeOrderedID returns a UUIDv7: a millisecond timestamp followed by
// random bits.
func newTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *dashboardService) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if !s.lifecycle.Is(stateLoading) {
		s.logger.Debug().Msg("products already loaded")
		return nil
	}

	products, err := s.repo.Load(ctx)
	if err != nil {
		reason := "unreadable"
		if errors.Is(err, repository.ErrCorruptData) {
			reason = "corrupt"
		}
		s.logger.Warn().Err(err).Str("reason", reason).Msg("storage unusable, continuing with seed data")
		s.metrics.RecordLoadFallback(reason)
	}
	if products == nil {
		products = []model.Product{}
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	if err := s.lifecycle.Event(ctx, eventLoaded); err != nil {
		return fmt.Errorf("failed to finish loading: %w", err)
	}

	s.metrics.SetProductCount(len(products))
	s.logger.Info().Int("count", len(products)).Msg("dashboard ready")

	return nil
}

func (s *dashboardService) Loaded() bool {
	return s.lifecycle.Is(stateReady)
}

func (s *dashboardService) View() model.DashboardView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := model.DashboardView{
		Loading:         !s.Loaded(),
		PageSize:        s.pageSize,
		Search:          s.search,
		EffectiveSearch: s.effectiveSearch,
		Category:        s.category,
		Sort:            string(s.sort),
		ViewMode:        s.viewMode,
		EditingID:       s.editingID,
		Notifications:   slices.Clone(s.notifications),
	}
	if view.Notifications == nil {
		view.Notifications = []model.Notification{}
	}

	if view.Loading {
		view.Items = []model.Product{}
		view.Categories = []string{model.CategoryAll}
		view.Page = 1
		return view
	}

	result := query.Run(s.products, s.params())
	s.page = result.Page

	view.Items = model.CloneProducts(result.Items)
	view.Page = result.Page
	view.TotalPages = result.TotalPages
	view.TotalItems = result.TotalItems
	view.Summary = analytics.Analyze(s.products)
	view.Categories = query.Categories(s.products)

	return view
}

// params must be called with s.mu held.
func (s *dashboardService) params() query.Params {
	return query.Params{
		Search:   s.effectiveSearch,
		Category: s.category,
		Sort:     s.sort,
		Page:     s.page,
		PageSize: s.pageSize,
	}
}

func (s *dashboardService) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneProducts(s.products)
}

func (s *dashboardService) Product(id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, model.ErrProductNotFound
	}
	p := s.products[i].Clone()
	return &p, nil
}

func (s *dashboardService) Matching() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.params()
	return model.CloneProducts(query.SortProducts(query.FilterProducts(s.products, p.Search, p.Category), p.Sort))
}

func (s *dashboardService) SetSearch(term string) {
	s.mu.Lock()
	s.search = term
	s.mu.Unlock()

	s.debouncer.Trigger(func() {
		s.applySearch(term)
	})
}

// applySearch makes term effective unless newer input has replaced it.
func (s *dashboardService) applySearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.search != term {
		return
	}
	s.effectiveSearch = strings.TrimSpace(term)
	s.page = 1

	s.logger.Debug().Str("term", s.effectiveSearch).Msg("search applied")
}

func (s *dashboardService) SetCategory(category string) {
	if category == "" {
		category = model.CategoryAll
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.category = category
	s.page = 1
}

func (s *dashboardService) SetSort(key query.SortKey) {
	if !key.Known() {
		s.logger.Warn().Str("sort", string(key)).Msg("unknown sort key, keeping insertion order")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sort = key
	s.page = 1
}

func (s *dashboardService) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
}

func (s *dashboardService) SetViewMode(mode model.ViewMode) error {
	if !mode.Valid() {
		return model.ErrInvalidViewMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewMode = mode
	return nil
}

func (s *dashboardService) AddProduct(ctx context.Context, fields model.FormFields) (*model.Product, model.ValidationErrors, error) {
	if !s.Loaded() {
		return nil, nil, model.ErrNotLoaded
	}

	if errs := s.validator.Validate(fields); !errs.Valid() {
		s.metrics.RecordMutation("add", metrics.ResultInvalid)
		return nil, errs, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := fields.ToProduct(s.uniqueID())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build product: %w", err)
	}

	s.products = append(s.products, product)
	s.persist(ctx, "add")
	s.notify(model.NotificationSuccess, msgAdded)
	s.metrics.RecordMutation("add", metrics.ResultSuccess)

	s.logger.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("product added")

	out := product.Clone()
	return &out, nil, nil
}

func (s *dashboardService) EditProduct(ctx context.Context, id string, fields model.FormFields) (*model.Product, model.ValidationErrors, error) {
	if !s.Loaded() {
		return nil, nil, model.ErrNotLoaded
	}

	if errs := s.validator.Validate(fields); !errs.Valid() {
		s.metrics.RecordMutation("edit", metrics.ResultInvalid)
		return nil, errs, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Warn().Str("product_id", id).Msg("edit of unknown product ignored")
		s.metrics.RecordMutation("edit", metrics.ResultNotFound)
		return nil, nil, model.ErrProductNotFound
	}

	product, err := fields.ToProduct(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build product: %w", err)
	}

	s.products[i] = product
	if s.editingID == id {
		s.editingID = ""
	}
	s.persist(ctx, "edit")
	s.notify(model.NotificationSuccess, msgUpdated)
	s.metrics.RecordMutation("edit", metrics.ResultSuccess)

	s.logger.Info().Str("product_id", id).Msg("product updated")

	out := product.Clone()
	return &out, nil, nil
}

func (s *dashboardService) DeleteProduct(ctx context.Context, id string, confirmer Confirmer) error {
	if !s.Loaded() {
		return model.ErrNotLoaded
	}

	s.mu.Lock()
	found := s.indexOf(id) >= 0
	s.mu.Unlock()

	if !found {
		s.logger.Warn().Str("product_id", id).Msg("delete of unknown product ignored")
		s.metrics.RecordMutation("delete", metrics.ResultNotFound)
		return model.ErrProductNotFound
	}

	// the prompt may block on the user, so it runs without the lock
	if confirmer == nil || !confirmer.Confirm(ctx, DeletePrompt) {
		s.logger.Debug().Str("product_id", id).Msg("delete declined")
		s.metrics.RecordMutation("delete", metrics.ResultDeclined)
		return model.ErrDeleteNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// re-check: another call may have removed it while the prompt was open
	i := s.indexOf(id)
	if i < 0 {
		s.metrics.RecordMutation("delete", metrics.ResultNotFound)
		return model.ErrProductNotFound
	}

	s.products = slices.Delete(s.products, i, i+1)
	if s.editingID == id {
		s.editingID = ""
	}
	s.persist(ctx, "delete")
	s.notify(model.NotificationSuccess, msgDeleted)
	s.metrics.RecordMutation("delete", metrics.ResultSuccess)

	s.logger.Info().Str("product_id", id).Msg("product deleted")

	return nil
}

func (s *dashboardService) BeginEdit(id string) (model.FormFields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.FormFields{}, model.ErrProductNotFound
	}
	s.editingID = id
	return model.FormFromProduct(s.products[i]), nil
}

func (s *dashboardService) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = ""
}

func (s *dashboardService) SubmitForm(ctx context.Context, fields model.FormFields) (*model.Product, bool, model.ValidationErrors, error) {
	s.mu.Lock()
	target := s.editingID
	s.mu.Unlock()

	if target == "" {
		product, invalid, err := s.AddProduct(ctx, fields)
		return product, false, invalid, err
	}
	product, invalid, err := s.EditProduct(ctx, target, fields)
	return product, true, invalid, err
}

func (s *dashboardService) DismissNotification(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.notifications, func(n model.Notification) bool { return n.ID == id })
	if i < 0 {
		return model.ErrNotificationNotFound
	}
	s.notifications = slices.Delete(s.notifications, i, i+1)
	return nil
}

func (s *dashboardService) Close() {
	s.debouncer.Stop()
}

// indexOf must be called with s.mu held.
func (s *dashboardService) indexOf(id string) int {
	return slices.IndexFunc(s.products, func(p model.Product) bool { return p.ID == id })
}

// maxIDAttempts bounds how often a generator that keeps colliding is asked
// before falling back to a random UUID.
const maxIDAttempts = 8

// uniqueID must be called with s.mu held.
func (s *dashboardService) uniqueID() string {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}

	s.logger.Warn().Int("attempts", maxIDAttempts).Msg("id generator kept colliding, using random id")
	for {
		if id := uuid.NewString(); s.indexOf(id) < 0 {
			return id
		}
	}
}

// persist writes the collection after a mutation. A failed write keeps the
// in-memory change and warns the user. Must be called with s.mu held.
func (s *dashboardService) persist(ctx context.Context, operation string) {
	s.metrics.SetProductCount(len(s.products))

	if err := s.repo.Save(ctx, model.CloneProducts(s.products)); err != nil {
		s.logger.Error().Err(err).Str("operation", operation).Msg("failed to persist products")
		s.metrics.RecordPersistenceFailure(operation)
		s.notify(model.NotificationWarning, msgSaveFailed)
	}
}

// notify must be called with s.mu held.
func (s *dashboardService) notify(kind model.NotificationType, message string) {
	s.notifications = append(s.notifications, model.Notification{
		ID:      newTimeOrderedID(),
		Message: message,
		Type:    kind,
	})
}
