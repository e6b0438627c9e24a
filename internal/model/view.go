package model

// ViewMode selects how the current page of products is laid out.
type ViewMode string

const (
	ViewCard ViewMode = "card"
	ViewList ViewMode = "list"
)

// Valid reports whether m is a known layout.
func (m ViewMode) Valid() bool {
	return m == ViewCard || m == ViewList
}

// Summary aggregates inventory totals over a product collection.
type Summary struct {
	TotalProducts int     `json:"totalProducts"`
	TotalStock    int     `json:"totalStock"`
	TotalValue    float64 `json:"totalValue"`
	LowStockCount int     `json:"lowStockCount"`
}

// DashboardView is a read-only snapshot of everything the dashboard shows.
type DashboardView struct {
	Loading         bool           `json:"loading"`
	Items           []Product      `json:"items"`
	Page            int            `json:"page"`
	TotalPages      int            `json:"totalPages"`
	TotalItems      int            `json:"totalItems"`
	PageSize        int            `json:"pageSize"`
	Summary         Summary        `json:"summary"`
	Categories      []string       `json:"categories"`
	Search          string         `json:"search"`
	EffectiveSearch string         `json:"effectiveSearch"`
	Category        string         `json:"category"`
	Sort            string         `json:"sort"`
	ViewMode        ViewMode       `json:"viewMode"`
	EditingID       string         `json:"editingId,omitempty"`
	Notifications   []Notification `json:"notifications"`
}
