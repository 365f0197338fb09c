package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domain "github.com/erp/analytics/internal/domain/analytics"
)

// State tracks the engine lifecycle. Transitions are synchronous:
// every mutating call moves through its transient state and settles on
// Ready before returning.
type State string

const (
	StateEmpty     State = "empty"
	StateLoading   State = "loading"
	StateReady     State = "ready"
	StateFiltering State = "filtering"
	StateSorting   State = "sorting"
	StatePaging    State = "paging"
)

// Options configures a new engine. Zero fields fall back to defaults.
type Options struct {
	PageSize      int
	SortKey       domain.SortKey
	SortDirection domain.SortDirection
	// ExcludeUnknownFacet drops the Unknown sentinel from derived
	// facet lists.
	ExcludeUnknownFacet bool
	// Now supplies the clock for the today and week windows.
	Now    func() time.Time
	Logger *zap.Logger
}

func (o *Options) applyDefaults() {
	if o.PageSize <= 0 {
		o.PageSize = 10
	}
	if o.SortKey == "" {
		o.SortKey = domain.SortByDate
	}
	if o.SortDirection == "" {
		o.SortDirection = domain.Descending
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Snapshot is the complete derived view the engine exposes after each
// mutation. Consumers treat it as read-only.
type Snapshot struct {
	State State `json:"state"`
	// Revision changes whenever the derived view changes, letting
	// consumers detect staleness without diffing.
	Revision      uuid.UUID         `json:"revision"`
	TotalCount    int               `json:"total_count"`
	FilteredCount int               `json:"filtered_count"`
	Facets        domain.FacetIndex `json:"facets"`

	KPIs      domain.KPISnapshot `json:"kpis"`
	TodayKPIs domain.KPISnapshot `json:"today_kpis"`
	WeekKPIs  domain.KPISnapshot `json:"week_kpis"`

	RevenueByDate     domain.Series `json:"revenue_by_date"`
	UnitsByDate       domain.Series `json:"units_by_date"`
	RevenueByCategory domain.Series `json:"revenue_by_category"`
	RevenueByBrand    domain.Series `json:"revenue_by_brand"`
	UnitsByCategory   domain.Series `json:"units_by_category"`

	Page domain.Page `json:"page"`
}

// Engine holds one ingested batch and the view derived from it. It is
// not safe for concurrent use; callers serialize access.
type Engine struct {
	opts Options
	log  *zap.Logger

	records  []domain.NormalizedSale
	criteria domain.FilterCriteria
	sortKey  domain.SortKey
	sortDir  domain.SortDirection
	page     int

	// filtered is the sorted, filtered working set backing the
	// current page and exports.
	filtered []domain.NormalizedSale
	snapshot Snapshot
}

// NewEngine builds an engine with no data. The first Ingest moves it
// out of the empty state.
func NewEngine(opts Options) *Engine {
	opts.applyDefaults()
	e := &Engine{
		opts:    opts,
		log:     opts.Logger.Named("analytics"),
		sortKey: opts.SortKey,
		sortDir: opts.SortDirection,
		page:    1,
	}
	e.snapshot = Snapshot{
		State:    StateEmpty,
		Revision: uuid.New(),
		Facets:   domain.BuildFacets(nil, e.facetOptions()...),
		Page:     domain.Paginate(nil, 1, opts.PageSize),
	}
	e.filtered = []domain.NormalizedSale{}
	return e
}

// Ingest replaces the engine's data with a freshly normalized batch and
// resets filtering and paging. A nil batch empties the engine.
func (e *Engine) Ingest(raw []domain.RawSale) Snapshot {
	e.transition(StateLoading)
	e.records = domain.NormalizeBatch(raw)
	e.criteria = domain.FilterCriteria{}
	e.page = 1
	e.log.Info("batch ingested", zap.Int("records", len(e.records)))
	return e.recompute()
}

// SetFilter replaces the filter criteria and resets to the first page.
func (e *Engine) SetFilter(criteria domain.FilterCriteria) Snapshot {
	e.transition(StateFiltering)
	e.criteria = criteria
	e.page = 1
	return e.recompute()
}

// SetSort replaces the sort order, keeping the current page number.
func (e *Engine) SetSort(key domain.SortKey, dir domain.SortDirection) Snapshot {
	e.transition(StateSorting)
	e.sortKey = key
	e.sortDir = dir
	return e.recompute()
}

// SetPage moves to the given 1-based page.
func (e *Engine) SetPage(number int) Snapshot {
	e.transition(StatePaging)
	e.page = number
	return e.recompute()
}

// ApplyView applies a validated view request in one recompute.
func (e *Engine) ApplyView(req ViewRequest) Snapshot {
	e.transition(StateFiltering)
	e.criteria = req.Criteria()
	if req.SortKey != "" {
		e.sortKey = domain.SortKey(req.SortKey)
	}
	if req.SortDir != "" {
		e.sortDir = domain.SortDirection(req.SortDir)
	}
	if req.Page > 0 {
		e.page = req.Page
	} else {
		e.page = 1
	}
	if req.PageSize > 0 {
		e.opts.PageSize = req.PageSize
	}
	return e.recompute()
}

// Snapshot returns the current derived view without recomputing.
func (e *Engine) Snapshot() Snapshot {
	return e.snapshot
}

// Filtered returns the current sorted, filtered working set. The slice
// is shared with the engine and must not be mutated.
func (e *Engine) Filtered() []domain.NormalizedSale {
	return e.filtered
}

func (e *Engine) facetOptions() []domain.FacetOption {
	if e.opts.ExcludeUnknownFacet {
		return []domain.FacetOption{domain.WithoutUnknown()}
	}
	return nil
}

func (e *Engine) transition(s State) {
	e.snapshot.State = s
}

// recompute rebuilds the whole derived view from the full record set:
// filter, aggregate, sort, paginate, in that order. Aggregates always
// describe the filtered set, not the visible page.
func (e *Engine) recompute() Snapshot {
	filtered := domain.ApplyFilters(e.records, e.criteria)
	sorted := domain.Sort(filtered, e.sortKey, e.sortDir)
	now := e.opts.Now()
	todayStart, todayEnd := domain.TodayWindow(now)
	weekStart, weekEnd := domain.WeekWindow(now)

	e.filtered = sorted
	state := StateReady
	if len(e.records) == 0 {
		state = StateEmpty
	}
	e.snapshot = Snapshot{
		State:         state,
		Revision:      uuid.New(),
		TotalCount:    len(e.records),
		FilteredCount: len(filtered),
		Facets:        domain.BuildFacets(e.records, e.facetOptions()...),

		KPIs:      domain.Summarize(filtered),
		TodayKPIs: domain.SummarizeWindow(filtered, todayStart, todayEnd),
		WeekKPIs:  domain.SummarizeWindow(filtered, weekStart, weekEnd),

		RevenueByDate:     domain.RevenueByDate(filtered),
		UnitsByDate:       domain.UnitsByDate(filtered),
		RevenueByCategory: domain.RevenueByCategory(filtered),
		RevenueByBrand:    domain.RevenueByBrand(filtered),
		UnitsByCategory:   domain.UnitsByCategory(filtered),

		Page: domain.Paginate(sorted, e.page, e.opts.PageSize),
	}
	e.log.Debug("view recomputed",
		zap.String("state", string(state)),
		zap.Int("filtered", len(filtered)),
		zap.Int("page", e.page),
		zap.String("net_revenue", e.snapshot.KPIs.NetRevenue.String()),
	)
	return e.snapshot
}

// PriceBetween builds an inclusive price range from literal bounds, a
// convenience for callers assembling criteria by hand.
func PriceBetween(min, max decimal.Decimal) domain.PriceRange {
	return domain.PriceRange{Min: &min, Max: &max}
}
