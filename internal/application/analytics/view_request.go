package analytics

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	domain "github.com/erp/analytics/internal/domain/analytics"
)

var validate = validator.New()

// ViewRequest is the external shape of one view change: filter, sort
// and paging in a single call. Zero fields keep the engine's current
// defaults.
type ViewRequest struct {
	Query      string   `json:"query" validate:"omitempty,max=200"`
	Categories []string `json:"categories" validate:"omitempty,dive,min=1"`
	Brands     []string `json:"brands" validate:"omitempty,dive,min=1"`
	Models     []string `json:"models" validate:"omitempty,dive,min=1"`

	From string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to" validate:"omitempty,datetime=2006-01-02"`

	MinPrice *decimal.Decimal `json:"min_price" validate:"omitempty"`
	MaxPrice *decimal.Decimal `json:"max_price" validate:"omitempty"`

	SortKey string `json:"sort_key" validate:"omitempty,oneof=date transactionId name category brand model quantity netUnitPrice lineRevenue lineProfit"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=asc desc"`

	Page     int `json:"page" validate:"omitempty,min=1"`
	PageSize int `json:"page_size" validate:"omitempty,min=1,max=500"`
}

// Validate checks field shapes and cross-field consistency.
func (r ViewRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.From != "" && r.To != "" && r.From > r.To {
		return ErrInvalidDateRange
	}
	if r.MinPrice != nil && r.MaxPrice != nil && r.MinPrice.GreaterThan(*r.MaxPrice) {
		return ErrInvalidPriceRange
	}
	return nil
}

// Criteria maps the request onto domain filter criteria.
func (r ViewRequest) Criteria() domain.FilterCriteria {
	return domain.FilterCriteria{
		Query:      r.Query,
		Categories: r.Categories,
		Brands:     r.Brands,
		Models:     r.Models,
		Dates:      domain.DateRange{Start: r.From, End: r.To},
		Prices:     domain.PriceRange{Min: r.MinPrice, Max: r.MaxPrice},
	}
}
