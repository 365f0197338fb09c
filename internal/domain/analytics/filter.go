package analytics

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateRange bounds records by date key, inclusive on both ends. An
// empty string leaves the corresponding side open.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// IsZero reports whether no bound is set.
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}

// PriceRange bounds records by net unit price, inclusive on both ends.
// A nil bound leaves that side open.
type PriceRange struct {
	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`
}

// FilterCriteria describes one multi-facet filter pass. The zero value
// matches every record. Facet slices with no entries impose no
// restriction.
type FilterCriteria struct {
	Query      string     `json:"query,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	Brands     []string   `json:"brands,omitempty"`
	Models     []string   `json:"models,omitempty"`
	Dates      DateRange  `json:"dates,omitzero"`
	Prices     PriceRange `json:"prices,omitzero"`
}

// ApplyFilters returns the records matching every criterion, preserving
// input order. It is stateless: neither the criteria nor the source
// slice is mutated.
//
// A record passes when all of the following hold: the free-text query
// is a case-insensitive substring of its name, category, brand, model
// or transaction id; its facet values are in the selected sets (or the
// sets are empty); its date key falls inside the inclusive date range
// (an Unknown date passes only when no range is set); and its net unit
// price falls inside the inclusive price range.
func ApplyFilters(records []NormalizedSale, criteria FilterCriteria) []NormalizedSale {
	query := strings.ToLower(strings.TrimSpace(criteria.Query))
	categories := toSet(criteria.Categories)
	brands := toSet(criteria.Brands)
	models := toSet(criteria.Models)

	out := make([]NormalizedSale, 0, len(records))
	for _, r := range records {
		if !matchesQuery(r, query) {
			continue
		}
		if !matchesSet(categories, r.Category) || !matchesSet(brands, r.Brand) || !matchesSet(models, r.Model) {
			continue
		}
		if !matchesDate(criteria.Dates, r.Date) {
			continue
		}
		if !matchesPrice(criteria.Prices, r.NetUnitPrice) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func matchesQuery(r NormalizedSale, query string) bool {
	if query == "" {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{
		r.Name, r.Category, r.Brand, r.Model, r.TransactionID,
	}, "\x00"))
	return strings.Contains(haystack, query)
}

func matchesSet(set map[string]struct{}, v string) bool {
	if set == nil {
		return true
	}
	_, ok := set[v]
	return ok
}

func matchesDate(rng DateRange, key string) bool {
	if rng.IsZero() {
		return true
	}
	if key == UnknownKey {
		return false
	}
	if rng.Start != "" && key < rng.Start {
		return false
	}
	if rng.End != "" && key > rng.End {
		return false
	}
	return true
}

func matchesPrice(rng PriceRange, price decimal.Decimal) bool {
	if rng.Min != nil && price.LessThan(*rng.Min) {
		return false
	}
	if rng.Max != nil && price.GreaterThan(*rng.Max) {
		return false
	}
	return true
}

// Preset names a relative date window offered by report screens.
type Preset string

const (
	PresetToday       Preset = "today"
	PresetYesterday   Preset = "yesterday"
	PresetLast7       Preset = "last7"
	PresetLast30      Preset = "last30"
	PresetMonthToDate Preset = "mtd"
	PresetYearToDate  Preset = "ytd"
)

// PresetRange resolves a preset to an inclusive date range relative to
// the day of now, in UTC. An unrecognized preset yields the open range.
func PresetRange(p Preset, now time.Time) DateRange {
	day := now.UTC()
	from, to := day, day
	switch p {
	case PresetToday:
	case PresetYesterday:
		from = day.AddDate(0, 0, -1)
		to = from
	case PresetLast7:
		from = day.AddDate(0, 0, -6)
	case PresetLast30:
		from = day.AddDate(0, 0, -29)
	case PresetMonthToDate:
		from = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	case PresetYearToDate:
		from = time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return DateRange{}
	}
	return DateRange{
		Start: from.Format(dateKeyLayout),
		End:   to.Format(dateKeyLayout),
	}
}
