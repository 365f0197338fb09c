package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// KPISnapshot holds the scalar financial metrics of one record set.
// All fields are identity values (zero) for an empty set.
type KPISnapshot struct {
	OrderCount    int64           `json:"order_count"`
	UnitsSold     decimal.Decimal `json:"units_sold"`
	GrossRevenue  decimal.Decimal `json:"gross_revenue"`
	NetRevenue    decimal.Decimal `json:"net_revenue"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	// AverageOrderValue is net revenue per order, rounded to cents.
	AverageOrderValue decimal.Decimal `json:"avg_order_value"`
	ProfitMarginPct   decimal.Decimal `json:"profit_margin_pct"`
}

// Summarize reduces a record set to its KPI snapshot. The six sums are
// accumulated in a single pass; the ratios are derived afterwards so no
// division guard is needed inside the loop.
func Summarize(records []NormalizedSale) KPISnapshot {
	var s KPISnapshot
	for _, r := range records {
		accumulate(&s, r)
	}
	finalize(&s)
	return s
}

// SummarizeWindow reduces only the records whose date key falls within
// [startKey, endKey] inclusive. Records with an Unknown date never fall
// inside a window.
func SummarizeWindow(records []NormalizedSale, startKey, endKey string) KPISnapshot {
	var s KPISnapshot
	for _, r := range records {
		if r.Date == UnknownKey || r.Date < startKey || r.Date > endKey {
			continue
		}
		accumulate(&s, r)
	}
	finalize(&s)
	return s
}

func accumulate(s *KPISnapshot, r NormalizedSale) {
	s.OrderCount++
	s.UnitsSold = s.UnitsSold.Add(r.Quantity)
	s.GrossRevenue = s.GrossRevenue.Add(r.UnitSellPrice.Mul(r.Quantity))
	s.NetRevenue = s.NetRevenue.Add(r.LineRevenue)
	s.TotalDiscount = s.TotalDiscount.Add(r.DiscountAmount)
	s.TotalCost = s.TotalCost.Add(r.LineCost)
}

func finalize(s *KPISnapshot) {
	s.GrossProfit = s.NetRevenue.Sub(s.TotalCost)
	if s.OrderCount > 0 {
		s.AverageOrderValue = s.NetRevenue.Div(decimal.NewFromInt(s.OrderCount)).Round(2)
	}
	if !s.NetRevenue.IsZero() {
		s.ProfitMarginPct = s.GrossProfit.Div(s.NetRevenue).Mul(oneHundred)
	}
}

// TodayWindow returns the single-day window containing now, in UTC.
func TodayWindow(now time.Time) (startKey, endKey string) {
	key := now.UTC().Format(dateKeyLayout)
	return key, key
}

// WeekWindow returns the ISO week (Monday through Sunday, UTC)
// containing now.
func WeekWindow(now time.Time) (startKey, endKey string) {
	day := now.UTC()
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)
	return start.Format(dateKeyLayout), end.Format(dateKeyLayout)
}

// SeriesPoint is one bucket of an ordered series.
type SeriesPoint struct {
	Key   string          `json:"key"`
	Value decimal.Decimal `json:"value"`
}

// Series is an ordered list of buckets, ready for charting. Date-keyed
// series are sorted chronologically; facet-keyed series keep first-seen
// order.
type Series []SeriesPoint

// BucketBy accumulates value(r) into the bucket named key(r), iterating
// once and preserving first-seen key order.
func BucketBy(records []NormalizedSale, key func(NormalizedSale) string, value func(NormalizedSale) decimal.Decimal) Series {
	index := make(map[string]int, len(records))
	series := make(Series, 0)
	for _, r := range records {
		k := key(r)
		if i, ok := index[k]; ok {
			series[i].Value = series[i].Value.Add(value(r))
			continue
		}
		index[k] = len(series)
		series = append(series, SeriesPoint{Key: k, Value: value(r)})
	}
	return series
}

// RevenueByDate buckets line revenue per day, chronologically sorted.
func RevenueByDate(records []NormalizedSale) Series {
	return sortedByKey(BucketBy(records, byDate, lineRevenue))
}

// UnitsByDate buckets quantity per day, chronologically sorted.
func UnitsByDate(records []NormalizedSale) Series {
	return sortedByKey(BucketBy(records, byDate, lineQuantity))
}

// RevenueByCategory buckets line revenue per category.
func RevenueByCategory(records []NormalizedSale) Series {
	return BucketBy(records, byCategory, lineRevenue)
}

// RevenueByBrand buckets line revenue per brand.
func RevenueByBrand(records []NormalizedSale) Series {
	return BucketBy(records, byBrand, lineRevenue)
}

// UnitsByCategory buckets quantity per category.
func UnitsByCategory(records []NormalizedSale) Series {
	return BucketBy(records, byCategory, lineQuantity)
}

func sortedByKey(s Series) Series {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Key < s[j].Key })
	return s
}

func byDate(r NormalizedSale) string     { return r.Date }
func byCategory(r NormalizedSale) string { return r.Category }
func byBrand(r NormalizedSale) string    { return r.Brand }

func lineRevenue(r NormalizedSale) decimal.Decimal  { return r.LineRevenue }
func lineQuantity(r NormalizedSale) decimal.Decimal { return r.Quantity }
