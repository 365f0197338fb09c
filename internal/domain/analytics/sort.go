package analytics

import "sort"

// SortKey names a sortable column of the normalized record.
type SortKey string

const (
	SortByDate          SortKey = "date"
	SortByTransactionID SortKey = "transactionId"
	SortByName          SortKey = "name"
	SortByCategory      SortKey = "category"
	SortByBrand         SortKey = "brand"
	SortByModel         SortKey = "model"
	SortByQuantity      SortKey = "quantity"
	SortByNetUnitPrice  SortKey = "netUnitPrice"
	SortByLineRevenue   SortKey = "lineRevenue"
	SortByLineProfit    SortKey = "lineProfit"
)

// SortDirection orders a sorted view.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Sort returns a copy of records ordered by key and direction. The sort
// is stable: records comparing equal keep their relative input order.
// An unrecognized key sorts by date.
func Sort(records []NormalizedSale, key SortKey, dir SortDirection) []NormalizedSale {
	out := make([]NormalizedSale, len(records))
	copy(out, records)

	less := lessFunc(key)
	if dir == Descending {
		base := less
		less = func(a, b NormalizedSale) bool { return base(b, a) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func lessFunc(key SortKey) func(a, b NormalizedSale) bool {
	switch key {
	case SortByTransactionID:
		return func(a, b NormalizedSale) bool { return a.TransactionID < b.TransactionID }
	case SortByName:
		return func(a, b NormalizedSale) bool { return a.Name < b.Name }
	case SortByCategory:
		return func(a, b NormalizedSale) bool { return a.Category < b.Category }
	case SortByBrand:
		return func(a, b NormalizedSale) bool { return a.Brand < b.Brand }
	case SortByModel:
		return func(a, b NormalizedSale) bool { return a.Model < b.Model }
	case SortByQuantity:
		return func(a, b NormalizedSale) bool { return a.Quantity.LessThan(b.Quantity) }
	case SortByNetUnitPrice:
		return func(a, b NormalizedSale) bool { return a.NetUnitPrice.LessThan(b.NetUnitPrice) }
	case SortByLineRevenue:
		return func(a, b NormalizedSale) bool { return a.LineRevenue.LessThan(b.LineRevenue) }
	case SortByLineProfit:
		return func(a, b NormalizedSale) bool { return a.LineProfit.LessThan(b.LineProfit) }
	default:
		return func(a, b NormalizedSale) bool { return a.Date < b.Date }
	}
}

// Page is one window of a record set.
type Page struct {
	Items []NormalizedSale `json:"items"`
	// Number is the 1-based page index requested.
	Number     int `json:"number"`
	Size       int `json:"size"`
	TotalItems int `json:"total_items"`
	// TotalPages is at least 1, even for an empty set.
	TotalPages int `json:"total_pages"`
	// Start and End are the 1-based inclusive positions of the window
	// within the whole set; both are 0 when the page holds no items.
	Start int `json:"start"`
	End   int `json:"end"`
}

// Paginate slices a 1-based page out of records. A size below 1 is
// treated as 1. Page numbers before the first or past the last page
// yield an empty Items slice rather than clamping.
func Paginate(records []NormalizedSale, number, size int) Page {
	if size < 1 {
		size = 1
	}
	total := len(records)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	page := Page{
		Items:      []NormalizedSale{},
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}
	if number < 1 {
		return page
	}
	start := (number - 1) * size
	if start >= total {
		return page
	}
	end := start + size
	if end > total {
		end = total
	}
	page.Items = records[start:end:end]
	page.Start = start + 1
	page.End = end
	return page
}
