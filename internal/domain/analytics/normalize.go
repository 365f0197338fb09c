package analytics

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateKeyLayout is the canonical date bucket key. Lexicographic order
// on these keys equals chronological order.
const dateKeyLayout = "2006-01-02"

// dateLayouts are tried in order when parsing raw date strings.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateKeyLayout,
}

// ToNumber coerces an untrusted textual value into a decimal. Thousands
// separators and any character outside [0-9.-] are stripped before
// parsing; empty or unparseable input yields zero. It never fails.
func ToNumber(v string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, v)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ToDateKey coerces an untrusted date string into a yyyy-MM-dd key.
// All keys are derived in UTC. When no layout parses, a yyyy-MM-dd
// shaped prefix ahead of a time separator is kept verbatim; anything
// else maps to UnknownKey.
func ToDateKey(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return UnknownKey
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(dateKeyLayout)
		}
	}
	prefix := s
	if i := strings.IndexAny(s, "T "); i >= 0 {
		prefix = s[:i]
	}
	if isDateKey(prefix) {
		return prefix
	}
	return UnknownKey
}

// isDateKey reports whether s has the exact yyyy-MM-dd shape.
func isDateKey(s string) bool {
	if len(s) != len(dateKeyLayout) {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			if r != '-' {
				return false
			}
		} else if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Normalize maps one raw sale line onto the canonical numeric model.
// It is pure and total: malformed fields degrade to zero or sentinel
// defaults rather than rejecting the record, and identical input always
// yields identical output.
func Normalize(raw RawSale) NormalizedSale {
	qty := ToNumber(raw.Quantity.String())
	sell := ToNumber(raw.SellPrice.String())
	disc := ToNumber(raw.DiscountedPrice.String())
	buy := ToNumber(raw.BuyPrice.String())

	net := sell
	discountAmount := decimal.Zero
	if disc.IsPositive() {
		net = disc
		unitDiscount := sell.Sub(disc)
		if unitDiscount.IsNegative() {
			unitDiscount = decimal.Zero
		}
		discountAmount = unitDiscount.Mul(qty)
	}

	revenue := net.Mul(qty)
	cost := buy.Mul(qty)

	return NormalizedSale{
		Date:          ToDateKey(raw.Date),
		TransactionID: raw.TransactionID,
		Name:          raw.Name,
		PhoneNumber:   raw.PhoneNumber,
		Category:      orUnknown(raw.Category),
		Brand:         orUnknown(raw.Brand),
		Model:         orUnknown(raw.Model),

		Quantity:            qty,
		UnitSellPrice:       sell,
		UnitDiscountedPrice: disc,
		UnitBuyPrice:        buy,

		NetUnitPrice:   net,
		LineRevenue:    revenue,
		LineCost:       cost,
		LineProfit:     revenue.Sub(cost),
		DiscountAmount: discountAmount,
	}
}

// NormalizeBatch normalizes every record of a raw batch. A nil batch
// yields an empty set.
func NormalizeBatch(raw []RawSale) []NormalizedSale {
	records := make([]NormalizedSale, len(raw))
	for i, r := range raw {
		records[i] = Normalize(r)
	}
	return records
}

func orUnknown(s string) string {
	if s == "" {
		return UnknownKey
	}
	return s
}
