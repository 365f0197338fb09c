package analytics

import "github.com/shopspring/decimal"

// UnknownKey is the sentinel bucket for absent or unparseable grouping
// values (date, category, brand, model). It is a real, filterable value
// so users can select uncategorized records explicitly.
const UnknownKey = "Unknown"

// NormalizedSale is the canonical form of one sale line. Instances are
// immutable value objects: they are derived fresh on every ingest and
// never mutated afterwards.
//
// Prices are per unit; line amounts are price multiplied by quantity.
// Negative quantities and prices are preserved as-is and represent
// returns or adjustments.
type NormalizedSale struct {
	Date          string `json:"date"`
	TransactionID string `json:"transaction_id"`
	Name          string `json:"name"`
	PhoneNumber   string `json:"phone_number"`
	Category      string `json:"category"`
	Brand         string `json:"brand"`
	Model         string `json:"model"`

	Quantity            decimal.Decimal `json:"quantity"`
	UnitSellPrice       decimal.Decimal `json:"unit_sell_price"`
	UnitDiscountedPrice decimal.Decimal `json:"unit_discounted_price"`
	UnitBuyPrice        decimal.Decimal `json:"unit_buy_price"`

	// NetUnitPrice is the discounted price when one is set, otherwise
	// the sell price.
	NetUnitPrice   decimal.Decimal `json:"net_unit_price"`
	LineRevenue    decimal.Decimal `json:"line_revenue"`
	LineCost       decimal.Decimal `json:"line_cost"`
	LineProfit     decimal.Decimal `json:"line_profit"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}
