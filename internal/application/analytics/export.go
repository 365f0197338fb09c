package analytics

import (
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domain "github.com/erp/analytics/internal/domain/analytics"
)

var percentFactor = decimal.NewFromInt(100)

// csvHeader is the fixed export column order.
var csvHeader = []string{
	"date", "transactionId", "name", "phoneNumber",
	"category", "brand", "model",
	"qty", "cost", "gross", "discount", "net", "profit", "margin%",
}

// ExportCSV writes records as CSV in the fixed column order. Field
// commas are replaced with spaces instead of quoting, so the output
// stays friendly to naive spreadsheet importers. Margin is a
// percentage with one decimal place, blank when net revenue is zero.
func ExportCSV(w io.Writer, records []domain.NormalizedSale) error {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	b.WriteByte('\n')

	for _, r := range records {
		margin := ""
		if !r.LineRevenue.IsZero() {
			margin = r.LineProfit.Div(r.LineRevenue).Mul(percentFactor).StringFixed(1)
		}
		fields := []string{
			csvField(r.Date),
			csvField(r.TransactionID),
			csvField(r.Name),
			csvField(r.PhoneNumber),
			csvField(r.Category),
			csvField(r.Brand),
			csvField(r.Model),
			r.Quantity.String(),
			r.LineCost.String(),
			r.UnitSellPrice.Mul(r.Quantity).String(),
			r.DiscountAmount.String(),
			r.LineRevenue.String(),
			r.LineProfit.String(),
			margin,
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')

		if b.Len() >= exportFlushThreshold {
			if _, err := io.WriteString(w, b.String()); err != nil {
				return err
			}
			b.Reset()
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

const exportFlushThreshold = 32 * 1024

func csvField(s string) string {
	return strings.ReplaceAll(s, ",", " ")
}

// Export writes the engine's current filtered, sorted working set as
// CSV. The export always covers the whole filtered set, not just the
// visible page.
func (e *Engine) Export(w io.Writer) error {
	e.log.Info("exporting filtered set", zap.Int("records", len(e.filtered)))
	return ExportCSV(w, e.filtered)
}
