package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggregateFixture() []NormalizedSale {
	return NormalizeBatch([]RawSale{
		{Date: "2024-01-05", TransactionID: "TXN-1", Category: "Phone", Brand: "X", Model: "X1", Quantity: "2", SellPrice: "1000", DiscountedPrice: "900", BuyPrice: "600"},
		{Date: "2024-01-05", TransactionID: "TXN-2", Category: "Phone", Brand: "Y", Model: "Y1", Quantity: "1", SellPrice: "1000", BuyPrice: "650"},
	})
}

func TestSummarize(t *testing.T) {
	t.Run("computes the canonical metrics", func(t *testing.T) {
		s := Summarize(aggregateFixture())

		assert.Equal(t, int64(2), s.OrderCount)
		assert.True(t, decimal.NewFromInt(3).Equal(s.UnitsSold))
		assert.True(t, decimal.NewFromInt(3000).Equal(s.GrossRevenue), "gross = 2*1000 + 1*1000")
		assert.True(t, decimal.NewFromInt(2800).Equal(s.NetRevenue), "net = 2*900 + 1*1000")
		assert.True(t, decimal.NewFromInt(200).Equal(s.TotalDiscount))
		assert.True(t, decimal.NewFromInt(1850).Equal(s.TotalCost))
		assert.True(t, decimal.NewFromInt(950).Equal(s.GrossProfit))
		assert.True(t, decimal.NewFromInt(1400).Equal(s.AverageOrderValue))
	})

	t.Run("margin is profit over net revenue", func(t *testing.T) {
		s := Summarize(aggregateFixture())

		want := decimal.NewFromInt(950).Div(decimal.NewFromInt(2800)).Mul(decimal.NewFromInt(100))
		assert.True(t, want.Equal(s.ProfitMarginPct))
	})

	t.Run("empty set yields identity values", func(t *testing.T) {
		s := Summarize(nil)

		assert.Equal(t, int64(0), s.OrderCount)
		assert.True(t, s.NetRevenue.IsZero())
		assert.True(t, s.AverageOrderValue.IsZero())
		assert.True(t, s.ProfitMarginPct.IsZero())
	})

	t.Run("returns reduce the totals", func(t *testing.T) {
		records := append(aggregateFixture(), Normalize(RawSale{
			Date: "2024-01-06", Quantity: "-1", SellPrice: "900", BuyPrice: "600",
		}))
		s := Summarize(records)

		assert.True(t, decimal.NewFromInt(1900).Equal(s.NetRevenue))
		assert.True(t, decimal.NewFromInt(2).Equal(s.UnitsSold))
	})
}

func TestSummarizeWindow(t *testing.T) {
	records := NormalizeBatch([]RawSale{
		{Date: "2024-03-14", Quantity: "1", SellPrice: "100"},
		{Date: "2024-03-15", Quantity: "1", SellPrice: "200"},
		{Date: "2024-03-16", Quantity: "1", SellPrice: "400"},
		{Date: "bogus", Quantity: "1", SellPrice: "800"},
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		s := SummarizeWindow(records, "2024-03-14", "2024-03-15")

		assert.Equal(t, int64(2), s.OrderCount)
		assert.True(t, decimal.NewFromInt(300).Equal(s.NetRevenue))
	})

	t.Run("unknown dates never fall in a window", func(t *testing.T) {
		s := SummarizeWindow(records, "0000-01-01", "9999-12-31")

		assert.Equal(t, int64(3), s.OrderCount)
	})

	t.Run("window totals never exceed the full summary", func(t *testing.T) {
		full := Summarize(records)
		windowed := SummarizeWindow(records, "2024-03-15", "2024-03-16")

		assert.True(t, windowed.NetRevenue.LessThanOrEqual(full.NetRevenue))
	})
}

func TestWindows(t *testing.T) {
	t.Run("today window is a single UTC day", func(t *testing.T) {
		start, end := TodayWindow(time.Date(2024, 3, 15, 23, 30, 0, 0, time.FixedZone("", 3*3600)))

		assert.Equal(t, "2024-03-15", start)
		assert.Equal(t, "2024-03-15", end)
	})

	t.Run("week window runs monday through sunday", func(t *testing.T) {
		// 2024-03-15 is a Friday.
		start, end := WeekWindow(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))

		assert.Equal(t, "2024-03-11", start)
		assert.Equal(t, "2024-03-17", end)
	})

	t.Run("monday maps onto its own week", func(t *testing.T) {
		start, end := WeekWindow(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, "2024-03-11", start)
		assert.Equal(t, "2024-03-17", end)
	})

	t.Run("sunday closes the week", func(t *testing.T) {
		start, end := WeekWindow(time.Date(2024, 3, 17, 12, 0, 0, 0, time.UTC))

		assert.Equal(t, "2024-03-11", start)
		assert.Equal(t, "2024-03-17", end)
	})
}

func TestSeriesBuilders(t *testing.T) {
	records := aggregateFixture()

	t.Run("revenue by date buckets net line revenue", func(t *testing.T) {
		series := RevenueByDate(records)

		require.Len(t, series, 1)
		assert.Equal(t, "2024-01-05", series[0].Key)
		assert.True(t, decimal.NewFromInt(2800).Equal(series[0].Value))
	})

	t.Run("date series are chronological", func(t *testing.T) {
		series := RevenueByDate(NormalizeBatch([]RawSale{
			{Date: "2024-02-10", Quantity: "1", SellPrice: "10"},
			{Date: "2024-01-05", Quantity: "1", SellPrice: "20"},
			{Date: "2024-02-10", Quantity: "1", SellPrice: "30"},
		}))

		require.Len(t, series, 2)
		assert.Equal(t, "2024-01-05", series[0].Key)
		assert.Equal(t, "2024-02-10", series[1].Key)
		assert.True(t, decimal.NewFromInt(40).Equal(series[1].Value))
	})

	t.Run("revenue by category", func(t *testing.T) {
		series := RevenueByCategory(records)

		require.Len(t, series, 1)
		assert.Equal(t, "Phone", series[0].Key)
		assert.True(t, decimal.NewFromInt(2800).Equal(series[0].Value))
	})

	t.Run("revenue by brand keeps first seen order", func(t *testing.T) {
		series := RevenueByBrand(records)

		require.Len(t, series, 2)
		assert.Equal(t, "X", series[0].Key)
		assert.True(t, decimal.NewFromInt(1800).Equal(series[0].Value))
		assert.Equal(t, "Y", series[1].Key)
		assert.True(t, decimal.NewFromInt(1000).Equal(series[1].Value))
	})

	t.Run("units by category sums quantities", func(t *testing.T) {
		series := UnitsByCategory(records)

		require.Len(t, series, 1)
		assert.True(t, decimal.NewFromInt(3).Equal(series[0].Value))
	})

	t.Run("series totals match the summary", func(t *testing.T) {
		s := Summarize(records)
		var total decimal.Decimal
		for _, p := range RevenueByDate(records) {
			total = total.Add(p.Value)
		}

		assert.True(t, s.NetRevenue.Equal(total))
	})

	t.Run("empty input yields empty series", func(t *testing.T) {
		assert.Empty(t, RevenueByDate(nil))
		assert.Empty(t, UnitsByDate(nil))
		assert.Empty(t, RevenueByBrand(nil))
	})
}
