package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	app "github.com/erp/analytics/internal/application/analytics"
	domain "github.com/erp/analytics/internal/domain/analytics"
	"github.com/erp/analytics/internal/infrastructure/config"
	"github.com/erp/analytics/internal/infrastructure/logger"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "path to a raw sales JSON file")
		query      = flag.String("query", "", "free-text search across name, category, brand, model and transaction id")
		category   = flag.String("category", "", "restrict to one category")
		brand      = flag.String("brand", "", "restrict to one brand")
		from       = flag.String("from", "", "start date (yyyy-MM-dd, inclusive)")
		to         = flag.String("to", "", "end date (yyyy-MM-dd, inclusive)")
		preset     = flag.String("preset", "", "relative date window (today, yesterday, last7, last30, mtd, ytd); overrides -from/-to")
		sortKey    = flag.String("sort", "", "sort key (date, name, lineRevenue, ...)")
		sortDir    = flag.String("dir", "", "sort direction (asc, desc)")
		page       = flag.Int("page", 1, "1-based page number")
		exportPath = flag.String("export", "", "write the filtered set as CSV to this path")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting sales analytics",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	engine := app.NewEngine(app.Options{
		PageSize:            cfg.Engine.DefaultPageSize,
		SortKey:             domain.SortKey(cfg.Engine.DefaultSortKey),
		SortDirection:       domain.SortDirection(cfg.Engine.DefaultSortDir),
		ExcludeUnknownFacet: cfg.Engine.ExcludeUnknownFacet,
		Logger:              log,
	})

	engine.Ingest(loadBatch(log, *inputPath))

	if *preset != "" {
		rng := domain.PresetRange(domain.Preset(*preset), time.Now())
		if rng.IsZero() {
			log.Fatal("unrecognized preset", zap.String("preset", *preset))
		}
		*from, *to = rng.Start, rng.End
	}

	req := app.ViewRequest{
		Query:   *query,
		From:    *from,
		To:      *to,
		SortKey: *sortKey,
		SortDir: *sortDir,
		Page:    *page,
	}
	if *category != "" {
		req.Categories = []string{*category}
	}
	if *brand != "" {
		req.Brands = []string{*brand}
	}
	if err := req.Validate(); err != nil {
		log.Fatal("invalid view request", zap.Error(err))
	}

	snap := engine.ApplyView(req)
	printSnapshot(snap)

	if *exportPath != "" {
		writeExport(log, engine, cfg.Export, *exportPath)
	}
}

// loadBatch reads and decodes a raw sales file. Missing or malformed
// input degrades to an empty batch so the engine still starts.
func loadBatch(log *zap.Logger, path string) []domain.RawSale {
	if path == "" {
		log.Warn("no input file given, starting empty")
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("failed to read input file", zap.String("path", path), zap.Error(err))
		return nil
	}
	var raw []domain.RawSale
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Error("failed to decode input file", zap.String("path", path), zap.Error(err))
		return nil
	}
	return raw
}

func printSnapshot(snap app.Snapshot) {
	fmt.Printf("state: %s  records: %d/%d  pages: %d\n",
		snap.State, snap.FilteredCount, snap.TotalCount, snap.Page.TotalPages)
	fmt.Printf("net revenue:  %s\n", snap.KPIs.NetRevenue.StringFixed(2))
	fmt.Printf("gross profit: %s (%s%%)\n",
		snap.KPIs.GrossProfit.StringFixed(2), snap.KPIs.ProfitMarginPct.StringFixed(1))
	fmt.Printf("units sold:   %s  orders: %d  avg order: %s\n",
		snap.KPIs.UnitsSold.String(), snap.KPIs.OrderCount, snap.KPIs.AverageOrderValue.StringFixed(2))
	fmt.Printf("today: %s  this week: %s\n",
		snap.TodayKPIs.NetRevenue.StringFixed(2), snap.WeekKPIs.NetRevenue.StringFixed(2))

	if len(snap.RevenueByCategory) > 0 {
		fmt.Println("revenue by category:")
		for _, p := range snap.RevenueByCategory {
			fmt.Printf("  %-20s %s\n", p.Key, p.Value.StringFixed(2))
		}
	}

	if len(snap.Page.Items) > 0 {
		fmt.Printf("page %d (%d-%d of %d):\n",
			snap.Page.Number, snap.Page.Start, snap.Page.End, snap.Page.TotalItems)
		for _, r := range snap.Page.Items {
			fmt.Printf("  %s  %-12s %-20s %6s x %-10s = %s\n",
				r.Date, r.TransactionID, r.Name,
				r.Quantity.String(), r.NetUnitPrice.String(), r.LineRevenue.String())
		}
	}
}

func writeExport(log *zap.Logger, engine *app.Engine, cfg config.ExportConfig, path string) {
	if path == "auto" {
		name := fmt.Sprintf("%s-%s.csv", cfg.FilePrefix, time.Now().UTC().Format("20060102-150405"))
		path = filepath.Join(cfg.Directory, name)
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatal("failed to create export file", zap.String("path", path), zap.Error(err))
	}
	defer f.Close()

	if err := engine.Export(f); err != nil {
		log.Fatal("export failed", zap.Error(err))
	}
	log.Info("export written", zap.String("path", path))
}
