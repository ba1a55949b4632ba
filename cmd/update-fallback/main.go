package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/config"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/sheets"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/source"
)

// update-fallback refreshes the embedded fallback dataset from the live
// worksheet. The output is reviewed and committed like any source change.
func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config (optional)")
		outputPath = flag.String("output", "internal/source/data/fallback_rates.yaml", "Output file path")
		timeout    = flag.Duration("timeout", 60*time.Second, "Overall fetch timeout")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.SheetID == "" {
		log.Fatal("A sheet_id is required: set EZF_SHEET_ID or the config file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	connector, err := sheets.FromConfig(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to build connector: %v", err)
	}

	fmt.Printf("Fetching worksheet %q from sheet %s...\n", cfg.Worksheet, cfg.SheetID)

	// No fallback here. Refreshing the fallback from the fallback would be
	// circular, so a failed fetch is fatal.
	raw, err := connector.ReadWorksheet(ctx, cfg.Worksheet)
	if err != nil {
		log.Fatalf("Failed to read worksheet: %v", err)
	}

	rows, loadErr := source.DecodeRows(raw)
	if loadErr != nil {
		log.Fatalf("Worksheet rejected: %v", loadErr)
	}
	if len(rows) == 0 {
		log.Fatal("Worksheet has a header but no data rows; refusing to write an empty fallback")
	}

	if err := source.SaveFallback(*outputPath, rows); err != nil {
		log.Fatalf("Failed to save fallback: %v", err)
	}

	fmt.Printf("Saved %d rows to %s\n", len(rows), *outputPath)
}
