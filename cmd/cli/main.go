package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/analysis"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/config"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/export"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/model"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/sheets"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/source"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "snapshot":
		cmdSnapshot(os.Args[2:])
	case "export":
		cmdExport(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli snapshot --config config.yaml [--json]")
	fmt.Println("  cli export --format csv --out rates.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - snapshot prints the current bank-rate table and the group averages")
	fmt.Println("  - export writes the dataset as CSV or XLSX; any fetch failure falls back")
	fmt.Println("    to the embedded dataset, same as the dashboard")
}

func cmdSnapshot(args []string) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	asJSON := fs.Bool("json", false, "Print the raw snapshot as JSON")
	debug := fs.Bool("debug", false, "Verbose logging")
	_ = fs.Parse(args)

	rates := buildRates(*cfgPath, *debug)
	snap, err := rates.Load(context.Background())
	if err != nil {
		panic(err)
	}

	if *asJSON {
		raw, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			panic(err)
		}
		fmt.Println(string(raw))
		return
	}

	fmt.Printf("origin=%s", snap.Origin)
	if snap.Reason != "" {
		fmt.Printf(" reason=%s", snap.Reason)
	}
	fmt.Printf(" fetched=%s\n\n", snap.FetchedAt.UTC().Format("2006-01-02 15:04 MST"))

	fmt.Printf("%-20s %-14s %-9s %7s %7s %7s %7s\n", "bank", "group", "type", "1M", "3M", "6M", "12M")
	for _, row := range snap.Rows {
		fmt.Printf("%-20s %-14s %-9s %7s %7s %7s %7s\n",
			row.Bank,
			row.Group,
			row.Type,
			cell(row.Rate(model.Term1M)),
			cell(row.Rate(model.Term3M)),
			cell(row.Rate(model.Term6M)),
			cell(row.Rate(model.Term12M)),
		)
	}

	fmt.Printf("\n%-14s %7s %7s %7s %7s\n", "group avg", "1M", "3M", "6M", "12M")
	averages := analysis.GroupAverages(snap.Rows)
	for _, group := range analysis.Groups(snap.Rows) {
		cells := make([]any, 0, 5)
		cells = append(cells, string(group))
		for _, avg := range averages {
			if avg.Group == group {
				cells = append(cells, cell(avg.AverageRate))
			}
		}
		fmt.Printf("%-14s %7s %7s %7s %7s\n", cells...)
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	format := fs.String("format", export.FormatCSV, "Output format: csv or xlsx")
	outPath := fs.String("out", "", "Output file path (default: dated filename in the working directory)")
	debug := fs.Bool("debug", false, "Verbose logging")
	_ = fs.Parse(args)

	if *format != export.FormatCSV && *format != export.FormatXLSX {
		fmt.Printf("--format must be %s or %s\n", export.FormatCSV, export.FormatXLSX)
		os.Exit(2)
	}

	rates := buildRates(*cfgPath, *debug)
	snap, err := rates.Load(context.Background())
	if err != nil {
		panic(err)
	}

	path := *outPath
	if path == "" {
		path = export.Filename(*format, snap.FetchedAt)
	}
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	switch *format {
	case export.FormatCSV:
		err = export.CSV(f, snap.Rows)
	case export.FormatXLSX:
		err = export.XLSX(f, snap.Rows)
	}
	if err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(snap.Rows), path)
}

// buildRates wires the connector and rate source the same way the server
// does, minus the HTTP layer.
func buildRates(cfgPath string, debug bool) *source.RateSource {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	logger := zap.NewNop()
	if debug {
		logger, err = zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
	}

	connector, err := sheets.FromConfig(context.Background(), cfg, logger)
	if err != nil {
		connector = sheets.Unavailable(err)
	}
	return source.NewRateSource(connector, cfg.Worksheet, cfg.CacheTTL, logger)
}

func cell(r model.Rate) string {
	if !r.Valid() {
		return "-"
	}
	return r.Decimal().StringFixed(2)
}
