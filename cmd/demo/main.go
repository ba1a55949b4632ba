package main

import (
	"fmt"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/analysis"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/model"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/source"
)

// Demo:
// - Load the embedded fallback dataset (no network, no config)
// - Mark the best rate per term the way the dashboard table does
// - Print the fintech products and the per-group market averages
func main() {
	rows := source.FallbackRates()
	maxima := analysis.ColumnMaxima(rows)

	fmt.Printf("Loaded %d bank rows (embedded fallback dataset)\n\n", len(rows))

	fmt.Printf("%-20s %-14s %-9s %8s %8s %8s %8s\n", "bank", "group", "type", "1M", "3M", "6M", "12M")
	for _, row := range rows {
		fmt.Printf("%-20s %-14s %-9s %8s %8s %8s %8s\n",
			row.Bank,
			row.Group,
			row.Type,
			cell(row, model.Term1M, maxima),
			cell(row, model.Term3M, maxima),
			cell(row, model.Term6M, maxima),
			cell(row, model.Term12M, maxima),
		)
	}

	fmt.Printf("\n%-20s %-15s %8s  %s\n", "product", "type", "rate", "min term")
	for _, p := range source.FintechProducts() {
		fmt.Printf("%-20s %-15s %8s  %s\n", p.Product, p.Type, p.AnnualRatePercent.Percent(), p.MinTerm)
	}

	fmt.Println("\nMarket averages:")
	for _, avg := range analysis.GroupAverages(rows) {
		fmt.Printf("  %-14s %4s  %s\n", avg.Group, avg.Term, avg.AverageRate.Percent())
	}
}

// cell renders one table cell, starring the best rate in the column.
func cell(row model.BankRate, term model.Term, maxima map[model.Term]model.Rate) string {
	r := row.Rate(term)
	if !r.Valid() {
		return "-"
	}
	if r.Equal(maxima[term]) {
		return r.Decimal().StringFixed(2) + "*"
	}
	return r.Decimal().StringFixed(2)
}
