package source

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/model"
)

//go:embed data/fallback_rates.yaml
var fallbackYAML []byte

//go:embed data/fintech_products.yaml
var fintechYAML []byte

var (
	fallbackOnce sync.Once
	fallbackRows []model.BankRate

	fintechOnce sync.Once
	fintechRows []model.FintechProduct
)

// FallbackRates returns the embedded bank-rate dataset served whenever the
// live fetch fails. Callers treat the slice as read-only.
func FallbackRates() []model.BankRate {
	fallbackOnce.Do(func() {
		rows, err := decodeFallback(fallbackYAML)
		if err != nil {
			// The dataset ships inside the binary; failing to decode it
			// is a build defect, not a runtime condition.
			panic(fmt.Sprintf("source: embedded fallback dataset: %v", err))
		}
		fallbackRows = rows
	})
	return fallbackRows
}

// FintechProducts returns the embedded fintech/bond product table. Constant
// for the process lifetime; callers treat the slice as read-only.
func FintechProducts() []model.FintechProduct {
	fintechOnce.Do(func() {
		var file fintechFile
		if err := yaml.Unmarshal(fintechYAML, &file); err != nil {
			panic(fmt.Sprintf("source: embedded fintech dataset: %v", err))
		}
		if len(file.Products) == 0 {
			panic("source: embedded fintech dataset has no products")
		}
		fintechRows = file.Products
	})
	return fintechRows
}

// SaveFallback writes rows in the fallback-dataset file format, the one
// FallbackRates embeds. cmd/update-fallback uses it to refresh the dataset
// from the live sheet.
func SaveFallback(path string, rows []model.BankRate) error {
	file := fallbackFile{Rows: make([]datasetRow, len(rows))}
	for i, row := range rows {
		file.Rows[i] = datasetRowFrom(row)
	}

	raw, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("marshal fallback dataset: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dataset directory: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write fallback dataset: %w", err)
	}
	return nil
}

type fallbackFile struct {
	Rows []datasetRow `yaml:"rows"`
}

type fintechFile struct {
	Products []model.FintechProduct `yaml:"products"`
}

// datasetRow mirrors the worksheet schema, one mapping per sheet row, so
// the data file reads like the sheet it stands in for.
type datasetRow struct {
	Bank    string         `yaml:"bank"`
	Group   model.Group    `yaml:"group"`
	Type    model.RateType `yaml:"type"`
	Rate1M  model.Rate     `yaml:"1M"`
	Rate3M  model.Rate     `yaml:"3M"`
	Rate6M  model.Rate     `yaml:"6M"`
	Rate12M model.Rate     `yaml:"12M"`
}

func (r datasetRow) toModel() model.BankRate {
	return model.BankRate{
		Bank:  r.Bank,
		Group: r.Group,
		Type:  r.Type,
		Rates: map[model.Term]model.Rate{
			model.Term1M:  r.Rate1M,
			model.Term3M:  r.Rate3M,
			model.Term6M:  r.Rate6M,
			model.Term12M: r.Rate12M,
		},
	}
}

func datasetRowFrom(b model.BankRate) datasetRow {
	return datasetRow{
		Bank:    b.Bank,
		Group:   b.Group,
		Type:    b.Type,
		Rate1M:  b.Rate(model.Term1M),
		Rate3M:  b.Rate(model.Term3M),
		Rate6M:  b.Rate(model.Term6M),
		Rate12M: b.Rate(model.Term12M),
	}
}

func decodeFallback(raw []byte) ([]model.BankRate, error) {
	var file fallbackFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	if len(file.Rows) == 0 {
		return nil, fmt.Errorf("dataset has no rows")
	}
	rows := make([]model.BankRate, len(file.Rows))
	for i, r := range file.Rows {
		rows[i] = r.toModel()
	}
	return rows, nil
}
