// Package export writes the bank-rate table in downloadable formats. The
// column order matches the worksheet schema, so an export can seed a new
// sheet directly.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/model"
)

// Formats accepted by the export surface.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Header is the exported column order.
var Header = []string{"Bank", "Group", "Type", "1M", "3M", "6M", "12M"}

// Filename returns the attachment name for a download in the given format.
func Filename(format string, now time.Time) string {
	return fmt.Sprintf("bank_rates_%s.%s", now.Format("20060102"), format)
}

// CSV writes rows as comma-separated values under the worksheet header.
// Rates carry two decimal digits without a percent sign; missing cells stay
// empty.
func CSV(w io.Writer, rows []model.BankRate) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, 0, len(Header))
		record = append(record, row.Bank, string(row.Group), string(row.Type))
		for _, term := range model.Terms {
			record = append(record, csvCell(row.Rate(term)))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvCell(r model.Rate) string {
	if !r.Valid() {
		return ""
	}
	return r.Decimal().StringFixed(2)
}

// XLSX writes rows as a single-sheet workbook named after the worksheet the
// data came from. Rates become numeric cells; missing cells stay blank.
func XLSX(w io.Writer, rows []model.BankRate) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "BankRates"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for i, col := range Header {
		if err := setCell(f, sheet, i+1, 1, col); err != nil {
			return err
		}
	}
	for rowIdx, row := range rows {
		cells := []any{row.Bank, string(row.Group), string(row.Type)}
		for _, term := range model.Terms {
			if r := row.Rate(term); r.Valid() {
				cells = append(cells, r.Float())
			} else {
				cells = append(cells, nil)
			}
		}
		for colIdx, value := range cells {
			if value == nil {
				continue
			}
			if err := setCell(f, sheet, colIdx+1, rowIdx+2, value); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, fmt.Sprintf("%s%d", name, row), value)
}
