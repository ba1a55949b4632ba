package source

import (
	"fmt"
	"strings"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/model"
)

// RequiredColumns is the expected worksheet schema: the seven columns the
// connector reads. All must be present in the header; order does not matter
// and columns beyond the first seven are never fetched in the first place.
var RequiredColumns = []string{"Bank", "Group", "Type", "1M", "3M", "6M", "12M"}

// DecodeRows validates raw worksheet cells against RequiredColumns and
// decodes the records after the header into bank rows. Every record becomes
// a row: cells that cannot be parsed as rates coerce to the missing Rate,
// they never reject the row.
func DecodeRows(raw [][]string) ([]model.BankRate, *LoadError) {
	if len(raw) == 0 {
		return nil, &LoadError{Kind: KindSchemaMismatch, Msg: "worksheet has no header row"}
	}

	index, missing := headerIndex(raw[0])
	if len(missing) > 0 {
		return nil, &LoadError{
			Kind: KindSchemaMismatch,
			Msg:  fmt.Sprintf("worksheet is missing columns: %s", strings.Join(missing, ", ")),
		}
	}

	rows := make([]model.BankRate, 0, len(raw)-1)
	for _, record := range raw[1:] {
		rows = append(rows, decodeRecord(record, index))
	}
	return rows, nil
}

func headerIndex(header []string) (map[string]int, []string) {
	index := make(map[string]int, len(header))
	for i, cell := range header {
		index[strings.TrimSpace(cell)] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return index, missing
}

func decodeRecord(record []string, index map[string]int) model.BankRate {
	cell := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rates := make(map[model.Term]model.Rate, len(model.Terms))
	for _, term := range model.Terms {
		rates[term] = model.ParseRate(cell(string(term)))
	}
	return model.BankRate{
		Bank:  cell("Bank"),
		Group: model.Group(cell("Group")),
		Type:  model.RateType(cell("Type")),
		Rates: rates,
	}
}
