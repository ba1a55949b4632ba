// Package analysis derives the presentation aggregates from loaded bank
// rows: per-group term averages for the chart and per-column maxima for the
// table highlight.
package analysis

import (
	"github.com/shopspring/decimal"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/model"
)

// GroupAverages computes the arithmetic mean rate for every (group, term)
// pair: the long shape a grouped bar chart consumes directly. Missing rates
// are excluded from the mean, never counted as zero; a group with no usable
// values for a term yields a missing average, which renders as a gap rather
// than a zero-height bar. Groups appear in first-seen order, terms in fixed
// Terms order. Empty input yields an empty result; the caller shows its
// no-data notice instead of a chart.
func GroupAverages(rows []model.BankRate) []model.GroupAverage {
	if len(rows) == 0 {
		return nil
	}

	groups := Groups(rows)
	byGroup := make(map[model.Group][]model.BankRate, len(groups))
	for _, row := range rows {
		byGroup[row.Group] = append(byGroup[row.Group], row)
	}

	out := make([]model.GroupAverage, 0, len(groups)*len(model.Terms))
	for _, group := range groups {
		for _, term := range model.Terms {
			out = append(out, model.GroupAverage{
				Group:       group,
				Term:        term,
				AverageRate: meanRate(byGroup[group], term),
			})
		}
	}
	return out
}

func meanRate(rows []model.BankRate, term model.Term) model.Rate {
	values := make([]decimal.Decimal, 0, len(rows))
	for _, row := range rows {
		if r := row.Rate(term); r.Valid() {
			values = append(values, r.Decimal())
		}
	}
	if len(values) == 0 {
		return model.MissingRate()
	}
	return model.RateFrom(decimal.Avg(values[0], values[1:]...))
}

// Groups lists the distinct bank groups in first-seen order. The set is
// whatever the data contains; nothing is fixed beyond the order rule.
func Groups(rows []model.BankRate) []model.Group {
	groups := make([]model.Group, 0, 2)
	seen := make(map[model.Group]bool, 2)
	for _, row := range rows {
		if !seen[row.Group] {
			seen[row.Group] = true
			groups = append(groups, row.Group)
		}
	}
	return groups
}

// ColumnMaxima returns the highest valid rate per term column, which the
// renderer uses to highlight the best offer in each table column. Columns
// with no valid values map to the missing Rate.
func ColumnMaxima(rows []model.BankRate) map[model.Term]model.Rate {
	maxima := make(map[model.Term]model.Rate, len(model.Terms))
	for _, term := range model.Terms {
		best := model.MissingRate()
		for _, row := range rows {
			if r := row.Rate(term); r.GreaterThan(best) {
				best = r
			}
		}
		maxima[term] = best
	}
	return maxima
}
