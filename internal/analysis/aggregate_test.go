package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/model"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/source"
)

func row(bank string, group model.Group, rates map[model.Term]model.Rate) model.BankRate {
	return model.BankRate{Bank: bank, Group: group, Type: model.RateTypeOnline, Rates: rates}
}

func averageFor(t *testing.T, averages []model.GroupAverage, group model.Group, term model.Term) model.Rate {
	t.Helper()
	for _, avg := range averages {
		if avg.Group == group && avg.Term == term {
			return avg.AverageRate
		}
	}
	t.Fatalf("no average for %s/%s", group, term)
	return model.Rate{}
}

func TestGroupAveragesFallbackDataset(t *testing.T) {
	averages := GroupAverages(source.FallbackRates())
	require.Len(t, averages, 8, "two groups, four terms each")

	// mean(5.0, 5.1, 5.0) = 5.0333...
	big4 := averageFor(t, averages, model.GroupBig4, model.Term12M)
	assert.Equal(t, "5.03%", big4.Percent())

	// mean(5.5, 5.6, 5.4) = 5.5
	private := averageFor(t, averages, model.GroupPrivateBank, model.Term12M)
	assert.Equal(t, "5.50%", private.Percent())

	oneMonth := averageFor(t, averages, model.GroupBig4, model.Term1M)
	assert.Equal(t, "2.90%", oneMonth.Percent(), "mean(2.9, 3.0, 2.8)")
}

func TestGroupAveragesOrdering(t *testing.T) {
	rows := []model.BankRate{
		row("Techcombank", model.GroupPrivateBank, map[model.Term]model.Rate{model.Term1M: model.RateFromFloat(3.5)}),
		row("Vietcombank", model.GroupBig4, map[model.Term]model.Rate{model.Term1M: model.RateFromFloat(2.9)}),
		row("CAKE", "Digital Bank", map[model.Term]model.Rate{model.Term1M: model.RateFromFloat(4.1)}),
		row("VPBank", model.GroupPrivateBank, map[model.Term]model.Rate{model.Term1M: model.RateFromFloat(3.6)}),
	}

	averages := GroupAverages(rows)
	require.Len(t, averages, 3*len(model.Terms))

	// Groups in first-seen order, each group's terms in fixed Term order.
	assert.Equal(t, model.GroupPrivateBank, averages[0].Group)
	assert.Equal(t, model.GroupBig4, averages[4].Group)
	assert.Equal(t, model.Group("Digital Bank"), averages[8].Group)
	for i, term := range model.Terms {
		assert.Equal(t, term, averages[i].Term)
	}

	assert.Equal(t, []model.Group{model.GroupPrivateBank, model.GroupBig4, "Digital Bank"}, Groups(rows))
}

func TestGroupAveragesEmptyInput(t *testing.T) {
	assert.Empty(t, GroupAverages(nil))
	assert.Empty(t, GroupAverages([]model.BankRate{}))
	assert.Empty(t, Groups(nil))
}

func TestGroupAveragesExcludesMissingValues(t *testing.T) {
	rows := []model.BankRate{
		row("A Bank", model.GroupBig4, map[model.Term]model.Rate{
			model.Term1M:  model.RateFromFloat(3.0),
			model.Term12M: model.MissingRate(), // "updating" in the sheet
		}),
		row("B Bank", model.GroupBig4, map[model.Term]model.Rate{
			model.Term1M:  model.RateFromFloat(4.0),
			model.Term12M: model.RateFromFloat(5.0),
		}),
	}

	averages := GroupAverages(rows)

	oneMonth := averageFor(t, averages, model.GroupBig4, model.Term1M)
	assert.Equal(t, "3.50%", oneMonth.Percent())

	// The missing 12M cell is excluded, not averaged in as zero.
	twelveMonth := averageFor(t, averages, model.GroupBig4, model.Term12M)
	assert.Equal(t, "5.00%", twelveMonth.Percent())
}

func TestGroupAveragesAllMissingYieldsMissing(t *testing.T) {
	rows := []model.BankRate{
		row("A Bank", model.GroupBig4, map[model.Term]model.Rate{model.Term1M: model.RateFromFloat(3.0)}),
	}

	averages := GroupAverages(rows)

	sixMonth := averageFor(t, averages, model.GroupBig4, model.Term6M)
	assert.False(t, sixMonth.Valid(), "no usable values propagates the missing marker")
}

func TestColumnMaxima(t *testing.T) {
	maxima := ColumnMaxima(source.FallbackRates())

	assert.Equal(t, "3.60%", maxima[model.Term1M].Percent())
	assert.Equal(t, "4.00%", maxima[model.Term3M].Percent())
	assert.Equal(t, "5.20%", maxima[model.Term6M].Percent())
	assert.Equal(t, "5.60%", maxima[model.Term12M].Percent())
}

func TestColumnMaximaMissingColumn(t *testing.T) {
	rows := []model.BankRate{
		row("A Bank", model.GroupBig4, map[model.Term]model.Rate{model.Term1M: model.RateFromFloat(3.0)}),
		row("B Bank", model.GroupBig4, map[model.Term]model.Rate{model.Term1M: model.RateFromFloat(2.0)}),
	}

	maxima := ColumnMaxima(rows)
	assert.Equal(t, "3.00%", maxima[model.Term1M].Percent())
	assert.False(t, maxima[model.Term12M].Valid())

	empty := ColumnMaxima(nil)
	for _, term := range model.Terms {
		assert.False(t, empty[term].Valid())
	}
}
