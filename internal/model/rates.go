package model

// Term is a deposit duration bucket used as a table column and chart category.
type Term string

// Group is a bank classification ("Big 4" state-owned banks, private banks).
// The set of groups is whatever the data contains; these constants only name
// the two that always exist in practice.
type Group string

// RateType says how the deposit is made.
type RateType string

const (
	Term1M  Term = "1M"
	Term3M  Term = "3M"
	Term6M  Term = "6M"
	Term12M Term = "12M"

	GroupBig4        Group = "Big 4"
	GroupPrivateBank Group = "Private Bank"

	RateTypeOnline  RateType = "Online"
	RateTypeCounter RateType = "Counter"
)

// Terms is the fixed column/category order used by tables, exports and the
// chart. Keep it in ascending duration order.
var Terms = []Term{Term1M, Term3M, Term6M, Term12M}

// BankRate is one bank's savings-rate row. Rates always carries all four
// terms after load; cells that could not be parsed hold the missing Rate.
// Rows are immutable once built and live for one cache window.
type BankRate struct {
	Bank  string        `json:"bank" yaml:"bank"`
	Group Group         `json:"group" yaml:"group"`
	Type  RateType      `json:"type" yaml:"type"`
	Rates map[Term]Rate `json:"rates" yaml:"rates"`
}

// Rate returns the rate for a term (missing when the term is absent).
func (b BankRate) Rate(t Term) Rate {
	return b.Rates[t]
}

// FintechProduct is one fintech-savings or bond row. Constant for the
// process lifetime.
type FintechProduct struct {
	Product           string `json:"product" yaml:"product"`
	Type              string `json:"type" yaml:"type"`
	AnnualRatePercent Rate   `json:"annual_rate_percent" yaml:"annual_rate_percent"`
	MinTerm           string `json:"min_term" yaml:"min_term"`
}

// GroupAverage is one (group, term) cell of the market-average aggregation,
// the long form a grouped bar chart consumes directly. AverageRate is the
// missing Rate when the group had no usable values for the term.
type GroupAverage struct {
	Group       Group `json:"group"`
	Term        Term  `json:"term"`
	AverageRate Rate  `json:"average_rate"`
}
