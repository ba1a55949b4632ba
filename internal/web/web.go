// Package web renders the dashboard page. It owns all layout, styling, tab
// navigation and chart configuration; the rest of the service hands it data
// and treats it as a black box.
package web

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/vietdv201/EzFinance-Interest-tracker/internal/analysis"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/model"
	"github.com/vietdv201/EzFinance-Interest-tracker/internal/source"
)

//go:embed templates/dashboard.html.tmpl
var dashboardHTML string

// GroupColors fixes the chart series color per bank group. Groups not
// listed inherit the chart palette default.
var GroupColors = map[model.Group]string{
	model.GroupBig4:        "#2E86C1",
	model.GroupPrivateBank: "#FF5722",
}

// ColorFor returns the fixed chart color for a group, empty when the
// palette default applies.
func ColorFor(group model.Group) string {
	return GroupColors[group]
}

// Renderer executes the embedded dashboard template.
type Renderer struct {
	tmpl               *template.Template
	showFallbackNotice bool
}

// NewRenderer parses the embedded page template. showFallbackNotice decides
// whether a banner announces fallback data; by default the fallback stays
// silent and only logs and metrics record it.
func NewRenderer(showFallbackNotice bool) (*Renderer, error) {
	tmpl, err := template.New("dashboard").Parse(dashboardHTML)
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}
	return &Renderer{tmpl: tmpl, showFallbackNotice: showFallbackNotice}, nil
}

// DashboardData is everything one page render consumes. The renderer adds
// presentation, never data.
type DashboardData struct {
	Snapshot source.Snapshot
	Products []model.FintechProduct
	Averages []model.GroupAverage
}

// Dashboard writes the rendered page: header, two tabbed tables, divider,
// grouped bar chart, footer.
func (r *Renderer) Dashboard(w io.Writer, data DashboardData) error {
	p, err := r.buildPage(data)
	if err != nil {
		return err
	}
	return r.tmpl.Execute(w, p)
}

// page is the template's view model, preformatted so the template stays
// free of logic beyond loops and conditionals.
type page struct {
	Terms     []model.Term
	Banks     []bankRow
	Fintech   []fintechRow
	Notice    string
	NoData    bool
	ChartJSON template.JS
	FetchedAt string
}

type bankRow struct {
	Bank  string
	Group string
	Type  string
	Cells []tableCell
}

type tableCell struct {
	Text string
	Best bool
}

type fintechRow struct {
	Product string
	Type    string
	Rate    string
	MinTerm string
}

func (r *Renderer) buildPage(data DashboardData) (page, error) {
	p := page{
		Terms:     model.Terms,
		Banks:     bankRows(data.Snapshot.Rows),
		Fintech:   fintechRows(data.Products),
		NoData:    len(data.Snapshot.Rows) == 0,
		FetchedAt: data.Snapshot.FetchedAt.Format("2006-01-02 15:04 MST"),
	}
	if r.showFallbackNotice && data.Snapshot.Origin == source.OriginFallback {
		p.Notice = fallbackNotice(data.Snapshot.Reason)
	}
	if !p.NoData {
		chart, err := chartJSON(data.Averages)
		if err != nil {
			return page{}, err
		}
		p.ChartJSON = chart
	}
	return p, nil
}

func fallbackNotice(reason source.ErrorKind) string {
	if reason == source.KindSchemaMismatch {
		return "Showing built-in rates: the live worksheet did not match the expected columns."
	}
	return "Showing built-in rates: the live worksheet could not be reached."
}

func bankRows(rows []model.BankRate) []bankRow {
	maxima := analysis.ColumnMaxima(rows)

	out := make([]bankRow, 0, len(rows))
	for _, row := range rows {
		cells := make([]tableCell, 0, len(model.Terms))
		for _, term := range model.Terms {
			rate := row.Rate(term)
			cells = append(cells, tableCell{
				Text: cellText(rate),
				// Ties all get the highlight, like the best offer they are.
				Best: rate.Valid() && rate.Equal(maxima[term]),
			})
		}
		out = append(out, bankRow{
			Bank:  row.Bank,
			Group: string(row.Group),
			Type:  string(row.Type),
			Cells: cells,
		})
	}
	return out
}

func fintechRows(products []model.FintechProduct) []fintechRow {
	out := make([]fintechRow, 0, len(products))
	for _, product := range products {
		out = append(out, fintechRow{
			Product: product.Product,
			Type:    product.Type,
			Rate:    cellText(product.AnnualRatePercent),
			MinTerm: product.MinTerm,
		})
	}
	return out
}

func cellText(r model.Rate) string {
	if !r.Valid() {
		return "—"
	}
	return r.Percent()
}

// chartTrace is one bar series of the in-page chart. Missing averages
// marshal to null, which the chart draws as a gap instead of a zero bar.
type chartTrace struct {
	Name  string       `json:"name"`
	X     []model.Term `json:"x"`
	Y     []model.Rate `json:"y"`
	Color string       `json:"color,omitempty"`
}

func chartJSON(averages []model.GroupAverage) (template.JS, error) {
	order := make([]model.Group, 0, 2)
	byGroup := make(map[model.Group]map[model.Term]model.Rate)
	for _, avg := range averages {
		if _, ok := byGroup[avg.Group]; !ok {
			order = append(order, avg.Group)
			byGroup[avg.Group] = make(map[model.Term]model.Rate, len(model.Terms))
		}
		byGroup[avg.Group][avg.Term] = avg.AverageRate
	}

	traces := make([]chartTrace, 0, len(order))
	for _, group := range order {
		trace := chartTrace{
			Name:  string(group),
			X:     model.Terms,
			Color: GroupColors[group],
		}
		for _, term := range model.Terms {
			trace.Y = append(trace.Y, byGroup[group][term])
		}
		traces = append(traces, trace)
	}

	raw, err := json.Marshal(traces)
	if err != nil {
		return "", fmt.Errorf("marshal chart payload: %w", err)
	}
	// json.Marshal escapes <, > and &, so the payload can sit inside the
	// page's script tag as-is.
	return template.JS(raw), nil
}
