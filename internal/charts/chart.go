// Package charts builds the revenue, margin and profit charts and renders
// them to the terminal and to Excel workbooks.
package charts

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Veraticus/salesflow/internal/model"
)

// Kind selects how a chart is drawn.
type Kind int

const (
	// KindBar draws one bar per month.
	KindBar Kind = iota
	// KindLine draws a trend line through the months.
	KindLine
)

// Point is one labeled value. Undefined values are drawn as gaps.
type Point struct {
	Label   string
	Value   float64
	Defined bool
}

// Chart is a definition applied to a table.
type Chart struct {
	Format func(float64) string
	Name   string
	Title  string
	XLabel string
	YLabel string
	// NumFmt is the Excel number format for data labels.
	NumFmt string
	Points []Point
	Kind   Kind
}

// Label formats a point's value, or "n/a" when undefined.
func (c Chart) Label(p Point) string {
	if !p.Defined {
		return "n/a"
	}
	return c.Format(p.Value)
}

// Definition describes a chart independent of any data.
type Definition struct {
	Value  func(model.Row) model.Optional
	Format func(float64) string
	Name   string
	Title  string
	XLabel string
	YLabel string
	NumFmt string
	Kind   Kind
}

// Build extracts the chart's points from t in table order.
func (d Definition) Build(t *model.Table) Chart {
	chart := Chart{
		Name:   d.Name,
		Title:  d.Title,
		XLabel: d.XLabel,
		YLabel: d.YLabel,
		NumFmt: d.NumFmt,
		Kind:   d.Kind,
		Format: d.Format,
	}
	if t == nil {
		return chart
	}
	chart.Points = make([]Point, 0, t.Len())
	for _, r := range t.Rows {
		v, ok := d.Value(r).Get()
		chart.Points = append(chart.Points, Point{Label: r.Month.String(), Value: v, Defined: ok})
	}
	return chart
}

// Chart definitions.
var (
	Revenue = Definition{
		Name:   "monthly_revenue",
		Title:  "Monthly Revenue Analysis",
		XLabel: "Month",
		YLabel: "Revenue ($)",
		NumFmt: "#,##0",
		Kind:   KindBar,
		Format: FormatThousands,
		Value:  func(r model.Row) model.Optional { return model.Some(r.Revenue) },
	}

	Margin = Definition{
		Name:   "profit_margin",
		Title:  "Monthly Profit Margin Percentage",
		XLabel: "Month",
		YLabel: "Profit Margin Percentage (%)",
		NumFmt: `0.00"%"`,
		Kind:   KindBar,
		Format: FormatPercent,
		Value:  func(r model.Row) model.Optional { return r.ProfitMarginPct },
	}

	ProfitTrend = Definition{
		Name:   "profit_trend",
		Title:  "Monthly Profit Trend",
		XLabel: "Month",
		YLabel: "Profit ($)",
		NumFmt: "#,##0",
		Kind:   KindLine,
		Format: FormatThousands,
		Value:  func(r model.Row) model.Optional { return model.Some(r.Profit) },
	}
)

// Definitions returns every chart in display order.
func Definitions() []Definition {
	return []Definition{Revenue, Margin, ProfitTrend}
}

var printer = message.NewPrinter(language.English)

// FormatThousands renders v rounded to whole units with thousands separators.
func FormatThousands(v float64) string {
	return printer.Sprintf("%.0f", v)
}

// FormatPercent renders v with two decimals and a percent sign.
func FormatPercent(v float64) string {
	return printer.Sprintf("%.2f%%", v)
}
