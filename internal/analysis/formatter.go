package analysis

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/salesflow/internal/cli"
	"github.com/Veraticus/salesflow/internal/model"
)

const notAvailable = "n/a"

// CLIFormatter implements ReportFormatter for terminal display.
type CLIFormatter struct {
	styles *Styles
}

// NewCLIFormatter creates a new CLI formatter with default styles.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{
		styles: NewStyles(),
	}
}

// WithWidth returns a formatter whose boxed sections fit a terminal of the
// given width. Zero or negative widths leave the layout unchanged.
func (f *CLIFormatter) WithWidth(width int) *CLIFormatter {
	return &CLIFormatter{styles: f.styles.WithWidth(width)}
}

// FormatSummary renders the full analysis report.
func (f *CLIFormatter) FormatSummary(result *Result) string {
	if result == nil {
		return f.styles.Error.Render("No analysis result available")
	}

	sections := []string{
		f.formatHeader(result),
		f.formatTotals(result.Summary),
		f.formatBreakdown(result.Table),
		f.formatHighlights(result.Summary),
	}

	if result.Cleaning.Replaced() > 0 {
		sections = append(sections, f.formatCleaning(result.Cleaning))
	}

	return strings.Join(sections, "\n\n")
}

// FormatLoadStatus reports whether the source was read or created.
func (f *CLIFormatter) FormatLoadStatus(result *Result) string {
	if result == nil {
		return ""
	}
	if result.SourceCreated {
		return cli.FormatWarning(fmt.Sprintf("%s not found", result.Source)) + "\n" +
			cli.FormatSuccess(fmt.Sprintf("Sample dataset created at: %s", result.Source))
	}
	return cli.FormatSuccess(fmt.Sprintf("File loaded from: %s", result.Source))
}

func (f *CLIFormatter) formatHeader(result *Result) string {
	title := cli.FormatTitle("Monthly Sales Analysis")
	lines := []string{
		title,
		f.line("Analysis Time", result.Timestamp()),
		f.line("Months Analyzed", fmt.Sprintf("%d", result.Summary.RowCount)),
	}
	return strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatTotals(s Summary) string {
	figure := func(v string) string { return f.styles.Figure.Render(v) }
	lines := []string{
		f.line("Total Revenue", figure(formatCurrency(s.TotalRevenue))),
		f.line("Average Monthly Revenue", formatOptionalCurrency(s.AverageRevenue)),
		f.line("Total Expenses", figure(formatCurrency(s.TotalExpenses))),
		f.line("Average Monthly Expenses", formatOptionalCurrency(s.AverageExpenses)),
		f.line("Total Profit", f.styles.ForValue(s.TotalProfit).Render(formatCurrency(s.TotalProfit))),
		f.line("Average Monthly Profit", f.styles.ForOptional(s.AverageProfit).Render(formatOptionalCurrency(s.AverageProfit))),
		f.line("Average Profit Margin", f.styles.ForOptional(s.AverageProfitMargin).Render(formatOptionalPercent(s.AverageProfitMargin, false))),
	}
	return f.styles.RenderBox(strings.Join(lines, "\n"), cli.MoneyIcon+" Totals", f.styles.Box)
}

func (f *CLIFormatter) formatBreakdown(t *model.Table) string {
	title := f.styles.Subtitle.Render("Monthly Breakdown")
	if t == nil || t.Len() == 0 {
		return title + "\n" + f.styles.Subtle.Render("No rows to show")
	}

	rows := make([][]string, 0, t.Len())
	for _, r := range t.Rows {
		rows = append(rows, []string{
			r.Month.String(),
			fmt.Sprintf("%.2f", r.Revenue),
			fmt.Sprintf("%.2f", r.Expenses),
			fmt.Sprintf("%.2f", r.Profit),
			r.ProfitMarginPct.Format(2, notAvailable),
			formatOptionalPercent(r.ProfitMoMChangePct, true),
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(f.styles.TableBorder).
		Headers("Month", "Revenue", "Expenses", "Profit", "Margin %", "MoM Change").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return f.styles.TableHeader
			}
			style := f.styles.TableCell
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			if row < 0 || row >= t.Len() {
				return style
			}
			switch col {
			case 3:
				return style.Inherit(f.styles.ForValue(t.Rows[row].Profit))
			case 4:
				return style.Inherit(f.styles.ForOptional(t.Rows[row].ProfitMarginPct))
			case 5:
				return style.Inherit(f.styles.ForOptional(t.Rows[row].ProfitMoMChangePct))
			}
			return style
		})

	return title + "\n" + tbl.String()
}

func (f *CLIFormatter) formatHighlights(s Summary) string {
	lines := []string{f.styles.Subtitle.Render(cli.TrendIcon + " Highlights")}

	if s.BestRevenueMonth != nil {
		lines = append(lines, f.line("Best Performing Month",
			fmt.Sprintf("%s with revenue of %s",
				f.styles.Highlight.Render(s.BestRevenueMonth.Month.String()),
				formatCurrency(s.BestRevenueMonth.Value))))
	} else {
		lines = append(lines, f.line("Best Performing Month", notAvailable))
	}

	if s.WorstProfitMonth != nil {
		lines = append(lines, f.line("Lowest Profit Month",
			fmt.Sprintf("%s with profit of %s",
				s.WorstProfitMonth.Month.String(),
				formatCurrency(s.WorstProfitMonth.Value))))
	}

	lines = append(lines,
		f.line("Above Average Revenue", joinMonths(s.AboveAverageRevenue)),
		f.line("Above Average Margin", joinMonths(s.AboveAverageMargin)),
	)

	if s.HighestGrowth.InsufficientData() {
		lines = append(lines, f.line("Highest Profit Growth",
			f.styles.Undefined.Render("insufficient data (needs a prior month with non-zero profit)")))
	} else {
		growth := fmt.Sprintf("%s (%+.2f%%)", s.HighestGrowth.Month, s.HighestGrowth.Value)
		lines = append(lines, f.line("Highest Profit Growth",
			f.styles.ForValue(s.HighestGrowth.Value).Render(growth)))
	}

	return strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatCleaning(report CleaningReport) string {
	header := cli.FormatWarning(fmt.Sprintf("%d missing or non-numeric values were replaced with 0", report.Replaced()))

	lines := []string{header}
	for _, issue := range report.Issues {
		where := issue.Month
		if issue.Line > 0 {
			where = fmt.Sprintf("line %d, %s", issue.Line, issue.Month)
		}
		raw := issue.Raw
		if strings.TrimSpace(raw) == "" {
			raw = "<empty>"
		}
		lines = append(lines, f.styles.Subtle.Render(
			fmt.Sprintf("  %s %s: %q (%s)", where, issue.Field, raw, issue.Kind)))
	}
	return strings.Join(lines, "\n")
}

func (f *CLIFormatter) line(label, value string) string {
	return f.styles.Label.Render(label+":") + " " + value
}

func formatCurrency(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func formatOptionalCurrency(o model.Optional) string {
	v, ok := o.Get()
	if !ok {
		return notAvailable
	}
	return formatCurrency(v)
}

func formatOptionalPercent(o model.Optional, signed bool) string {
	v, ok := o.Get()
	if !ok {
		return notAvailable
	}
	if signed {
		return fmt.Sprintf("%+.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

func joinMonths(months []model.Month) string {
	if len(months) == 0 {
		return "none"
	}
	names := make([]string, len(months))
	for i, m := range months {
		names[i] = m.String()
	}
	return strings.Join(names, ", ")
}
