package analysis

import (
	"log/slog"

	"github.com/Veraticus/salesflow/internal/model"
)

// Cleaner converts validated raw rows into numeric rows.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a cleaner that reports substitutions to logger.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger}
}

// Clean builds a new table from raw. Missing or unparseable revenue and
// expense cells become 0; no row is ever dropped. raw must have passed
// SchemaValidator.
func (c *Cleaner) Clean(raw *model.RawTable) (*model.Table, CleaningReport) {
	table := &model.Table{
		Columns:      append([]string(nil), raw.Columns...),
		ExtraColumns: append([]string(nil), raw.ExtraColumns...),
		Rows:         make([]model.Row, 0, len(raw.Rows)),
	}
	var report CleaningReport

	for _, r := range raw.Rows {
		// Labels were checked by the validator.
		month, _ := model.ParseMonth(r.Month)

		revenue := c.numeric(r, model.ColumnRevenue, r.Revenue, &report)
		expenses := c.numeric(r, model.ColumnExpenses, r.Expenses, &report)

		table.Rows = append(table.Rows, model.Row{
			Month:    month,
			Revenue:  revenue,
			Expenses: expenses,
			Extra:    append([]string(nil), r.Extra...),
		})
	}

	if report.Replaced() > 0 {
		c.logger.Warn("Missing or non-numeric values found, filling with 0",
			"replaced", report.Replaced(),
			"rows", len(raw.Rows))
	}

	return table, report
}

func (c *Cleaner) numeric(row model.RawRow, field string, cell model.Cell, report *CleaningReport) float64 {
	if cell.IsNumber() {
		return cell.Number
	}
	report.Issues = append(report.Issues, CleaningIssue{
		Month: row.Month,
		Field: field,
		Raw:   cell.Raw,
		Kind:  cell.Kind,
		Line:  row.Line,
	})
	c.logger.Debug("Substituted value",
		"month", row.Month,
		"field", field,
		"raw", cell.Raw,
		"kind", cell.Kind.String())
	return 0
}
