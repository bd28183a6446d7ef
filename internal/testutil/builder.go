// Package testutil provides test fixtures for the sales analysis pipeline.
// It offers a fluent builder for raw source tables so tests read like the
// data they describe.
//
// Example usage:
//
//	raw := testutil.NewTableBuilder().
//		WithRow("January", "1500", "500").
//		WithRow("February", "1800", "600").
//		Build()
package testutil

import (
	"strconv"

	"github.com/Veraticus/salesflow/internal/model"
)

// TableBuilder constructs model.RawTable values for tests.
type TableBuilder struct {
	source  string
	columns []string
	extras  []string
	rows    []model.RawRow
}

// NewTableBuilder starts a table with the required columns.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{
		source:  "test.csv",
		columns: model.RequiredColumns(),
	}
}

// WithSource sets the table's source name.
func (b *TableBuilder) WithSource(source string) *TableBuilder {
	b.source = source
	return b
}

// WithColumns replaces the header, for example to drop a required column.
// Names outside the required set become extra columns.
func (b *TableBuilder) WithColumns(columns ...string) *TableBuilder {
	b.columns = append([]string(nil), columns...)
	b.extras = nil
	required := make(map[string]bool)
	for _, c := range model.RequiredColumns() {
		required[c] = true
	}
	for _, c := range columns {
		if !required[c] {
			b.extras = append(b.extras, c)
		}
	}
	return b
}

// WithRow appends a row whose revenue and expenses are parsed like source cells.
func (b *TableBuilder) WithRow(month, revenue, expenses string, extra ...string) *TableBuilder {
	b.rows = append(b.rows, model.RawRow{
		Month:    month,
		Revenue:  model.ParseCell(revenue),
		Expenses: model.ParseCell(expenses),
		Extra:    append([]string(nil), extra...),
		Line:     len(b.rows) + 2,
	})
	return b
}

// WithValues appends a row with numeric revenue and expenses.
func (b *TableBuilder) WithValues(month model.Month, revenue, expenses float64) *TableBuilder {
	return b.WithRow(month.String(), formatFloat(revenue), formatFloat(expenses))
}

// WithFixture appends every row of fixture.
func (b *TableBuilder) WithFixture(fixture Fixture) *TableBuilder {
	for _, r := range fixture.Rows {
		b.WithValues(r.Month, r.Revenue, r.Expenses)
	}
	return b
}

// Build returns the table. Each call returns an independent copy.
func (b *TableBuilder) Build() *model.RawTable {
	rows := make([]model.RawRow, len(b.rows))
	for i, r := range b.rows {
		r.Extra = append([]string(nil), r.Extra...)
		rows[i] = r
	}
	return &model.RawTable{
		Source:       b.source,
		Columns:      append([]string(nil), b.columns...),
		ExtraColumns: append([]string(nil), b.extras...),
		Rows:         rows,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
