// Package dataset reads and writes the monthly sales source table.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/salesflow/internal/common"
	"github.com/Veraticus/salesflow/internal/model"
)

const utf8BOM = "\ufeff"

// ReadCSV parses a sales table from r. Header names for the required columns
// are matched case-insensitively; other columns are carried through verbatim.
// A missing required column is not an error here, the validator reports it.
func ReadCSV(r io.Reader, source string) (*model.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, common.ErrEmptySource
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	layout, err := newColumnLayout(header)
	if err != nil {
		return nil, err
	}

	table := &model.RawTable{
		Source:       source,
		Columns:      layout.header(),
		ExtraColumns: layout.extraNames(),
	}

	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read record: %w", readErr)
		}

		line, _ := reader.FieldPos(0)
		if len(record) > len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d",
				common.ErrMalformedRow, line, len(record), len(header))
		}
		table.Rows = append(table.Rows, layout.row(record, line))
	}

	return table, nil
}

// WriteCSV writes the raw table with its original columns.
func WriteCSV(w io.Writer, table *model.RawTable) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	layout, err := newColumnLayout(table.Columns)
	if err != nil {
		return err
	}

	for _, row := range table.Rows {
		if err := cw.Write(layout.record(row)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// derivedColumns are recomputed on every run, so a previous result file can
// be analysed again without its stale values riding along as extras.
var derivedColumns = []string{
	model.ColumnProfit,
	model.ColumnProfitMargin,
	model.ColumnProfitMoMChange,
	model.ColumnAnalysisTime,
}

func isDerivedColumn(name string) bool {
	for _, c := range derivedColumns {
		if strings.EqualFold(name, c) {
			return true
		}
	}
	return false
}

// columnLayout maps header positions onto RawRow fields.
type columnLayout struct {
	columns  []string
	extras   []int
	derived  []int
	month    int
	revenue  int
	expenses int
}

func newColumnLayout(header []string) (*columnLayout, error) {
	l := &columnLayout{
		columns:  make([]string, len(header)),
		month:    -1,
		revenue:  -1,
		expenses: -1,
	}

	for i, name := range header {
		trimmed := strings.TrimSpace(name)
		var slot *int
		switch {
		case strings.EqualFold(trimmed, model.ColumnMonth):
			slot, trimmed = &l.month, model.ColumnMonth
		case strings.EqualFold(trimmed, model.ColumnRevenue):
			slot, trimmed = &l.revenue, model.ColumnRevenue
		case strings.EqualFold(trimmed, model.ColumnExpenses):
			slot, trimmed = &l.expenses, model.ColumnExpenses
		}

		if slot == nil {
			l.columns[i] = name
			if isDerivedColumn(trimmed) {
				l.derived = append(l.derived, i)
				continue
			}
			l.extras = append(l.extras, i)
			continue
		}
		if *slot >= 0 {
			return nil, fmt.Errorf("duplicate column %q", trimmed)
		}
		*slot = i
		l.columns[i] = trimmed
	}
	return l, nil
}

// header returns the column names in source order without derived columns.
func (l *columnLayout) header() []string {
	if len(l.derived) == 0 {
		return l.columns
	}
	names := make([]string, 0, len(l.columns)-len(l.derived))
	next := 0
	for i, name := range l.columns {
		if next < len(l.derived) && l.derived[next] == i {
			next++
			continue
		}
		names = append(names, name)
	}
	return names
}

func (l *columnLayout) extraNames() []string {
	names := make([]string, 0, len(l.extras))
	for _, i := range l.extras {
		names = append(names, l.columns[i])
	}
	return names
}

func (l *columnLayout) row(record []string, line int) model.RawRow {
	field := func(i int) (string, bool) {
		if i < 0 || i >= len(record) {
			return "", false
		}
		return record[i], true
	}
	cell := func(i int) model.Cell {
		raw, ok := field(i)
		if !ok {
			return model.MissingCell()
		}
		return model.ParseCell(raw)
	}

	month, _ := field(l.month)
	row := model.RawRow{
		Month:    month,
		Revenue:  cell(l.revenue),
		Expenses: cell(l.expenses),
		Line:     line,
	}
	if len(l.extras) > 0 {
		row.Extra = make([]string, len(l.extras))
		for j, i := range l.extras {
			row.Extra[j], _ = field(i)
		}
	}
	return row
}

func (l *columnLayout) record(row model.RawRow) []string {
	record := make([]string, len(l.columns))
	if l.month >= 0 {
		record[l.month] = row.Month
	}
	if l.revenue >= 0 {
		record[l.revenue] = row.Revenue.Raw
	}
	if l.expenses >= 0 {
		record[l.expenses] = row.Expenses.Raw
	}
	for j, i := range l.extras {
		if j < len(row.Extra) {
			record[i] = row.Extra[j]
		}
	}
	return record
}
