package model

// Canonical column names for the source and export tables.
const (
	ColumnMonth           = "Month"
	ColumnRevenue         = "Revenue"
	ColumnExpenses        = "Expenses"
	ColumnProfit          = "Profit"
	ColumnProfitMargin    = "Profit_Margin_Percentage"
	ColumnProfitMoMChange = "Profit_MoM_Change"
	ColumnAnalysisTime    = "Analysis_Time"
)

// RequiredColumns lists the fields every source table must provide.
func RequiredColumns() []string {
	return []string{ColumnMonth, ColumnRevenue, ColumnExpenses}
}

// RawRow is one record as read from the source, before cleaning.
type RawRow struct {
	Month    string
	Revenue  Cell
	Expenses Cell
	Extra    []string // values for RawTable.ExtraColumns, in order
	Line     int      // 1-based line in the source file, 0 if synthesized
}

// RawTable is the loader output.
type RawTable struct {
	Source       string
	Columns      []string // header as read
	ExtraColumns []string // columns outside the required set, in source order
	Rows         []RawRow
}

// HasColumn reports whether the header contains name.
func (t *RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Row is a cleaned monthly record with its derived metrics.
type Row struct {
	ProfitMarginPct    Optional `json:"profit_margin_pct"`
	ProfitMoMChangePct Optional `json:"profit_mom_change_pct"`
	Extra              []string `json:"extra,omitempty"`
	Month              Month    `json:"month"`
	Revenue            float64  `json:"revenue"`
	Expenses           float64  `json:"expenses"`
	Profit             float64  `json:"profit"`
}

// Table is an ordered sequence of rows, unique by month.
type Table struct {
	Columns      []string `json:"columns"` // source header order, required names canonical
	ExtraColumns []string `json:"extra_columns,omitempty"`
	Rows         []Row    `json:"rows"`
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Months returns the month of every row in table order.
func (t *Table) Months() []Month {
	months := make([]Month, len(t.Rows))
	for i, r := range t.Rows {
		months[i] = r.Month
	}
	return months
}

// Clone returns a deep copy so later stages never share backing arrays.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns:      append([]string(nil), t.Columns...),
		ExtraColumns: append([]string(nil), t.ExtraColumns...),
		Rows:         make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		r.Extra = append([]string(nil), r.Extra...)
		out.Rows[i] = r
	}
	return out
}
