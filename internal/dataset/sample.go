package dataset

import "github.com/Veraticus/salesflow/internal/model"

var (
	sampleRevenue  = [12]float64{1500, 1800, 2400, 2000, 2300, 1900, 2100, 2200, 2500, 2700, 2600, 2800}
	sampleExpenses = [12]float64{500, 600, 800, 700, 900, 750, 850, 950, 1000, 1100, 1050, 1200}
)

// SampleTable returns the fixed twelve-month illustrative dataset used when no
// source file exists.
func SampleTable() *model.RawTable {
	rows := make([]model.RawRow, 0, 12)
	for i, m := range model.AllMonths() {
		rows = append(rows, model.RawRow{
			Month:    m.String(),
			Revenue:  model.NumberCell(sampleRevenue[i]),
			Expenses: model.NumberCell(sampleExpenses[i]),
		})
	}
	return &model.RawTable{
		Source:  "sample",
		Columns: model.RequiredColumns(),
		Rows:    rows,
	}
}
