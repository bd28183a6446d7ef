package analysis

import (
	"github.com/Veraticus/salesflow/internal/common"
	"github.com/Veraticus/salesflow/internal/model"
)

// SchemaValidator checks that a raw table can enter the pipeline.
type SchemaValidator struct {
	required []string
}

// NewSchemaValidator creates a validator for the fixed Month/Revenue/Expenses schema.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{required: model.RequiredColumns()}
}

// Validate returns raw unchanged when every required column is present and
// every month label is a distinct calendar month. Missing columns yield a
// *common.SchemaError naming all of them; bad labels a *common.MonthError.
func (v *SchemaValidator) Validate(raw *model.RawTable) (*model.RawTable, error) {
	var missing []string
	for _, col := range v.required {
		if !raw.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &common.SchemaError{Missing: missing}
	}

	if problems := checkMonths(raw.Rows); len(problems) > 0 {
		return nil, &common.MonthError{Problems: problems}
	}

	return raw, nil
}

func checkMonths(rows []model.RawRow) []common.MonthProblem {
	var problems []common.MonthProblem
	seen := make(map[model.Month]int, len(rows))

	for _, row := range rows {
		m, err := model.ParseMonth(row.Month)
		if err != nil {
			problems = append(problems, common.MonthProblem{
				Label:  row.Month,
				Reason: "unrecognized month",
				Line:   row.Line,
			})
			continue
		}
		if _, dup := seen[m]; dup {
			problems = append(problems, common.MonthProblem{
				Label:     row.Month,
				Reason:    "duplicate month",
				Line:      row.Line,
				Duplicate: true,
			})
			continue
		}
		seen[m] = row.Line
	}
	return problems
}
