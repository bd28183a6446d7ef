package analysis

import (
	"fmt"
	"time"

	"github.com/Veraticus/salesflow/internal/common"
	"github.com/Veraticus/salesflow/internal/model"
)

// Stage names reported through ProgressCallback.
const (
	StageLoading   = "Loading source"
	StageSchema    = "Validating schema"
	StageCleaning  = "Cleaning values"
	StageOrdering  = "Ordering months"
	StageMetrics   = "Computing metrics"
	StageComplete  = "Analysis complete"
	StageExporting = "Exporting results"
)

// ProgressCallback provides updates during analysis execution.
type ProgressCallback func(stage string, percent int)

// Options configures a single analysis run.
type Options struct {
	// Now supplies the analysis timestamp. Defaults to time.Now.
	Now          func() time.Time `json:"-"`
	ProgressFunc ProgressCallback `json:"-"`
	// TimeFormat is the layout used for the Analysis_Time column.
	TimeFormat string `json:"time_format"`
}

// DefaultTimeFormat renders timestamps as 2006-01-02 15:04:05.
const DefaultTimeFormat = "2006-01-02 15:04:05"

// Validate fills defaults and checks the options.
func (o *Options) Validate() error {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.TimeFormat == "" {
		o.TimeFormat = DefaultTimeFormat
	}
	if o.ProgressFunc == nil {
		o.ProgressFunc = func(string, int) {}
	}
	return nil
}

// CleaningIssue records one substituted revenue or expense value.
type CleaningIssue struct {
	Month string         `json:"month"`
	Field string         `json:"field"`
	Raw   string         `json:"raw"`
	Kind  model.CellKind `json:"kind"`
	Line  int            `json:"line,omitempty"`
}

// CleaningReport lists every substitution the cleaner made.
type CleaningReport struct {
	Issues []CleaningIssue `json:"issues"`
}

// Replaced returns the number of substituted values.
func (r CleaningReport) Replaced() int {
	return len(r.Issues)
}

// MonthValue pairs a month with a metric value.
type MonthValue struct {
	Month model.Month `json:"month"`
	Value float64     `json:"value"`
}

// GrowthResult is the outcome of the highest month-over-month growth query.
type GrowthResult struct {
	Month      model.Month `json:"month,omitempty"`
	Value      float64     `json:"value"`
	Sufficient bool        `json:"sufficient"`
}

// InsufficientData reports whether no row had a defined growth value.
func (g GrowthResult) InsufficientData() bool {
	return !g.Sufficient
}

// Summary holds the dataset-level aggregates and extremum queries.
type Summary struct {
	BestRevenueMonth    *MonthValue    `json:"best_revenue_month,omitempty"`
	WorstProfitMonth    *MonthValue    `json:"worst_profit_month,omitempty"`
	AverageRevenue      model.Optional `json:"average_revenue"`
	AverageExpenses     model.Optional `json:"average_expenses"`
	AverageProfit       model.Optional `json:"average_profit"`
	AverageProfitMargin model.Optional `json:"average_profit_margin"`
	AboveAverageRevenue []model.Month  `json:"above_average_revenue"`
	AboveAverageMargin  []model.Month  `json:"above_average_margin"`
	HighestGrowth       GrowthResult   `json:"highest_growth"`
	RowCount            int            `json:"row_count"`
	TotalRevenue        float64        `json:"total_revenue"`
	TotalExpenses       float64        `json:"total_expenses"`
	TotalProfit         float64        `json:"total_profit"`
}

// Result is the finalized table plus everything computed about it.
type Result struct {
	AnalyzedAt    time.Time      `json:"analyzed_at"`
	Table         *model.Table   `json:"table"`
	ID            string         `json:"id"`
	Source        string         `json:"source"`
	TimeFormat    string         `json:"-"`
	Cleaning      CleaningReport `json:"cleaning"`
	Summary       Summary        `json:"summary"`
	SourceCreated bool           `json:"source_created"`
}

// Timestamp formats AnalyzedAt for display and export.
func (r *Result) Timestamp() string {
	layout := r.TimeFormat
	if layout == "" {
		layout = DefaultTimeFormat
	}
	return r.AnalyzedAt.Format(layout)
}

// Validate ensures the Result is complete enough to report or export.
func (r *Result) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: result is nil", common.ErrInvalidResult)
	}
	if r.Table == nil {
		return fmt.Errorf("%w: table is required", common.ErrInvalidResult)
	}
	if r.AnalyzedAt.IsZero() {
		return fmt.Errorf("%w: analysis time is required", common.ErrInvalidResult)
	}
	if r.Summary.RowCount != r.Table.Len() {
		return fmt.Errorf("%w: summary row count %d does not match table length %d", common.ErrInvalidResult, r.Summary.RowCount, r.Table.Len())
	}
	months := r.Table.Months()
	for i := 1; i < len(months); i++ {
		if months[i] <= months[i-1] {
			return fmt.Errorf("%w: table is not in calendar order at row %d", common.ErrInvalidResult, i)
		}
	}
	return nil
}
