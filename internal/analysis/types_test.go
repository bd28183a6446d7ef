package analysis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/salesflow/internal/common"
	"github.com/Veraticus/salesflow/internal/model"
)

func TestOptions_Validate(t *testing.T) {
	var opts Options
	require.NoError(t, opts.Validate())

	assert.NotNil(t, opts.Now)
	assert.NotNil(t, opts.ProgressFunc)
	assert.Equal(t, DefaultTimeFormat, opts.TimeFormat)

	custom := Options{TimeFormat: time.RFC3339}
	require.NoError(t, custom.Validate())
	assert.Equal(t, time.RFC3339, custom.TimeFormat)
}

func TestResult_Validate(t *testing.T) {
	ordered := salesTable(salesRow(model.January, 1, 0), salesRow(model.March, 1, 0))

	tests := []struct {
		result  *Result
		name    string
		wantErr bool
	}{
		{
			name:   "valid",
			result: &Result{AnalyzedAt: fixedTime, Table: ordered, Summary: Summary{RowCount: 2}},
		},
		{
			name:   "empty table",
			result: &Result{AnalyzedAt: fixedTime, Table: salesTable()},
		},
		{
			name:    "nil result",
			wantErr: true,
		},
		{
			name:    "missing table",
			result:  &Result{AnalyzedAt: fixedTime},
			wantErr: true,
		},
		{
			name:    "missing time",
			result:  &Result{Table: ordered, Summary: Summary{RowCount: 2}},
			wantErr: true,
		},
		{
			name:    "row count mismatch",
			result:  &Result{AnalyzedAt: fixedTime, Table: ordered, Summary: Summary{RowCount: 3}},
			wantErr: true,
		},
		{
			name: "out of order",
			result: &Result{
				AnalyzedAt: fixedTime,
				Table:      salesTable(salesRow(model.March, 1, 0), salesRow(model.January, 1, 0)),
				Summary:    Summary{RowCount: 2},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidResult)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestResult_Timestamp(t *testing.T) {
	r := &Result{AnalyzedAt: fixedTime}
	assert.Equal(t, "2024-03-05 14:30:00", r.Timestamp())

	r.TimeFormat = "2006/01/02"
	assert.Equal(t, "2024/03/05", r.Timestamp())
}

func TestResult_JSON(t *testing.T) {
	out, summary := ComputeMetrics(salesTable(salesRow(model.January, 0, 100)))
	result := &Result{AnalyzedAt: fixedTime, Table: out, Summary: summary}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	summaryJSON, ok := decoded["summary"].(map[string]any)
	require.True(t, ok)
	assert.Nil(t, summaryJSON["average_profit_margin"])
	assert.Equal(t, "January", summaryJSON["best_revenue_month"].(map[string]any)["month"])
	assert.Equal(t, false, summaryJSON["highest_growth"].(map[string]any)["sufficient"])
}

func TestGrowthResult_JSONKeepsZeroGrowth(t *testing.T) {
	_, summary := ComputeMetrics(salesTable(
		salesRow(model.January, 1500, 500),
		salesRow(model.February, 1600, 600),
	))
	require.False(t, summary.HighestGrowth.InsufficientData())

	data, err := json.Marshal(summary.HighestGrowth)
	require.NoError(t, err)
	assert.JSONEq(t, `{"month":"February","value":0,"sufficient":true}`, string(data))
}
