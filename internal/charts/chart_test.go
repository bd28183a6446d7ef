package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/salesflow/internal/model"
)

func sampleTable() *model.Table {
	return &model.Table{Rows: []model.Row{
		{Month: model.January, Revenue: 1500, Expenses: 500, Profit: 1000, ProfitMarginPct: model.Some(66.666666)},
		{Month: model.February, Revenue: 0, Expenses: 600, Profit: -600, ProfitMarginPct: model.None()},
		{Month: model.March, Revenue: 12500, Expenses: 800, Profit: 11700, ProfitMarginPct: model.Some(93.6)},
	}}
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		format   func(float64) string
		name     string
		expected string
		value    float64
	}{
		{name: "thousands", format: FormatThousands, value: 1500, expected: "1,500"},
		{name: "thousands rounds", format: FormatThousands, value: 2399.6, expected: "2,400"},
		{name: "thousands small", format: FormatThousands, value: 800, expected: "800"},
		{name: "thousands negative", format: FormatThousands, value: -12500, expected: "-12,500"},
		{name: "percent", format: FormatPercent, value: 66.666666, expected: "66.67%"},
		{name: "percent zero", format: FormatPercent, value: 0, expected: "0.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format(tt.value))
		})
	}
}

func TestDefinition_Build(t *testing.T) {
	revenue := Revenue.Build(sampleTable())
	assert.Equal(t, "Monthly Revenue Analysis", revenue.Title)
	require.Len(t, revenue.Points, 3)
	assert.Equal(t, Point{Label: "January", Value: 1500, Defined: true}, revenue.Points[0])
	assert.Equal(t, "1,500", revenue.Label(revenue.Points[0]))

	margin := Margin.Build(sampleTable())
	assert.Equal(t, "Monthly Profit Margin Percentage", margin.Title)
	assert.Equal(t, "66.67%", margin.Label(margin.Points[0]))
	assert.False(t, margin.Points[1].Defined)
	assert.Equal(t, "n/a", margin.Label(margin.Points[1]))

	trend := ProfitTrend.Build(sampleTable())
	assert.Equal(t, KindLine, trend.Kind)
	assert.Equal(t, -600.0, trend.Points[1].Value)

	empty := Revenue.Build(nil)
	assert.Empty(t, empty.Points)
}

func TestDefinitions(t *testing.T) {
	names := make([]string, 0, 3)
	for _, d := range Definitions() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"monthly_revenue", "profit_margin", "profit_trend"}, names)
}
