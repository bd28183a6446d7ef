package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/salesflow/internal/common"
	"github.com/Veraticus/salesflow/internal/dataset"
	"github.com/Veraticus/salesflow/internal/model"
	"github.com/Veraticus/salesflow/internal/testutil"
)

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) Load(ctx context.Context) (*dataset.LoadResult, error) {
	args := m.Called(ctx)
	if result, ok := args.Get(0).(*dataset.LoadResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) Export(ctx context.Context, result *Result) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

var fixedTime = time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

func fixedOptions() Options {
	return Options{Now: func() time.Time { return fixedTime }}
}

func newTestEngine(t *testing.T, raw *model.RawTable) (*Engine, *mockLoader, *mockExporter) {
	t.Helper()
	loader := &mockLoader{}
	exporter := &mockExporter{}
	if raw != nil {
		loader.On("Load", mock.Anything).Return(&dataset.LoadResult{Table: raw, Path: raw.Source}, nil)
	}
	engine, err := NewEngine(Deps{Loader: loader, Exporter: exporter})
	require.NoError(t, err)
	return engine, loader, exporter
}

func TestNewEngine(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		deps    Deps
		wantErr bool
	}{
		{
			name: "valid dependencies",
			deps: Deps{Loader: &mockLoader{}, Exporter: &mockExporter{}},
		},
		{
			name:    "missing loader",
			deps:    Deps{Exporter: &mockExporter{}},
			wantErr: true,
			errMsg:  "loader dependency is required",
		},
		{
			name:    "missing exporter",
			deps:    Deps{Loader: &mockLoader{}},
			wantErr: true,
			errMsg:  "exporter dependency is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewEngine(tt.deps)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, engine)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, engine.deps.Validator)
			assert.NotNil(t, engine.deps.Logger)
		})
	}
}

func TestEngine_Analyze(t *testing.T) {
	raw := testutil.NewTableBuilder().
		WithRow("February", "1800", "600").
		WithRow("January", "1500", "500").
		Build()
	engine, loader, _ := newTestEngine(t, raw)

	result, err := engine.Analyze(context.Background(), fixedOptions())

	require.NoError(t, err)
	loader.AssertExpectations(t)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "test.csv", result.Source)
	assert.Equal(t, fixedTime, result.AnalyzedAt)
	assert.Equal(t, "2024-03-05 14:30:00", result.Timestamp())
	assert.Equal(t, []model.Month{model.January, model.February}, result.Table.Months())
	assert.Equal(t, 2, result.Summary.RowCount)
	assert.NoError(t, result.Validate())
}

func TestEngine_Analyze_ProgressStages(t *testing.T) {
	engine, _, _ := newTestEngine(t, testutil.NewTableBuilder().WithFixture(testutil.FixtureJanFeb).Build())

	var stages []string
	var percents []int
	opts := fixedOptions()
	opts.ProgressFunc = func(stage string, percent int) {
		stages = append(stages, stage)
		percents = append(percents, percent)
	}

	_, err := engine.Analyze(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{StageLoading, StageSchema, StageCleaning, StageOrdering, StageMetrics, StageComplete}, stages)
	assert.IsIncreasing(t, percents)
	assert.Equal(t, 100, percents[len(percents)-1])
}

func TestEngine_Analyze_MissingColumn(t *testing.T) {
	raw := testutil.NewTableBuilder().
		WithColumns("Month", "Revenue").
		WithRow("January", "1500", "").
		Build()
	engine, _, exporter := newTestEngine(t, raw)

	result, err := engine.Analyze(context.Background(), fixedOptions())

	assert.Nil(t, result)
	var schemaErr *common.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"Expenses"}, schemaErr.Missing)
	assert.True(t, common.IsFatal(err))
	exporter.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
}

func TestEngine_Analyze_LoaderError(t *testing.T) {
	loader := &mockLoader{}
	readErr := &common.SourceReadError{Path: "in.csv", Err: common.ErrEmptySource}
	loader.On("Load", mock.Anything).Return(nil, readErr)
	engine, err := NewEngine(Deps{Loader: loader, Exporter: &mockExporter{}})
	require.NoError(t, err)

	_, err = engine.Analyze(context.Background(), fixedOptions())

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEmptySource)
}

func TestEngine_Analyze_SourceCreated(t *testing.T) {
	loader := &mockLoader{}
	loader.On("Load", mock.Anything).Return(&dataset.LoadResult{
		Table:   dataset.SampleTable(),
		Path:    "sale_data.csv",
		Created: true,
	}, nil)
	engine, err := NewEngine(Deps{Loader: loader, Exporter: &mockExporter{}})
	require.NoError(t, err)

	result, err := engine.Analyze(context.Background(), fixedOptions())

	require.NoError(t, err)
	assert.True(t, result.SourceCreated)
	assert.Equal(t, "sale_data.csv", result.Source)
	assert.Equal(t, 12, result.Summary.RowCount)
	require.NotNil(t, result.Summary.BestRevenueMonth)
	assert.Equal(t, model.December, result.Summary.BestRevenueMonth.Month)
}

func TestEngine_AnalyzeTable_Idempotent(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	raw := testutil.NewTableBuilder().
		WithRow("March", "2400", "800").
		WithRow("January", "", "500").
		WithRow("February", "1800", "oops").
		Build()

	first, err := engine.AnalyzeTable(raw, fixedOptions())
	require.NoError(t, err)
	second, err := engine.AnalyzeTable(raw, Options{})
	require.NoError(t, err)

	assert.Equal(t, first.Table, second.Table)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.Cleaning, second.Cleaning)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "January", raw.Rows[1].Month, "input is never reordered")
}

func TestEngine_AnalyzeTable_SingleRow(t *testing.T) {
	engine, _, _ := newTestEngine(t, nil)
	raw := testutil.NewTableBuilder().WithFixture(testutil.FixtureSingleMonth).Build()

	result, err := engine.AnalyzeTable(raw, fixedOptions())

	require.NoError(t, err)
	assert.True(t, result.Summary.HighestGrowth.InsufficientData())
	assert.False(t, result.Table.Rows[0].ProfitMoMChangePct.Valid)
}

func TestEngine_Export(t *testing.T) {
	engine, _, exporter := newTestEngine(t, nil)
	result, err := engine.AnalyzeTable(testutil.NewTableBuilder().WithFixture(testutil.FixtureJanFeb).Build(), fixedOptions())
	require.NoError(t, err)

	exporter.On("Export", mock.Anything, result).Return(nil).Once()

	var last int
	err = engine.Export(context.Background(), result, func(_ string, percent int) { last = percent })

	require.NoError(t, err)
	assert.Equal(t, 100, last)
	exporter.AssertExpectations(t)
}

func TestEngine_Export_Failure(t *testing.T) {
	engine, _, exporter := newTestEngine(t, nil)
	result, err := engine.AnalyzeTable(testutil.NewTableBuilder().WithFixture(testutil.FixtureJanFeb).Build(), fixedOptions())
	require.NoError(t, err)

	exportErr := &common.ExportError{Path: "out.csv", Err: errors.New("disk full")}
	exporter.On("Export", mock.Anything, result).Return(exportErr)

	err = engine.Export(context.Background(), result, nil)

	require.Error(t, err)
	assert.False(t, common.IsFatal(err))
	assert.Equal(t, 2, result.Table.Len(), "result survives a failed export")
}

func TestEngine_Export_InvalidResult(t *testing.T) {
	engine, _, exporter := newTestEngine(t, nil)

	err := engine.Export(context.Background(), &Result{}, nil)

	require.Error(t, err)
	exporter.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
}
