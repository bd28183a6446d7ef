package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Veraticus/salesflow/internal/model"
)

// Analyze loads the source table and runs it through every pipeline stage.
// Each stage returns a new value; nothing produced earlier is mutated.
func (e *Engine) Analyze(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	progress := opts.ProgressFunc

	progress(StageLoading, 10)
	loaded, err := e.deps.Loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	result, err := e.AnalyzeTable(loaded.Table, opts)
	if err != nil {
		return nil, err
	}
	result.Source = loaded.Path
	result.SourceCreated = loaded.Created

	e.deps.Logger.Info("Analysis finished",
		"id", result.ID,
		"rows", result.Summary.RowCount,
		"replaced_values", result.Cleaning.Replaced(),
		"analyzed_at", result.Timestamp())

	progress(StageComplete, 100)
	return result, nil
}

// AnalyzeTable runs the pipeline on an already loaded table.
func (e *Engine) AnalyzeTable(raw *model.RawTable, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result, err := e.run(raw, opts)
	if err != nil {
		return nil, err
	}
	result.Source = raw.Source
	return result, nil
}

func (e *Engine) run(raw *model.RawTable, opts Options) (*Result, error) {
	progress := opts.ProgressFunc

	progress(StageSchema, 30)
	validated, err := e.deps.Validator.Validate(raw)
	if err != nil {
		e.deps.Logger.Error("Source table rejected", "source", raw.Source, "error", err)
		return nil, err
	}

	progress(StageCleaning, 45)
	cleaned, cleaning := e.cleaner.Clean(validated)

	progress(StageOrdering, 60)
	ordered := OrderByMonth(cleaned)

	progress(StageMetrics, 80)
	table, summary := ComputeMetrics(ordered)

	return &Result{
		ID:         uuid.New().String(),
		AnalyzedAt: opts.Now(),
		TimeFormat: opts.TimeFormat,
		Table:      table,
		Summary:    summary,
		Cleaning:   cleaning,
	}, nil
}

// Export hands the result to the configured exporter. The in-memory result
// stays valid whatever happens here.
func (e *Engine) Export(ctx context.Context, result *Result, progress ProgressCallback) error {
	if progress == nil {
		progress = func(string, int) {}
	}
	if err := result.Validate(); err != nil {
		return fmt.Errorf("refusing to export: %w", err)
	}

	progress(StageExporting, 90)
	if err := e.deps.Exporter.Export(ctx, result); err != nil {
		e.deps.Logger.Error("Export failed", "id", result.ID, "error", err)
		return err
	}
	progress(StageExporting, 100)
	return nil
}
