package analysis

import (
	"context"

	"github.com/Veraticus/salesflow/internal/dataset"
	"github.com/Veraticus/salesflow/internal/model"
)

// TableLoader obtains the raw source table.
type TableLoader interface {
	// Load reads the source, synthesizing the sample dataset when it is absent.
	Load(ctx context.Context) (*dataset.LoadResult, error)
}

// TableValidator checks the raw table before any computation.
type TableValidator interface {
	// Validate returns the table unchanged or a schema/month error.
	Validate(raw *model.RawTable) (*model.RawTable, error)
}

// ResultExporter writes the augmented table to persistent storage.
type ResultExporter interface {
	// Export writes result; failures are *common.ExportError.
	Export(ctx context.Context, result *Result) error
}

// ReportFormatter formats analysis results for display.
type ReportFormatter interface {
	// FormatSummary renders the full console report.
	FormatSummary(result *Result) string
	// FormatLoadStatus renders the loader outcome line.
	FormatLoadStatus(result *Result) string
}
