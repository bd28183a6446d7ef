// Package export writes analysis results to persistent storage.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/Veraticus/salesflow/internal/analysis"
	"github.com/Veraticus/salesflow/internal/common"
	"github.com/Veraticus/salesflow/internal/config"
	"github.com/Veraticus/salesflow/internal/model"
)

// CSVWriter implements analysis.ResultExporter for CSV files.
type CSVWriter struct {
	logger *slog.Logger
	path   string
}

// NewCSVWriter creates a writer targeting path.
func NewCSVWriter(path string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{path: path, logger: logger}
}

// Path returns the output path.
func (w *CSVWriter) Path() string {
	return w.path
}

// Export writes the augmented table. The file is replaced atomically, so a
// failed export never leaves a partial file behind.
func (w *CSVWriter) Export(ctx context.Context, result *analysis.Result) error {
	if err := ctx.Err(); err != nil {
		return &common.ExportError{Path: w.path, Err: err}
	}
	if result == nil || result.Table == nil {
		return &common.ExportError{Path: w.path, Err: common.ErrInvalidResult}
	}

	if err := config.EnsureParentDir(w.path); err != nil {
		return &common.ExportError{Path: w.path, Err: err}
	}

	err := common.WriteFileAtomic(w.path, 0o644, func(out io.Writer) error {
		return WriteResultCSV(out, result)
	})
	if err != nil {
		return &common.ExportError{Path: w.path, Err: err}
	}

	w.logger.Info("Analysis results exported",
		"path", w.path,
		"rows", result.Table.Len(),
		"analysis_time", result.Timestamp())
	return nil
}

// ResultColumns returns the export header: the source columns followed by the
// derived columns and the analysis timestamp.
func ResultColumns(table *model.Table) []string {
	columns := append([]string(nil), sourceColumns(table)...)
	return append(columns,
		model.ColumnProfit,
		model.ColumnProfitMargin,
		model.ColumnProfitMoMChange,
		model.ColumnAnalysisTime,
	)
}

// WriteResultCSV encodes result as CSV. Undefined metrics are written as
// empty cells.
func WriteResultCSV(w io.Writer, result *analysis.Result) error {
	table := result.Table
	cw := csv.NewWriter(w)

	if err := cw.Write(ResultColumns(table)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	timestamp := result.Timestamp()
	source := sourceColumns(table)
	for _, row := range table.Rows {
		record := make([]string, 0, len(source)+4)
		extra := 0
		for _, col := range source {
			switch col {
			case model.ColumnMonth:
				record = append(record, row.Month.String())
			case model.ColumnRevenue:
				record = append(record, formatFloat(row.Revenue))
			case model.ColumnExpenses:
				record = append(record, formatFloat(row.Expenses))
			default:
				value := ""
				if extra < len(row.Extra) {
					value = row.Extra[extra]
				}
				record = append(record, value)
				extra++
			}
		}
		record = append(record,
			formatFloat(row.Profit),
			row.ProfitMarginPct.Format(-1, ""),
			row.ProfitMoMChangePct.Format(-1, ""),
			timestamp,
		)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", row.Month, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func sourceColumns(table *model.Table) []string {
	if len(table.Columns) > 0 {
		return table.Columns
	}
	return append(model.RequiredColumns(), table.ExtraColumns...)
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
