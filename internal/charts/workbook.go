package charts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/salesflow/internal/common"
)

// DataSheet is the worksheet holding a chart's source values.
const DataSheet = "Data"

// WorkbookRenderer writes each chart as an .xlsx workbook containing the
// data and a native Excel chart.
type WorkbookRenderer struct {
	logger *slog.Logger
	dir    string
}

// NewWorkbookRenderer creates a renderer writing into dir.
func NewWorkbookRenderer(dir string, logger *slog.Logger) *WorkbookRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookRenderer{dir: dir, logger: logger}
}

// Name identifies the renderer in logs.
func (r *WorkbookRenderer) Name() string {
	return "workbook"
}

// Path returns the workbook path for chart.
func (r *WorkbookRenderer) Path(chart Chart) string {
	return filepath.Join(r.dir, chart.Name+".xlsx")
}

// Render builds the workbook and replaces any previous file atomically.
func (r *WorkbookRenderer) Render(ctx context.Context, chart Chart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(chart.Points) == 0 {
		return fmt.Errorf("chart %s has no points", chart.Name)
	}

	f, err := buildWorkbook(chart)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			r.logger.Warn("Failed to close workbook", "chart", chart.Name, "error", closeErr)
		}
	}()

	if err := os.MkdirAll(r.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create charts directory: %w", err)
	}

	path := r.Path(chart)
	err = common.WriteFileAtomic(path, 0o644, func(w io.Writer) error {
		return f.Write(w)
	})
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	r.logger.Info("Chart workbook written", "chart", chart.Name, "path", path)
	return nil
}

func buildWorkbook(chart Chart) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to name data sheet: %w", err)
	}

	if err := f.SetSheetRow(DataSheet, "A1", &[]any{chart.XLabel, chart.YLabel}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range chart.Points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		values := []any{p.Label, nil}
		if p.Defined {
			values[1] = p.Value
		}
		if err := f.SetSheetRow(DataSheet, cell, &values); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write %s: %w", p.Label, err)
		}
	}

	if err := f.AddChart(DataSheet, "D2", excelChart(chart)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to add chart: %w", err)
	}
	return f, nil
}

func excelChart(chart Chart) *excelize.Chart {
	last := len(chart.Points) + 1
	series := excelize.ChartSeries{
		Name:       fmt.Sprintf("%s!$B$1", DataSheet),
		Categories: fmt.Sprintf("%s!$A$2:$A$%d", DataSheet, last),
		Values:     fmt.Sprintf("%s!$B$2:$B$%d", DataSheet, last),
	}

	chartType := excelize.Col
	switch {
	case chart.Kind == KindLine:
		chartType = excelize.Line
		series.Marker = excelize.ChartMarker{Symbol: "circle", Size: 6}
		series.Line = excelize.ChartLine{Smooth: false, Width: 2}
	case chart.Name == Margin.Name:
		series.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4169E1"}}
	default:
		series.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2E8B57"}}
	}

	return &excelize.Chart{
		Type:   chartType,
		Series: []excelize.ChartSeries{series},
		Title:  []excelize.RichTextRun{{Text: chart.Title}},
		PlotArea: excelize.ChartPlotArea{
			ShowVal: true,
			NumFmt:  excelize.ChartNumFmt{CustomNumFmt: chart.NumFmt},
		},
		Legend: excelize.ChartLegend{Position: "none"},
		XAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: chart.XLabel}},
		},
		YAxis: excelize.ChartAxis{
			Title:          []excelize.RichTextRun{{Text: chart.YLabel}},
			MajorGridLines: true,
		},
		Dimension: excelize.ChartDimension{Width: 960, Height: 480},
	}
}
