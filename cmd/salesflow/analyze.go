package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/salesflow/internal/analysis"
	"github.com/Veraticus/salesflow/internal/charts"
	"github.com/Veraticus/salesflow/internal/cli"
	"github.com/Veraticus/salesflow/internal/common"
	"github.com/Veraticus/salesflow/internal/config"
	"github.com/Veraticus/salesflow/internal/dataset"
	"github.com/Veraticus/salesflow/internal/export"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

func (a *app) analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the monthly sales table",
		Long: `Analyze the monthly sales table and export the results.

The source CSV needs Month, Revenue and Expenses columns. Missing or
non-numeric revenue and expense values are treated as 0 with a warning.
If the source file does not exist, a twelve-month sample dataset is written
there first.

Examples:
  # Analyze sale_data.csv and write sale_analysis_result.csv
  salesflow analyze

  # Use other files
  salesflow analyze --input q3.csv --output q3_result.csv

  # Machine readable summary, no charts
  salesflow analyze --format json --no-charts`,
		RunE: a.runAnalyze,
	}
}

// addAnalyzeFlags registers the analysis flags as persistent so they work on
// the bare root command as well as on analyze and sample.
func addAnalyzeFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.String("input", config.DefaultInputPath, "source CSV file")
	flags.String("output", config.DefaultOutputPath, "CSV file for the analysis results")
	flags.String("charts-dir", config.DefaultChartsDir, "directory for chart workbooks")
	flags.String("format", config.DefaultOutput, "report format (summary, json)")
	flags.Bool("no-charts", false, "skip all charts")
	flags.Bool("no-terminal-charts", false, "skip charts drawn in the terminal")
	flags.Bool("no-workbook-charts", false, "skip chart workbooks")
	flags.Bool("no-progress", false, "hide the progress bar")

	_ = v.BindPFlag("input.path", flags.Lookup("input"))
	_ = v.BindPFlag("output.path", flags.Lookup("output"))
	_ = v.BindPFlag("charts.dir", flags.Lookup("charts-dir"))
	_ = v.BindPFlag("output.format", flags.Lookup("format"))
}

// runConfig applies the negated boolean flags on top of the loaded config.
func (a *app) runConfig(cmd *cobra.Command) config.Config {
	cfg := *a.cfg
	if off, _ := cmd.Flags().GetBool("no-charts"); off {
		cfg.Charts.Enabled = false
	}
	if off, _ := cmd.Flags().GetBool("no-terminal-charts"); off {
		cfg.Charts.Terminal = false
	}
	if off, _ := cmd.Flags().GetBool("no-workbook-charts"); off {
		cfg.Charts.Workbook = false
	}
	if off, _ := cmd.Flags().GetBool("no-progress"); off {
		cfg.Output.Progress = false
	}
	if cfg.Output.Format == "json" {
		cfg.Output.Progress = false
		cfg.Charts.Terminal = false
	}
	return cfg
}

func (a *app) runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg := a.runConfig(cmd)
	logger := slog.Default()

	interruptHandler := cli.NewInterruptHandler(a.stderr)
	ctx := interruptHandler.HandleInterrupts(cmd.Context(), cfg.Output.Path)
	defer interruptHandler.Stop()
	ctx = common.WithLogger(ctx, logger)

	loader := dataset.NewCSVLoader(cfg.Input.Path, logger)
	writer := export.NewCSVWriter(cfg.Output.Path, logger)
	engine, err := analysis.NewEngine(analysis.Deps{
		Loader:   loader,
		Exporter: writer,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create analysis engine: %w", err)
	}
	formatter := analysis.NewCLIFormatter().WithWidth(cli.TerminalWidth(a.stdout))

	var bar *cli.StageProgress
	progress := func(string, int) {}
	if cfg.Output.Progress {
		bar = cli.NewStageProgress(a.stderr)
		progress = bar.Update
	}

	logger.Info("Starting sales analysis", "input", loader.Path(), "output", writer.Path())

	result, err := engine.Analyze(ctx, analysis.Options{
		ProgressFunc: progress,
		TimeFormat:   cfg.Output.TimeFormat,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) && interruptHandler.WasInterrupted() {
			return nil
		}
		return common.NewUserError("analysis failed", err)
	}
	if bar != nil {
		bar.Finish()
	}

	// Human readable notices go to stderr in JSON mode so stdout stays parseable.
	notices := a.stdout
	switch cfg.Output.Format {
	case "json":
		notices = a.stderr
		if err := exportReportJSON(a.stdout, result); err != nil {
			return err
		}
	default:
		fmt.Fprintln(a.stdout, formatter.FormatLoadStatus(result))
		fmt.Fprintln(a.stdout, "\n"+formatter.FormatSummary(result))
	}

	renderers := a.chartRenderers(cfg, logger)
	if len(renderers) > 0 {
		fmt.Fprintln(notices)
		if chartErr := charts.Produce(ctx, result.Table, charts.Definitions(), renderers...); chartErr != nil {
			fmt.Fprintln(a.stderr, cli.FormatWarning("Some charts could not be rendered: "+chartErr.Error()))
		} else if cfg.Charts.Workbook {
			fmt.Fprintln(notices, cli.FormatInfo("Chart workbooks written to "+cfg.Charts.Dir))
		}
	}

	exportErr := engine.Export(ctx, result, nil)
	if exportErr == nil {
		interruptHandler.MarkOutputWritten()
		fmt.Fprintln(notices, "\n"+cli.FormatSuccess("Analysis results exported successfully to "+writer.Path()))
	}

	printCompletion(notices, exportErr == nil, len(renderers) > 0)

	if exportErr != nil {
		return common.NewUserError("Error exporting analysis results", exportErr)
	}
	return nil
}

func (a *app) chartRenderers(cfg config.Config, logger *slog.Logger) []charts.Renderer {
	if !cfg.Charts.Enabled {
		return nil
	}
	var renderers []charts.Renderer
	if cfg.Charts.Terminal {
		renderers = append(renderers, charts.NewTerminalRenderer(a.stdout, 0))
	}
	if cfg.Charts.Workbook {
		renderers = append(renderers, charts.NewWorkbookRenderer(cfg.Charts.Dir, logger))
	}
	return renderers
}

func printCompletion(w io.Writer, exported, charted bool) {
	lines := []string{
		"",
		cli.FormatTitle("Analysis Completed"),
	}
	if charted {
		lines = append(lines, "The analysis has been performed and the charts have been rendered.")
	} else {
		lines = append(lines, "The analysis has been performed.")
	}
	if exported {
		lines = append(lines, "Check the output file for detailed results.")
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}

// exportReportJSON writes the analysis result as indented JSON.
func exportReportJSON(w io.Writer, result *analysis.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result as JSON: %w", err)
	}
	return nil
}
