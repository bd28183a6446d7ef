package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/salesflow/internal/common"
	"github.com/Veraticus/salesflow/internal/config"
	"github.com/Veraticus/salesflow/internal/model"
)

// LoadResult is the loader output plus how it was obtained.
type LoadResult struct {
	Table *model.RawTable
	Path  string
	// Created is true when the source did not exist and the sample was written.
	Created bool
}

// CSVLoader loads the source table from a CSV file, bootstrapping the sample
// dataset when the file does not exist.
type CSVLoader struct {
	logger *slog.Logger
	path   string
}

// NewCSVLoader creates a loader for path.
func NewCSVLoader(path string, logger *slog.Logger) *CSVLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVLoader{path: path, logger: logger}
}

// Path returns the source path.
func (l *CSVLoader) Path() string {
	return l.path
}

// Load reads the source table. A file that exists but cannot be parsed yields
// a *common.SourceReadError.
func (l *CSVLoader) Load(ctx context.Context) (*LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exists, err := config.FileExists(l.path)
	if err != nil {
		return nil, &common.SourceReadError{Path: l.path, Err: err}
	}

	if !exists {
		l.logger.Warn("Source file not found, creating sample dataset", "path", l.path)
		table := SampleTable()
		if err := WriteSample(l.path, table); err != nil {
			return nil, err
		}
		table.Source = l.path
		l.logger.Info("Sample dataset created", "path", l.path, "rows", len(table.Rows))
		return &LoadResult{Table: table, Path: l.path, Created: true}, nil
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, &common.SourceReadError{Path: l.path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			l.logger.Warn("Failed to close source file", "path", l.path, "error", closeErr)
		}
	}()

	table, err := ReadCSV(f, l.path)
	if err != nil {
		return nil, &common.SourceReadError{Path: l.path, Err: err}
	}

	l.logger.Info("Source file loaded",
		"path", l.path,
		"rows", len(table.Rows),
		"columns", len(table.Columns))

	return &LoadResult{Table: table, Path: l.path}, nil
}

// WriteSample persists table at path, creating parent directories.
func WriteSample(path string, table *model.RawTable) error {
	if err := config.EnsureParentDir(path); err != nil {
		return err
	}
	err := common.WriteFileAtomic(path, 0o644, func(w io.Writer) error {
		return WriteCSV(w, table)
	})
	if err != nil {
		return fmt.Errorf("failed to write sample dataset to %s: %w", path, err)
	}
	return nil
}
