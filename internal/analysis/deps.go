// Package analysis implements the monthly sales analysis pipeline.
package analysis

import (
	"fmt"
	"log/slog"
)

// Deps contains all dependencies required by the analysis engine.
type Deps struct {
	// Loader provides the raw source table.
	Loader TableLoader
	// Exporter writes the augmented table.
	Exporter ResultExporter
	// Validator checks the schema. Defaults to NewSchemaValidator.
	Validator TableValidator
	// Logger receives pipeline diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// Validate ensures all required dependencies are provided.
func (d *Deps) Validate() error {
	if d.Loader == nil {
		return fmt.Errorf("loader dependency is required")
	}
	if d.Exporter == nil {
		return fmt.Errorf("exporter dependency is required")
	}
	return nil
}

// Engine runs the pipeline: load, validate, clean, order, compute.
type Engine struct {
	deps    Deps
	cleaner *Cleaner
}

// NewEngine creates a new analysis engine with the provided dependencies.
func NewEngine(deps Deps) (*Engine, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Validator == nil {
		deps.Validator = NewSchemaValidator()
	}
	return &Engine{
		deps:    deps,
		cleaner: NewCleaner(deps.Logger),
	}, nil
}
