package charts

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/salesflow/internal/common"
	"github.com/Veraticus/salesflow/internal/model"
)

// ErrNoRenderers is returned by Produce when it is given nothing to draw with.
var ErrNoRenderers = errors.New("no chart renderers configured")

// Renderer draws a chart to some medium.
type Renderer interface {
	Name() string
	Render(ctx context.Context, chart Chart) error
}

// Produce renders every definition with every renderer. A failure is logged
// to the context's logger and collected; it never stops the remaining charts.
func Produce(ctx context.Context, t *model.Table, defs []Definition, renderers ...Renderer) error {
	if len(renderers) == 0 {
		return ErrNoRenderers
	}
	logger := common.LoggerFrom(ctx)
	if t == nil || t.Len() == 0 {
		logger.Info("No rows to chart")
		return nil
	}

	var errs []error
	for _, def := range defs {
		chart := def.Build(t)
		for _, r := range renderers {
			if err := ctx.Err(); err != nil {
				return errors.Join(append(errs, err)...)
			}
			if err := r.Render(ctx, chart); err != nil {
				logger.Error("Chart rendering failed",
					"chart", chart.Name,
					"renderer", r.Name(),
					"error", err)
				errs = append(errs, fmt.Errorf("%s chart (%s): %w", chart.Name, r.Name(), err))
			}
		}
	}
	return errors.Join(errs...)
}
