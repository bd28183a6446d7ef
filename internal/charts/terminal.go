package charts

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/salesflow/internal/cli"
)

const defaultBarWidth = 40

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// TerminalRenderer draws charts as text bars on a writer.
type TerminalRenderer struct {
	writer   io.Writer
	bar      lipgloss.Style
	negative lipgloss.Style
	label    lipgloss.Style
	subtle   lipgloss.Style
	width    int
}

// NewTerminalRenderer creates a renderer writing to w (stdout when nil).
// width is the length of the longest bar; zero selects the default.
func NewTerminalRenderer(w io.Writer, width int) *TerminalRenderer {
	if w == nil {
		w = os.Stdout
	}
	if width <= 0 {
		width = defaultBarWidth
	}
	return &TerminalRenderer{
		writer:   w,
		width:    width,
		bar:      cli.BarStyle,
		negative: cli.ErrorStyle,
		label:    cli.SubtleStyle,
		subtle:   cli.SubtleStyle.Italic(true),
	}
}

// Name identifies the renderer in logs.
func (r *TerminalRenderer) Name() string {
	return "terminal"
}

// Render writes chart to the terminal.
func (r *TerminalRenderer) Render(ctx context.Context, chart Chart) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(cli.TitleStyle.UnsetMargins().Render(cli.ChartIcon + " " + chart.Title))
	b.WriteString("\n")
	b.WriteString(r.label.Render(fmt.Sprintf("%s by %s", chart.YLabel, strings.ToLower(chart.XLabel))))
	b.WriteString("\n")

	if chart.Kind == KindLine {
		b.WriteString(r.sparkline(chart.Points))
		b.WriteString("\n")
	}
	b.WriteString(r.bars(chart))

	if _, err := fmt.Fprintln(r.writer, b.String()); err != nil {
		return fmt.Errorf("failed to write %s chart: %w", chart.Name, err)
	}
	return nil
}

func (r *TerminalRenderer) bars(chart Chart) string {
	maxAbs := 0.0
	labelWidth := 0
	for _, p := range chart.Points {
		if p.Defined {
			maxAbs = math.Max(maxAbs, math.Abs(p.Value))
		}
		labelWidth = max(labelWidth, lipgloss.Width(p.Label))
	}

	lines := make([]string, 0, len(chart.Points))
	for _, p := range chart.Points {
		name := r.label.Render(fmt.Sprintf("%-*s", labelWidth, p.Label))
		if !p.Defined {
			lines = append(lines, name+" "+r.subtle.Render(chart.Label(p)))
			continue
		}

		n := 0
		if maxAbs > 0 {
			n = int(math.Round(math.Abs(p.Value) / maxAbs * float64(r.width)))
		}
		style := r.bar
		if p.Value < 0 {
			style = r.negative
		}
		bar := style.Render(strings.Repeat("█", n))
		lines = append(lines, fmt.Sprintf("%s %s %s", name, bar, chart.Label(p)))
	}
	return strings.Join(lines, "\n")
}

func (r *TerminalRenderer) sparkline(points []Point) string {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		if p.Defined {
			lo = math.Min(lo, p.Value)
			hi = math.Max(hi, p.Value)
		}
	}

	var b strings.Builder
	for _, p := range points {
		if !p.Defined {
			b.WriteRune(' ')
			continue
		}
		level := len(sparkLevels) - 1
		if hi > lo {
			level = int((p.Value - lo) / (hi - lo) * float64(len(sparkLevels)-1))
		}
		b.WriteRune(sparkLevels[level])
	}
	return r.bar.Render(b.String())
}
