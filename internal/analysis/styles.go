package analysis

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/salesflow/internal/cli"
	"github.com/Veraticus/salesflow/internal/model"
)

// Styles contains all styling definitions for analysis report formatting.
type Styles struct {
	// Base styles from CLI package
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	// Report-specific styles
	Box         lipgloss.Style
	Figure      lipgloss.Style
	Label       lipgloss.Style
	Highlight   lipgloss.Style
	TableBorder lipgloss.Style
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	Gain        lipgloss.Style
	Loss        lipgloss.Style
	Undefined   lipgloss.Style
}

// NewStyles creates a new Styles instance with default styling.
func NewStyles() *Styles {
	s := &Styles{
		Title:    cli.TitleStyle,
		Subtitle: cli.SubtitleStyle,
		Success:  cli.SuccessStyle,
		Warning:  cli.WarningStyle,
		Error:    cli.ErrorStyle,
		Info:     cli.InfoStyle,
		Subtle:   cli.SubtleStyle,
		Normal:   lipgloss.NewStyle(),
	}

	s.Box = cli.BoxStyle

	s.Figure = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.PrimaryColor)

	s.Label = lipgloss.NewStyle().
		Foreground(cli.SubtleColor).
		Width(24)

	s.Highlight = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.InfoColor)

	s.TableBorder = lipgloss.NewStyle().
		Foreground(cli.BorderColor)
	s.TableHeader = cli.TableHeaderStyle
	s.TableCell = cli.TableCellStyle

	s.Gain = lipgloss.NewStyle().Foreground(cli.SuccessColor)
	s.Loss = lipgloss.NewStyle().Foreground(cli.ErrorColor)
	s.Undefined = lipgloss.NewStyle().
		Foreground(cli.SubtleColor).
		Italic(true)

	return s
}

// WithWidth returns a new Styles instance adjusted for the given terminal width.
func (s *Styles) WithWidth(width int) *Styles {
	newStyles := *s
	if width > 0 && width < 100 {
		boxCopy := s.Box
		newStyles.Box = boxCopy.Width(width - 4)
	}
	return &newStyles
}

// ForValue returns the style for a signed figure: gains, losses, zero.
func (s *Styles) ForValue(v float64) lipgloss.Style {
	switch {
	case v > 0:
		return s.Gain
	case v < 0:
		return s.Loss
	default:
		return s.Normal
	}
}

// ForOptional is ForValue for values that may be undefined.
func (s *Styles) ForOptional(o model.Optional) lipgloss.Style {
	v, ok := o.Get()
	if !ok {
		return s.Undefined
	}
	return s.ForValue(v)
}

// RenderBox renders content in a styled box with optional title.
func (s *Styles) RenderBox(content string, title string, style lipgloss.Style) string {
	if title != "" {
		titleStyled := s.Info.Bold(true).Render(" " + title + " ")
		return style.Render(titleStyled + "\n" + content)
	}
	return style.Render(content)
}
