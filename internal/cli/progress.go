package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// StageProgress renders pipeline stage updates as a percentage progress bar.
type StageProgress struct {
	bar     *progressbar.ProgressBar
	writer  io.Writer
	current int
	mu      sync.Mutex
}

// NewStageProgress creates a progress bar on writer (stderr when nil).
func NewStageProgress(writer io.Writer) *StageProgress {
	if writer == nil {
		writer = os.Stderr
	}

	p := &StageProgress{writer: writer}
	p.bar = progressbar.NewOptions(100,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("[cyan][bold]Analyzing...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return p
}

// Update moves the bar to percent and shows stage as its description.
// Percentages never move backwards.
func (p *StageProgress) Update(stage string, percent int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if percent > 100 {
		percent = 100
	}
	if percent < p.current {
		return
	}
	p.current = percent

	p.bar.Describe(fmt.Sprintf("[cyan][bold]%s[reset]", stage))
	if err := p.bar.Set(percent); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Finish completes the bar if it was not already full.
func (p *StageProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar.IsFinished() {
		return
	}
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
	p.current = 100
}
