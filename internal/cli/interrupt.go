package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler cancels a run on SIGINT/SIGTERM and tells the user what
// state the output was left in.
type InterruptHandler struct {
	writer      io.Writer
	cancelFunc  context.CancelFunc
	sigChan     chan os.Signal
	outputPath  string
	interrupted bool
	written     bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stderr
	}
	return &InterruptHandler{
		writer: writer,
	}
}

// HandleInterrupts sets up signal handling and returns a context that will be
// canceled on interrupt. outputPath is mentioned in the interrupt message.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context, outputPath string) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	h.cancelFunc = cancel
	h.outputPath = outputPath
	h.sigChan = make(chan os.Signal, 1)

	signal.Notify(h.sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case _, ok := <-h.sigChan:
			if !ok {
				return
			}
			h.interrupt()
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx
}

// Stop releases the signal subscription and cancels the derived context.
func (h *InterruptHandler) Stop() {
	if h.sigChan != nil {
		signal.Stop(h.sigChan)
	}
	if h.cancelFunc != nil {
		h.cancelFunc()
	}
}

// MarkOutputWritten records that the output file has been replaced, so a
// later interrupt no longer claims it was left untouched.
func (h *InterruptHandler) MarkOutputWritten() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.written = true
}

func (h *InterruptHandler) interrupt() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.interrupted {
		return
	}
	h.interrupted = true
	h.showInterruptMessage()
}

func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n" + FormatWarning("Analysis interrupted!")
	switch {
	case h.outputPath == "":
	case h.written:
		msg += "\n" + FormatInfo(fmt.Sprintf("%s was written before the interrupt", h.outputPath))
	default:
		msg += "\n" + FormatInfo(fmt.Sprintf("%s was not modified", h.outputPath))
	}
	msg += "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
