package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
)

// InterruptHandler cancels a command's context on Ctrl+C and tells the user what was left undone.
type InterruptHandler struct {
	out         io.Writer
	interrupted atomic.Bool
}

// NewInterruptHandler writes its notice to out, or to stderr when out is nil.
func NewInterruptHandler(out io.Writer) *InterruptHandler {
	if out == nil {
		out = os.Stderr
	}
	return &InterruptHandler{out: out}
}

// HandleInterrupts returns a context that is cancelled on SIGINT or SIGTERM.
// note, if not empty, is printed below the interrupt notice.
func (h *InterruptHandler) HandleInterrupts(parent context.Context, note string) context.Context {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-ctx.Done()
		stop()
		// A parent that ended first is an ordinary shutdown.
		if parent.Err() == nil && h.interrupted.CompareAndSwap(false, true) {
			h.notify(note)
		}
	}()

	return ctx
}

func (h *InterruptHandler) notify(note string) {
	var b strings.Builder
	b.WriteString("\n\n" + FormatWarning("Interrupted!") + "\n")
	if note != "" {
		b.WriteString(FormatInfo(note) + "\n")
	}
	if _, err := io.WriteString(h.out, b.String()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted reports whether a signal cancelled the context.
func (h *InterruptHandler) WasInterrupted() bool {
	return h.interrupted.Load()
}
