package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/proxy-deployer/internal/usecase"
)

// SpinnerSink shows a spinner while waiting on the chain and prints
// informational lines in between
type SpinnerSink struct {
	mu      sync.Mutex
	out     io.Writer
	spinner *spinner.Spinner
	started time.Time
	waiting bool
}

// NewSpinnerSink creates a new spinner-based progress sink on stdout
func NewSpinnerSink() *SpinnerSink {
	return newSpinnerSink(os.Stdout)
}

func newSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerSink{out: out, spinner: s}
}

// OnProgress starts the spinner for spinner events and stops it otherwise
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.Spinner {
		r.waiting = true
		r.started = time.Now()
		r.spinner.Suffix = " " + event.Message
		// no-op when stdout is not a terminal
		r.spinner.Start()
		return
	}

	if r.waiting {
		r.waiting = false
		r.spinner.Stop()
		elapsed := time.Since(r.started).Round(time.Second)
		fmt.Fprintf(r.out, "%s %s\n",
			color.New(color.FgGreen).Sprint("✓"),
			color.New(color.Faint).Sprintf("done (%s)", elapsed),
		)
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.print(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.print(color.New(color.FgRed), message)
}

func (r *SpinnerSink) print(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Stop spinner temporarily
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
