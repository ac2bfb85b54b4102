package stepwise

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Runner plays a trace to a writer without a TUI. This allows piping a
// walkthrough into a terminal, a file, or a test buffer.
type Runner struct {
	Output   io.Writer
	Interval time.Duration
	Renderer ContentRenderer
}

// ContentRenderer transforms an explanation before outputting it.
// This allows markdown-to-ANSI rendering without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner that writes plain text with no delay.
// Set Output before calling Run.
func NewRunner() *Runner {
	return &Runner{}
}

// Run traces the snippet and prints every step in order. A non-zero
// Interval inserts a pause between steps; ctx cancellation stops the
// walkthrough early.
func (r *Runner) Run(ctx context.Context, engine *Engine, code, language string) error {
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	ctrl := engine.NewTimeline(code, language)
	defer ctrl.Pause()

	for ctrl.StepForward() {
		snap := ctrl.Snapshot()
		step := snap.Steps[snap.CurrentStepIndex]

		text := fmt.Sprintf("[%3d] line %-3d %-18s %s", step.ID, step.LineNumber, step.Type, step.Explanation)
		if r.Renderer != nil {
			if rendered, err := r.Renderer(text); err == nil {
				text = rendered
			}
		}
		fmt.Fprintln(r.Output, text)

		if snap.IsComplete {
			break
		}
		if r.Interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.Interval):
			}
		} else if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	snap := ctrl.Snapshot()
	if len(snap.Output) > 0 {
		fmt.Fprintln(r.Output, "\nProgram output:")
		for _, line := range snap.Output {
			fmt.Fprintln(r.Output, "  "+line)
		}
	}

	return nil
}
