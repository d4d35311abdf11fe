package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
)

// SpinnerProgressReporter implements progress reporting with a spinner
type SpinnerProgressReporter struct {
	spinner      *spinner.Spinner
	out          io.Writer
	stages       []stageInfo
	currentStage usecase.ExecutionStage
}

type stageInfo struct {
	Stage     usecase.ExecutionStage
	StartTime time.Time
	EndTime   time.Time
	Message   string
}

// NewSpinnerProgressReporter creates a spinner reporter writing to stderr
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return newSpinnerProgressReporter(os.Stderr)
}

func newSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// NewProgressSink picks the spinner for interactive runs and a no-op sink otherwise
func NewProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive {
		return NewNopSink()
	}
	return NewSpinnerProgressReporter()
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != "" && event.Stage != r.currentStage {
		r.enterStage(event.Stage)
	}
	if len(r.stages) > 0 && event.Message != "" {
		r.stages[len(r.stages)-1].Message = event.Message
	}

	if event.Stage == usecase.StageCompleted {
		r.spinner.Stop()
		return
	}

	if event.Spinner {
		r.spinner.Suffix = " " + r.display()
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

func (r *SpinnerProgressReporter) enterStage(stage usecase.ExecutionStage) {
	now := time.Now()
	if len(r.stages) > 0 {
		r.stages[len(r.stages)-1].EndTime = now
	}
	r.currentStage = stage
	r.stages = append(r.stages, stageInfo{Stage: stage, StartTime: now})
}

// display renders the completed stages and the running one, e.g.
// "✓ Submitting (1.2s) → ● Confirming: Waiting for 5 block confirmations"
func (r *SpinnerProgressReporter) display() string {
	parts := make([]string, 0, len(r.stages))
	for _, stage := range r.stages {
		switch stage.Stage {
		case usecase.StageSubmitting, usecase.StageConfirming, usecase.StageVerifying:
		default:
			continue
		}

		if stage.EndTime.IsZero() {
			label := color.New(color.FgYellow).Sprint(string(stage.Stage))
			if stage.Message != "" {
				label += ": " + stage.Message
			}
			parts = append(parts, "● "+label)
			continue
		}
		duration := stage.EndTime.Sub(stage.StartTime).Round(100 * time.Millisecond)
		parts = append(parts, fmt.Sprintf("✓ %s (%s)", color.New(color.FgGreen).Sprint(string(stage.Stage)), duration))
	}
	return strings.Join(parts, " → ")
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.printPaused(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.printPaused(color.New(color.FgRed), message)
}

// printPaused stops the spinner while printing so lines don't interleave
func (r *SpinnerProgressReporter) printPaused(c *color.Color, message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
