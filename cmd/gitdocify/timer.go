package main

import (
	"fmt"
	"io"
	"time"
)

// stepTimer tracks timing for verbose output
type stepTimer struct {
	out        io.Writer
	stepNum    int
	totalSteps int
	start      time.Time
	verbose    bool
}

func newStepTimer(out io.Writer, totalSteps int, verbose bool) *stepTimer {
	return &stepTimer{
		out:        out,
		totalSteps: totalSteps,
		verbose:    verbose,
	}
}

func (t *stepTimer) step(name string) {
	t.stepNum++
	t.start = time.Now()
	if t.verbose {
		titleColor.Fprintf(t.out, "\n🔧 Step %d/%d: %s...\n", t.stepNum, t.totalSteps, name)
	} else {
		fmt.Fprintf(t.out, "%s...\n", name)
	}
}

func (t *stepTimer) done(details ...string) {
	if t.verbose {
		elapsed := time.Since(t.start).Round(time.Millisecond)
		successColor.Fprintf(t.out, "   ✓ Done (%s)\n", elapsed)
		for _, d := range details {
			dimColor.Fprintf(t.out, "   └── %s\n", d)
		}
	}
}

func (t *stepTimer) info(format string, args ...any) {
	if t.verbose {
		dimColor.Fprintf(t.out, "   ├── "+format+"\n", args...)
	}
}
