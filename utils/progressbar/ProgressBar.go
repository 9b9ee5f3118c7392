// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"strings"
	"time"
)

// ProgressBar implements a progress bar that is updated manually:
// Increment advances the internal counter and Display reprints the
// bar. ProgressBar does not use concurrency.
type ProgressBar struct {
	width           float64
	maxProgress     float64
	currentProgress float64
	startTime       time.Time
}

// New returns a new ProgressBar that is width characters wide and
// reaches 100% after max Increment calls
func New(width, max int) *ProgressBar {
	return &ProgressBar{
		width:       float64(width),
		maxProgress: float64(max),
		startTime:   time.Now(),
	}
}

// Increment advances the internal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Display reprints the progress bar on the current terminal line
func (p *ProgressBar) Display() {
	var bar strings.Builder
	bar.WriteString("|")

	progress := p.currentProgress / p.maxProgress * p.width
	for i := 0.0; i < p.width; i++ {
		if i < progress {
			bar.WriteString("█")
		} else {
			bar.WriteString(" ")
		}
	}
	fmt.Fprintf(&bar, "| [%.2f%% | elapsed: %v]",
		p.currentProgress/p.maxProgress*100,
		time.Since(p.startTime).Truncate(time.Second))

	fmt.Printf("\n\033[1A\033[K%v", bar.String())
}

// Close jumps to the next terminal line after the printed bar
func (p *ProgressBar) Close() {
	fmt.Println()
}
