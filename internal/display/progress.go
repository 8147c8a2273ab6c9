package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ProgressIndicator lists matched files one per line with a running counter.
type ProgressIndicator struct {
	writer      io.Writer
	totalFiles  int
	current     int
	colorOutput bool
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer:      w,
		totalFiles:  total,
		colorOutput: IsTerminal(w),
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start(root string) {
	fmt.Fprintf(p.writer, "Matching files under %s:\n", root)
}

// Step displays progress for current item: [N/Total] path (cyan)
func (p *ProgressIndicator) Step(path string) {
	p.current++
	line := fmt.Sprintf("  [%d/%d] %s", p.current, p.totalFiles, path)
	fmt.Fprintln(p.writer, colorize(p.colorOutput, line, color.FgCyan))
}

// Complete displays success message with green checkmark
func (p *ProgressIndicator) Complete() {
	mark := colorize(p.colorOutput, "✓", color.FgGreen)
	noun := "files"
	if p.totalFiles == 1 {
		noun = "file"
	}
	fmt.Fprintf(p.writer, "%s Matched %d %s\n", mark, p.totalFiles, noun)
}
