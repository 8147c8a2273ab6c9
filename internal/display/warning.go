package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning is a user-facing warning: a title line followed by optional
// indented detail lines.
type Warning struct {
	Title      string
	Message    string
	Suggestion string
}

// Display writes the warning to out, in yellow when out is a terminal.
func (w Warning) Display(out io.Writer) {
	lines := []string{"⚠️  Warning: " + w.Title}
	if w.Message != "" {
		lines = append(lines, "    "+w.Message)
	}
	if w.Suggestion != "" {
		lines = append(lines, "    Suggestion: "+w.Suggestion)
	}
	text := strings.Join(lines, "\n") + "\n"

	fmt.Fprint(out, colorize(IsTerminal(out), text, color.FgYellow))
}

// WarnNoIncludes creates the warning shown when a harvest has no include
// patterns and therefore selects no files.
func WarnNoIncludes(root string) Warning {
	return Warning{
		Title:      "No include patterns",
		Message:    fmt.Sprintf("No files under %s will be harvested", root),
		Suggestion: "Pass --include '**/*' to harvest every file",
	}
}
