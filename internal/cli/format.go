package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	// fatih/color disables these when stdout is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
)

// stdout is resolved on every call so tests can swap os.Stdout.
func stdout() io.Writer { return os.Stdout }

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Fprintln(stdout())
	_, _ = headerColor.Fprintf(stdout(), "▸ %s\n", title)
	fmt.Fprintln(stdout())
}

// PrintSubsection prints a subsection header
func PrintSubsection(title string) {
	_, _ = infoColor.Fprintf(stdout(), "  %s\n", title)
}

// PrintSuccess prints a success message with a checkmark
func PrintSuccess(msg string) {
	_, _ = successColor.Fprintf(stdout(), "✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol
func PrintWarning(msg string) {
	_, _ = warningColor.Fprintf(stdout(), "⚠ %s\n", msg)
}

// PrintError prints an error message to stderr
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ %s\n", msg)
}

// PrintInfo prints an informational message
func PrintInfo(msg string) {
	fmt.Fprintln(stdout(), msg)
}

// PrintLabelValue prints an indented "label: value" line
func PrintLabelValue(label, value string) {
	_, _ = labelColor.Fprintf(stdout(), "  %s: ", label)
	_, _ = valueColor.Fprintln(stdout(), value)
}

// PrintList prints items as bullets, indented by indent levels
func PrintList(items []string, indent int) {
	prefix := strings.Repeat("  ", indent)
	for _, item := range items {
		_, _ = infoColor.Fprintf(stdout(), "%s• %s\n", prefix, item)
	}
}

// PrintTable prints rows under headers in aligned columns
func PrintTable(headers []string, rows [][]string) {
	lines := renderTable(headers, rows)
	if len(lines) == 0 {
		return
	}
	_, _ = headerColor.Fprintln(stdout(), lines[0])
	fmt.Fprintln(stdout(), lines[1])
	for _, line := range lines[2:] {
		_, _ = valueColor.Fprintln(stdout(), line)
	}
}

// renderTable lays out the header, a dashed rule and the rows. Cells beyond
// the header count are dropped. Trailing padding is trimmed.
func renderTable(headers []string, rows [][]string) []string {
	if len(headers) == 0 || len(rows) == 0 {
		return nil
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) string {
		var b strings.Builder
		b.WriteString("  ")
		for i := range widths {
			if i > 0 {
				b.WriteString("  ")
			}
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		return strings.TrimRight(b.String(), " ")
	}

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}

	lines := []string{line(headers), line(rule)}
	for _, row := range rows {
		lines = append(lines, line(row))
	}
	return lines
}

// PrintEmptyState prints a dimmed note when there is nothing to show
func PrintEmptyState(msg string) {
	_, _ = valueColor.Fprintf(stdout(), "  %s\n", msg)
}

// pluralize returns "1 file" or "3 files".
func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
