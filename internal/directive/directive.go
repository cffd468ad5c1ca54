// Package directive detects the 'client load' marker that opts a source file
// into client component treatment.
//
// Two policies exist and are deliberately kept apart:
//   - First significant line (IsClient, Analyze): blank lines and full-line
//     comments are skipped, the next line must open with the quoted marker.
//   - Leading directive (HasLeadingDirective): the raw source must begin with
//     the quoted marker. The prerenderer uses this stricter form.
package directive

import "strings"

// Marker is the directive string literal, without quotes.
const Marker = "client load"

var quotedMarkers = []string{"'" + Marker + "'", `"` + Marker + `"`}

// Result describes the outcome of directive detection for one file.
type Result struct {
	// IsClient reports whether the first significant line is the directive.
	IsClient bool `json:"isClient"`

	// Line is the 1-indexed line of the directive, or 0 when absent.
	Line int `json:"directiveLine"`
}

// IsClient reports whether source is a client component under the first
// significant line policy.
func IsClient(source string) bool {
	return Analyze(source).IsClient
}

// Analyze scans source once, skipping blank and comment-only lines, and
// checks whether the first remaining line starts with the quoted marker.
func Analyze(source string) Result {
	inBlock := false
	lineNo := 0
	for len(source) > 0 {
		lineNo++
		var line string
		if i := strings.IndexByte(source, '\n'); i >= 0 {
			line, source = source[:i], source[i+1:]
		} else {
			line, source = source, ""
		}
		line = strings.TrimSpace(line)

		if inBlock {
			if strings.Contains(line, "*/") {
				inBlock = false
				rest := strings.TrimSpace(line[strings.Index(line, "*/")+2:])
				if rest == "" {
					continue
				}
				line = rest
			} else {
				continue
			}
		}
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "/*") {
			end := strings.Index(line[2:], "*/")
			if end < 0 {
				inBlock = true
				continue
			}
			rest := strings.TrimSpace(line[2+end+2:])
			if rest == "" {
				continue
			}
			line = rest
		}

		if startsWithMarker(line) {
			return Result{IsClient: true, Line: lineNo}
		}
		return Result{}
	}
	return Result{}
}

// HasLeadingDirective reports whether source literally begins with the
// quoted marker, with nothing (not even whitespace) before it.
func HasLeadingDirective(source string) bool {
	return startsWithMarker(source)
}

func startsWithMarker(s string) bool {
	for _, m := range quotedMarkers {
		if strings.HasPrefix(s, m) {
			return true
		}
	}
	return false
}
