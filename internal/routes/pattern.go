package routes

import (
	"path"
	"strings"
)

// CompilePattern turns a page's path relative to the app root into a URL
// pattern and route kind. Only the parent directory contributes: groups
// vanish, dynamic segments become ":name" and catch-all segments ":name*".
// A catch-all anywhere makes the whole route CatchAll.
func CompilePattern(relPath string) (string, Kind) {
	dir := path.Dir(strings.ReplaceAll(relPath, "\\", "/"))

	kind := Static
	var parts []string
	for _, seg := range strings.Split(dir, "/") {
		if seg == "" || seg == "." {
			continue
		}
		label, k := ClassifySegment(seg)
		switch k {
		case Group:
			continue
		case CatchAll:
			parts = append(parts, ":"+label+"*")
			kind = CatchAll
		case Dynamic:
			parts = append(parts, ":"+label)
			if kind != CatchAll {
				kind = Dynamic
			}
		default:
			parts = append(parts, label)
		}
	}

	pattern := "/" + strings.Join(parts, "/")
	if len(pattern) > 1 {
		pattern = strings.TrimSuffix(pattern, "/")
	}
	return pattern, kind
}

// Less orders routes static before dynamic before catch-all, then by
// pattern.
func Less(aPattern string, aKind Kind, bPattern string, bKind Kind) bool {
	if aKind.rank() != bKind.rank() {
		return aKind.rank() < bKind.rank()
	}
	return aPattern < bPattern
}
