package manifest

import (
	"path"
	"strings"
	"unicode"

	"github.com/danieljhkim/vista/internal/scanner"
)

// ChunkURLPrefix is where client chunks are served from.
const ChunkURLPrefix = "/_vista/static/chunks/"

// stripExt normalizes separators and removes one recognized source
// extension.
func stripExt(relPath string) string {
	p := strings.ReplaceAll(relPath, "\\", "/")
	ext := path.Ext(p)
	if scanner.IsSourceFile(p) {
		return strings.TrimSuffix(p, ext)
	}
	return p
}

// ModuleID returns "client:<path>" or "server:<path>" with the extension
// stripped.
func ModuleID(relPath string, isClient bool) string {
	if isClient {
		return "client:" + stripExt(relPath)
	}
	return "server:" + stripExt(relPath)
}

// ChunkName derives the code-split chunk name for a client module: the
// extension is stripped, every rune that is not a letter or number becomes
// '_' and ASCII letters are lower-cased. Other letters are kept as is.
func ChunkName(relPath string) string {
	var b strings.Builder
	for _, r := range stripExt(relPath) {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// ChunkURL returns the public URL of a chunk.
func ChunkURL(chunk string) string {
	return ChunkURLPrefix + chunk + ".js"
}
