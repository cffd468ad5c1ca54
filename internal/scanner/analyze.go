package scanner

import (
	"strings"
	"unicode"

	"github.com/danieljhkim/vista/internal/directive"
)

// clientHooks are React hooks that only run in the browser.
var clientHooks = []string{
	"useState", "useEffect", "useLayoutEffect", "useReducer", "useRef",
	"useImperativeHandle", "useCallback", "useMemo", "useContext",
	"useDebugValue", "useDeferredValue", "useTransition", "useId",
	"useSyncExternalStore", "useInsertionEffect",
}

// clientAPIs are non-hook React APIs that require a client component.
var clientAPIs = []string{
	"createContext", "forwardRef", "memo", "lazy", "startTransition",
	"useFormStatus", "useFormState", "useOptimistic",
}

var eventHandlerAttrs = []string{"onClick=", "onChange=", "onSubmit=", "onFocus="}

// EventHandlers is the hook list entry reported for JSX event handler attributes.
const EventHandlers = "event handlers"

// Facts are the per-file results of lexical analysis.
type Facts struct {
	Directive           directive.Result
	Exports             []string
	ClientHooks         []string
	HasMetadata         bool
	HasGenerateMetadata bool
}

// Analyze extracts structural facts from source without parsing it.
func Analyze(source string) Facts {
	return Facts{
		Directive:           directive.Analyze(source),
		Exports:             ExtractExports(source),
		ClientHooks:         DetectClientHooks(source),
		HasMetadata:         HasMetadata(source),
		HasGenerateMetadata: HasGenerateMetadata(source),
	}
}

// DetectClientHooks returns the client-only hooks and APIs referenced as
// `name(` or `name<`, in vocabulary order, followed by EventHandlers when any
// JSX event handler attribute appears.
func DetectClientHooks(source string) []string {
	used := []string{}
	for _, list := range [][]string{clientHooks, clientAPIs} {
		for _, name := range list {
			if strings.Contains(source, name+"(") || strings.Contains(source, name+"<") {
				used = append(used, name)
			}
		}
	}
	for _, attr := range eventHandlerAttrs {
		if strings.Contains(source, attr) {
			used = append(used, EventHandlers)
			break
		}
	}
	return used
}

// ExtractExports returns "default" when the source contains `export default`,
// followed by the names declared by `export function`, `export async
// function`, `export const` and `export class` lines. Duplicates are dropped,
// first occurrence wins.
func ExtractExports(source string) []string {
	exports := []string{}
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			exports = append(exports, name)
		}
	}
	if strings.Contains(source, "export default") {
		add("default")
	}

	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)

		var keyword string
		switch {
		case strings.HasPrefix(trimmed, "export function "), strings.HasPrefix(trimmed, "export async function "):
			keyword = "function "
		case strings.HasPrefix(trimmed, "export const "):
			keyword = "const "
		case strings.HasPrefix(trimmed, "export class "):
			keyword = "class "
		default:
			continue
		}
		add(identifierAfter(trimmed, keyword))
	}
	return exports
}

// identifierAfter returns the longest run of identifier characters that
// immediately follows the first occurrence of keyword in line.
func identifierAfter(line, keyword string) string {
	pos := strings.Index(line, keyword)
	if pos < 0 {
		return ""
	}
	rest := line[pos+len(keyword):]
	end := strings.IndexFunc(rest, func(r rune) bool { return !isIdentRune(r) })
	if end < 0 {
		return rest
	}
	return rest[:end]
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// HasMetadata reports a static `metadata` export.
func HasMetadata(source string) bool {
	return strings.Contains(source, "export const metadata") ||
		strings.Contains(source, "export let metadata")
}

// HasGenerateMetadata reports a `generateMetadata` function or const export.
func HasGenerateMetadata(source string) bool {
	return strings.Contains(source, "export function generateMetadata") ||
		strings.Contains(source, "export async function generateMetadata") ||
		strings.Contains(source, "export const generateMetadata")
}

// MetadataInfo reports which metadata declarations a file carries.
type MetadataInfo struct {
	HasStaticMetadata   bool `json:"hasStaticMetadata"`
	HasGenerateMetadata bool `json:"hasGenerateMetadata"`
}

// AnalyzeMetadata reports both metadata markers for source.
func AnalyzeMetadata(source string) MetadataInfo {
	return MetadataInfo{
		HasStaticMetadata:   HasMetadata(source),
		HasGenerateMetadata: HasGenerateMetadata(source),
	}
}
