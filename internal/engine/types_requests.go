package engine

// ScanRequest represents a request to scan the route tree.
type ScanRequest struct {
	// CWD is the current working directory
	CWD string

	// AppDir overrides the configured route tree directory
	AppDir string
}

// BuildRequest represents a request to produce the build outputs.
type BuildRequest struct {
	// CWD is the current working directory
	CWD string

	// AppDir overrides the configured route tree directory
	AppDir string

	// Watch reuses the recorded build id and tolerates boundary violations
	Watch bool

	// AllowViolations writes the outputs even when violations were found
	AllowViolations bool
}

// RoutesRequest represents a request for the route tree.
type RoutesRequest struct {
	// CWD is the current working directory
	CWD string

	// AppDir overrides the configured route tree directory
	AppDir string
}

// PrerenderRequest represents a request for placeholder metadata.
type PrerenderRequest struct {
	// CWD is the current working directory
	CWD string

	// AppDir overrides the configured route tree directory
	AppDir string

	// File limits prerendering to one client component
	File string
}

// CheckRequest represents a request to analyze a single file.
type CheckRequest struct {
	// CWD is the current working directory
	CWD string

	// AppDir overrides the configured route tree directory
	AppDir string

	// Path is the file to analyze
	Path string
}

// WatchRequest represents a request to rebuild on every change.
type WatchRequest struct {
	// CWD is the current working directory
	CWD string

	// AppDir overrides the configured route tree directory
	AppDir string
}
