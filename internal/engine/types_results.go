package engine

import (
	"github.com/danieljhkim/vista/internal/directive"
	"github.com/danieljhkim/vista/internal/manifest"
	"github.com/danieljhkim/vista/internal/prerender"
	"github.com/danieljhkim/vista/internal/routes"
	"github.com/danieljhkim/vista/internal/scanner"
)

// ScanResult represents the classified route tree.
type ScanResult struct {
	// AppDir is the scanned directory
	AppDir string `json:"appDir"`

	// Scan is the classification
	Scan *scanner.Result `json:"scan"`
}

// BuildResult represents the outputs of one build.
type BuildResult struct {
	// AppDir is the scanned directory
	AppDir string `json:"appDir"`

	// BuildID is the id stamped into both manifests
	BuildID string `json:"buildId"`

	// BuildIDReused reports that BuildID was read from the existing BUILD_ID file
	BuildIDReused bool `json:"buildIdReused"`

	// Scan is the classification the manifests were generated from
	Scan *scanner.Result `json:"-"`

	// Violations are the boundary violations found by the scan
	Violations []scanner.ServerComponentError `json:"violations"`

	ClientManifest *manifest.ClientManifest `json:"-"`
	ServerManifest *manifest.ServerManifest `json:"-"`
	RoutesManifest *manifest.RoutesManifest `json:"-"`

	// Written lists the output files in write order
	Written []string `json:"written"`

	// ElapsedMS is the wall time of the build in milliseconds
	ElapsedMS int64 `json:"elapsedMs"`
}

// RoutesResult represents the route tree and its flat route listing.
type RoutesResult struct {
	// AppDir is the scanned directory
	AppDir string `json:"appDir"`

	// Tree is the nested route tree
	Tree *routes.Node `json:"tree"`

	// Routes is the sorted flat route listing
	Routes []manifest.RouteEntry `json:"routes"`
}

// PrerenderResult represents placeholder metadata per component.
type PrerenderResult struct {
	// Components maps component id to its placeholder
	Components map[string]*prerender.Component `json:"components"`
}

// CheckResult represents the analysis of one file.
type CheckResult struct {
	// Path is the file path relative to the app directory
	Path string `json:"path"`

	// Kind is the file's role in the route tree
	Kind scanner.Kind `json:"componentType"`

	// Directive is the first-significant-line detection result
	Directive directive.Result `json:"directive"`

	// LeadingDirective reports the directive at byte zero of the file
	LeadingDirective bool `json:"leadingDirective"`

	// ModuleID is the manifest key the file would be registered under
	ModuleID string `json:"moduleId"`

	Exports     []string             `json:"exports"`
	ClientHooks []string             `json:"clientHooks"`
	Metadata    scanner.MetadataInfo `json:"metadata"`

	// Violation is set when client-only APIs appear without the directive
	Violation *scanner.ServerComponentError `json:"violation,omitempty"`
}
