// Package manifest assembles the client and server manifests consumed by the
// bundler and the SSR runtime.
//
// Both manifests are derived from a single scan. Maps are encoded with sorted
// keys, so a manifest generated twice from an unchanged tree is
// byte-identical.
package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/danieljhkim/vista/internal/routes"
	"github.com/danieljhkim/vista/internal/scanner"
)

// ClientModuleEntry describes one client component.
type ClientModuleEntry struct {
	ID           string   `json:"id"`
	Path         string   `json:"path"`
	AbsolutePath string   `json:"absolutePath"`
	ChunkName    string   `json:"chunkName"`
	Exports      []string `json:"exports"`
	AsyncLoad    bool     `json:"asyncLoad"`
}

// ClientManifest maps client modules to their chunks.
type ClientManifest struct {
	BuildID       string                        `json:"buildId"`
	ClientModules map[string]*ClientModuleEntry `json:"clientModules"`

	// PathToID maps both relative and absolute paths to module ids.
	PathToID map[string]string `json:"pathToId"`

	// SSRModuleMapping maps absolute paths to chunk URLs.
	SSRModuleMapping map[string]string `json:"ssrModuleMapping"`
}

// ServerModuleEntry describes one server component.
type ServerModuleEntry struct {
	ID                  string `json:"id"`
	Path                string `json:"path"`
	AbsolutePath        string `json:"absolutePath"`
	ComponentType       string `json:"componentType"`
	HasMetadata         bool   `json:"hasMetadata"`
	HasGenerateMetadata bool   `json:"hasGenerateMetadata"`

	// ClientDependencies is always empty: imports are not analyzed.
	ClientDependencies []string `json:"clientDependencies"`
}

// RouteEntry is one page route.
type RouteEntry struct {
	Pattern     string      `json:"pattern"`
	PagePath    string      `json:"pagePath"`
	LayoutPaths []string    `json:"layoutPaths"`
	LoadingPath string      `json:"loadingPath,omitempty"`
	ErrorPath   string      `json:"errorPath,omitempty"`
	RouteType   routes.Kind `json:"routeType"`
}

// ServerManifest maps server modules and routes.
type ServerManifest struct {
	BuildID       string                        `json:"buildId"`
	ServerModules map[string]*ServerModuleEntry `json:"serverModules"`
	PathToID      map[string]string             `json:"pathToId"`
	Routes        []RouteEntry                  `json:"routes"`
}

// Scanner produces scan results for an app directory.
type Scanner interface {
	Scan(ctx context.Context, rootDir string) (*scanner.Result, error)
}

// Build derives both manifests from one scan result.
func Build(scan *scanner.Result, buildID string) (*ClientManifest, *ServerManifest) {
	return NewClientManifest(scan, buildID), NewServerManifest(scan, buildID)
}

// NewClientManifest builds the client manifest from scan.
func NewClientManifest(scan *scanner.Result, buildID string) *ClientManifest {
	m := &ClientManifest{
		BuildID:          buildID,
		ClientModules:    make(map[string]*ClientModuleEntry),
		PathToID:         make(map[string]string),
		SSRModuleMapping: make(map[string]string),
	}
	for _, c := range scan.ClientComponents {
		id := ModuleID(c.RelativePath, true)
		chunk := ChunkName(c.RelativePath)
		m.ClientModules[id] = &ClientModuleEntry{
			ID:           id,
			Path:         c.RelativePath,
			AbsolutePath: c.AbsolutePath,
			ChunkName:    chunk,
			Exports:      c.Exports,
			AsyncLoad:    false,
		}
		m.PathToID[c.RelativePath] = id
		m.PathToID[c.AbsolutePath] = id
		m.SSRModuleMapping[c.AbsolutePath] = ChunkURL(chunk)
	}
	return m
}

// NewServerManifest builds the server manifest from scan.
func NewServerManifest(scan *scanner.Result, buildID string) *ServerManifest {
	m := &ServerManifest{
		BuildID:       buildID,
		ServerModules: make(map[string]*ServerModuleEntry),
		PathToID:      make(map[string]string),
		Routes:        Routes(scan),
	}
	for _, c := range scan.ServerComponents {
		id := ModuleID(c.RelativePath, false)
		m.ServerModules[id] = &ServerModuleEntry{
			ID:                  id,
			Path:                c.RelativePath,
			AbsolutePath:        c.AbsolutePath,
			ComponentType:       c.Kind.String(),
			HasMetadata:         c.HasMetadata,
			HasGenerateMetadata: c.HasGenerateMetadata,
			ClientDependencies:  []string{},
		}
		m.PathToID[c.RelativePath] = id
		m.PathToID[c.AbsolutePath] = id
	}
	return m
}

// Routes compiles one route per page, sorted static < dynamic < catch-all
// and then by pattern.
func Routes(scan *scanner.Result) []RouteEntry {
	loading := scan.OfKind(scanner.KindLoading)
	errs := scan.OfKind(scanner.KindError)

	out := make([]RouteEntry, 0, len(scan.Pages))
	for _, page := range scan.Pages {
		pattern, kind := routes.CompilePattern(page.RelativePath)
		out = append(out, RouteEntry{
			Pattern:     pattern,
			PagePath:    page.AbsolutePath,
			LayoutPaths: LayoutChain(page, scan.Layouts),
			LoadingPath: Nearest(page, loading),
			ErrorPath:   Nearest(page, errs),
			RouteType:   kind,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return routes.Less(out[i].Pattern, out[i].RouteType, out[j].Pattern, out[j].RouteType)
	})
	return out
}

// GenerateClientManifest scans appDir and builds its client manifest.
func GenerateClientManifest(ctx context.Context, s Scanner, appDir, buildID string) (*ClientManifest, error) {
	scan, err := s.Scan(ctx, appDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", appDir, err)
	}
	return NewClientManifest(scan, buildID), nil
}

// GenerateServerManifest scans appDir and builds its server manifest.
func GenerateServerManifest(ctx context.Context, s Scanner, appDir, buildID string) (*ServerManifest, error) {
	scan, err := s.Scan(ctx, appDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", appDir, err)
	}
	return NewServerManifest(scan, buildID), nil
}

// Marshal encodes a manifest as indented JSON with a trailing newline.
func Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}
