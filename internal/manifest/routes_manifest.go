package manifest

import "github.com/danieljhkim/vista/internal/routes"

// RoutesManifestVersion is the routes manifest schema version.
const RoutesManifestVersion = 1

// RoutesManifest is the flat route listing used by the request router.
// Redirects, rewrites and headers are reserved and always empty.
type RoutesManifest struct {
	Version       int          `json:"version"`
	BasePath      string       `json:"basePath"`
	Redirects     []string     `json:"redirects"`
	Rewrites      []string     `json:"rewrites"`
	Headers       []string     `json:"headers"`
	StaticRoutes  []RouteEntry `json:"staticRoutes"`
	DynamicRoutes []RouteEntry `json:"dynamicRoutes"`
}

// NewRoutesManifest splits sorted routes into static and dynamic lists.
// Catch-all routes are dynamic.
func NewRoutesManifest(entries []RouteEntry) *RoutesManifest {
	m := &RoutesManifest{
		Version:       RoutesManifestVersion,
		Redirects:     []string{},
		Rewrites:      []string{},
		Headers:       []string{},
		StaticRoutes:  []RouteEntry{},
		DynamicRoutes: []RouteEntry{},
	}
	for _, r := range entries {
		if r.RouteType == routes.Static {
			m.StaticRoutes = append(m.StaticRoutes, r)
		} else {
			m.DynamicRoutes = append(m.DynamicRoutes, r)
		}
	}
	return m
}
