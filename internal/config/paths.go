// Package config manages vista configuration and build output paths.
//
// Configuration is read from an optional vista.yaml, then an optional .env
// file next to it, then the process environment; later sources win. Build
// outputs live under the .vista/ directory of the project root.
package config

import "path/filepath"

// DefaultOutDir is the build output directory relative to the project root.
const DefaultOutDir = ".vista"

// Paths contains all the filesystem paths used by a build.
type Paths struct {
	// Root is the build output directory (default: <project>/.vista)
	Root string

	// Server holds server-only artifacts
	Server string

	// Static holds files served to the browser
	Static string

	// Chunks holds client component chunks, served under /_vista/static/chunks
	Chunks string

	// Cache holds bundler caches
	Cache string

	// BuildID is the file recording the current build id
	BuildID string

	// ClientManifest is the client manifest written by a build
	ClientManifest string

	// ServerManifest is the server manifest written by a build
	ServerManifest string

	// RoutesManifest is the flat routes manifest written by a build
	RoutesManifest string
}

// NewPaths returns the output layout rooted at outDir. A relative outDir is
// resolved against projectRoot.
func NewPaths(projectRoot, outDir string) *Paths {
	if outDir == "" {
		outDir = DefaultOutDir
	}
	root := outDir
	if !filepath.IsAbs(root) {
		root = filepath.Join(projectRoot, outDir)
	}
	server := filepath.Join(root, "server")
	static := filepath.Join(root, "static")

	return &Paths{
		Root:           root,
		Server:         server,
		Static:         static,
		Chunks:         filepath.Join(static, "chunks"),
		Cache:          filepath.Join(root, "cache"),
		BuildID:        filepath.Join(root, "BUILD_ID"),
		ClientManifest: filepath.Join(root, "client-manifest.json"),
		ServerManifest: filepath.Join(server, "server-manifest.json"),
		RoutesManifest: filepath.Join(root, "routes-manifest.json"),
	}
}

// Directories lists the output directories in creation order.
func (p *Paths) Directories() []string {
	return []string{
		p.Root,
		p.Server,
		p.Static,
		p.Chunks,
		p.Cache,
	}
}
