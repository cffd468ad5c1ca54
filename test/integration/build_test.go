package integration

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danieljhkim/vista/internal/config"
	"github.com/danieljhkim/vista/internal/engine"
	"github.com/danieljhkim/vista/internal/manifest"
	"github.com/danieljhkim/vista/internal/routes"
)

const page = "export default function Page() { return <main /> }"

func addSite(fs *testFS) {
	fs.addFile("layout.tsx", "export const metadata = { title: 'Site' };\nexport default function RootLayout({ children }) { return children }")
	fs.addFile("page.tsx", page)
	fs.addFile("loading.tsx", page)
	fs.addFile("blog/layout.tsx", page)
	fs.addFile("blog/page.tsx", page)
	fs.addFile("blog/[slug]/page.tsx", "export async function generateMetadata() {}\n"+page)
	fs.addFile("docs/[...path]/page.tsx", page)
	fs.addFile("(marketing)/pricing/page.tsx", page)
	fs.addFile("components/LikeButton.tsx", "'client load';\nimport { useState } from 'react';\nexport default function LikeButton() { const [n, setN] = useState(0); return <button onClick={() => setN(n + 1)}>{n}</button> }")
	fs.addFile("api/health/route.ts", "export async function GET() { return new Response('ok') }")
}

func decode(t *testing.T, fs *testFS, path string, v any) {
	t.Helper()
	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("expected %s to be written: %v", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("failed to decode %s: %v", path, err)
	}
}

func TestBuild_FullCycle(t *testing.T) {
	eng, fs := setupTestEngine(t, config.StrategyGit)
	addSite(fs)
	ctx := context.Background()

	result, err := eng.Build(ctx, &engine.BuildRequest{CWD: projectRoot})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if result.BuildID != "4f2a9c1" {
		t.Errorf("BuildID = %q, want the git revision", result.BuildID)
	}

	paths := eng.Paths()
	wantWrites := []string{paths.BuildID, paths.ClientManifest, paths.ServerManifest, paths.RoutesManifest}
	if diff := cmp.Diff(wantWrites, fs.writes); diff != "" {
		t.Errorf("writes mismatch (-want +got):\n%s", diff)
	}

	// Client manifest
	var client manifest.ClientManifest
	decode(t, fs, paths.ClientManifest, &client)
	abs := filepath.Join(projectRoot, "app", "components", "LikeButton.tsx")
	wantClient := manifest.ClientManifest{
		BuildID: "4f2a9c1",
		ClientModules: map[string]*manifest.ClientModuleEntry{
			"client:components/LikeButton": {
				ID:           "client:components/LikeButton",
				Path:         "components/LikeButton.tsx",
				AbsolutePath: abs,
				ChunkName:    "components_likebutton",
				Exports:      []string{"default"},
				AsyncLoad:    false,
			},
		},
		PathToID: map[string]string{
			"components/LikeButton.tsx": "client:components/LikeButton",
			abs:                         "client:components/LikeButton",
		},
		SSRModuleMapping: map[string]string{
			abs: "/_vista/static/chunks/components_likebutton.js",
		},
	}
	if diff := cmp.Diff(wantClient, client); diff != "" {
		t.Errorf("client manifest mismatch (-want +got):\n%s", diff)
	}

	// Server manifest routes
	var server manifest.ServerManifest
	decode(t, fs, paths.ServerManifest, &server)
	app := func(rel string) string { return filepath.Join(projectRoot, "app", filepath.FromSlash(rel)) }
	rootLayout, blogLayout, loading := app("layout.tsx"), app("blog/layout.tsx"), app("loading.tsx")
	wantRoutes := []manifest.RouteEntry{
		{Pattern: "/", PagePath: app("page.tsx"), LayoutPaths: []string{rootLayout}, LoadingPath: loading, RouteType: routes.Static},
		{Pattern: "/blog", PagePath: app("blog/page.tsx"), LayoutPaths: []string{rootLayout, blogLayout}, LoadingPath: loading, RouteType: routes.Static},
		{Pattern: "/pricing", PagePath: app("(marketing)/pricing/page.tsx"), LayoutPaths: []string{rootLayout}, LoadingPath: loading, RouteType: routes.Static},
		{Pattern: "/blog/:slug", PagePath: app("blog/[slug]/page.tsx"), LayoutPaths: []string{rootLayout, blogLayout}, LoadingPath: loading, RouteType: routes.Dynamic},
		{Pattern: "/docs/:path*", PagePath: app("docs/[...path]/page.tsx"), LayoutPaths: []string{rootLayout}, LoadingPath: loading, RouteType: routes.CatchAll},
	}
	if diff := cmp.Diff(wantRoutes, server.Routes); diff != "" {
		t.Errorf("routes mismatch (-want +got):\n%s", diff)
	}
	if server.BuildID != client.BuildID {
		t.Errorf("manifests disagree on build id: %q vs %q", server.BuildID, client.BuildID)
	}
	if entry := server.ServerModules["server:blog/[slug]/page"]; entry == nil || !entry.HasGenerateMetadata {
		t.Errorf("expected generateMetadata on the post page, got %+v", entry)
	}
	if _, ok := server.ServerModules["server:api/health/route"]; ok {
		t.Error("API routes should not be registered as server modules")
	}

	// Routes manifest
	var routesManifest manifest.RoutesManifest
	decode(t, fs, paths.RoutesManifest, &routesManifest)
	if len(routesManifest.StaticRoutes) != 3 || len(routesManifest.DynamicRoutes) != 2 {
		t.Errorf("routes manifest split = %d static / %d dynamic",
			len(routesManifest.StaticRoutes), len(routesManifest.DynamicRoutes))
	}
}

func TestBuild_WatchKeepsBuildID(t *testing.T) {
	eng, fs := setupTestEngine(t, config.StrategyRandom)
	addSite(fs)
	ctx := context.Background()

	first, err := eng.Build(ctx, &engine.BuildRequest{CWD: projectRoot})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// A violation no longer blocks watch builds
	fs.addFile("components/Clock.tsx", "export default function Clock() { useEffect(() => {}) }")
	watched, err := eng.Build(ctx, &engine.BuildRequest{CWD: projectRoot, Watch: true})
	if err != nil {
		t.Fatalf("watch Build() error = %v", err)
	}
	if watched.BuildID != first.BuildID || !watched.BuildIDReused {
		t.Errorf("watch build id = %q, want reused %q", watched.BuildID, first.BuildID)
	}

	_, err = eng.Build(ctx, &engine.BuildRequest{CWD: projectRoot})
	if !errors.Is(err, engine.ErrViolations) {
		t.Errorf("expected a normal build to fail on violations, got %v", err)
	}
}

func TestBuild_ContentIDTracksSources(t *testing.T) {
	eng, fs := setupTestEngine(t, config.StrategyContent)
	addSite(fs)
	ctx := context.Background()

	before, err := eng.Build(ctx, &engine.BuildRequest{CWD: projectRoot})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	again, err := eng.Build(ctx, &engine.BuildRequest{CWD: projectRoot})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if before.BuildID != again.BuildID {
		t.Errorf("unchanged sources produced %q then %q", before.BuildID, again.BuildID)
	}

	fs.addFile("page.tsx", "export default function Home() { return 'edited' }")
	after, err := eng.Build(ctx, &engine.BuildRequest{CWD: projectRoot})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if after.BuildID == before.BuildID {
		t.Error("editing a source file should change the content build id")
	}
}

func TestRoutes_TreeMatchesManifest(t *testing.T) {
	eng, fs := setupTestEngine(t, config.StrategyRandom)
	addSite(fs)

	result, err := eng.Routes(context.Background(), &engine.RoutesRequest{CWD: projectRoot})
	if err != nil {
		t.Fatalf("Routes() error = %v", err)
	}

	fromTree := map[string]string{}
	result.Tree.Walk(func(prefix string, n *routes.Node) {
		if n.IndexPath != "" {
			if prefix == "" {
				prefix = "/"
			}
			fromTree[prefix] = n.IndexPath
		}
	})

	fromManifest := map[string]string{}
	for _, r := range result.Routes {
		fromManifest[r.Pattern] = r.PagePath
	}
	if diff := cmp.Diff(fromManifest, fromTree); diff != "" {
		t.Errorf("tree and flat routes disagree (-manifest +tree):\n%s", diff)
	}
}
