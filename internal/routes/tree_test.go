package routes

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danieljhkim/vista/internal/fsops"
)

func touch(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		p := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte("export default function X() {}"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func TestBuildTree(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"layout.tsx",
		"page.tsx",
		"not-found.tsx",
		"blog/page.tsx",
		"blog/loading.tsx",
		"blog/[slug]/page.tsx",
		"blog/[slug]/error.tsx",
		"docs/[...path]/page.tsx",
		"(marketing)/about/page.tsx",
		"(marketing)/layout.tsx",
		"components/Button.tsx",
		"empty/notes.md",
		"node_modules/pkg/page.js",
		".next/page.js",
	)

	got, err := BuildTree(context.Background(), fsops.NewRealFS(), root)
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}

	p := func(rel string) string { return filepath.Join(root, rel) }
	want := &Node{
		Segment:      "",
		Kind:         Static,
		IndexPath:    p("page.tsx"),
		LayoutPath:   p("layout.tsx"),
		NotFoundPath: p("not-found.tsx"),
		Children: []*Node{
			{
				Segment:     "blog",
				Kind:        Static,
				IndexPath:   p("blog/page.tsx"),
				LoadingPath: p("blog/loading.tsx"),
				Children: []*Node{
					{Segment: "slug", Kind: Dynamic, IndexPath: p("blog/[slug]/page.tsx"), ErrorPath: p("blog/[slug]/error.tsx"), Children: []*Node{}},
				},
			},
			{
				Segment: "docs",
				Kind:    Static,
				Children: []*Node{
					{Segment: "path", Kind: CatchAll, IndexPath: p("docs/[...path]/page.tsx"), Children: []*Node{}},
				},
			},
			{
				Segment:    "",
				Kind:       Group,
				LayoutPath: p("(marketing)/layout.tsx"),
				Children: []*Node{
					{Segment: "about", Kind: Static, IndexPath: p("(marketing)/about/page.tsx"), Children: []*Node{}},
				},
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildTree() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTree_MissingRoot(t *testing.T) {
	got, err := BuildTree(context.Background(), fsops.NewRealFS(), filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	if got.Segment != "" || got.Kind != Static || len(got.Children) != 0 {
		t.Errorf("expected empty root node, got %+v", got)
	}
}

func TestBuildTree_Cancelled(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "page.tsx")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := BuildTree(ctx, fsops.NewRealFS(), root); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNodeWalk(t *testing.T) {
	tree := &Node{Kind: Static, Children: []*Node{
		{Segment: "", Kind: Group, Children: []*Node{
			{Segment: "about", Kind: Static},
		}},
		{Segment: "blog", Kind: Static, Children: []*Node{
			{Segment: "slug", Kind: Dynamic},
		}},
		{Segment: "path", Kind: CatchAll},
	}}

	var got []string
	tree.Walk(func(prefix string, n *Node) {
		got = append(got, prefix)
	})

	want := []string{"", "", "/about", "/blog", "/blog/:slug", "/:path*"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk() prefixes mismatch (-want +got):\n%s", diff)
	}
}
