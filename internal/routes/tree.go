package routes

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/danieljhkim/vista/internal/fsops"
	"github.com/danieljhkim/vista/internal/scanner"
)

// Node is one directory in the nested route tree. Paths are absolute and
// empty when the directory has no such file.
type Node struct {
	Segment      string  `json:"segment"`
	Kind         Kind    `json:"kind"`
	IndexPath    string  `json:"indexPath,omitempty"`
	LayoutPath   string  `json:"layoutPath,omitempty"`
	LoadingPath  string  `json:"loadingPath,omitempty"`
	ErrorPath    string  `json:"errorPath,omitempty"`
	NotFoundPath string  `json:"notFoundPath,omitempty"`
	Children     []*Node `json:"children"`
}

// hasContent reports whether the node is worth attaching to its parent.
func (n *Node) hasContent() bool {
	return n.IndexPath != "" || n.LayoutPath != "" || len(n.Children) > 0
}

// BuildTree builds the route tree rooted at rootDir. The root node always
// has an empty Static segment. Unreadable directories produce nodes without
// children. The only error returned is ctx.Err().
func BuildTree(ctx context.Context, fsys fsops.FS, rootDir string) (*Node, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		root = rootDir
	}
	node := &Node{Kind: Static, Children: []*Node{}}
	if err := fill(ctx, fsys, root, node); err != nil {
		return nil, err
	}
	return node, nil
}

func build(ctx context.Context, fsys fsops.FS, dir string) (*Node, error) {
	label, kind := ClassifySegment(filepath.Base(dir))
	node := &Node{Segment: label, Kind: kind, Children: []*Node{}}
	if err := fill(ctx, fsys, dir, node); err != nil {
		return nil, err
	}
	return node, nil
}

func fill(ctx context.Context, fsys fsops.FS, dir string, node *Node) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := entry.Name()
		path := filepath.Join(dir, name)

		isDir := entry.IsDir()
		if !isDir && !entry.Type().IsRegular() {
			info, err := fsys.Stat(path)
			if err != nil {
				continue
			}
			isDir = info.IsDir()
		}

		if isDir {
			if fsops.IsSkippedDir(name) {
				continue
			}
			child, err := build(ctx, fsys, path)
			if err != nil {
				return err
			}
			if child.hasContent() {
				node.Children = append(node.Children, child)
			}
			continue
		}

		if !scanner.IsSourceFile(name) {
			continue
		}
		switch scanner.KindFromName(scanner.Stem(name)) {
		case scanner.KindPage:
			node.IndexPath = path
		case scanner.KindLayout:
			node.LayoutPath = path
		case scanner.KindLoading:
			node.LoadingPath = path
		case scanner.KindError:
			node.ErrorPath = path
		case scanner.KindNotFound:
			node.NotFoundPath = path
		}
	}

	sort.SliceStable(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		return Less(a.Segment, a.Kind, b.Segment, b.Kind)
	})
	return nil
}

// Walk visits n and its descendants depth-first, passing the URL prefix
// accumulated from the root. Group segments add nothing to the prefix.
func (n *Node) Walk(fn func(prefix string, node *Node)) {
	n.walk("", fn)
}

func (n *Node) walk(prefix string, fn func(string, *Node)) {
	switch n.Kind {
	case Dynamic:
		prefix += "/:" + n.Segment
	case CatchAll:
		prefix += "/:" + n.Segment + "*"
	case Static:
		if n.Segment != "" {
			prefix += "/" + n.Segment
		}
	}
	fn(prefix, n)
	for _, c := range n.Children {
		c.walk(prefix, fn)
	}
}
