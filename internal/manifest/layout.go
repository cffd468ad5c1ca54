package manifest

import (
	"path"

	"github.com/danieljhkim/vista/internal/scanner"
)

// ancestors returns the directories from relPath's parent up to the app
// root ".", innermost first.
func ancestors(relPath string) []string {
	dirs := []string{}
	dir := path.Dir(relPath)
	for {
		dirs = append(dirs, dir)
		if dir == "." || dir == "/" {
			return dirs
		}
		dir = path.Dir(dir)
	}
}

// byDir indexes components by their parent directory. The first component
// in walk order wins.
func byDir(components []*scanner.Component) map[string]*scanner.Component {
	m := make(map[string]*scanner.Component, len(components))
	for _, c := range components {
		dir := path.Dir(c.RelativePath)
		if _, ok := m[dir]; !ok {
			m[dir] = c
		}
	}
	return m
}

// LayoutChain returns the absolute paths of the layouts enclosing page,
// root layout first.
func LayoutChain(page *scanner.Component, layouts []*scanner.Component) []string {
	index := byDir(layouts)
	chain := []string{}
	for _, dir := range ancestors(page.RelativePath) {
		if l, ok := index[dir]; ok {
			chain = append([]string{l.AbsolutePath}, chain...)
		}
	}
	return chain
}

// Nearest returns the absolute path of the innermost candidate whose
// directory encloses page, or "" when none does.
func Nearest(page *scanner.Component, candidates []*scanner.Component) string {
	index := byDir(candidates)
	for _, dir := range ancestors(page.RelativePath) {
		if c, ok := index[dir]; ok {
			return c.AbsolutePath
		}
	}
	return ""
}
