package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/vista/internal/engine"
	"github.com/danieljhkim/vista/internal/routes"
)

var routesTree bool

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List compiled routes",
	Long: `List every page route with its URL pattern, route type and layout chain,
sorted static before dynamic before catch-all. Use --tree to print the nested
route tree instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		cwd, err := workingDir()
		if err != nil {
			return err
		}

		result, err := eng.Routes(cmd.Context(), &engine.RoutesRequest{CWD: cwd, AppDir: appDirFlag})
		if err != nil {
			return err
		}

		if jsonOutput {
			if routesTree {
				return outputJSON(result.Tree)
			}
			return outputJSON(result.Routes)
		}

		if routesTree {
			PrintSection("Route Tree")
			fmt.Print(renderTree(result.Tree))
			return nil
		}

		PrintSection(fmt.Sprintf("Routes (%d)", len(result.Routes)))
		if len(result.Routes) == 0 {
			PrintEmptyState("No pages found")
			return nil
		}
		rows := make([][]string, 0, len(result.Routes))
		for _, r := range result.Routes {
			rows = append(rows, []string{r.Pattern, r.RouteType.String(), r.PagePath, strings.Join(r.LayoutPaths, " > ")})
		}
		PrintTable([]string{"PATTERN", "TYPE", "PAGE", "LAYOUTS"}, rows)
		return nil
	},
}

// renderTree draws the route tree one node per line, indented by depth.
func renderTree(root *routes.Node) string {
	var b strings.Builder
	var visit func(n *routes.Node, depth int)
	visit = func(n *routes.Node, depth int) {
		label := treeLabel(n)
		var files []string
		for _, f := range []struct{ name, path string }{
			{"page", n.IndexPath},
			{"layout", n.LayoutPath},
			{"loading", n.LoadingPath},
			{"error", n.ErrorPath},
			{"not-found", n.NotFoundPath},
		} {
			if f.path != "" {
				files = append(files, f.name)
			}
		}
		fmt.Fprintf(&b, "  %s%s", strings.Repeat("  ", depth), label)
		if len(files) > 0 {
			fmt.Fprintf(&b, "  [%s]", strings.Join(files, ", "))
		}
		b.WriteString("\n")
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	visit(root, 0)
	return b.String()
}

func treeLabel(n *routes.Node) string {
	switch n.Kind {
	case routes.Dynamic:
		return "[" + n.Segment + "]"
	case routes.CatchAll:
		return "[..." + n.Segment + "]"
	case routes.Group:
		// group names are dropped when the tree is built
		return "(group)"
	default:
		if n.Segment == "" {
			return "/"
		}
		return n.Segment
	}
}

func init() {
	routesCmd.Flags().BoolVar(&routesTree, "tree", false, "Print the nested route tree")
}
