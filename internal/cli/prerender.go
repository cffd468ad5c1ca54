package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/vista/internal/engine"
)

var prerenderHTML bool

var prerenderCmd = &cobra.Command{
	Use:   "prerender [file]",
	Short: "Compute loading placeholders for client components",
	Long: `Estimate a shimmer placeholder for a client component from its root style
object and element counts. Without [file], every .tsx and .jsx file under the
app directory that begins with the client directive is prerendered.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		cwd, err := workingDir()
		if err != nil {
			return err
		}

		req := &engine.PrerenderRequest{CWD: cwd, AppDir: appDirFlag}
		if len(args) > 0 {
			req.File = args[0]
		}

		result, err := eng.Prerender(cmd.Context(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result.Components)
		}

		PrintSection(fmt.Sprintf("Placeholders (%d)", len(result.Components)))
		if len(result.Components) == 0 {
			PrintEmptyState("No client components found")
			return nil
		}

		ids := make([]string, 0, len(result.Components))
		for id := range result.Components {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		rows := make([][]string, 0, len(ids))
		for _, id := range ids {
			c := result.Components[id]
			rows = append(rows, []string{
				id,
				fmt.Sprintf("%dpx", c.EstimatedHeight),
				fmt.Sprintf("h%d p%d b%d div%d", c.Counts.Headings, c.Counts.Paragraphs, c.Counts.Buttons, c.Counts.Divs),
				c.Path,
			})
		}
		PrintTable([]string{"COMPONENT", "HEIGHT", "ELEMENTS", "PATH"}, rows)

		if prerenderHTML {
			for _, id := range ids {
				fmt.Println()
				PrintSubsection(id)
				fmt.Println(result.Components[id].PlaceholderHTML)
			}
		}
		return nil
	},
}

func init() {
	prerenderCmd.Flags().BoolVar(&prerenderHTML, "html", false, "Also print the placeholder markup")
}
