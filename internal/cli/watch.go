package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/vista/internal/engine"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the manifests whenever a source file changes",
	Long: `Build once, then rebuild after every debounced batch of source changes until
interrupted. Watch builds reuse the recorded build id and report server
component violations without failing.`,
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

		onBuild := func(result *engine.BuildResult, err error) {
			if jsonOutput {
				if err != nil {
					_ = outputJSON(map[string]string{"error": err.Error()})
					return
				}
				_ = outputJSON(result)
				return
			}
			if err != nil {
				PrintError(fmt.Sprintf("Build failed: %v", err))
				return
			}
			printBuild(eng.Paths().Root, result)
		}

		if !jsonOutput {
			PrintInfo("Watching for changes. Press Ctrl+C to stop.")
		}
		return eng.Watch(cmd.Context(), &engine.WatchRequest{CWD: cwd, AppDir: appDirFlag}, onBuild)
	},
}
