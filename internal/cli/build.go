package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/vista/internal/engine"
)

var buildAllowViolations bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the build id and the client, server and routes manifests",
	Long: `Scan the app directory and write the build outputs under the output directory:

  BUILD_ID                     the build id stamped into every manifest
  client-manifest.json         client modules and their chunk URLs
  server/server-manifest.json  server modules and compiled routes
  routes-manifest.json         static and dynamic routes

Every build records a fresh build id. The build fails on server component
violations unless --allow-violations is set.`,
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

		result, err := eng.Build(cmd.Context(), &engine.BuildRequest{
			CWD:             cwd,
			AppDir:          appDirFlag,
			AllowViolations: buildAllowViolations,
		})
		if err != nil {
			if result != nil && errors.Is(err, engine.ErrViolations) {
				if jsonOutput {
					_ = outputJSON(result)
				} else {
					printViolations(result.Violations)
					fmt.Println()
					PrintWarning("Add 'client load' to the listed files or use --allow-violations.")
				}
			}
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		printBuild(eng.Paths().Root, result)
		return nil
	},
}

func printBuild(outDir string, result *engine.BuildResult) {
	PrintSuccess(fmt.Sprintf("Built %s in %dms",
		pluralize(result.Scan.TotalFiles, "file", "files"), result.ElapsedMS))
	PrintLabelValue("Build ID", result.BuildID)
	PrintLabelValue("Client modules", fmt.Sprintf("%d", len(result.ClientManifest.ClientModules)))
	PrintLabelValue("Server modules", fmt.Sprintf("%d", len(result.ServerManifest.ServerModules)))
	PrintLabelValue("Routes", fmt.Sprintf("%d", len(result.ServerManifest.Routes)))

	written := make([]string, 0, len(result.Written))
	for _, p := range result.Written {
		if rel, err := filepath.Rel(outDir, p); err == nil {
			p = rel
		}
		written = append(written, p)
	}
	PrintSubsection("Wrote:")
	PrintList(written, 2)

	if len(result.Violations) > 0 {
		printViolations(result.Violations)
	}
}

func init() {
	buildCmd.Flags().BoolVar(&buildAllowViolations, "allow-violations", false, "Write the outputs even when violations are found")
}
