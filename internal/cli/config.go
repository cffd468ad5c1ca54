package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved project configuration",
	Long: `Print the configuration after vista.yaml, .env and environment overrides
have been applied, along with the resolved output paths.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if appDirFlag != "" {
			cfg.AppDir = appDirFlag
		}
		paths := cfg.Paths()

		if jsonOutput {
			return outputJSON(map[string]any{
				"projectRoot": cfg.ProjectRoot,
				"appDir":      cfg.AppPath(),
				"outDir":      paths.Root,
				"buildId":     cfg.BuildID,
				"debounce":    cfg.DebounceDuration().String(),
			})
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		PrintSection("Configuration")
		fmt.Print(string(data))

		PrintSection("Paths")
		PrintLabelValue("Project root", cfg.ProjectRoot)
		PrintLabelValue("App directory", cfg.AppPath())
		PrintLabelValue("Output", paths.Root)
		PrintLabelValue("Client manifest", paths.ClientManifest)
		PrintLabelValue("Server manifest", paths.ServerManifest)
		PrintLabelValue("Routes manifest", paths.RoutesManifest)
		return nil
	},
}
