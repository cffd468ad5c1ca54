package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/vista/internal/engine"
	"github.com/danieljhkim/vista/internal/scanner"
)

var scanAllowViolations bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Classify components and report boundary violations",
	Long: `Walk the app directory and classify every source file as a client or server
component. Server components that use client-only hooks or event handlers are
reported as violations, and the command fails unless --allow-violations is set.`,
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

		result, err := eng.Scan(cmd.Context(), &engine.ScanRequest{CWD: cwd, AppDir: appDirFlag})
		if err != nil {
			return err
		}
		scan := result.Scan

		if jsonOutput {
			if err := outputJSON(scan); err != nil {
				return err
			}
		} else {
			printScan(result.AppDir, scan)
		}

		if len(scan.Errors) > 0 && !scanAllowViolations {
			return &engine.ViolationError{Count: len(scan.Errors)}
		}
		return nil
	},
}

func printScan(appDir string, scan *scanner.Result) {
	PrintSection("Scan")
	PrintLabelValue("App directory", appDir)
	PrintLabelValue("Files", fmt.Sprintf("%d", scan.TotalFiles))
	PrintLabelValue("Elapsed", fmt.Sprintf("%dms", scan.ScanTimeMS))

	groups := []struct {
		title      string
		components []*scanner.Component
	}{
		{"Client components", scan.ClientComponents},
		{"Server components", scan.ServerComponents},
		{"Pages", scan.Pages},
		{"Layouts", scan.Layouts},
		{"API routes", scan.APIRoutes},
	}
	for _, g := range groups {
		fmt.Println()
		PrintSubsection(fmt.Sprintf("%s (%d)", g.title, len(g.components)))
		if len(g.components) == 0 {
			PrintEmptyState("none")
			continue
		}
		items := make([]string, 0, len(g.components))
		for _, c := range g.components {
			items = append(items, c.RelativePath)
		}
		PrintList(items, 2)
	}

	printViolations(scan.Errors)
}

func printViolations(violations []scanner.ServerComponentError) {
	if len(violations) == 0 {
		fmt.Println()
		PrintSuccess("No server component violations")
		return
	}
	PrintSection("Violations")
	for _, v := range violations {
		PrintError(fmt.Sprintf("%s: %s", v.File, v.Message))
	}
}

func init() {
	scanCmd.Flags().BoolVar(&scanAllowViolations, "allow-violations", false, "Exit successfully even when violations are found")
}
