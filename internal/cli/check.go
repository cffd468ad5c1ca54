package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/vista/internal/engine"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Analyze a single component file",
	Long: `Report how one file under the app directory is classified: its directive,
role in the route tree, manifest module id, exports, client-only hooks and
metadata declarations. Fails when the file is a server component that uses
client-only APIs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		cwd, err := workingDir()
		if err != nil {
			return err
		}

		result, err := eng.Check(cmd.Context(), &engine.CheckRequest{CWD: cwd, AppDir: appDirFlag, Path: args[0]})
		if err != nil {
			return err
		}

		if jsonOutput {
			if err := outputJSON(result); err != nil {
				return err
			}
		} else {
			printCheck(result)
		}

		if result.Violation != nil {
			return &engine.ViolationError{Count: 1}
		}
		return nil
	},
}

func printCheck(r *engine.CheckResult) {
	PrintSection(r.Path)

	side := "server"
	if r.Directive.IsClient {
		side = fmt.Sprintf("client (directive on line %d)", r.Directive.Line)
	}
	PrintLabelValue("Component", side)
	PrintLabelValue("Type", r.Kind.String())
	PrintLabelValue("Module ID", r.ModuleID)
	PrintLabelValue("Exports", joinOrNone(r.Exports))
	PrintLabelValue("Client hooks", joinOrNone(r.ClientHooks))
	PrintLabelValue("Metadata", fmt.Sprintf("static=%v generate=%v",
		r.Metadata.HasStaticMetadata, r.Metadata.HasGenerateMetadata))

	if r.Directive.IsClient && !r.LeadingDirective {
		fmt.Println()
		PrintWarning("The directive is not at the very start of the file; placeholder prerendering will skip it.")
	}
	if r.Violation != nil {
		fmt.Println()
		PrintError(r.Violation.Message)
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
