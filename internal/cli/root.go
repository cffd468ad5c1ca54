package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danieljhkim/vista/internal/config"
	"github.com/danieljhkim/vista/internal/logging"
)

var (
	// Global flags
	jsonOutput bool
	verbose    bool
	configPath string
	appDirFlag string

	// logger is replaced in PersistentPreRunE
	logger = zap.NewNop()

	// Colors for help output sections
	groupTitleColor   = color.New(color.FgCyan, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// rootCmd is the root command for vista.
var rootCmd = &cobra.Command{
	Use:     "vista",
	Version: "dev",
	Short:   "Build tooling for server/client component route trees",
	Long: `vista analyzes a file-system route tree of server and client components.

It classifies every component by its 'client load' directive, reports boundary
violations, compiles routes, and writes the client, server and routes manifests
that the renderer and the browser runtime consume.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// commandGroups lists the help sections in display order.
var commandGroups = []*cobra.Group{
	{ID: "build", Title: "Build:"},
	{ID: "inspect", Title: "Inspect:"},
	{ID: "cli-tooling", Title: "CLI & Tooling:"},
}

// customHelpFunc renders help with colored section titles and commands listed
// under their group.
func customHelpFunc(cmd *cobra.Command, args []string) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Usage:"))
	fmt.Fprintf(&help, "\n  %s\n\n", cmd.UseLine())

	width := 0
	for _, c := range cmd.Commands() {
		if !c.Hidden && len(c.Name()) > width {
			width = len(c.Name())
		}
	}

	for _, group := range cmd.Groups() {
		writeCommands(&help, groupTitleColor.Sprint(group.Title), cmd, group.ID, width)
	}
	writeCommands(&help, sectionTitleColor.Sprint("Additional Commands:"), cmd, "", width)

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailablePersistentFlags() {
		help.WriteString(sectionTitleColor.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
		help.WriteString(cmd.InheritedFlags().FlagUsages())
		help.WriteString("\n")
	}

	fmt.Fprintf(&help, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	fmt.Fprint(cmd.OutOrStdout(), help.String())
}

// writeCommands writes the visible subcommands of cmd in groupID under title.
// Nothing is written when the group is empty.
func writeCommands(help *strings.Builder, title string, cmd *cobra.Command, groupID string, width int) {
	var lines []string
	for _, c := range cmd.Commands() {
		if c.GroupID == groupID && !c.Hidden {
			lines = append(lines, fmt.Sprintf("  %-*s  %s\n", width, c.Name(), c.Short))
		}
	}
	if len(lines) == 0 {
		return
	}
	help.WriteString(title)
	help.WriteString("\n")
	for _, l := range lines {
		help.WriteString(l)
	}
	help.WriteString("\n")
}

// newCompletionCmd returns the completion command with one subcommand per
// supported shell.
func newCompletionCmd() *cobra.Command {
	completionCmd := &cobra.Command{
		Use:     "completion",
		Short:   "Generate the autocompletion script for the specified shell",
		GroupID: "cli-tooling",
		Long: `Generate the autocompletion script for vista for the specified shell.
See each sub-command's help for details on how to use the generated script.`,
	}

	shells := []struct {
		name string
		gen  func(io.Writer) error
	}{
		{"bash", rootCmd.GenBashCompletion},
		{"zsh", rootCmd.GenZshCompletion},
		{"fish", func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) }},
		{"powershell", rootCmd.GenPowerShellCompletionWithDesc},
	}
	for _, sh := range shells {
		gen := sh.gen
		completionCmd.AddCommand(&cobra.Command{
			Use:                   sh.name,
			Short:                 "Generate the autocompletion script for " + sh.name,
			Args:                  cobra.NoArgs,
			DisableFlagsInUseLine: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return gen(cmd.OutOrStdout())
			},
		})
	}
	return completionCmd
}

func init() {
	rootCmd.SetHelpFunc(customHelpFunc)

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.FileName, "Path to the project config file")
	rootCmd.PersistentFlags().StringVar(&appDirFlag, "app-dir", "", "Route tree directory (overrides config)")

	rootCmd.AddGroup(commandGroups...)

	rootCmd.SetHelpCommand(&cobra.Command{
		Use:     "help [command]",
		Short:   "Help about any command",
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			target, _, err := cmd.Root().Find(args)
			if err != nil || target == nil {
				target = cmd.Root()
			}
			_ = target.Help()
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:     "version",
		Short:   "Print the vista CLI version",
		Args:    cobra.NoArgs,
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version)
		},
	})
	rootCmd.AddCommand(newCompletionCmd())

	grouped := map[string][]*cobra.Command{
		"build":   {buildCmd, watchCmd},
		"inspect": {scanCmd, routesCmd, checkCmd, prerenderCmd, configCmd},
	}
	for _, group := range commandGroups {
		for _, c := range grouped[group.ID] {
			c.GroupID = group.ID
			rootCmd.AddCommand(c)
		}
	}
}

// Execute executes the root command. SIGINT and SIGTERM cancel the command
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
