package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/entmirror/cmd/entmirror/commands"
	"github.com/teranos/entmirror/config"
	"github.com/teranos/entmirror/errors"
	"github.com/teranos/entmirror/logger"
)

var rootCmd = &cobra.Command{
	Use:   "entmirror",
	Short: "Mirror Go entity structs as TypeScript interfaces",
	Long: `entmirror - keep frontend entity types in step with the Go backend.

Every exported struct in the configured entity files becomes one TypeScript
interface. Embedding another entity means inheritance; references between
entities become type-only imports.

Available commands:
  generate - Write one declaration file per entity (default)
  check    - Fail when generated files are out of date
  list     - List entities and their flattened properties
  tree     - Show the inheritance tree
  watch    - Regenerate on every change
  init     - Create entmirror.toml
  config   - Show or validate the configuration

Examples:
  entmirror init           # Create entmirror.toml
  entmirror                # Generate
  entmirror check -d       # CI: fail with a diff when types are stale`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	RunE: commands.RunGenerate,
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultFileName, "Path to the config file")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	// Add commands
	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.ListCmd)
	rootCmd.AddCommand(commands.TreeCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.InitCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
	}
	os.Exit(commands.ExitCode(err))
}
