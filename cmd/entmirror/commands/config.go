package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/entmirror/display"
)

// ConfigCmd inspects the effective configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or validate the configuration",
	Long: `Display the configuration after defaults, the config file and
ENTMIRROR_* environment overrides are applied.

Examples:
  entmirror config show                 # Show effective configuration
  entmirror config show --format json
  entmirror config validate`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	RunE:  runConfigValidate,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", display.FormatTOML, "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if configFormat != display.FormatJSON {
		fmt.Fprintf(out, "# entmirror configuration (%s)\n", cfg.File)
	}
	return display.Output(out, cfg, configFormat)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration is valid (%s)\n", cfg.File)
	return nil
}
