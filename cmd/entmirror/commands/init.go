package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/entmirror/config"
)

var initForce bool

// InitCmd writes a default config file
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default entmirror.toml",
	Long: `Write a config file with the default settings to the path given by
--config (entmirror.toml by default). An existing file is kept unless
--force is set.

Examples:
  entmirror init
  entmirror init --force
  entmirror -c tools/entmirror.toml init`,
	RunE: runInit,
}

func init() {
	InitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultFileName
	}

	if err := config.WriteFile(path, config.Default(), initForce); err != nil {
		return err
	}
	pterm.Success.Printfln("Created %s", path)
	return nil
}
