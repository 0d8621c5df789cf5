package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/entmirror/config"
	"github.com/teranos/entmirror/errors"
	"github.com/teranos/entmirror/typegen"
	"github.com/teranos/entmirror/typegen/typescript"
)

// Exit codes
const (
	ExitOK        = 0
	ExitOutOfDate = 1
	ExitError     = 2
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errors.ErrOutOfDate):
		return ExitOutOfDate
	default:
		return ExitError
	}
}

// loadConfig reads the file named by the global --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultFileName
	}
	return config.LoadFromFile(path)
}

// pipelineOptions loads the config and builds TypeScript run options.
func pipelineOptions(cmd *cobra.Command) (*config.Config, typegen.Options, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, typegen.Options{}, err
	}
	return cfg, typegen.OptionsFromConfig(cfg, typescript.NewGenerator()), nil
}

// interruptContext is canceled on Ctrl-C or SIGTERM so long package loads stop.
func interruptContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// displayPath shortens p relative to the working directory when possible.
func displayPath(p string) string {
	wd, err := os.Getwd()
	if err != nil {
		return p
	}
	rel, err := filepath.Rel(wd, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}
