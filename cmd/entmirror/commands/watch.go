package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/entmirror/config"
	"github.com/teranos/entmirror/logger"
	"github.com/teranos/entmirror/typegen"
	"github.com/teranos/entmirror/typegen/typescript"
	"github.com/teranos/entmirror/watch"
)

// WatchCmd regenerates on every source change
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever entity sources change",
	Long: `Generate once, then watch source.root and regenerate after every change
to a Go file, go.mod or the config file. Changes are debounced; a failed
run is logged and watching continues. Stop with Ctrl-C.

Examples:
  entmirror watch
  entmirror watch -v          # Log every detected change`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := interruptContext(cmd)
	defer stop()

	log := logger.ComponentLogger("watch")
	out := cmd.OutOrStdout()

	run := func(ctx context.Context) error {
		// Reload so edits to the config apply without a restart
		current, err := config.LoadFromFile(cfg.File)
		if err != nil {
			return err
		}
		report, err := typegen.Run(ctx, typegen.OptionsFromConfig(current, typescript.NewGenerator()))
		if err != nil {
			return err
		}
		log.Infow("Regenerated", logger.FieldCount, len(report.Written), logger.FieldDurationMS, report.Duration.Milliseconds())
		fmt.Fprintf(out, "✓ Generated %d file(s)\n", len(report.Written))
		return nil
	}

	w, err := watch.New(watch.Options{
		Root:   cfg.Source.Root,
		Ignore: []string{cfg.Output.Dir},
		Files:  []string{cfg.File},
	}, run)
	if err != nil {
		return err
	}

	pterm.Info.Printfln("Watching %s (Ctrl-C to stop)", displayPath(filepath.Clean(cfg.Source.Root)))
	return w.Run(ctx)
}
