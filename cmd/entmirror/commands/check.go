package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/entmirror/typegen"
)

var checkDiff bool

// CheckCmd checks if generated declarations are up to date
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if generated declarations are up to date",
	Long: `Check if the generated files match the current Go source code.

Declarations are rendered in memory and compared byte for byte with the
files in output.dir. Generated files without a matching entity are listed
as orphans; they are never deleted and do not fail the check.

Exit codes:
  0 - Declarations are up to date
  1 - Declarations are out of date
  2 - Error during check

Examples:
  entmirror check                # List stale and missing files
  entmirror check -d             # Also show a unified diff per stale file`,
	RunE: runCheck,
}

func init() {
	CheckCmd.Flags().BoolVarP(&checkDiff, "diff", "d", false, "Show a unified diff for each stale file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, opts, err := pipelineOptions(cmd)
	if err != nil {
		return err
	}

	ctx, stop := interruptContext(cmd)
	defer stop()

	report, err := typegen.Generate(ctx, opts)
	if err != nil {
		return err
	}
	result, err := typegen.Check(opts.OutputDir, opts.Extension, report.Files())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, s := range result.Stale {
		fmt.Fprintf(out, "✗ Stale    %s\n", displayPath(s.Path))
		if checkDiff {
			fmt.Fprintln(out, s.Diff)
		}
	}
	for _, p := range result.Missing {
		fmt.Fprintf(out, "✗ Missing  %s\n", displayPath(p))
	}
	for _, p := range result.Orphans {
		fmt.Fprintf(out, "? Orphan   %s (no entity; not deleted)\n", displayPath(p))
	}

	if result.UpToDate() {
		fmt.Fprintf(out, "✓ %d declaration(s) up to date\n", len(report.Files()))
		return nil
	}
	return result.Err()
}
