package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/entmirror/typegen"
)

var generateDryRun bool

// GenerateCmd writes one declaration file per entity
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate TypeScript interfaces from Go entities",
	Long: `Generate one TypeScript interface per Go entity struct.

Entities are the exported struct types declared in files matching
source.patterns. An entity that embeds another entity extends it: inherited
properties come first, in base order, then its own.

It handles:
  - JSON tags for property naming, omitempty as optional
  - Pointer types as optional, nullable properties
  - Types with consts as literal unions
  - TextMarshaler types (uuid.UUID, time.Time) as string
  - References between entities as type-only imports

Examples:
  entmirror                          # Same as 'entmirror generate'
  entmirror generate --dry-run       # Show what would be written
  entmirror -c tools/entmirror.toml  # Use another config file`,
	RunE: RunGenerate,
}

func init() {
	GenerateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Render declarations without writing them")
}

// RunGenerate runs the pipeline and writes the declarations. It is also the
// root command's default action.
func RunGenerate(cmd *cobra.Command, args []string) error {
	_, opts, err := pipelineOptions(cmd)
	if err != nil {
		return err
	}

	ctx, stop := interruptContext(cmd)
	defer stop()

	if generateDryRun {
		report, err := typegen.Generate(ctx, opts)
		if err != nil {
			return err
		}
		for _, d := range report.Files() {
			fmt.Fprintf(cmd.OutOrStdout(), "Would generate %s\n", displayPath(d.OutputPath))
		}
		return nil
	}

	report, err := typegen.Run(ctx, opts)
	if report != nil {
		for _, p := range report.Written {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Generated %s\n", displayPath(p))
		}
	}
	if err != nil {
		return err
	}

	if len(report.Declarations) == 0 {
		pterm.Info.Println("No entities found; nothing to generate")
	}
	if n := len(report.Warnings); n > 0 {
		pterm.Warning.Printfln("Generated with %d warning(s)", n)
	}
	return nil
}
