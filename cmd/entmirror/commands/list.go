package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teranos/entmirror/display"
	"github.com/teranos/entmirror/typegen"
)

var listFormat string

// ListCmd prints the flattened entity catalog
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entities and their flattened properties",
	Long: `List every entity with its base, source file and full property list,
inherited properties included.

Examples:
  entmirror list              # Human-readable listing
  entmirror list -f yaml      # Machine-readable catalog
  entmirror list -f json`,
	RunE: runList,
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", display.FormatText, "Output format: text, json, yaml, toml")
}

// catalogListing is the structured form of the flattened catalog.
type catalogListing struct {
	Entities []entityListing   `json:"entities" yaml:"entities" toml:"entities"`
	Warnings []typegen.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty" toml:"warnings,omitempty"`
}

type entityListing struct {
	Name       string            `json:"name" yaml:"name" toml:"name"`
	Base       string            `json:"base,omitempty" yaml:"base,omitempty" toml:"base,omitempty"`
	File       string            `json:"file" yaml:"file" toml:"file"`
	Properties []propertyListing `json:"properties" yaml:"properties" toml:"properties"`
}

type propertyListing struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Type     string `json:"type" yaml:"type" toml:"type"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty" toml:"optional,omitempty"`
	Readonly bool   `json:"readonly,omitempty" yaml:"readonly,omitempty" toml:"readonly,omitempty"`
}

func newCatalogListing(report *typegen.Report) catalogListing {
	listing := catalogListing{
		Entities: make([]entityListing, 0, len(report.Entities)),
		Warnings: report.Warnings,
	}
	for _, fe := range report.Entities {
		e := entityListing{
			Name:       fe.Entity.Name,
			Base:       fe.Entity.BaseRef,
			File:       fe.Entity.File,
			Properties: make([]propertyListing, 0, len(fe.Properties)),
		}
		for _, p := range fe.Properties {
			e.Properties = append(e.Properties, propertyListing{
				Name:     p.Name,
				Type:     p.TypeText,
				Optional: p.Optional,
				Readonly: p.Readonly,
			})
		}
		listing.Entities = append(listing.Entities, e)
	}
	return listing
}

func runList(cmd *cobra.Command, args []string) error {
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
	listing := newCatalogListing(report)

	if listFormat == display.FormatText {
		writeListing(cmd.OutOrStdout(), listing)
		return nil
	}
	return display.Output(cmd.OutOrStdout(), listing, listFormat)
}

func writeListing(w io.Writer, listing catalogListing) {
	for i, e := range listing.Entities {
		if i > 0 {
			fmt.Fprintln(w)
		}
		header := e.Name
		if e.Base != "" {
			header += " extends " + e.Base
		}
		fmt.Fprintf(w, "%s  (%s)\n", header, e.File)

		for _, p := range e.Properties {
			readonly := ""
			if p.Readonly {
				readonly = "readonly "
			}
			optional := ""
			if p.Optional {
				optional = "?"
			}
			fmt.Fprintf(w, "  %s%s%s: %s\n", readonly, p.Name, optional, p.Type)
		}
	}
}
