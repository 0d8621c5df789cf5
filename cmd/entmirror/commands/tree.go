package commands

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/entmirror/typegen"
)

// TreeCmd prints the inheritance forest
var TreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the entity inheritance tree",
	Long: `Show which entities extend which, as a tree per root entity.

Examples:
  entmirror tree`,
	RunE: runTree,
}

func runTree(cmd *cobra.Command, args []string) error {
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
	if len(report.Entities) == 0 {
		pterm.Info.Println("No entities found")
		return nil
	}

	rendered, err := pterm.DefaultTree.WithRoot(inheritanceTree(report.Entities)).Srender()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}

// inheritanceTree builds one node per entity under its base; entities without
// a base hang off the root. Children keep discovery order.
func inheritanceTree(entities []typegen.FlattenedEntity) pterm.TreeNode {
	children := make(map[string][]typegen.FlattenedEntity)
	var roots []typegen.FlattenedEntity
	for _, fe := range entities {
		if fe.Entity.BaseRef == "" {
			roots = append(roots, fe)
			continue
		}
		children[fe.Entity.BaseRef] = append(children[fe.Entity.BaseRef], fe)
	}
	sort.SliceStable(roots, func(i, j int) bool {
		return len(children[roots[i].Entity.Name]) > len(children[roots[j].Entity.Name])
	})

	var build func(fe typegen.FlattenedEntity) pterm.TreeNode
	build = func(fe typegen.FlattenedEntity) pterm.TreeNode {
		node := pterm.TreeNode{
			Text: fmt.Sprintf("%s %s", fe.Entity.Name,
				pterm.Gray(fmt.Sprintf("(%d props, %s)", len(fe.Properties), fe.Entity.File))),
		}
		for _, child := range children[fe.Entity.Name] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	root := pterm.TreeNode{Text: "entities"}
	for _, fe := range roots {
		root.Children = append(root.Children, build(fe))
	}
	return root
}
