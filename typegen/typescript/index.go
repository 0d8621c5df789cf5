package typescript

import (
	"fmt"
	"sort"
	"strings"
)

// BarrelName is the base name of the barrel file.
func (g *Generator) BarrelName() string { return "index" }

// RenderBarrel creates a barrel export file re-exporting every generated
// interface, for cleaner imports on the consumer side.
func (g *Generator) RenderBarrel(entityNames []string) string {
	var sb strings.Builder

	sb.WriteString("/* eslint-disable */\n")
	sb.WriteString("// Code generated by entmirror from Go source. DO NOT EDIT.\n")
	sb.WriteString("// Barrel export - re-exports all generated entity interfaces\n\n")

	names := make([]string, len(entityNames))
	copy(names, entityNames)
	sort.Strings(names)

	for _, name := range names {
		sb.WriteString(fmt.Sprintf("export type { %s } from './%s';\n", name, name))
	}
	return sb.String()
}
