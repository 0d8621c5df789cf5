// Package typescript renders flattened entities as TypeScript interfaces.
package typescript

import (
	"fmt"
	"strings"

	"github.com/teranos/entmirror/typegen"
	"github.com/teranos/entmirror/typegen/util"
)

// Generator implements typegen.Emitter for TypeScript
type Generator struct {
	// TypeMapping maps qualified Go type names to TypeScript types
	TypeMapping map[string]string
}

var _ typegen.Emitter = (*Generator)(nil)

// NewGenerator creates a new TypeScript generator with the default mapping
func NewGenerator() *Generator {
	return &Generator{TypeMapping: TypeMapping}
}

// Render returns the canonical file text for one entity:
//
//	/* eslint-disable */
//	// Code generated by entmirror from Go source. DO NOT EDIT.
//	// Source: example/entity/facility_entity.go
//
//	import type { Tenant } from './Tenant';
//
//	export interface Facility {
//	  id: string;
//	  tenant?: Tenant | null;
//	}
func (g *Generator) Render(fe typegen.FlattenedEntity) string {
	var sb strings.Builder
	name := fe.Entity.Name

	sb.WriteString("/* eslint-disable */\n")
	sb.WriteString("// Code generated by entmirror from Go source. DO NOT EDIT.\n")
	sb.WriteString(fmt.Sprintf("// Source: %s\n\n", fe.Entity.File))

	if imports := importLines(fe.Refs(), name); len(imports) > 0 {
		sb.WriteString(strings.Join(imports, "\n"))
		sb.WriteString("\n\n")
	}

	writeDoc(&sb, "", fe.Entity.Doc, nil, "", false)
	sb.WriteString(fmt.Sprintf("export interface %s {\n", name))

	for _, p := range fe.Properties {
		writeDoc(&sb, "  ", p.Doc, p.Validate, p.TypeText, true)

		readonlyMark := ""
		if p.Readonly {
			readonlyMark = "readonly "
		}
		optionalMark := ""
		if p.Optional {
			optionalMark = "?"
		}
		sb.WriteString(fmt.Sprintf("  %s%s%s: %s;\n", readonlyMark, propertyKey(p.Name), optionalMark, p.TypeText))
	}

	sb.WriteString("}\n")
	return sb.String()
}

// writeDoc writes a JSDoc block for doc and validation constraints. With
// compact set, a lone single-line comment is written as /** text */.
func writeDoc(sb *strings.Builder, indent, doc string, validate *util.ValidateTagInfo, tsType string, compact bool) {
	var lines []string
	if doc != "" {
		for _, line := range strings.Split(doc, "\n") {
			lines = append(lines, strings.ReplaceAll(strings.TrimRight(line, " \t"), "*/", "*\\/"))
		}
	}
	tags := validationTags(validate, tsType)

	if len(lines) == 0 && len(tags) == 0 {
		return
	}
	if compact && len(lines) == 1 && len(tags) == 0 {
		sb.WriteString(fmt.Sprintf("%s/** %s */\n", indent, lines[0]))
		return
	}

	sb.WriteString(indent + "/**\n")
	for _, line := range lines {
		if line == "" {
			sb.WriteString(indent + " *\n")
			continue
		}
		sb.WriteString(fmt.Sprintf("%s * %s\n", indent, line))
	}
	if len(lines) > 0 && len(tags) > 0 {
		sb.WriteString(indent + " *\n") // Blank line separator
	}
	for _, tag := range tags {
		sb.WriteString(fmt.Sprintf("%s * %s\n", indent, tag))
	}
	sb.WriteString(indent + " */\n")
}

// validationTags turns validate constraints into JSDoc tags; the tag name
// depends on whether the property is an array, a string or a number.
func validationTags(v *util.ValidateTagInfo, tsType string) []string {
	if v == nil {
		return nil
	}
	var tags []string
	if v.Required {
		tags = append(tags, "@required")
	}

	base := strings.TrimSuffix(tsType, " | null")
	var minTag, maxTag string
	switch {
	case strings.HasSuffix(base, "[]"):
		minTag, maxTag = "@minItems", "@maxItems"
	case base == "string":
		minTag, maxTag = "@minLength", "@maxLength"
	case base == "number":
		minTag, maxTag = "@minimum", "@maximum"
	default:
		return tags
	}

	if v.Min != util.NoConstraint {
		tags = append(tags, fmt.Sprintf("%s %d", minTag, v.Min))
	}
	if v.Max != util.NoConstraint {
		tags = append(tags, fmt.Sprintf("%s %d", maxTag, v.Max))
	}
	return tags
}
