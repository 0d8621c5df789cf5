package typescript

import (
	"fmt"
	"sort"
	"strings"
)

// importLines renders one type-only import per referenced entity. Each
// entity lives in its own module next to the importer. Type-only imports
// are erased at compile time, so entities that reference each other never
// form a load-order cycle.
func importLines(refs []string, self string) []string {
	names := make([]string, 0, len(refs))
	seen := make(map[string]bool)
	for _, r := range refs {
		if r == self || seen[r] {
			continue
		}
		seen[r] = true
		names = append(names, r)
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("import type { %s } from './%s';", name, name)
	}
	return lines
}

// extractTypeNames finds all PascalCase identifiers in a TypeScript type
// expression, e.g. the entity names in a tstype override.
func extractTypeNames(text string) []string {
	var typeNames []string

	// Delimiters: space, colon, semicolon, brackets, pipes, angle brackets, parentheses
	const delimiters = " :;[]{}|&<>()\n\t,?'\""

	for _, word := range splitByDelimiters(stripComments(text), delimiters) {
		if word[0] >= 'A' && word[0] <= 'Z' && isAlphanumeric(word) && !isBuiltinType(word) {
			typeNames = append(typeNames, word)
		}
	}
	return typeNames
}

// stripComments removes /* ... */ and // comments
func stripComments(text string) string {
	var result strings.Builder
	for i := 0; i < len(text); {
		if strings.HasPrefix(text[i:], "/*") {
			if end := strings.Index(text[i+2:], "*/"); end != -1 {
				i += end + 4
				continue
			}
		}
		if strings.HasPrefix(text[i:], "//") {
			end := strings.IndexByte(text[i:], '\n')
			if end == -1 {
				break
			}
			result.WriteByte('\n')
			i += end + 1
			continue
		}
		result.WriteByte(text[i])
		i++
	}
	return result.String()
}

// splitByDelimiters splits a string by any character in the delimiters string
func splitByDelimiters(s, delimiters string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(delimiters, r)
	})
}

// isAlphanumeric checks if a string contains only letters, digits and underscores
func isAlphanumeric(s string) bool {
	for _, ch := range s {
		if !((ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '_') {
			return false
		}
	}
	return true
}

// isBuiltinType returns true for TypeScript built-in generic and global types
func isBuiltinType(name string) bool {
	switch name {
	case "Record", "Partial", "Required", "Readonly", "Pick", "Omit",
		"Array", "ReadonlyArray", "Map", "Set", "Date", "Promise":
		return true
	}
	return false
}
