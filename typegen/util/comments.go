package util

import (
	"go/ast"
	"strings"
)

// ExtractFieldComment extracts the comment attached to a field.
// It prefers doc comments (before the field) over inline comments (after the field).
func ExtractFieldComment(field *ast.Field) string {
	if text := CommentText(field.Doc); text != "" {
		return text
	}
	return CommentText(field.Comment)
}

// CommentText returns the trimmed text of a comment group with directives
// (//go:generate, //nolint:...) removed. Paragraph breaks are kept.
func CommentText(group *ast.CommentGroup) string {
	if group == nil {
		return ""
	}
	return strings.TrimSpace(group.Text())
}
