package typegen

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/teranos/entmirror/errors"
)

// SourceFileError reports an entity source that could not be read or parsed.
type SourceFileError struct {
	File string
	Pos  token.Position // zero when the file could not be read at all
	Err  error
}

func (e *SourceFileError) Error() string {
	loc := e.File
	if e.Pos.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", e.File, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("source file %s: %v", loc, e.Err)
}

// Unwrap classifies the error as invalid input. The read or parse failure
// itself stays in Err.
func (e *SourceFileError) Unwrap() error { return errors.ErrInput }

// DuplicateEntityError reports two entity declarations sharing a name.
type DuplicateEntityError struct {
	Name  string
	Files []string
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("duplicate entity %s declared in %s", e.Name, strings.Join(e.Files, " and "))
}

func (e *DuplicateEntityError) Unwrap() error { return errors.ErrInput }

// CyclicInheritanceError reports an embedding chain that returns to itself.
// Chain starts and ends with the same name.
type CyclicInheritanceError struct {
	Chain []string
	Files []string
}

func (e *CyclicInheritanceError) Error() string {
	msg := "cyclic inheritance: " + strings.Join(e.Chain, " -> ")
	if len(e.Files) > 0 {
		msg += " (" + strings.Join(e.Files, ", ") + ")"
	}
	return msg
}

func (e *CyclicInheritanceError) Unwrap() error { return errors.ErrInput }

// MultipleBaseError reports an entity embedding more than one entity.
type MultipleBaseError struct {
	Entity string
	File   string
	Bases  []string
}

func (e *MultipleBaseError) Error() string {
	return fmt.Sprintf("entity %s (%s) embeds more than one entity: %s",
		e.Entity, e.File, strings.Join(e.Bases, ", "))
}

func (e *MultipleBaseError) Unwrap() error { return errors.ErrInput }
