// Package typegen mirrors Go entity structs as declarations in another
// language, one declaration per entity.
//
// # Pipeline
//
// A run is strictly linear:
//
//	LoadIndex      glob the entity sources, load and type-check their packages
//	BuildCatalog   keep exported struct declarations, record own fields and base
//	Resolver       flatten the single-parent embedding chain (base fields first)
//	Extractor      turn each field into a (name, type text, optional) property
//	Emitter        render the declaration text; Write puts it on disk
//
// Generate runs everything up to rendering and has no side effects, so input
// errors (duplicate names, cycles, ambiguous bases) never touch the output
// directory. Write and Run perform the I/O.
//
// # Inheritance
//
// An entity "extends" another by embedding it (T or *T) without a json name.
// Embedded structs that are not entities (gorm.Model, local mixins) are
// promoted in place like encoding/json does, including its rule for
// conflicting names: the shallowest field wins, a single json tagged field
// breaks a tie, and any other tie drops the name. A property redeclared
// further down the chain keeps the base position and takes the derived type.
//
// Cross-entity references (Tenant -> []*Facility -> *Tenant) are plain name
// lookups and end up as type-only imports, so reference cycles are fine;
// only embedding cycles are an error.
package typegen

import (
	"go/token"
	"go/types"
	"sort"

	"github.com/teranos/entmirror/typegen/util"
)

// SourceEntity is one cataloged entity declaration.
type SourceEntity struct {
	// Name is unique within a run
	Name     string
	Exported bool
	// Fields are the entity's own properties in declaration order. Fields
	// promoted from non-entity mixins sit at the mixin's position.
	Fields []*FieldDecl
	// BaseRef names the embedded base entity, empty when there is none.
	// It is a lookup key into the same run's Catalog, never a pointer.
	BaseRef string
	// File is the project-relative, slash separated source path
	File     string
	Position token.Position
	Doc      string
	// Object is the checker identity, used to recognise references
	Object *types.TypeName
}

// FieldDecl is a raw field declaration as handed to the Resolver.
type FieldDecl struct {
	// Name is the emitted property name: the json name, else the Go name
	// per the configured fallback case.
	Name   string
	GoName string
	Type   types.Type
	// Optional is the structural marker (omitempty, tstype ",optional")
	Optional bool
	Pointer  bool
	Readonly bool
	// TypeOverride is the tstype text, empty when the type is inferred
	TypeOverride string
	Doc          string
	Validate     *util.ValidateTagInfo
	// PromotedFrom names the mixin a field came from, empty for direct fields
	PromotedFrom string
	// DeclaredIn is the entity that owns the field
	DeclaredIn string
	Position   token.Position
}

// PropertyDecl is an extracted property, ready to render.
type PropertyDecl struct {
	Name     string
	TypeText string
	Optional bool
	Readonly bool
	Doc      string
	Validate *util.ValidateTagInfo
	// Refs are the entity names TypeText refers to
	Refs []string
}

// FlattenedEntity is an entity with its full, inherited property list.
type FlattenedEntity struct {
	Entity     *SourceEntity
	Properties []PropertyDecl
}

// Refs returns the sorted, de-duplicated entity names referenced by the
// properties, excluding the entity itself.
func (f FlattenedEntity) Refs() []string {
	seen := make(map[string]bool)
	var refs []string
	for _, p := range f.Properties {
		for _, r := range p.Refs {
			if r == f.Entity.Name || seen[r] {
				continue
			}
			seen[r] = true
			refs = append(refs, r)
		}
	}
	sort.Strings(refs)
	return refs
}

// GeneratedDeclaration is one rendered output file.
type GeneratedDeclaration struct {
	// EntityName is empty for the barrel file
	EntityName   string
	RenderedText string
	OutputPath   string
}

// WarningKind classifies a recoverable diagnostic.
type WarningKind string

const (
	WarnUnnamedDeclaration WarningKind = "unnamed_declaration"
	WarnUnresolvedType     WarningKind = "unresolved_type"
	WarnExcludedFile       WarningKind = "excluded_file"
	WarnGenericDeclaration WarningKind = "generic_declaration"
	WarnTypeError          WarningKind = "type_error"
	WarnExternalBase       WarningKind = "external_base"
	WarnAmbiguousField     WarningKind = "ambiguous_field"
)

// Warning is a recoverable diagnostic; the run continues.
type Warning struct {
	Kind    WarningKind `json:"kind" yaml:"kind" toml:"kind"`
	Entity  string      `json:"entity,omitempty" yaml:"entity,omitempty" toml:"entity,omitempty"`
	Field   string      `json:"field,omitempty" yaml:"field,omitempty" toml:"field,omitempty"`
	File    string      `json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty"`
	Message string      `json:"message" yaml:"message" toml:"message"`
}

func (w Warning) String() string {
	var loc string
	switch {
	case w.Entity != "" && w.Field != "":
		loc = w.Entity + "." + w.Field + ": "
	case w.Entity != "":
		loc = w.Entity + ": "
	case w.File != "":
		loc = w.File + ": "
	}
	return string(w.Kind) + ": " + loc + w.Message
}
