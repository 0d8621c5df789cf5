package typegen

import (
	"go/types"
)

// EntityScope answers whether a checked type or name is a cataloged entity.
// *Catalog implements it.
type EntityScope interface {
	Lookup(name string) *SourceEntity
	EntityFor(obj *types.TypeName) *SourceEntity
}

// TypeText is a rendered property type and the entities it refers to.
type TypeText struct {
	Text string
	Refs []string
}

// TypeResolver renders checked Go types in the target language.
type TypeResolver interface {
	// Resolve renders t. A non-nil error means t has no faithful rendering;
	// the caller falls back to Unknown.
	Resolve(t types.Type, scope EntityScope) (TypeText, error)
	// Override interprets a hand-written tstype override, collecting refs.
	Override(text string, scope EntityScope) TypeText
	// Nullable widens text to also admit null.
	Nullable(text string) string
	// Unknown is the top type used for unresolvable properties.
	Unknown() string
}

// Extractor turns field declarations into properties.
type Extractor struct {
	Resolver TypeResolver
	Scope    EntityScope
}

// Extract derives the property for field as emitted on entity. The type text
// comes from the checker, never from source text. An unresolvable type
// becomes Unknown() and a warning; extraction itself never fails.
func (x Extractor) Extract(entity *SourceEntity, field *FieldDecl) (PropertyDecl, *Warning) {
	prop := PropertyDecl{
		Name:     field.Name,
		Optional: field.Optional || field.Pointer,
		Readonly: field.Readonly,
		Doc:      field.Doc,
		Validate: field.Validate,
	}

	if field.TypeOverride != "" {
		tt := x.Resolver.Override(field.TypeOverride, x.Scope)
		prop.TypeText, prop.Refs = tt.Text, tt.Refs
		return prop, nil
	}

	t := field.Type
	if field.Pointer {
		t, _ = derefType(t)
	}

	tt, err := x.Resolver.Resolve(t, x.Scope)
	if err != nil {
		prop.TypeText = x.Resolver.Unknown()
		owner := field.DeclaredIn
		if owner == "" {
			owner = entity.Name
		}
		return prop, &Warning{
			Kind:    WarnUnresolvedType,
			Entity:  owner,
			Field:   field.Name,
			File:    field.Position.Filename,
			Message: err.Error() + "; emitting " + prop.TypeText,
		}
	}

	prop.TypeText, prop.Refs = tt.Text, tt.Refs
	if field.Pointer {
		prop.TypeText = x.Resolver.Nullable(prop.TypeText)
	}
	return prop, nil
}
