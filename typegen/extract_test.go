package typegen

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/entmirror/errors"
	"github.com/teranos/entmirror/typegen/util"
)

// stubResolver renders basic types by name and refuses everything else.
type stubResolver struct{}

func (stubResolver) Resolve(t types.Type, _ EntityScope) (TypeText, error) {
	if b, ok := t.(*types.Basic); ok && b.Kind() != types.Invalid {
		return TypeText{Text: b.Name()}, nil
	}
	return TypeText{}, errors.Newf("cannot render %s", t)
}

func (stubResolver) Override(text string, _ EntityScope) TypeText {
	return TypeText{Text: text, Refs: []string{"Override"}}
}

func (stubResolver) Nullable(text string) string { return text + "?" }
func (stubResolver) Unknown() string             { return "any" }

func TestExtract(t *testing.T) {
	owner := &SourceEntity{Name: "Facility"}
	x := Extractor{Resolver: stubResolver{}, Scope: newTestCatalog(owner)}
	validate := &util.ValidateTagInfo{Required: true, Min: util.NoConstraint, Max: util.NoConstraint}

	t.Run("plain", func(t *testing.T) {
		prop, warning := x.Extract(owner, &FieldDecl{
			Name:     "name",
			Type:     types.Typ[types.String],
			Readonly: true,
			Doc:      "Display name",
			Validate: validate,
		})
		assert.Nil(t, warning)
		assert.Equal(t, PropertyDecl{
			Name:     "name",
			TypeText: "string",
			Readonly: true,
			Doc:      "Display name",
			Validate: validate,
		}, prop)
	})

	t.Run("pointer is optional and nullable", func(t *testing.T) {
		prop, warning := x.Extract(owner, &FieldDecl{
			Name:    "capacity",
			Type:    types.NewPointer(types.Typ[types.Int]),
			Pointer: true,
		})
		assert.Nil(t, warning)
		assert.True(t, prop.Optional)
		assert.Equal(t, "int?", prop.TypeText)
	})

	t.Run("omitempty is optional only", func(t *testing.T) {
		prop, _ := x.Extract(owner, &FieldDecl{Name: "notes", Type: types.Typ[types.String], Optional: true})
		assert.True(t, prop.Optional)
		assert.Equal(t, "string", prop.TypeText)
	})

	t.Run("override is verbatim", func(t *testing.T) {
		prop, warning := x.Extract(owner, &FieldDecl{
			Name:         "meta",
			Type:         types.NewPointer(types.Typ[types.String]),
			Pointer:      true,
			TypeOverride: "Record<string, number>",
		})
		assert.Nil(t, warning)
		assert.Equal(t, "Record<string, number>", prop.TypeText, "no null widening on overrides")
		assert.Equal(t, []string{"Override"}, prop.Refs)
		assert.True(t, prop.Optional)
	})

	t.Run("unresolvable falls back with a warning", func(t *testing.T) {
		prop, warning := x.Extract(owner, &FieldDecl{
			Name:       "events",
			Type:       types.NewChan(types.SendRecv, types.Typ[types.Int]),
			DeclaredIn: "Base",
			Position:   token.Position{Filename: "base_entity.go", Line: 7},
		})
		require.NotNil(t, warning)
		assert.Equal(t, "any", prop.TypeText)
		assert.Equal(t, WarnUnresolvedType, warning.Kind)
		assert.Equal(t, "Base", warning.Entity, "warning names the declaring entity")
		assert.Equal(t, "events", warning.Field)
		assert.Equal(t, "base_entity.go", warning.File)
		assert.Contains(t, warning.Message, "emitting any")
	})

	t.Run("unresolvable pointer stays unknown", func(t *testing.T) {
		prop, warning := x.Extract(owner, &FieldDecl{
			Name:    "broken",
			Type:    types.NewPointer(types.Typ[types.Invalid]),
			Pointer: true,
		})
		require.NotNil(t, warning)
		assert.Equal(t, "any", prop.TypeText)
		assert.Equal(t, "Facility", warning.Entity)
		assert.True(t, prop.Optional)
	})
}

func TestFlattenedEntityRefs(t *testing.T) {
	fe := FlattenedEntity{
		Entity: &SourceEntity{Name: "Tenant"},
		Properties: []PropertyDecl{
			{Name: "facilities", Refs: []string{"Facility"}},
			{Name: "owner", Refs: []string{"User", "Tenant"}},
			{Name: "home", Refs: []string{"Facility"}},
		},
	}
	assert.Equal(t, []string{"Facility", "User"}, fe.Refs())
}

func TestWarningString(t *testing.T) {
	assert.Equal(t, "unresolved_type: Pipe.events: channel",
		Warning{Kind: WarnUnresolvedType, Entity: "Pipe", Field: "events", Message: "channel"}.String())
	assert.Equal(t, "generic_declaration: Box: generic",
		Warning{Kind: WarnGenericDeclaration, Entity: "Box", Message: "generic"}.String())
	assert.Equal(t, "excluded_file: legacy_entity.go: excluded",
		Warning{Kind: WarnExcludedFile, File: "legacy_entity.go", Message: "excluded"}.String())
}

func TestErrorMessages(t *testing.T) {
	err := &SourceFileError{File: "a_entity.go", Pos: token.Position{Line: 3, Column: 9}, Err: errors.New("expected '}'")}
	assert.Equal(t, "source file a_entity.go:3:9: expected '}'", err.Error())
	assert.True(t, errors.IsInputError(err))

	dup := &DuplicateEntityError{Name: "Item", Files: []string{"a/item_entity.go", "b/item_entity.go"}}
	assert.Equal(t, "duplicate entity Item declared in a/item_entity.go and b/item_entity.go", dup.Error())
	assert.True(t, errors.IsInputError(errors.Wrap(dup, "catalog")))

	multi := &MultipleBaseError{Entity: "Visit", File: "visit_entity.go", Bases: []string{"Person", "Place"}}
	assert.Contains(t, multi.Error(), "Person, Place")
	assert.True(t, errors.IsInputError(multi))
}
