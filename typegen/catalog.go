package typegen

import (
	"go/ast"
	"go/token"
	"go/types"
	"strconv"
	"strings"

	"github.com/teranos/entmirror/config"
	"github.com/teranos/entmirror/logger"
	"github.com/teranos/entmirror/typegen/util"
)

// CatalogOptions configures entity and field naming.
type CatalogOptions struct {
	// FallbackCase names fields without a json name: config.FallbackCaseGo
	// (default) or config.FallbackCaseCamel.
	FallbackCase string
}

// Catalog is the name-keyed set of entities of one run.
type Catalog struct {
	entities []*SourceEntity
	byName   map[string]*SourceEntity
	byObject map[*types.TypeName]*SourceEntity
}

// Entities returns the entities in discovery order.
func (c *Catalog) Entities() []*SourceEntity { return c.entities }

// Lookup returns the entity with the given name, or nil.
func (c *Catalog) Lookup(name string) *SourceEntity { return c.byName[name] }

// EntityFor returns the entity declared by obj, or nil.
func (c *Catalog) EntityFor(obj *types.TypeName) *SourceEntity {
	if obj == nil {
		return nil
	}
	return c.byObject[obj]
}

// Len returns the number of entities.
func (c *Catalog) Len() int { return len(c.entities) }

// pendingEntity pairs an entity with its checked struct until fields are derived.
type pendingEntity struct {
	entity *SourceEntity
	st     *types.Struct
}

// BuildCatalog filters the index to entity declarations and derives their
// own fields and base reference.
func BuildCatalog(ix *Index, opts CatalogOptions) (*Catalog, []Warning, error) {
	log := logger.ComponentLogger("typegen.catalog")
	c := &Catalog{
		byName:   make(map[string]*SourceEntity),
		byObject: make(map[*types.TypeName]*SourceEntity),
	}
	var warnings []Warning
	var pending []pendingEntity
	declared := make(map[string]string) // struct name -> first file

	// First pass: the name set
	for _, file := range ix.Files() {
		for _, decl := range file.AST.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				if ts.Name == nil || ts.Name.Name == "_" {
					warnings = append(warnings, Warning{
						Kind:    WarnUnnamedDeclaration,
						File:    file.Path,
						Message: "skipping declaration without a name at " + ix.Position(ts.Pos()).String(),
					})
					continue
				}
				if !ast.IsExported(ts.Name.Name) || ts.Assign.IsValid() {
					continue
				}
				if _, isStruct := ts.Type.(*ast.StructType); !isStruct {
					continue
				}

				// Checked by name: a redeclaration in the same package has
				// no checker definition to compare.
				if first, dup := declared[ts.Name.Name]; dup {
					return nil, warnings, &DuplicateEntityError{
						Name:  ts.Name.Name,
						Files: []string{first, file.Path},
					}
				}
				declared[ts.Name.Name] = file.Path

				obj := file.Defined(ts.Name)
				if obj == nil {
					warnings = append(warnings, Warning{
						Kind:    WarnUnnamedDeclaration,
						Entity:  ts.Name.Name,
						File:    file.Path,
						Message: "declaration has no checked definition",
					})
					continue
				}
				if ts.TypeParams != nil && ts.TypeParams.NumFields() > 0 {
					warnings = append(warnings, Warning{
						Kind:    WarnGenericDeclaration,
						Entity:  ts.Name.Name,
						File:    file.Path,
						Message: "generic struct has no concrete shape",
					})
					continue
				}
				st, ok := obj.Type().Underlying().(*types.Struct)
				if !ok {
					continue
				}

				doc := util.CommentText(ts.Doc)
				if doc == "" && len(gen.Specs) == 1 {
					doc = util.CommentText(gen.Doc)
				}

				entity := &SourceEntity{
					Name:     ts.Name.Name,
					Exported: true,
					File:     file.Path,
					Position: ix.Position(ts.Pos()),
					Doc:      doc,
					Object:   obj,
				}
				c.entities = append(c.entities, entity)
				c.byName[entity.Name] = entity
				c.byObject[obj] = entity
				pending = append(pending, pendingEntity{entity: entity, st: st})
			}
		}
	}

	// Second pass: fields and bases, now that every entity is known
	for _, p := range pending {
		d := fieldDeriver{ix: ix, catalog: c, opts: opts, entity: p.entity}
		if err := d.derive(p.st); err != nil {
			return nil, warnings, err
		}
		warnings = append(warnings, d.warnings...)
		log.Debugw("Cataloged entity",
			logger.FieldEntity, p.entity.Name,
			logger.FieldBase, p.entity.BaseRef,
			logger.FieldCount, len(p.entity.Fields))
	}

	return c, warnings, nil
}

// fieldDeriver collects the own fields of one entity.
type fieldDeriver struct {
	ix      *Index
	catalog *Catalog
	opts    CatalogOptions
	entity  *SourceEntity

	bases      []string
	candidates []fieldCandidate
	warnings   []Warning
}

// fieldCandidate is a json-visible field before name conflicts are settled.
type fieldCandidate struct {
	field  *FieldDecl
	depth  int
	tagged bool
}

func (d *fieldDeriver) derive(st *types.Struct) error {
	d.walk(st, 0, "", map[*types.TypeName]bool{})
	d.settle()

	switch len(d.bases) {
	case 0:
	case 1:
		d.entity.BaseRef = d.bases[0]
	default:
		return &MultipleBaseError{Entity: d.entity.Name, File: d.entity.File, Bases: d.bases}
	}
	return nil
}

// walk collects the json-visible fields of st. Depth 0 is the entity itself;
// mixins are walked one level deeper. visiting guards pointer-embedding
// loops between mixins.
func (d *fieldDeriver) walk(st *types.Struct, depth int, mixin string, visiting map[*types.TypeName]bool) {
	for i := 0; i < st.NumFields(); i++ {
		v := st.Field(i)
		tags := util.ParseFieldTags(st.Tag(i))
		if tags.Skip {
			continue
		}

		if v.Embedded() && tags.JSONName == "" {
			elem, _ := derefType(v.Type())
			if named, ok := types.Unalias(elem).(*types.Named); ok {
				obj := named.Obj()

				// Only the entity's own embedded fields can name a base
				if depth == 0 {
					if base := d.catalog.EntityFor(obj); base != nil {
						d.bases = append(d.bases, base.Name)
						continue
					}
					if other := d.catalog.Lookup(obj.Name()); other != nil {
						d.warnings = append(d.warnings, Warning{
							Kind:    WarnExternalBase,
							Entity:  d.entity.Name,
							Field:   v.Name(),
							File:    d.entity.File,
							Message: "embedded " + qualifiedName(obj) + " shares a name with entity " + other.Name + " but is a different type; promoting its fields",
						})
					}
				}

				if inner, ok := named.Underlying().(*types.Struct); ok {
					if visiting[obj] {
						continue
					}
					visiting[obj] = true
					d.walk(inner, depth+1, qualifiedName(obj), visiting)
					delete(visiting, obj)
					continue
				}
			}
		}

		if !v.Exported() {
			continue
		}
		d.candidates = append(d.candidates, fieldCandidate{
			field:  d.field(v, tags, st.Tag(i), mixin),
			depth:  depth,
			tagged: tags.JSONName != "",
		})
	}
}

// settle picks one field per emitted name the way encoding/json does: the
// shallowest field wins, and among equally shallow fields a single json
// tagged one wins. Anything else is ambiguous, so json omits the name and
// so do we. The kept field takes the position of the name's first
// occurrence.
func (d *fieldDeriver) settle() {
	var order []string
	groups := make(map[string][]fieldCandidate)
	for _, c := range d.candidates {
		if _, seen := groups[c.field.Name]; !seen {
			order = append(order, c.field.Name)
		}
		groups[c.field.Name] = append(groups[c.field.Name], c)
	}

	for _, name := range order {
		if winner := d.dominant(name, groups[name]); winner != nil {
			d.entity.Fields = append(d.entity.Fields, winner)
		}
	}
}

func (d *fieldDeriver) dominant(name string, group []fieldCandidate) *FieldDecl {
	minDepth := group[0].depth
	for _, c := range group[1:] {
		if c.depth < minDepth {
			minDepth = c.depth
		}
	}
	var shallow, tagged []fieldCandidate
	for _, c := range group {
		if c.depth != minDepth {
			continue
		}
		shallow = append(shallow, c)
		if c.tagged {
			tagged = append(tagged, c)
		}
	}

	switch {
	case len(shallow) == 1:
		return shallow[0].field
	case len(tagged) == 1:
		return tagged[0].field
	}

	goNames := make([]string, len(shallow))
	for i, c := range shallow {
		goNames[i] = c.field.GoName
		if c.field.PromotedFrom != "" {
			goNames[i] = c.field.PromotedFrom + "." + c.field.GoName
		}
	}
	d.warnings = append(d.warnings, Warning{
		Kind:    WarnAmbiguousField,
		Entity:  d.entity.Name,
		Field:   name,
		File:    d.entity.File,
		Message: "fields " + strings.Join(goNames, ", ") + " all map to " + strconv.Quote(name) + " at the same depth; encoding/json omits it",
	})
	return nil
}

func fallbackName(goName, fallbackCase string) string {
	if fallbackCase == config.FallbackCaseCamel {
		return util.LowerInitial(goName)
	}
	return goName
}

// derefType strips one pointer level (after resolving aliases).
func derefType(t types.Type) (types.Type, bool) {
	if p, ok := types.Unalias(t).(*types.Pointer); ok {
		return p.Elem(), true
	}
	return t, false
}

// qualifiedName is "pkg.Name" for package-level types, "Name" otherwise.
func qualifiedName(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Name() + "." + obj.Name()
}
