package typegen

import (
	"github.com/teranos/entmirror/errors"
)

// Resolver flattens the single-parent embedding chain of cataloged entities.
type Resolver struct {
	catalog *Catalog
}

// NewResolver returns a Resolver over c.
func NewResolver(c *Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// Flatten returns the full field list of the named entity: base fields first
// in base order, then own fields. An own field whose name already occurs
// replaces that entry in place, so shadowed properties keep the base position
// and take the derived declaration.
func (r *Resolver) Flatten(name string) ([]*FieldDecl, error) {
	return r.flatten(name, nil)
}

// flatten carries the chain of names visited for the current resolution;
// meeting one of them again is a cycle.
func (r *Resolver) flatten(name string, chain []string) ([]*FieldDecl, error) {
	for i, visited := range chain {
		if visited == name {
			cycle := append(append([]string{}, chain[i:]...), name)
			return nil, r.cycleError(cycle)
		}
	}

	entity := r.catalog.Lookup(name)
	if entity == nil {
		return nil, errors.AssertionFailedf("entity %q is not in the catalog", name)
	}

	var fields []*FieldDecl
	if entity.BaseRef != "" {
		next := append(append([]string{}, chain...), name)
		base, err := r.flatten(entity.BaseRef, next)
		if err != nil {
			return nil, err
		}
		fields = base
	}

	return mergeFields(fields, entity.Fields), nil
}

// mergeFields overlays own onto base. base is never modified.
func mergeFields(base, own []*FieldDecl) []*FieldDecl {
	out := make([]*FieldDecl, len(base), len(base)+len(own))
	copy(out, base)

	index := make(map[string]int, len(out))
	for i, f := range out {
		index[f.Name] = i
	}
	for _, f := range own {
		if i, ok := index[f.Name]; ok {
			out[i] = f
			continue
		}
		index[f.Name] = len(out)
		out = append(out, f)
	}
	return out
}

func (r *Resolver) cycleError(chain []string) error {
	var files []string
	seen := make(map[string]bool)
	for _, name := range chain {
		if e := r.catalog.Lookup(name); e != nil && !seen[e.File] {
			seen[e.File] = true
			files = append(files, e.File)
		}
	}
	return &CyclicInheritanceError{Chain: chain, Files: files}
}
