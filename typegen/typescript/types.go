package typescript

import (
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"github.com/teranos/entmirror/errors"
	"github.com/teranos/entmirror/typegen"
	"github.com/teranos/entmirror/typegen/util"
)

// TypeMapping defines how well-known named Go types map to TypeScript.
// Keys are "pkg.Name" with the package's name, not its path.
var TypeMapping = map[string]string{
	"time.Time":       "string",
	"time.Duration":   "number",
	"json.RawMessage": "unknown",
	"big.Int":         "string",
	// SQL nullable types - map to TypeScript optional unions
	"sql.NullString":  "string | null",
	"sql.NullInt64":   "number | null",
	"sql.NullInt32":   "number | null",
	"sql.NullInt16":   "number | null",
	"sql.NullFloat64": "number | null",
	"sql.NullBool":    "boolean | null",
	"sql.NullTime":    "string | null",
	// gorm soft delete column
	"gorm.DeletedAt": "string | null",
}

const (
	tsUnknown = "unknown"
	tsNull    = "null"
)

var (
	textMarshaler = marshalerInterface("MarshalText")
	jsonMarshaler = marshalerInterface("MarshalJSON")
)

// marshalerInterface builds interface{ <method>() ([]byte, error) }.
func marshalerInterface(method string) *types.Interface {
	results := types.NewTuple(
		types.NewVar(token.NoPos, nil, "", types.NewSlice(types.Typ[types.Byte])),
		types.NewVar(token.NoPos, nil, "", types.Universe.Lookup("error").Type()),
	)
	sig := types.NewSignatureType(nil, nil, nil, nil, results, false)
	fn := types.NewFunc(token.NoPos, nil, method, sig)
	return types.NewInterfaceType([]*types.Func{fn}, nil).Complete()
}

// Resolve renders t as a TypeScript type.
func (g *Generator) Resolve(t types.Type, scope typegen.EntityScope) (typegen.TypeText, error) {
	r := &resolution{gen: g, scope: scope, visiting: make(map[*types.TypeName]bool)}
	text, err := r.resolve(t)
	if err != nil {
		return typegen.TypeText{}, err
	}
	return typegen.TypeText{Text: text, Refs: r.refs}, nil
}

// Override takes a tstype text verbatim, recording the entities it names.
func (g *Generator) Override(text string, scope typegen.EntityScope) typegen.TypeText {
	var refs []string
	seen := make(map[string]bool)
	for _, name := range extractTypeNames(text) {
		if seen[name] || scope.Lookup(name) == nil {
			continue
		}
		seen[name] = true
		refs = append(refs, name)
	}
	return typegen.TypeText{Text: text, Refs: refs}
}

// Nullable appends "| null" unless text already admits null.
func (g *Generator) Nullable(text string) string {
	if text == tsUnknown || text == tsNull || strings.HasSuffix(text, " | "+tsNull) {
		return text
	}
	return text + " | " + tsNull
}

// Unknown returns "unknown".
func (g *Generator) Unknown() string { return tsUnknown }

// resolution is the state of one Resolve call.
type resolution struct {
	gen      *Generator
	scope    typegen.EntityScope
	refs     []string
	visiting map[*types.TypeName]bool
}

func (r *resolution) addRef(name string) {
	for _, existing := range r.refs {
		if existing == name {
			return
		}
	}
	r.refs = append(r.refs, name)
}

func (r *resolution) resolve(t types.Type) (string, error) {
	switch t := types.Unalias(t).(type) {
	case *types.Named:
		return r.named(t)

	case *types.Basic:
		return basicType(t)

	case *types.Pointer:
		inner, err := r.resolve(t.Elem())
		if err != nil {
			return "", err
		}
		return r.gen.Nullable(inner), nil

	case *types.Slice:
		if isByte(t.Elem()) {
			// encoding/json writes []byte as base64
			return "string", nil
		}
		return r.array(t.Elem())

	case *types.Array:
		return r.array(t.Elem())

	case *types.Map:
		key, err := r.mapKey(t.Key())
		if err != nil {
			return "", err
		}
		val, err := r.resolve(t.Elem())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Record<%s, %s>", key, val), nil

	case *types.Interface:
		return tsUnknown, nil

	case *types.Struct:
		return r.object(t)

	case *types.Chan:
		return "", errors.Newf("channel type %s has no JSON form", t)
	case *types.Signature:
		return "", errors.Newf("function type %s has no JSON form", t)
	case *types.TypeParam:
		return "", errors.Newf("type parameter %s has no concrete type", t)
	default:
		return "", errors.Newf("unsupported type %s", t)
	}
}

func (r *resolution) named(t *types.Named) (string, error) {
	obj := t.Obj()

	if entity := r.scope.EntityFor(obj); entity != nil {
		r.addRef(entity.Name)
		return entity.Name, nil
	}
	if mapped, ok := r.gen.TypeMapping[qualifiedName(obj)]; ok {
		return mapped, nil
	}
	if implements(t, textMarshaler) {
		return "string", nil
	}
	if implements(t, jsonMarshaler) {
		// Custom JSON shape we cannot see
		return tsUnknown, nil
	}
	if basic, ok := t.Underlying().(*types.Basic); ok {
		if union := constUnion(t, basic); union != "" {
			return union, nil
		}
	}

	if r.visiting[obj] {
		return "", errors.Newf("recursive type %s cannot be inlined", qualifiedName(obj))
	}
	r.visiting[obj] = true
	defer delete(r.visiting, obj)
	return r.resolve(t.Underlying())
}

func (r *resolution) array(elem types.Type) (string, error) {
	text, err := r.resolve(elem)
	if err != nil {
		return "", err
	}
	if isTopLevelUnion(text) {
		text = "(" + text + ")"
	}
	return text + "[]", nil
}

// mapKey renders a map key. encoding/json accepts string and integer kinds
// and TextMarshaler keys.
func (r *resolution) mapKey(t types.Type) (string, error) {
	if named, ok := types.Unalias(t).(*types.Named); ok && implements(named, textMarshaler) {
		return "string", nil
	}
	basic, ok := t.Underlying().(*types.Basic)
	if !ok {
		return "", errors.Newf("map key type %s has no JSON form", t)
	}
	switch {
	case basic.Info()&types.IsString != 0:
		return "string", nil
	case basic.Info()&types.IsInteger != 0:
		return "number", nil
	default:
		return "", errors.Newf("map key type %s has no JSON form", t)
	}
}

// object renders an anonymous or non-entity struct as an inline literal,
// following encoding/json field visibility.
func (r *resolution) object(st *types.Struct) (string, error) {
	var members []string
	if err := r.objectMembers(st, &members, make(map[string]bool)); err != nil {
		return "", err
	}
	if len(members) == 0 {
		return "Record<string, never>", nil
	}
	return "{ " + strings.Join(members, "; ") + " }", nil
}

func (r *resolution) objectMembers(st *types.Struct, members *[]string, seen map[string]bool) error {
	for i := 0; i < st.NumFields(); i++ {
		v := st.Field(i)
		tags := util.ParseFieldTags(st.Tag(i))
		if tags.Skip {
			continue
		}

		if v.Embedded() && tags.JSONName == "" {
			elem := v.Type()
			if p, ok := types.Unalias(elem).(*types.Pointer); ok {
				elem = p.Elem()
			}
			if inner, ok := elem.Underlying().(*types.Struct); ok {
				if named, ok := types.Unalias(elem).(*types.Named); ok {
					if r.visiting[named.Obj()] {
						return errors.Newf("recursive type %s cannot be inlined", qualifiedName(named.Obj()))
					}
					r.visiting[named.Obj()] = true
					err := r.objectMembers(inner, members, seen)
					delete(r.visiting, named.Obj())
					if err != nil {
						return err
					}
					continue
				}
			}
		}
		if !v.Exported() {
			continue
		}

		name := tags.JSONName
		if name == "" {
			name = v.Name()
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		var text string
		if tags.CustomType != "" {
			text = tags.CustomType
		} else {
			var err error
			if text, err = r.resolve(v.Type()); err != nil {
				return err
			}
		}
		_, isPointer := types.Unalias(v.Type()).(*types.Pointer)
		optional := ""
		if tags.Omitempty || tags.CustomOptional || isPointer {
			optional = "?"
		}
		*members = append(*members, propertyKey(name)+optional+": "+text)
	}
	return nil
}

func basicType(t *types.Basic) (string, error) {
	info := t.Info()
	switch {
	case t.Kind() == types.Invalid:
		return "", errors.New("type could not be checked")
	case t.Kind() == types.UnsafePointer:
		return "", errors.New("unsafe.Pointer has no JSON form")
	case info&types.IsBoolean != 0:
		return "boolean", nil
	case info&types.IsString != 0:
		return "string", nil
	case info&types.IsComplex != 0:
		return "", errors.Newf("%s has no JSON form", t)
	case info&(types.IsInteger|types.IsFloat) != 0:
		return "number", nil
	case t.Kind() == types.UntypedNil:
		return tsNull, nil
	default:
		return "", errors.Newf("unsupported basic type %s", t)
	}
}

// constUnion renders the typed constants declared for t in its own package
// as a sorted literal union, or "" when there are none.
func constUnion(t *types.Named, basic *types.Basic) string {
	pkg := t.Obj().Pkg()
	if pkg == nil || basic.Info()&(types.IsString|types.IsInteger) == 0 {
		return ""
	}

	var values []constant.Value
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || !types.Identical(c.Type(), t) {
			continue
		}
		values = append(values, c.Val())
	}
	if len(values) == 0 {
		return ""
	}

	sort.Slice(values, func(i, j int) bool {
		return constant.Compare(values[i], token.LSS, values[j])
	})

	parts := make([]string, 0, len(values))
	for i, v := range values {
		if i > 0 && constant.Compare(values[i-1], token.EQL, v) {
			continue
		}
		parts = append(parts, constLiteral(v))
	}
	return strings.Join(parts, " | ")
}

func constLiteral(v constant.Value) string {
	if v.Kind() == constant.String {
		return quoteString(constant.StringVal(v))
	}
	return v.ExactString()
}

// quoteString writes s as a single-quoted TypeScript string literal.
func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

// propertyKey quotes names that are not plain identifiers.
func propertyKey(name string) string {
	if util.IsIdentifier(name) {
		return name
	}
	return quoteString(name)
}

func implements(t *types.Named, iface *types.Interface) bool {
	return types.Implements(t, iface) || types.Implements(types.NewPointer(t), iface)
}

func isByte(t types.Type) bool {
	b, ok := types.Unalias(t).(*types.Basic)
	return ok && b.Kind() == types.Byte
}

// isTopLevelUnion reports whether text has a "|" outside any brackets.
func isTopLevelUnion(text string) bool {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case '|':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

func qualifiedName(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Name() + "." + obj.Name()
}
