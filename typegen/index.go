package typegen

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/tools/go/packages"

	"github.com/teranos/entmirror/errors"
	"github.com/teranos/entmirror/logger"
	"github.com/teranos/entmirror/typegen/util"
)

// IndexOptions configures source discovery.
type IndexOptions struct {
	// Root is the project directory; it must contain or sit below a go.mod.
	Root string
	// Patterns are doublestar globs relative to Root.
	Patterns []string
	// BuildTags are passed to the loader as -tags.
	BuildTags []string
	// Overlay maps absolute file paths to in-memory contents. Overlaid files
	// that match Patterns are indexed even when they do not exist on disk.
	Overlay map[string][]byte
}

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
	packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo |
	packages.NeedImports | packages.NeedDeps

// IndexedFile is one matched entity source with its parsed syntax.
type IndexedFile struct {
	// Path is relative to the index root, slash separated
	Path    string
	AbsPath string
	AST     *ast.File
	Package *packages.Package
}

// Defined returns the type name the checker defined for id, or nil.
func (f *IndexedFile) Defined(id *ast.Ident) *types.TypeName {
	if f.Package == nil || f.Package.TypesInfo == nil {
		return nil
	}
	tn, _ := f.Package.TypesInfo.Defs[id].(*types.TypeName)
	return tn
}

// Index is the parsed, type-checked set of entity sources. It is read-only
// once LoadIndex returns.
type Index struct {
	Root string
	Fset *token.FileSet

	files    []*IndexedFile
	packages []*packages.Package
	warnings []Warning
	docs     map[token.Pos]string
}

// Files returns the indexed files in discovery order (sorted by path).
func (ix *Index) Files() []*IndexedFile { return ix.files }

// Warnings returns the diagnostics recorded while loading.
func (ix *Index) Warnings() []Warning { return ix.warnings }

// Len returns the number of indexed files.
func (ix *Index) Len() int { return len(ix.files) }

// Defined returns the type name the checker defined for id in any indexed
// package, or nil.
func (ix *Index) Defined(id *ast.Ident) *types.TypeName {
	for _, pkg := range ix.packages {
		if pkg.TypesInfo == nil {
			continue
		}
		if tn, ok := pkg.TypesInfo.Defs[id].(*types.TypeName); ok {
			return tn
		}
	}
	return nil
}

// Position resolves pos with the filename made relative to the root.
func (ix *Index) Position(pos token.Pos) token.Position {
	if ix.Fset == nil || !pos.IsValid() {
		return token.Position{}
	}
	p := ix.Fset.Position(pos)
	p.Filename = ix.relPath(p.Filename)
	return p
}

// FieldDoc returns the doc or line comment of the struct field declaring v,
// if its syntax was loaded.
func (ix *Index) FieldDoc(v *types.Var) string {
	return ix.docs[v.Pos()]
}

func collectFieldDocs(f *ast.File, docs map[token.Pos]string) {
	ast.Inspect(f, func(n ast.Node) bool {
		st, ok := n.(*ast.StructType)
		if !ok || st.Fields == nil {
			return true
		}
		for _, field := range st.Fields.List {
			doc := util.ExtractFieldComment(field)
			if doc == "" {
				continue
			}
			for _, name := range field.Names {
				docs[name.Pos()] = doc
			}
		}
		return true
	})
}

func (ix *Index) relPath(filename string) string {
	if filename == "" {
		return ""
	}
	rel, err := filepath.Rel(ix.Root, canonicalFile(filename))
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(filename)
	}
	return filepath.ToSlash(rel)
}

// LoadIndex expands the patterns under the root and loads every package
// owning a matched file. Zero matches is not an error: the index is empty and
// no package is loaded.
func LoadIndex(ctx context.Context, opts IndexOptions) (*Index, error) {
	log := logger.ComponentLogger("typegen.index")

	root, err := canonicalDir(opts.Root)
	if err != nil {
		return nil, err
	}
	if _, err := findModuleRoot(root); err != nil {
		return nil, err
	}

	ix := &Index{Root: root}
	overlay := canonicalOverlay(opts.Overlay)

	matches, err := expandPatterns(root, opts.Patterns, overlay)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		log.Infow("No entity sources matched", logger.FieldPattern, strings.Join(opts.Patterns, ", "))
		return ix, nil
	}
	log.Debugw("Matched entity sources", logger.FieldCount, len(matches))

	// Every matched file must be readable before anything is loaded
	byPath := make(map[string]string, len(matches)) // abs -> rel
	for _, abs := range matches {
		rel := ix.relPath(abs)
		byPath[abs] = rel
		if _, ok := overlay[abs]; ok {
			continue
		}
		if _, err := os.ReadFile(abs); err != nil {
			return nil, &SourceFileError{File: rel, Err: err}
		}
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     root,
		Overlay: overlay,
	}
	if len(opts.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(opts.BuildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, packagePatterns(root, matches)...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.WithHint(
			errors.WrapEnvironment(err, "failed to load entity packages"),
			"check that the go toolchain is installed and 'go list ./...' succeeds in "+root,
		)
	}
	pkgs = uniquePackages(pkgs)

	if err := ix.classifyErrors(pkgs, byPath); err != nil {
		return nil, err
	}

	ix.packages = pkgs
	if len(pkgs) > 0 {
		ix.Fset = pkgs[0].Fset
	}
	ix.docs = make(map[token.Pos]string)
	for _, pkg := range pkgs {
		for _, f := range pkg.Syntax {
			collectFieldDocs(f, ix.docs)
		}
	}

	syntax := make(map[string]*IndexedFile)
	for _, pkg := range pkgs {
		for _, f := range pkg.Syntax {
			abs := canonicalFile(pkg.Fset.Position(f.Package).Filename)
			syntax[abs] = &IndexedFile{AbsPath: abs, AST: f, Package: pkg}
		}
	}

	for _, abs := range matches {
		file, ok := syntax[abs]
		if !ok {
			ix.warnings = append(ix.warnings, Warning{
				Kind:    WarnExcludedFile,
				File:    byPath[abs],
				Message: "file is not part of its package under the current build constraints",
			})
			continue
		}
		file.Path = byPath[abs]
		ix.files = append(ix.files, file)
	}

	log.Debugw("Loaded entity packages", logger.FieldCount, len(pkgs))
	return ix, nil
}

// classifyErrors turns loader errors into a fatal error or warnings:
// parse errors are bad input, type errors are tolerated, anything else means
// the toolchain or module setup is broken.
func (ix *Index) classifyErrors(pkgs []*packages.Package, matched map[string]string) error {
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			file, line, col := splitErrorPos(e.Pos)
			rel := ix.relPath(file)
			_, inMatched := matched[canonicalFile(file)]

			switch {
			case e.Kind == packages.ParseError,
				e.Kind == packages.ListError && inMatched:
				return &SourceFileError{
					File: rel,
					Pos:  token.Position{Filename: rel, Line: line, Column: col},
					Err:  errors.New(e.Msg),
				}
			case e.Kind == packages.TypeError:
				msg := e.Msg
				if line > 0 {
					msg = strconv.Itoa(line) + ":" + strconv.Itoa(col) + ": " + msg
				}
				ix.warnings = append(ix.warnings, Warning{Kind: WarnTypeError, File: rel, Message: msg})
			case isBuildConstraintError(e.Msg):
				// reported per file as excluded_file
			default:
				return errors.WithHint(
					errors.NewEnvironmentError("failed to load package %s: %s", pkg.PkgPath, e.Msg),
					"run 'go list' on the package to see the full error",
				)
			}
		}
	}
	return nil
}

func isBuildConstraintError(msg string) bool {
	return strings.Contains(msg, "build constraints exclude all Go files")
}

// splitErrorPos splits a loader position "file:line:col" (or "file:line",
// or "file") into its parts.
func splitErrorPos(pos string) (file string, line, col int) {
	if pos == "" || pos == "-" {
		return "", 0, 0
	}
	file = pos
	var nums []int
	for i := 0; i < 2; i++ {
		idx := strings.LastIndexByte(file, ':')
		if idx < 0 {
			break
		}
		n, err := strconv.Atoi(file[idx+1:])
		if err != nil {
			break
		}
		nums = append([]int{n}, nums...)
		file = file[:idx]
	}
	switch len(nums) {
	case 2:
		line, col = nums[0], nums[1]
	case 1:
		line = nums[0]
	}
	return file, line, col
}

// expandPatterns returns the absolute, de-duplicated .go files matching any
// pattern, sorted by their slash path relative to root.
func expandPatterns(root string, patterns []string, overlay map[string][]byte) ([]string, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.NewEnvironmentError("invalid source pattern %q", pattern)
		}

		found, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.WrapEnvironment(err, "failed to expand source pattern "+pattern)
		}
		for _, rel := range found {
			if strings.HasSuffix(rel, ".go") {
				seen[filepath.Join(root, filepath.FromSlash(rel))] = true
			}
		}

		for abs := range overlay {
			rel, err := filepath.Rel(root, abs)
			if err != nil || strings.HasPrefix(rel, "..") || !strings.HasSuffix(rel, ".go") {
				continue
			}
			if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); ok {
				seen[abs] = true
			}
		}
	}

	matches := make([]string, 0, len(seen))
	for abs := range seen {
		matches = append(matches, abs)
	}
	sort.Slice(matches, func(i, j int) bool {
		return filepath.ToSlash(matches[i]) < filepath.ToSlash(matches[j])
	})
	return matches, nil
}

// packagePatterns returns one "./dir" loader pattern per directory holding a
// match.
func packagePatterns(root string, matches []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, abs := range matches {
		rel, err := filepath.Rel(root, filepath.Dir(abs))
		if err != nil {
			continue
		}
		p := "./" + path.Clean(filepath.ToSlash(rel))
		if rel == "." {
			p = "."
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

func uniquePackages(pkgs []*packages.Package) []*packages.Package {
	seen := make(map[string]bool)
	out := pkgs[:0]
	for _, pkg := range pkgs {
		if seen[pkg.ID] {
			continue
		}
		seen[pkg.ID] = true
		out = append(out, pkg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// findModuleRoot walks up from dir to the directory containing go.mod.
func findModuleRoot(dir string) (string, error) {
	for d := dir; ; {
		if info, err := os.Stat(filepath.Join(d, "go.mod")); err == nil && !info.IsDir() {
			return d, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}
	return "", errors.WithHint(
		errors.NewEnvironmentError("no go.mod found at or above %s", dir),
		"set source.root to a directory inside a Go module",
	)
}

func canonicalDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.WrapEnvironment(err, "failed to resolve source root")
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.WrapEnvironment(err, "source root "+dir)
	}
	if !info.IsDir() {
		return "", errors.NewEnvironmentError("source root %s is not a directory", dir)
	}
	return canonicalFile(abs), nil
}

// canonicalFile resolves symlinks where possible so that paths reported by
// the go command compare equal to globbed ones.
func canonicalFile(p string) string {
	if p == "" {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	// Overlay-only files do not exist; resolve their directory instead
	dir, base := filepath.Split(filepath.Clean(p))
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return filepath.Join(resolved, base)
	}
	return filepath.Clean(p)
}

func canonicalOverlay(overlay map[string][]byte) map[string][]byte {
	if len(overlay) == 0 {
		return nil
	}
	out := make(map[string][]byte, len(overlay))
	for p, content := range overlay {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		out[canonicalFile(abs)] = content
	}
	return out
}
