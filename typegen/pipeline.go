package typegen

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/teranos/entmirror/config"
	"github.com/teranos/entmirror/errors"
	"github.com/teranos/entmirror/logger"
)

// Emitter renders declarations for one target language.
type Emitter interface {
	TypeResolver
	// Render returns the complete file text for one entity.
	Render(entity FlattenedEntity) string
	// RenderBarrel returns an index file re-exporting the named entities.
	RenderBarrel(entityNames []string) string
	// BarrelName is the barrel file's base name without extension.
	BarrelName() string
}

// Options configures a generator run.
type Options struct {
	Index     IndexOptions
	Catalog   CatalogOptions
	OutputDir string
	// Extension of generated files, without the dot
	Extension string
	Barrel    bool
	Emitter   Emitter
}

// OptionsFromConfig builds run options from a loaded config.
func OptionsFromConfig(cfg *config.Config, emitter Emitter) Options {
	return Options{
		Index: IndexOptions{
			Root:      cfg.Source.Root,
			Patterns:  cfg.Source.Patterns,
			BuildTags: cfg.Source.BuildTags,
		},
		Catalog:   CatalogOptions{FallbackCase: cfg.Naming.FallbackCase},
		OutputDir: cfg.Output.Dir,
		Extension: cfg.Output.Extension,
		Barrel:    cfg.Output.Barrel,
		Emitter:   emitter,
	}
}

// Report is the outcome of a run.
type Report struct {
	// Entities are the flattened entities in discovery order
	Entities     []FlattenedEntity
	Declarations []GeneratedDeclaration
	// Barrel is nil unless requested and at least one entity exists
	Barrel   *GeneratedDeclaration
	Warnings []Warning
	// Written lists the files put on disk by Write, in write order
	Written  []string
	Duration time.Duration
}

// Files returns every declaration to write, barrel last.
func (r *Report) Files() []GeneratedDeclaration {
	files := append([]GeneratedDeclaration{}, r.Declarations...)
	if r.Barrel != nil {
		files = append(files, *r.Barrel)
	}
	return files
}

// Generate runs the pipeline up to rendering. It writes nothing, so any
// input error leaves the output directory untouched.
func Generate(ctx context.Context, opts Options) (*Report, error) {
	if opts.Emitter == nil {
		return nil, errors.AssertionFailedf("typegen: Options.Emitter is nil")
	}
	log := logger.ComponentLogger("typegen")
	start := time.Now()
	report := &Report{}

	ix, err := LoadIndex(ctx, opts.Index)
	if err != nil {
		return nil, err
	}
	report.Warnings = append(report.Warnings, ix.Warnings()...)

	catalog, warnings, err := BuildCatalog(ix, opts.Catalog)
	report.Warnings = append(report.Warnings, warnings...)
	if err != nil {
		logWarnings(report.Warnings)
		return nil, err
	}

	resolver := NewResolver(catalog)
	extractor := Extractor{Resolver: opts.Emitter, Scope: catalog}
	warned := make(map[*FieldDecl]bool)

	ext := opts.Extension
	if ext == "" {
		ext = config.DefaultExtension
	}

	for _, entity := range catalog.Entities() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fields, err := resolver.Flatten(entity.Name)
		if err != nil {
			logWarnings(report.Warnings)
			return nil, err
		}

		flat := FlattenedEntity{Entity: entity, Properties: make([]PropertyDecl, 0, len(fields))}
		for _, field := range fields {
			prop, warning := extractor.Extract(entity, field)
			// Inherited fields are extracted once per descendant; warn once
			if warning != nil && !warned[field] {
				warned[field] = true
				report.Warnings = append(report.Warnings, *warning)
			}
			flat.Properties = append(flat.Properties, prop)
		}

		report.Entities = append(report.Entities, flat)
		report.Declarations = append(report.Declarations, GeneratedDeclaration{
			EntityName:   entity.Name,
			RenderedText: opts.Emitter.Render(flat),
			OutputPath:   filepath.Join(opts.OutputDir, entity.Name+"."+ext),
		})
	}

	if opts.Barrel && len(report.Declarations) > 0 {
		names := make([]string, len(report.Declarations))
		for i, d := range report.Declarations {
			names[i] = d.EntityName
		}
		report.Barrel = &GeneratedDeclaration{
			RenderedText: opts.Emitter.RenderBarrel(names),
			OutputPath:   filepath.Join(opts.OutputDir, opts.Emitter.BarrelName()+"."+ext),
		}
	}

	logWarnings(report.Warnings)
	report.Duration = time.Since(start)
	log.Infow("Generated declarations",
		logger.FieldCount, len(report.Declarations),
		logger.FieldDurationMS, report.Duration.Milliseconds())
	return report, nil
}

// Write puts every declaration on disk, creating outputDir if needed and
// fully overwriting existing files. Files already written stay on disk when
// a later write fails.
func Write(outputDir string, decls []GeneratedDeclaration) ([]string, error) {
	if len(decls) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(outputDir, config.DefaultDirPermissions); err != nil {
		return nil, errors.WrapEnvironment(err, "failed to create output directory "+outputDir)
	}

	written := make([]string, 0, len(decls))
	for _, d := range decls {
		if err := os.WriteFile(d.OutputPath, []byte(d.RenderedText), config.DefaultFilePermissions); err != nil {
			return written, errors.WrapEnvironment(err, "failed to write "+d.OutputPath)
		}
		written = append(written, d.OutputPath)
	}
	return written, nil
}

// Run generates and writes. Zero entities writes nothing and succeeds.
func Run(ctx context.Context, opts Options) (*Report, error) {
	report, err := Generate(ctx, opts)
	if err != nil {
		return nil, err
	}
	written, err := Write(opts.OutputDir, report.Files())
	report.Written = written
	if err != nil {
		return report, err
	}
	return report, nil
}

func logWarnings(warnings []Warning) {
	log := logger.ComponentLogger("typegen")
	for _, w := range warnings {
		log.Warnw(w.Message,
			logger.FieldKind, string(w.Kind),
			logger.FieldEntity, w.Entity,
			logger.FieldField, w.Field,
			logger.FieldFile, w.File)
	}
}
