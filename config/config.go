// Package config loads entmirror.toml, the generator's only input besides
// the entity sources themselves.
package config

import "os"

// DefaultFileName is the config file looked up when --config is not given.
const DefaultFileName = "entmirror.toml"

// EnvPrefix prefixes environment overrides: ENTMIRROR_OUTPUT_DIR, ...
const EnvPrefix = "ENTMIRROR"

const (
	// DefaultDirPermissions for the output directory
	DefaultDirPermissions os.FileMode = 0755
	// DefaultFilePermissions for generated files and the config file
	DefaultFilePermissions os.FileMode = 0644
)

// Naming fallbacks for fields without a json tag.
const (
	FallbackCaseGo    = "go"
	FallbackCaseCamel = "camel"
)

// Config is the parsed entmirror.toml.
type Config struct {
	Source SourceConfig `mapstructure:"source" toml:"source" json:"source" yaml:"source"`
	Output OutputConfig `mapstructure:"output" toml:"output" json:"output" yaml:"output"`
	Naming NamingConfig `mapstructure:"naming" toml:"naming" json:"naming" yaml:"naming"`

	// File is the absolute path the config was loaded from, empty for
	// in-memory configs. Relative paths above are resolved against its
	// directory by LoadFromFile.
	File string `mapstructure:"-" toml:"-" json:"-" yaml:"-"`
}

// SourceConfig selects the entity source files.
type SourceConfig struct {
	// Root is the directory containing (or below) go.mod
	Root string `mapstructure:"root" toml:"root" json:"root" yaml:"root"`
	// Patterns are doublestar globs relative to Root
	Patterns []string `mapstructure:"patterns" toml:"patterns" json:"patterns" yaml:"patterns"`
	// BuildTags are passed to the package loader as -tags
	BuildTags []string `mapstructure:"build_tags" toml:"build_tags" json:"build_tags" yaml:"build_tags"`
}

// OutputConfig controls where declarations are written.
type OutputConfig struct {
	Dir       string `mapstructure:"dir" toml:"dir" json:"dir" yaml:"dir"`
	Extension string `mapstructure:"extension" toml:"extension" json:"extension" yaml:"extension"`
	// Barrel writes an index file re-exporting every generated interface
	Barrel bool `mapstructure:"barrel" toml:"barrel" json:"barrel" yaml:"barrel"`
}

// NamingConfig controls property naming.
type NamingConfig struct {
	// FallbackCase applies to fields without a json name: "go" keeps the Go
	// field name, "camel" lower-cases the leading rune or initialism.
	FallbackCase string `mapstructure:"fallback_case" toml:"fallback_case" json:"fallback_case" yaml:"fallback_case"`
}
