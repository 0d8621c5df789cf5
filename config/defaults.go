package config

import (
	"github.com/spf13/viper"
)

// Default values, also written by `entmirror init`.
const (
	DefaultRoot         = "."
	DefaultPattern      = "**/*_entity.go"
	DefaultOutputDir    = "web/src/types/entities"
	DefaultExtension    = "ts"
	DefaultFallbackCase = FallbackCaseGo
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source.root", DefaultRoot)
	v.SetDefault("source.patterns", []string{DefaultPattern})
	v.SetDefault("source.build_tags", []string{})

	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.extension", DefaultExtension)
	v.SetDefault("output.barrel", false)

	v.SetDefault("naming.fallback_case", DefaultFallbackCase)
}

// Default returns the default configuration with paths left relative.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Root:      DefaultRoot,
			Patterns:  []string{DefaultPattern},
			BuildTags: []string{},
		},
		Output: OutputConfig{
			Dir:       DefaultOutputDir,
			Extension: DefaultExtension,
		},
		Naming: NamingConfig{FallbackCase: DefaultFallbackCase},
	}
}
