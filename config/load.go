package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/teranos/entmirror/errors"
)

// LoadFromFile loads configuration from a specific file path.
//
// Defaults fill absent keys, ENTMIRROR_* environment variables override the
// file, and relative source.root / output.dir are resolved against the
// directory holding the file. Every failure is an environment error.
func LoadFromFile(configPath string) (*Config, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, errors.WrapEnvironment(err, "failed to resolve config path")
	}

	if _, err := os.Stat(abs); err != nil {
		wrapped := errors.WrapEnvironment(err, "failed to read config file "+configPath)
		if os.IsNotExist(err) {
			wrapped = errors.WithHint(wrapped, "run 'entmirror init' to create "+DefaultFileName)
		}
		return nil, wrapped
	}

	v := newViper()
	v.SetConfigFile(abs)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapEnvironment(err, "failed to parse config file "+configPath)
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", configPath)
	}

	cfg.File = abs
	cfg.resolvePaths(filepath.Dir(abs))

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", configPath)
	}
	return cfg, nil
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapEnvironment(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// newViper returns a viper instance with defaults and env binding applied.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// resolvePaths makes Root and Output.Dir absolute relative to base.
func (c *Config) resolvePaths(base string) {
	if !filepath.IsAbs(c.Source.Root) {
		c.Source.Root = filepath.Join(base, c.Source.Root)
	}
	if !filepath.IsAbs(c.Output.Dir) {
		c.Output.Dir = filepath.Join(base, c.Output.Dir)
	}
	c.Output.Extension = strings.TrimPrefix(c.Output.Extension, ".")
}
