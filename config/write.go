package config

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/teranos/entmirror/errors"
)

const fileHeader = `# entmirror configuration
#
# source.patterns are globs relative to source.root ("**" crosses directories).
# Fields without a json tag are named per naming.fallback_case ("go" or "camel").

`

// Encode renders cfg as TOML with the explanatory header.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}
	return buf.Bytes(), nil
}

// WriteFile writes cfg to path. An existing file is only replaced when force
// is set.
func WriteFile(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.WithHint(
				errors.NewEnvironmentError("%s already exists", path),
				"pass --force to overwrite it",
			)
		}
	}

	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.WrapEnvironment(err, "failed to write "+path)
	}
	return nil
}
