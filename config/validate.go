package config

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/teranos/entmirror/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Source.Root == "" {
		return errors.NewEnvironmentError("source.root cannot be empty")
	}
	if len(c.Source.Patterns) == 0 {
		return errors.NewEnvironmentError("source.patterns must name at least one glob")
	}
	for _, p := range c.Source.Patterns {
		if p == "" || !doublestar.ValidatePattern(p) {
			return errors.NewEnvironmentError("source.patterns: invalid glob %q", p)
		}
	}

	if c.Output.Dir == "" {
		return errors.NewEnvironmentError("output.dir cannot be empty")
	}
	if c.Output.Extension == "" {
		return errors.NewEnvironmentError("output.extension cannot be empty")
	}

	switch c.Naming.FallbackCase {
	case FallbackCaseGo, FallbackCaseCamel:
	default:
		return errors.NewEnvironmentError("naming.fallback_case must be %q or %q, got %q",
			FallbackCaseGo, FallbackCaseCamel, c.Naming.FallbackCase)
	}
	return nil
}
