package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/teranos/entmirror/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}

	if !reflect.DeepEqual(cfg.Source.Patterns, []string{DefaultPattern}) {
		t.Errorf("expected default patterns [%s], got %v", DefaultPattern, cfg.Source.Patterns)
	}
	if cfg.Output.Dir != DefaultOutputDir {
		t.Errorf("expected default output dir %q, got %q", DefaultOutputDir, cfg.Output.Dir)
	}
	if cfg.Output.Extension != "ts" {
		t.Errorf("expected default extension ts, got %q", cfg.Output.Extension)
	}
	if cfg.Naming.FallbackCase != FallbackCaseGo {
		t.Errorf("expected default fallback case %q, got %q", FallbackCaseGo, cfg.Naming.FallbackCase)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[source]
root = "backend"
patterns = ["entity/**/*_entity.go"]

[output]
dir = "web/types"
extension = ".ts"
barrel = true
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}

	if cfg.File != path {
		t.Errorf("File = %q, want %q", cfg.File, path)
	}
	if want := filepath.Join(dir, "backend"); cfg.Source.Root != want {
		t.Errorf("Source.Root = %q, want %q", cfg.Source.Root, want)
	}
	if want := filepath.Join(dir, "web/types"); cfg.Output.Dir != want {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, want)
	}
	if cfg.Output.Extension != "ts" {
		t.Errorf("leading dot should be stripped, got %q", cfg.Output.Extension)
	}
	if !cfg.Output.Barrel {
		t.Error("expected barrel = true")
	}
	// Unset keys keep their defaults
	if cfg.Naming.FallbackCase != FallbackCaseGo {
		t.Errorf("expected default fallback case, got %q", cfg.Naming.FallbackCase)
	}
}

func TestLoadFromFile_AbsolutePathsUntouched(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	path := writeConfig(t, dir, "[output]\ndir = \""+filepath.ToSlash(out)+"\"\n")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}
	if cfg.Output.Dir != filepath.Clean(out) {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, out)
	}
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[output]\ndir = \"from-file\"\n")
	t.Setenv("ENTMIRROR_OUTPUT_DIR", "from-env")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}
	if want := filepath.Join(dir, "from-env"); cfg.Output.Dir != want {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, want)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing config")
	}
	if !errors.IsEnvironmentError(err) {
		t.Errorf("expected environment error, got %v", err)
	}
	hints := errors.FlattenHints(err)
	if !strings.Contains(hints, "entmirror init") {
		t.Errorf("expected init hint, got %q", hints)
	}
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[source\npatterns = ")

	_, err := LoadFromFile(path)
	if err == nil {
		t.Fatal("expected error for malformed config")
	}
	if !errors.IsEnvironmentError(err) {
		t.Errorf("expected environment error, got %v", err)
	}
}

func TestLoadFromFile_InvalidValues(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[naming]\nfallback_case = \"snake\"\n")

	_, err := LoadFromFile(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.IsEnvironmentError(err) {
		t.Errorf("expected environment error, got %v", err)
	}
	if !strings.Contains(err.Error(), "naming.fallback_case") {
		t.Errorf("error should name the key, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"camel case", func(c *Config) { c.Naming.FallbackCase = FallbackCaseCamel }, ""},
		{"empty root", func(c *Config) { c.Source.Root = "" }, "source.root"},
		{"no patterns", func(c *Config) { c.Source.Patterns = nil }, "source.patterns"},
		{"bad glob", func(c *Config) { c.Source.Patterns = []string{"[unterminated"} }, "invalid glob"},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }, "output.dir"},
		{"empty extension", func(c *Config) { c.Output.Extension = "" }, "output.extension"},
		{"unknown case", func(c *Config) { c.Naming.FallbackCase = "kebab" }, "naming.fallback_case"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)

	if err := WriteFile(path, Default(), false); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# entmirror configuration") {
		t.Errorf("missing header:\n%s", data)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if !reflect.DeepEqual(cfg.Source.Patterns, []string{DefaultPattern}) {
		t.Errorf("patterns = %v", cfg.Source.Patterns)
	}
	if cfg.Output.Dir != filepath.Join(dir, DefaultOutputDir) {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
}

func TestWriteFile_RefusesOverwrite(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "# hand edited\n")

	err := WriteFile(path, Default(), false)
	if err == nil {
		t.Fatal("expected refusal to overwrite")
	}
	if !strings.Contains(errors.FlattenHints(err), "--force") {
		t.Errorf("expected --force hint, got %q", errors.FlattenHints(err))
	}

	data, _ := os.ReadFile(path)
	if string(data) != "# hand edited\n" {
		t.Error("existing file was modified")
	}

	if err := WriteFile(path, Default(), true); err != nil {
		t.Fatalf("WriteFile(force) failed: %v", err)
	}
}
