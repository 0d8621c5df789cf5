package typegen

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/teranos/entmirror/errors"
)

// GeneratedMarker identifies files written by this tool. Orphan detection
// only reports files carrying it, never hand-written neighbours.
const GeneratedMarker = "Code generated by entmirror"

// StaleFile is a generated file whose content on disk differs.
type StaleFile struct {
	Path string
	// Diff is a unified diff from the file on disk to the expected content
	Diff string
}

// CheckResult compares freshly rendered declarations with the output directory.
type CheckResult struct {
	Stale   []StaleFile
	Missing []string
	// Orphans are generated files on disk with no entity behind them. They
	// are reported only; nothing is ever deleted.
	Orphans []string
}

// UpToDate reports whether every declaration matches the file on disk.
// Orphans alone do not make the output out of date.
func (r *CheckResult) UpToDate() bool {
	return len(r.Stale) == 0 && len(r.Missing) == 0
}

// Err returns errors.ErrOutOfDate wrapped with a summary, or nil.
func (r *CheckResult) Err() error {
	if r.UpToDate() {
		return nil
	}
	return errors.WithHint(
		errors.Wrapf(errors.ErrOutOfDate, "%d stale, %d missing", len(r.Stale), len(r.Missing)),
		"run 'entmirror generate' to update the generated files",
	)
}

// Check compares decls with the files in outputDir. Files with extension ext
// that carry GeneratedMarker and match no declaration are orphans.
func Check(outputDir, ext string, decls []GeneratedDeclaration) (*CheckResult, error) {
	result := &CheckResult{}
	expected := make(map[string]bool, len(decls))

	for _, d := range decls {
		expected[filepath.Clean(d.OutputPath)] = true

		current, err := os.ReadFile(d.OutputPath)
		if os.IsNotExist(err) {
			result.Missing = append(result.Missing, d.OutputPath)
			continue
		}
		if err != nil {
			return nil, errors.WrapEnvironment(err, "failed to read "+d.OutputPath)
		}
		if bytes.Equal(current, []byte(d.RenderedText)) {
			continue
		}

		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(current)),
			B:        difflib.SplitLines(d.RenderedText),
			FromFile: d.OutputPath + " (on disk)",
			ToFile:   d.OutputPath + " (generated)",
			Context:  3,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to diff %s", d.OutputPath)
		}
		result.Stale = append(result.Stale, StaleFile{Path: d.OutputPath, Diff: diff})
	}

	orphans, err := findOrphans(outputDir, ext, expected)
	if err != nil {
		return nil, err
	}
	result.Orphans = orphans
	return result, nil
}

func findOrphans(outputDir, ext string, expected map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(outputDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapEnvironment(err, "failed to list "+outputDir)
	}

	var orphans []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "."+ext) {
			continue
		}
		p := filepath.Join(outputDir, entry.Name())
		if expected[filepath.Clean(p)] {
			continue
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, errors.WrapEnvironment(err, "failed to read "+p)
		}
		if bytes.Contains(content, []byte(GeneratedMarker)) {
			orphans = append(orphans, p)
		}
	}
	sort.Strings(orphans)
	return orphans, nil
}
