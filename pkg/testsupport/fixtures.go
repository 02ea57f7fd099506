// Package testsupport holds golden-file and fixture helpers shared by package
// tests. Set UPDATE_GOLDENS=1 to rewrite goldens from current output.
package testsupport

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/config"
)

// UpdateGoldens reports whether goldens should be rewritten.
func UpdateGoldens() bool {
	return os.Getenv("UPDATE_GOLDENS") != ""
}

// MustLoadConfig decodes and validates a YAML config fixture.
func MustLoadConfig(t *testing.T, path string) config.Config {
	t.Helper()
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("load config fixture: %v", err)
	}
	return cfg
}

// NewStore returns a store seeded with the fixture at path.
func NewStore(t *testing.T, path string) *config.Store {
	t.Helper()
	return config.NewStore(config.WithInitial(MustLoadConfig(t, path)))
}

// MustReadGolden reads a golden file.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file as a string.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden writes data to path when UPDATE_GOLDENS is set and
// reports whether it did, in which case the caller should return early.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if !UpdateGoldens() {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff when the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// AssertGoldenHTML compares markup with the golden at path after collapsing
// whitespace between tags.
func AssertGoldenHTML(t *testing.T, path string, got []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return
	}
	want := MustReadGoldenString(t, path)
	if diff := CompareGolden(NormalizeHTML(want), NormalizeHTML(string(got))); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

var betweenTags = regexp.MustCompile(`>\s+<`)

// NormalizeHTML trims the document and drops whitespace between tags.
func NormalizeHTML(markup string) string {
	return betweenTags.ReplaceAllString(strings.TrimSpace(markup), "><")
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()
	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
