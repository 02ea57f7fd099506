package theming

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// Selector serves selections from manifests held in memory. It satisfies
// theme.ThemeSelector.
type Selector struct {
	mu        sync.RWMutex
	manifests map[string]*theme.Manifest
	order     []string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector returns a selector over manifests. The first manifest is the
// default theme.
func NewSelector(manifests ...*theme.Manifest) (*Selector, error) {
	s := &Selector{manifests: make(map[string]*theme.Manifest)}
	for _, manifest := range manifests {
		if err := s.Add(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add registers manifest, replacing any manifest with the same name.
func (s *Selector) Add(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return fmt.Errorf("theming: manifest requires a name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[manifest.Name]; !exists {
		s.order = append(s.order, manifest.Name)
	}
	s.manifests[manifest.Name] = manifest
	return nil
}

// Select returns the named theme, or the default when name is empty. A
// non-empty variant must be declared by the manifest.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name == "" {
		if len(s.order) == 0 {
			return nil, fmt.Errorf("theming: no themes registered")
		}
		name = s.order[0]
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("theming: unknown theme %q", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("theming: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// LoadManifestFile decodes a YAML manifest from disk.
func LoadManifestFile(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theming: read %s: %w", path, err)
	}
	return decodeManifest(data, path)
}

// LoadManifestFS decodes a YAML manifest from fsys.
func LoadManifestFS(fsys fs.FS, path string) (*theme.Manifest, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("theming: read %s: %w", path, err)
	}
	return decodeManifest(data, path)
}

func decodeManifest(data []byte, path string) (*theme.Manifest, error) {
	var doc struct {
		Name     string            `yaml:"name"`
		Version  string            `yaml:"version"`
		Tokens   map[string]string `yaml:"tokens"`
		Variants map[string]struct {
			Tokens map[string]string `yaml:"tokens"`
		} `yaml:"variants"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("theming: decode %s: %w", path, err)
	}
	manifest := &theme.Manifest{Name: doc.Name, Version: doc.Version, Tokens: doc.Tokens}
	if len(doc.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(doc.Variants))
		for name, variant := range doc.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: variant.Tokens}
		}
	}
	if strings.TrimSpace(manifest.Name) == "" {
		return nil, fmt.Errorf("theming: %s: manifest requires a name", path)
	}
	return manifest, nil
}
