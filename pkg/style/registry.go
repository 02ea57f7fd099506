package style

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Built-in preset names.
const (
	PresetPrimary   = "primary"
	PresetSecondary = "secondary"
	PresetOutline   = "outline"
	PresetGhost     = "ghost"
	PresetCompact   = "compact"
	PresetPill      = "pill"
)

// Registry tracks presets keyed by name. Callers can register new presets or
// override the built-ins.
type Registry struct {
	mu      sync.RWMutex
	presets map[string]Preset
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{presets: make(map[string]Preset)}
}

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// presets.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()

	registry.MustRegister(PresetPrimary, Preset{Variant: ptr(VariantDefault)})
	registry.MustRegister(PresetSecondary, Preset{Variant: ptr(VariantFilled)})
	registry.MustRegister(PresetOutline, Preset{Variant: ptr(VariantOutline)})
	registry.MustRegister(PresetGhost, Preset{Variant: ptr(VariantGhost), FullWidth: ptr(false)})
	registry.MustRegister(PresetCompact, Preset{Size: ptr(SizeSM), Radius: ptr(RadiusSM)})
	registry.MustRegister(PresetPill, Preset{Radius: ptr(RadiusFull)})

	return registry
}

// Register associates a preset with name. Existing entries are replaced.
func (r *Registry) Register(name string, preset Preset) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("style: preset name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.presets[name] = *preset.Clone()
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, preset Preset) {
	if err := r.Register(name, preset); err != nil {
		panic(err)
	}
}

// RegisterAll registers every entry of presets, typically the presets
// section of the package config.
func (r *Registry) RegisterAll(presets map[string]Preset) error {
	for name, preset := range presets {
		if err := r.Register(name, preset); err != nil {
			return err
		}
	}
	return nil
}

// Lookup fetches a preset by name. An empty name never matches.
func (r *Registry) Lookup(name string) (*Preset, bool) {
	if r == nil {
		return nil, false
	}
	key := normalize(name)
	if key == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	preset, ok := r.presets[key]
	if !ok {
		return nil, false
	}
	return preset.Clone(), true
}

// Names returns the registered preset names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Clone returns a copy of the registry for isolated mutations.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := NewRegistry()
	for name, preset := range r.presets {
		cloned.presets[name] = *preset.Clone()
	}
	return cloned
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func ptr[T any](value T) *T {
	return &value
}
