// Package components maps input kinds to control renderers and the client
// assets those controls depend on.
package components

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/form"
)

// Renderer writes the control markup for field into buf. Field chrome
// (label, messages) is written by the caller.
type Renderer func(buf *strings.Builder, field form.FieldView) error

// Script is a JavaScript dependency emitted once per page.
type Script struct {
	Src    string
	Inline string
	Defer  bool
	Module bool
}

// Descriptor bundles an optional control override with asset dependencies.
// A nil Renderer keeps the built-in control for the kind.
type Descriptor struct {
	Kind        form.Kind
	Renderer    Renderer
	Stylesheets []string
	Scripts     []Script
}

// Registry tracks descriptors keyed by input kind.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[form.Kind]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{descriptors: make(map[form.Kind]Descriptor)}
}

// NewDefaultRegistry registers the assets used by the built-in controls.
func NewDefaultRegistry(assetPrefix string) *Registry {
	prefix := strings.TrimRight(assetPrefix, "/")
	asset := func(name string) string { return prefix + "/" + name }

	registry := New()
	registry.MustRegister(Descriptor{
		Kind:    form.KindOTP,
		Scripts: []Script{{Src: asset("formkit-otp.js"), Defer: true}},
	})
	registry.MustRegister(Descriptor{
		Kind:        form.KindDate,
		Stylesheets: []string{asset("formkit-calendar.css")},
		Scripts:     []Script{{Src: asset("formkit-calendar.js"), Defer: true}},
	})
	registry.MustRegister(Descriptor{
		Kind:    form.KindFile,
		Scripts: []Script{{Src: asset("formkit-dropzone.js"), Defer: true}},
	})
	registry.MustRegister(Descriptor{
		Kind:    form.KindSearch,
		Scripts: []Script{{Src: asset("formkit-search.js"), Defer: true}},
	})
	return registry
}

// Register stores descriptor under its kind, replacing any previous entry.
func (r *Registry) Register(descriptor Descriptor) error {
	kind := form.Kind(strings.ToLower(strings.TrimSpace(string(descriptor.Kind))))
	if !slices.Contains(form.Kinds, kind) {
		return fmt.Errorf("components: unknown input kind %q", descriptor.Kind)
	}
	descriptor.Kind = kind

	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptors[kind] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(descriptor Descriptor) {
	if err := r.Register(descriptor); err != nil {
		panic(err)
	}
}

// Descriptor returns the descriptor for kind.
func (r *Registry) Descriptor(kind form.Kind) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.descriptors[kind]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []form.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]form.Kind, 0, len(r.descriptors))
	for kind := range r.descriptors {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// Clone returns an independent copy.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := New()
	for kind, descriptor := range r.descriptors {
		out.descriptors[kind] = cloneDescriptor(descriptor)
	}
	return out
}

// Assets collects the stylesheets and scripts for kinds, deduplicated and in
// first-use order.
func (r *Registry) Assets(kinds []form.Kind) (stylesheets []string, scripts []Script) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seenStyles := make(map[string]struct{})
	seenScripts := make(map[string]struct{})
	for _, kind := range kinds {
		descriptor, ok := r.descriptors[kind]
		if !ok {
			continue
		}
		for _, href := range descriptor.Stylesheets {
			if _, dup := seenStyles[href]; dup || href == "" {
				continue
			}
			seenStyles[href] = struct{}{}
			stylesheets = append(stylesheets, href)
		}
		for _, script := range descriptor.Scripts {
			key := "src:" + script.Src
			if script.Src == "" {
				key = "inline:" + script.Inline
			}
			if _, dup := seenScripts[key]; dup {
				continue
			}
			seenScripts[key] = struct{}{}
			scripts = append(scripts, script)
		}
	}
	return stylesheets, scripts
}

func cloneDescriptor(src Descriptor) Descriptor {
	return Descriptor{
		Kind:        src.Kind,
		Renderer:    src.Renderer,
		Stylesheets: slices.Clone(src.Stylesheets),
		Scripts:     slices.Clone(src.Scripts),
	}
}
