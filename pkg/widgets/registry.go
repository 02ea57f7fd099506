// Package widgets picks an input kind for a schema property. Matchers are
// evaluated by priority; an explicit x-formkit-kind extension always wins.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/form"
)

// KindExtension names the schema extension that forces an input kind.
const KindExtension = "x-formkit-kind"

// Property is the subset of a schema property that drives kind selection.
type Property struct {
	Name       string
	Type       string
	Format     string
	MediaType  string
	Enum       []any
	Items      *Property
	Extensions map[string]any
}

// Extension returns a trimmed string extension value.
func (p Property) Extension(key string) string {
	if p.Extensions == nil {
		return ""
	}
	value, ok := p.Extensions[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// Matcher decides whether a kind should handle the supplied property.
type Matcher func(prop Property) bool

type rule struct {
	kind     form.Kind
	priority int
	match    Matcher
	order    int
}

// Registry selects input kinds for properties. Higher priority wins; ties
// fall back to registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry without matchers. It still honours
// explicit kinds.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register adds a matcher for kind. Unknown kinds and nil matchers are
// ignored.
func (r *Registry) Register(kind form.Kind, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	if _, ok := form.InputFor(kind); !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		kind:     kind,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the kind for prop. The boolean is false when nothing
// matched; callers usually fall back to text.
func (r *Registry) Resolve(prop Property) (form.Kind, bool) {
	if explicit := form.Kind(strings.ToLower(prop.Extension(KindExtension))); explicit != "" {
		if _, ok := form.InputFor(explicit); ok {
			return explicit, true
		}
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(prop) {
			return entry.kind, true
		}
	}
	return "", false
}

// ResolveOrText is Resolve with a text fallback.
func (r *Registry) ResolveOrText(prop Property) form.Kind {
	if kind, ok := r.Resolve(prop); ok {
		return kind
	}
	return form.KindText
}

func (r *Registry) registerBuiltins() {
	r.Register(form.KindCheckbox, 90, func(prop Property) bool {
		return prop.Type == "boolean"
	})

	r.Register(form.KindCheckbox, 85, func(prop Property) bool {
		return prop.Type == "array" && prop.Items != nil && len(prop.Items.Enum) > 0
	})

	r.Register(form.KindFile, 80, func(prop Property) bool {
		if prop.MediaType != "" {
			return true
		}
		if prop.Type == "array" && prop.Items != nil {
			return isBinary(*prop.Items)
		}
		return isBinary(prop)
	})

	r.Register(form.KindDropdown, 70, func(prop Property) bool {
		if prop.Type == "array" || prop.Type == "object" {
			return false
		}
		return len(prop.Enum) > 0
	})

	r.Register(form.KindDate, 60, func(prop Property) bool {
		format := lower(prop.Format)
		return format == "date" || format == "date-time"
	})

	r.Register(form.KindTime, 60, func(prop Property) bool {
		return lower(prop.Format) == "time"
	})

	r.Register(form.KindPhone, 50, func(prop Property) bool {
		format := lower(prop.Format)
		return format == "phone" || format == "tel"
	})

	r.Register(form.KindOTP, 50, func(prop Property) bool {
		format := lower(prop.Format)
		return format == "otp" || format == "one-time-code"
	})

	r.Register(form.KindSearch, 40, func(prop Property) bool {
		return lower(prop.Format) == "search" || prop.Extension("x-formkit-endpoint") != ""
	})
}

func isBinary(prop Property) bool {
	if prop.Type != "string" {
		return false
	}
	format := lower(prop.Format)
	return format == "binary" || format == "byte"
}

func lower(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
