package responsive

import (
	"fmt"
	"regexp"
	"strings"
)

// Resolve collapses v to a single value. Mappings only ever contribute their
// base entry; the live viewport is not consulted here. Use ResolveAt when the
// caller knows which breakpoint is active.
func Resolve[T any](v Value[T], fallback T) T {
	switch {
	case v.scalar != nil:
		return *v.scalar
	case v.mapped:
		if value, ok := v.points[Base]; ok {
			return value
		}
		return fallback
	default:
		return fallback
	}
}

// ResolveAt resolves v for an active breakpoint, cascading mobile-first from
// bp down to base before falling back.
func ResolveAt[T any](v Value[T], bp Breakpoint, fallback T) T {
	if !v.mapped {
		return Resolve(v, fallback)
	}
	active := indexOf(bp)
	if active < 0 {
		active = 0
	}
	for idx := active; idx >= 0; idx-- {
		if value, ok := v.points[Order[idx]]; ok {
			return value
		}
	}
	return fallback
}

// ToClasses turns v into utility classes. A scalar yields "prefix-value"; a
// mapping yields one class per declared breakpoint with non-base classes
// carrying a "bp:" variant. Values with units are emitted as arbitrary
// values ("gap-[1rem]").
func ToClasses[T any](v Value[T], prefix string) string {
	switch {
	case v.scalar != nil:
		return classToken(prefix, fmt.Sprint(*v.scalar))
	case v.mapped:
		tokens := make([]string, 0, len(v.points))
		for _, bp := range Order {
			value, ok := v.points[bp]
			if !ok {
				continue
			}
			token := classToken(prefix, fmt.Sprint(value))
			if token == "" {
				continue
			}
			if bp != Base {
				token = string(bp) + ":" + token
			}
			tokens = append(tokens, token)
		}
		return strings.Join(tokens, " ")
	default:
		return ""
	}
}

// GapClasses renders gap utilities.
func GapClasses(v Value[string]) string {
	return ToClasses(v, "gap")
}

// ColumnClasses renders grid column utilities.
func ColumnClasses(v Value[int]) string {
	return ToClasses(v, "grid-cols")
}

var scaleToken = regexp.MustCompile(`^(\d+(\.\d+)?|\d+/\d+)$`)

// IsScaleToken reports whether value is a bare theme scale step such as "4",
// "2.5" or "1/2".
func IsScaleToken(value string) bool {
	return scaleToken.MatchString(strings.TrimSpace(value))
}

func needsArbitrary(value string) bool {
	if value == "" || IsScaleToken(value) {
		return false
	}
	if strings.ContainsAny(value, "()") {
		return true
	}
	switch first := value[0]; {
	case first >= '0' && first <= '9', first == '.', first == '#', first == '-':
		return true
	}
	return false
}

func classToken(prefix, value string) string {
	value = strings.TrimSpace(value)
	if value == "" || prefix == "" {
		return value
	}
	if needsArbitrary(value) {
		value = "[" + strings.ReplaceAll(value, " ", "_") + "]"
	}
	return prefix + "-" + value
}

func indexOf(bp Breakpoint) int {
	for idx, candidate := range Order {
		if candidate == bp {
			return idx
		}
	}
	return -1
}
