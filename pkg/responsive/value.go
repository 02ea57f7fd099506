package responsive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Breakpoint names a viewport width threshold.
type Breakpoint string

const (
	Base Breakpoint = "base"
	SM   Breakpoint = "sm"
	MD   Breakpoint = "md"
	LG   Breakpoint = "lg"
	XL   Breakpoint = "xl"
	XXL  Breakpoint = "2xl"
)

// Order lists breakpoints from the narrowest to the widest. Class generation
// and viewport cascades always walk this order.
var Order = []Breakpoint{Base, SM, MD, LG, XL, XXL}

// ParseBreakpoint normalises a breakpoint name.
func ParseBreakpoint(raw string) (Breakpoint, bool) {
	candidate := Breakpoint(strings.ToLower(strings.TrimSpace(raw)))
	for _, bp := range Order {
		if bp == candidate {
			return bp, true
		}
	}
	return "", false
}

// Value is either unset, a single value, or a per-breakpoint mapping.
type Value[T any] struct {
	scalar *T
	points map[Breakpoint]T
	mapped bool
}

// Of wraps a single value that applies at every breakpoint.
func Of[T any](value T) Value[T] {
	return Value[T]{scalar: &value}
}

// At builds a per-breakpoint value. An empty map is still a responsive value;
// it simply resolves to the caller's fallback.
func At[T any](points map[Breakpoint]T) Value[T] {
	out := Value[T]{mapped: true, points: make(map[Breakpoint]T, len(points))}
	for bp, value := range points {
		out.points[bp] = value
	}
	return out
}

// With returns a copy of v with bp set. A scalar value is moved to base first.
func (v Value[T]) With(bp Breakpoint, value T) Value[T] {
	out := Value[T]{mapped: true, points: make(map[Breakpoint]T, len(v.points)+1)}
	if v.scalar != nil {
		out.points[Base] = *v.scalar
	}
	for key, existing := range v.points {
		out.points[key] = existing
	}
	out.points[bp] = value
	return out
}

// Merge layers patch over v. Two mappings combine breakpoint by breakpoint;
// when either side is a scalar the patch replaces v. An unset patch keeps v.
func (v Value[T]) Merge(patch Value[T]) Value[T] {
	if !patch.IsSet() {
		return v
	}
	if !v.mapped || !patch.mapped {
		return patch
	}
	out := At(v.points)
	for bp, value := range patch.points {
		out.points[bp] = value
	}
	return out
}

// IsSet reports whether the value holds anything, including an empty mapping.
func (v Value[T]) IsSet() bool {
	return v.scalar != nil || v.mapped
}

// IsZero lets yaml.v3 omit unset values.
func (v Value[T]) IsZero() bool {
	return !v.IsSet()
}

// IsResponsive reports whether the value is a breakpoint mapping.
func (v Value[T]) IsResponsive() bool {
	return v.mapped
}

// Scalar returns the single value when v is not a mapping.
func (v Value[T]) Scalar() (T, bool) {
	if v.scalar == nil {
		var zero T
		return zero, false
	}
	return *v.scalar, true
}

// Get returns the value declared for bp in a mapping.
func (v Value[T]) Get(bp Breakpoint) (T, bool) {
	value, ok := v.points[bp]
	return value, ok
}

// Breakpoints returns the breakpoints declared in a mapping, in Order.
func (v Value[T]) Breakpoints() []Breakpoint {
	if !v.mapped {
		return nil
	}
	out := make([]Breakpoint, 0, len(v.points))
	for _, bp := range Order {
		if _, ok := v.points[bp]; ok {
			out = append(out, bp)
		}
	}
	return out
}

// Equal lets go-cmp compare values without reaching into unexported fields.
func (v Value[T]) Equal(other Value[T]) bool {
	if v.mapped != other.mapped {
		return false
	}
	if v.mapped {
		if len(v.points) != len(other.points) {
			return false
		}
		for bp, value := range v.points {
			candidate, ok := other.points[bp]
			if !ok || !reflect.DeepEqual(value, candidate) {
				return false
			}
		}
		return true
	}
	if (v.scalar == nil) != (other.scalar == nil) {
		return false
	}
	return v.scalar == nil || reflect.DeepEqual(*v.scalar, *other.scalar)
}

// String renders the value for logs and diagnostics.
func (v Value[T]) String() string {
	switch {
	case v.scalar != nil:
		return fmt.Sprint(*v.scalar)
	case v.mapped:
		parts := make([]string, 0, len(v.points))
		for _, bp := range v.Breakpoints() {
			parts = append(parts, fmt.Sprintf("%s:%v", bp, v.points[bp]))
		}
		return "{" + strings.Join(parts, " ") + "}"
	default:
		return "<unset>"
	}
}

// UnmarshalYAML accepts either a scalar or a breakpoint mapping.
func (v *Value[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		raw := make(map[string]T)
		if err := node.Decode(&raw); err != nil {
			return fmt.Errorf("responsive: decode breakpoints: %w", err)
		}
		points, err := toPoints(raw)
		if err != nil {
			return err
		}
		*v = At(points)
		return nil
	}
	var scalar T
	if err := node.Decode(&scalar); err != nil {
		return fmt.Errorf("responsive: decode value: %w", err)
	}
	*v = Of(scalar)
	return nil
}

// MarshalYAML emits the scalar or the breakpoint mapping.
func (v Value[T]) MarshalYAML() (any, error) {
	return v.plain(), nil
}

// UnmarshalJSON accepts either a scalar or a breakpoint object.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = Value[T]{}
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '{' {
		raw := make(map[string]T)
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("responsive: decode breakpoints: %w", err)
		}
		points, err := toPoints(raw)
		if err != nil {
			return err
		}
		*v = At(points)
		return nil
	}
	var scalar T
	if err := json.Unmarshal(trimmed, &scalar); err != nil {
		return fmt.Errorf("responsive: decode value: %w", err)
	}
	*v = Of(scalar)
	return nil
}

// MarshalJSON emits the scalar or the breakpoint object.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.plain())
}

func (v Value[T]) plain() any {
	switch {
	case v.scalar != nil:
		return *v.scalar
	case v.mapped:
		out := make(map[string]T, len(v.points))
		for bp, value := range v.points {
			out[string(bp)] = value
		}
		return out
	default:
		return nil
	}
}

func toPoints[T any](raw map[string]T) (map[Breakpoint]T, error) {
	points := make(map[Breakpoint]T, len(raw))
	for key, value := range raw {
		bp, ok := ParseBreakpoint(key)
		if !ok {
			return nil, fmt.Errorf("responsive: unknown breakpoint %q", key)
		}
		points[bp] = value
	}
	return points, nil
}
