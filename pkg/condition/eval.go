package condition

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

type node interface {
	eval(values map[string]any) bool
	names(visit func(string))
}

type anyOf [2]node

func (n anyOf) eval(values map[string]any) bool {
	return n[0].eval(values) || n[1].eval(values)
}

func (n anyOf) names(visit func(string)) {
	n[0].names(visit)
	n[1].names(visit)
}

type allOf [2]node

func (n allOf) eval(values map[string]any) bool {
	return n[0].eval(values) && n[1].eval(values)
}

func (n allOf) names(visit func(string)) {
	n[0].names(visit)
	n[1].names(visit)
}

type not struct{ inner node }

func (n not) eval(values map[string]any) bool { return !n.inner.eval(values) }

func (n not) names(visit func(string)) { n.inner.names(visit) }

type present struct{ name string }

func (n present) eval(values map[string]any) bool {
	value, _ := Lookup(values, n.name)
	return truthy(value)
}

func (n present) names(visit func(string)) { visit(n.name) }

type literalKind int

const (
	litString literalKind = iota
	litNumber
	litBool
	litNull
)

type literal struct {
	kind literalKind
	text string
	num  float64
	flag bool
}

type compare struct {
	name string
	op   tokenKind
	lit  literal
}

func (n compare) names(visit func(string)) { visit(n.name) }

func (n compare) eval(values map[string]any) bool {
	value, _ := Lookup(values, n.name)
	if items, ok := asList(value); ok && n.lit.kind != litNull {
		found := false
		for _, item := range items {
			if n.matches(item) {
				found = true
				break
			}
		}
		switch n.op {
		case tokEq:
			return found
		case tokNeq:
			return !found
		}
		return false
	}
	switch n.op {
	case tokEq:
		return n.matches(value)
	case tokNeq:
		return !n.matches(value)
	}

	got, ok := toNumber(value)
	if !ok {
		return false
	}
	switch n.op {
	case tokLt:
		return got < n.lit.num
	case tokLte:
		return got <= n.lit.num
	case tokGt:
		return got > n.lit.num
	case tokGte:
		return got >= n.lit.num
	}
	return false
}

func (n compare) matches(value any) bool {
	switch n.lit.kind {
	case litNull:
		return isEmpty(value)
	case litBool:
		return truthy(value) == n.lit.flag
	case litNumber:
		got, ok := toNumber(value)
		return ok && got == n.lit.num
	default:
		return toString(value) == n.lit.text
	}
}

// Lookup reads name from values. An exact key wins over a dotted path into
// nested maps.
func Lookup(values map[string]any, name string) (any, bool) {
	if values == nil {
		return nil, false
	}
	if value, ok := values[name]; ok {
		return value, true
	}
	var current any = values
	for _, part := range strings.Split(name, ".") {
		switch m := current.(type) {
		case map[string]any:
			next, ok := m[part]
			if !ok {
				return nil, false
			}
			current = next
		case map[string]string:
			next, ok := m[part]
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, true
}

func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

func truthy(value any) bool {
	if isEmpty(value) {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		return err != nil || parsed
	case map[string]any:
		return len(v) > 0
	}
	if n, ok := toNumber(value); ok {
		return n != 0
	}
	return true
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	case nil, bool:
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch {
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	case rv.CanFloat():
		return rv.Float(), true
	}
	return 0, false
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}
