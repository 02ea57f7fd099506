// Package condition compiles the visibleWhen rules attached to fields and
// evaluates them against form values.
//
// A rule is a boolean expression over field names:
//
//	plan == "pro" && !trial
//	(seats >= 10 || plan == "enterprise") && country != null
//
// A bare name is true when its value is set and non-empty. Comparing a
// multi-value field (a checkbox group) with == tests membership. Names may
// use dots to reach into nested maps.
package condition

import (
	"fmt"
	"strings"
)

// Rule is a compiled expression.
type Rule struct {
	source string
	root   node
}

// Parse compiles source. An empty source compiles to a rule that is always
// true.
func Parse(source string) (*Rule, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return &Rule{}, nil
	}
	tokens, err := lex(source)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	root, err := p.or()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, &SyntaxError{Pos: tok.pos, Message: fmt.Sprintf("unexpected %q", tok.text)}
	}
	return &Rule{source: source, root: root}, nil
}

// MustParse is Parse that panics on error.
func MustParse(source string) *Rule {
	rule, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return rule
}

// String returns the trimmed source.
func (r *Rule) String() string {
	if r == nil {
		return ""
	}
	return r.source
}

// Names lists the field names the rule reads, in order of appearance.
func (r *Rule) Names() []string {
	if r == nil || r.root == nil {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	r.root.names(func(name string) {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			out = append(out, name)
		}
	})
	return out
}

// Eval reports whether the rule holds for values.
func (r *Rule) Eval(values map[string]any) bool {
	if r == nil || r.root == nil {
		return true
	}
	return r.root.eval(values)
}

// Eval compiles and evaluates source in one step.
func Eval(source string, values map[string]any) (bool, error) {
	rule, err := Parse(source)
	if err != nil {
		return false, err
	}
	return rule.Eval(values), nil
}

// SyntaxError locates a parse failure by byte offset.
type SyntaxError struct {
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("condition: %s at offset %d", e.Message, e.Pos)
}
