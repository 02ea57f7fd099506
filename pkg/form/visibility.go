package form

import (
	"sync"

	"github.com/goliatone/go-formkit/pkg/condition"
)

var rules sync.Map // rule source -> *condition.Rule

func compileRule(source string) (*condition.Rule, error) {
	if cached, ok := rules.Load(source); ok {
		return cached.(*condition.Rule), nil
	}
	rule, err := condition.Parse(source)
	if err != nil {
		return nil, err
	}
	rules.Store(source, rule)
	return rule, nil
}

// visible evaluates a visibleWhen rule. A rule that does not compile keeps
// the field shown; definitions reject such rules when validated.
func visible(source string, values map[string]any) bool {
	rule, err := compileRule(source)
	if err != nil {
		return true
	}
	return rule.Eval(values)
}
