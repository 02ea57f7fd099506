package suggest

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/form"
)

// Option is one suggestion in a response.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Search returns the enabled choices whose label or value contains query,
// case-insensitively. Label prefix matches sort first, then labels
// alphabetically.
func Search(choices []form.Choice, query string, limit int, opts Options) []Option {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if opts.EmptyMode != EmptyTop {
			return nil
		}
		var out []Option
		for _, choice := range choices {
			if choice.Disabled {
				continue
			}
			if out = append(out, toOption(choice)); len(out) == limit {
				break
			}
		}
		return out
	}

	type match struct {
		option   Option
		isPrefix bool
	}
	var matches []match
	for _, choice := range choices {
		if choice.Disabled {
			continue
		}
		option := toOption(choice)
		label := strings.ToLower(option.Label)
		if !strings.Contains(label, query) && !strings.Contains(strings.ToLower(option.Value), query) {
			continue
		}
		matches = append(matches, match{option: option, isPrefix: strings.HasPrefix(label, query)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].option.Label < matches[j].option.Label
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Option, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.option)
	}
	return out
}

func toOption(choice form.Choice) Option {
	return Option{Value: choice.Value, Label: choice.Text()}
}
