package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/form"
)

func label(field form.FieldView) string {
	text := field.Label
	if text == "" {
		text = form.Humanize(field.Name)
	}
	if field.Required {
		text += " *"
	}
	return text
}

func helpOr(help, fallback string) string {
	if help != "" {
		return help
	}
	return fallback
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[0]
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(dateLayout)
	default:
		return fmt.Sprint(v)
	}
}

func stringValues(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{stringValue(v)}
	}
}

func boolValue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(v) {
		case "true", "on", "1", "yes":
			return true
		}
	}
	return false
}

func splitPhone(value string) (string, string) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "+") {
		return "", value
	}
	dial, number, _ := strings.Cut(value, " ")
	return dial, strings.TrimSpace(number)
}

func choiceLabels(choices []form.Choice) []string {
	out := make([]string, len(choices))
	for idx, choice := range choices {
		out[idx] = choice.Text()
	}
	return out
}

func choiceIndices(choices []form.Choice, values []string) []int {
	var out []int
	for idx, choice := range choices {
		for _, value := range values {
			if choice.Value == value {
				out = append(out, idx)
				break
			}
		}
	}
	return out
}

func choiceValues(choices []form.Choice, indices []int) []string {
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(choices) && !choices[idx].Disabled {
			out = append(out, choices[idx].Value)
		}
	}
	return out
}
