package html

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/form"
)

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
	case fmt.Stringer:
		return v.String()
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
			out = append(out, stringValue(item))
		}
		return out
	default:
		if s := stringValue(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

func boolValue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true
		}
	}
	return false
}

func timeValue(value any) time.Time {
	switch v := value.(type) {
	case time.Time:
		return v
	case string:
		parsed, err := time.Parse(dateLayout, strings.TrimSpace(v))
		if err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// splitPhone separates a stored "+44 7700 900123" value into its dial prefix
// and national number. The longest matching prefix wins.
func splitPhone(value string, countries []form.Country, defaultCountry string) (string, string) {
	value = strings.TrimSpace(value)
	best := ""
	for _, country := range countries {
		if strings.HasPrefix(value, country.Dial) && len(country.Dial) > len(best) {
			best = country.Dial
		}
	}
	if best != "" {
		return best, strings.TrimSpace(strings.TrimPrefix(value, best))
	}
	for _, country := range countries {
		if strings.EqualFold(country.Code, defaultCountry) {
			return country.Dial, value
		}
	}
	if len(countries) > 0 {
		return countries[0].Dial, value
	}
	return "", value
}

func withoutClass(classes, token string) string {
	fields := strings.Fields(classes)
	out := fields[:0]
	for _, field := range fields {
		if field != token {
			out = append(out, field)
		}
	}
	return strings.Join(out, " ")
}
