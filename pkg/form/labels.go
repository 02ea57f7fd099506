package form

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	wordSeparators = regexp.MustCompile(`[_\-.\s]+`)
	camelBoundary  = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// Humanize turns a field name such as "billing_address.postCode" into
// "Billing Address Post Code".
func Humanize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	spaced := camelBoundary.ReplaceAllString(name, "$1 $2")
	words := wordSeparators.Split(spaced, -1)
	out := words[:0]
	for _, word := range words {
		if word != "" {
			out = append(out, word)
		}
	}
	return cases.Title(language.English).String(strings.ToLower(strings.Join(out, " ")))
}
