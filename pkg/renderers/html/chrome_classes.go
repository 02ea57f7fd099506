package html

// ChromeClass names the semantic classes placed on form chrome so host
// stylesheets can target them without relying on utility classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "formkit-form"
	ClassHeader  ChromeClass = "formkit-header"
	ClassErrors  ChromeClass = "formkit-errors"
	ClassGrid    ChromeClass = "formkit-grid"
	ClassField   ChromeClass = "formkit-field"
	ClassLabel   ChromeClass = "formkit-label"
	ClassMessage ChromeClass = "formkit-message"
	ClassHelper  ChromeClass = "formkit-helper"
	ClassActions ChromeClass = "formkit-actions"
)

func chromeContext() map[string]any {
	return map[string]any{
		"form":    string(ClassForm),
		"header":  string(ClassHeader),
		"errors":  string(ClassErrors),
		"grid":    string(ClassGrid),
		"actions": string(ClassActions),
	}
}
