package form

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-formkit/pkg/clock"
	"github.com/goliatone/go-formkit/pkg/otp"
)

// Messages returned by DecodeSubmission.
const (
	MessageRequired     = "This field is required"
	MessageInvalidEmail = "Enter a valid email address"
	MessageInvalidValue = "Enter a valid value"
	MessageInvalidDate  = "Enter a valid date"
	MessageInvalidTime  = "Enter a valid time"
	MessageInvalidCode  = "Enter every digit of the code"
	MessageUnknownValue = "Select one of the offered options"
)

// Submission is a decoded form post.
type Submission struct {
	Values map[string]any
	Errors map[string][]string
}

// Valid reports whether no field failed.
func (s Submission) Valid() bool {
	return len(s.Errors) == 0
}

// DecodeSubmission reads the posted values of every enabled field in view and
// checks them against the field's input. Names follow the markup written by
// the HTML renderer: multi-value controls post name[] and phone inputs post
// name_country next to the number. File inputs are not read. Fields whose
// visibleWhen rule fails against the decoded values are dropped.
func DecodeSubmission(view View, posted url.Values) Submission {
	sub := Submission{Values: make(map[string]any)}
	for _, item := range view.Items {
		field := item.Field
		if field == nil || field.Disabled || field.Input == nil {
			continue
		}
		value, messages := decodeField(*field, posted)
		if value != nil {
			sub.Values[field.Name] = value
		}
		if len(messages) > 0 {
			if sub.Errors == nil {
				sub.Errors = make(map[string][]string)
			}
			sub.Errors[field.Name] = messages
		}
	}

	// Conditions read the decoded post, not the values the view was built
	// with.
	for _, item := range view.Items {
		field := item.Field
		if field == nil || field.VisibleWhen == "" || visible(field.VisibleWhen, sub.Values) {
			continue
		}
		delete(sub.Values, field.Name)
		delete(sub.Errors, field.Name)
	}
	if len(sub.Errors) == 0 {
		sub.Errors = nil
	}
	return sub
}

func decodeField(field FieldView, posted url.Values) (any, []string) {
	raw := strings.TrimSpace(posted.Get(field.Name))
	switch input := field.Input.(type) {
	case TextInput:
		return decodeText(field, input, raw)
	case DropdownInput:
		if input.Multiple {
			return decodeChoices(field, input.Choices, posted[field.Name+"[]"])
		}
		return decodeChoice(field, input.Choices, raw)
	case CheckboxInput:
		if len(input.Choices) > 0 {
			return decodeChoices(field, input.Choices, posted[field.Name+"[]"])
		}
		checked := raw != "" && raw != "false" && raw != "0"
		if field.Required && !checked {
			return false, []string{MessageRequired}
		}
		return checked, nil
	case OTPInput:
		length := input.Length
		if length <= 0 {
			length = otp.DefaultLength
		}
		code := otp.Normalize(raw, length)
		switch {
		case code == "" && field.Required:
			return "", []string{MessageRequired}
		case code != "" && !otp.Complete(code, length):
			return code, []string{MessageInvalidCode}
		}
		return code, nil
	case PhoneInput:
		number := raw
		if number == "" {
			return requiredOnly(field, "")
		}
		dial := strings.TrimSpace(posted.Get(field.Name + "_country"))
		if dial == "" {
			dial = defaultDial(input)
		}
		if dial != "" && !strings.HasPrefix(number, "+") {
			number = dial + " " + number
		}
		return number, nil
	case DateInput:
		return decodeDate(field, input, raw)
	case TimeInput:
		if raw == "" {
			return requiredOnly(field, "")
		}
		parsed, err := clock.Parse(raw)
		if err != nil {
			return raw, []string{MessageInvalidTime}
		}
		value := parsed.Format24()
		if !withinClockRange(parsed, input.Min, input.Max) {
			return value, []string{fmt.Sprintf("Choose a time between %s and %s", orDash(input.Min), orDash(input.Max))}
		}
		return value, nil
	case SearchInput:
		return requiredOnly(field, raw)
	case FileInput:
		return nil, nil
	default:
		return requiredOnly(field, raw)
	}
}

// withinClockRange reports whether value lies between the min and max
// bounds. Bounds that are empty or unparseable do not constrain.
func withinClockRange(value clock.Clock, lower, upper string) bool {
	minutes := func(c clock.Clock) int { return c.Hour*60 + c.Minute }
	if bound, err := clock.Parse(lower); err == nil && minutes(value) < minutes(bound) {
		return false
	}
	if bound, err := clock.Parse(upper); err == nil && minutes(value) > minutes(bound) {
		return false
	}
	return true
}

// compilePattern anchors a pattern to the whole value.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + pattern + ")$")
}

func requiredOnly(field FieldView, value string) (any, []string) {
	if value == "" && field.Required {
		return value, []string{MessageRequired}
	}
	return value, nil
}

func decodeText(field FieldView, input TextInput, raw string) (any, []string) {
	if raw == "" {
		return requiredOnly(field, raw)
	}
	var messages []string
	length := utf8.RuneCountInString(raw)
	if input.MinLength > 0 && length < input.MinLength {
		messages = append(messages, fmt.Sprintf("Use at least %d characters", input.MinLength))
	}
	if input.MaxLength > 0 && length > input.MaxLength {
		messages = append(messages, fmt.Sprintf("Use at most %d characters", input.MaxLength))
	}
	if input.Pattern != "" {
		if re, err := compilePattern(input.Pattern); err == nil && !re.MatchString(raw) {
			messages = append(messages, MessageInvalidValue)
		}
	}
	switch input.Type {
	case "email":
		if definitionValidator().Var(raw, "email") != nil {
			messages = append(messages, MessageInvalidEmail)
		}
	case "number":
		number, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return raw, append(messages, MessageInvalidValue)
		}
		return number, messages
	}
	return raw, messages
}

func decodeChoice(field FieldView, choices []Choice, raw string) (any, []string) {
	if raw == "" {
		return requiredOnly(field, raw)
	}
	if !offered(choices, raw) {
		return raw, []string{MessageUnknownValue}
	}
	return raw, nil
}

func decodeChoices(field FieldView, choices []Choice, raw []string) (any, []string) {
	values := make([]string, 0, len(raw))
	for _, value := range raw {
		if value = strings.TrimSpace(value); value != "" && !slices.Contains(values, value) {
			values = append(values, value)
		}
	}
	if len(values) == 0 && field.Required {
		return values, []string{MessageRequired}
	}
	for _, value := range values {
		if !offered(choices, value) {
			return values, []string{MessageUnknownValue}
		}
	}
	return values, nil
}

func offered(choices []Choice, value string) bool {
	return slices.ContainsFunc(choices, func(c Choice) bool {
		return c.Value == value && !c.Disabled
	})
}

func decodeDate(field FieldView, input DateInput, raw string) (any, []string) {
	if raw == "" {
		return requiredOnly(field, raw)
	}
	parsed, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return raw, []string{MessageInvalidDate}
	}
	if !input.Min.IsZero() && parsed.Before(truncateDay(input.Min)) {
		return raw, []string{"Choose a date on or after " + input.Min.Format(time.DateOnly)}
	}
	if !input.Max.IsZero() && parsed.After(truncateDay(input.Max)) {
		return raw, []string{"Choose a date on or before " + input.Max.Format(time.DateOnly)}
	}
	return raw, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func defaultDial(input PhoneInput) string {
	countries := input.CountryList()
	for _, country := range countries {
		if country.Code == input.DefaultCountry {
			return country.Dial
		}
	}
	if len(countries) > 0 {
		return countries[0].Dial
	}
	return ""
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
