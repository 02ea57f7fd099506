// Package tui fills forms from the terminal. Each field is prompted according
// to its input kind and the collected values are serialized as JSON or as a
// url-encoded body, ready to submit to the form's action.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-formkit/pkg/clock"
	"github.com/goliatone/go-formkit/pkg/condition"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/otp"
	"github.com/goliatone/go-formkit/pkg/style"
)

const dateLayout = "2006-01-02"

// Renderer prompts for every field of a form.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	out               io.Writer
}

// New constructs a renderer with the survey driver and JSON output.
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		out:          os.Stderr,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(r.out)
	}
	return r
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatFormURLEncoded {
		return "application/x-www-form-urlencoded"
	}
	return "application/json"
}

// Render prompts for f's fields and serializes the answers.
func (r *Renderer) Render(ctx context.Context, f *form.Form) ([]byte, error) {
	if f == nil {
		return nil, errors.New("tui: form is nil")
	}
	return r.RenderView(ctx, f.Resolve())
}

// RenderView prompts for an already resolved view.
func (r *Renderer) RenderView(ctx context.Context, view form.View) ([]byte, error) {
	values, err := r.Collect(ctx, view)
	if err != nil {
		return nil, err
	}
	if r.submitTransformer != nil {
		if values, err = r.submitTransformer(values); err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

// Collect prompts for each enabled field, seeded with the view's values.
// Disabled fields keep their current value.
func (r *Renderer) Collect(ctx context.Context, view form.View) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if view.Title != "" {
		if err := r.driver.Info(ctx, view.Title); err != nil {
			return nil, err
		}
	}
	for _, message := range view.Errors {
		if err := r.driver.Info(ctx, "! "+message); err != nil {
			return nil, err
		}
	}

	values := make(map[string]any)
	for _, item := range view.Items {
		if item.Field == nil {
			continue
		}
		field := *item.Field
		if field.VisibleWhen != "" {
			shown, err := condition.Eval(field.VisibleWhen, values)
			if err != nil {
				return nil, fmt.Errorf("tui: %s: %w", field.Name, err)
			}
			if !shown {
				continue
			}
		}
		if field.Disabled {
			if field.Value != nil {
				values[field.Name] = field.Value
			}
			continue
		}
		if field.Status == style.StatusError && field.Message != "" {
			if err := r.driver.Info(ctx, fmt.Sprintf("! %s: %s", label(field), field.Message)); err != nil {
				return nil, err
			}
		}
		value, err := r.prompt(ctx, field)
		if err != nil {
			if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
				return nil, err
			}
			return nil, fmt.Errorf("tui: %s: %w", field.Name, err)
		}
		values[field.Name] = value
	}
	return values, nil
}

func (r *Renderer) prompt(ctx context.Context, field form.FieldView) (any, error) {
	switch input := field.Input.(type) {
	case form.TextInput:
		return r.promptText(ctx, field, input)
	case form.DropdownInput:
		return r.promptDropdown(ctx, field, input)
	case form.CheckboxInput:
		return r.promptCheckbox(ctx, field, input)
	case form.OTPInput:
		return r.promptOTP(ctx, field, input)
	case form.PhoneInput:
		return r.promptPhone(ctx, field, input)
	case form.DateInput:
		return r.promptDate(ctx, field, input)
	case form.TimeInput:
		return r.promptTime(ctx, field, input)
	case form.FileInput:
		return r.promptFile(ctx, field, input)
	case form.SearchInput:
		return r.ask(ctx, field, InputConfig{}, required(field.Required))
	case nil:
		return nil, errors.New("field has no input")
	default:
		return nil, fmt.Errorf("unsupported input %T", input)
	}
}

// ask runs an input prompt and re-checks the answer, since scripted drivers
// do not run validators.
func (r *Renderer) ask(ctx context.Context, field form.FieldView, cfg InputConfig, validate func(string) error) (string, error) {
	cfg.Message = label(field)
	if cfg.Help == "" {
		cfg.Help = field.Helper
	}
	if cfg.Default == "" {
		cfg.Default = stringValue(field.Value)
	}
	cfg.Validator = validate
	answer, err := r.driver.Input(ctx, cfg)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if validate != nil {
		if err := validate(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (r *Renderer) promptText(ctx context.Context, field form.FieldView, input form.TextInput) (any, error) {
	validate := textValidator(field.Required, input)

	var (
		answer string
		err    error
	)
	switch {
	case input.Multiline:
		answer, err = r.driver.TextArea(ctx, TextAreaConfig{
			Message: label(field),
			Default: stringValue(field.Value),
			Help:    field.Helper,
		})
		if err == nil {
			err = validate(answer)
		}
	case input.Type == "password":
		answer, err = r.driver.Password(ctx, InputConfig{Message: label(field), Help: field.Helper, Validator: validate})
		if err == nil {
			err = validate(answer)
		}
	default:
		answer, err = r.ask(ctx, field, InputConfig{}, validate)
	}
	if err != nil {
		return nil, err
	}
	if input.Type == "number" && answer != "" {
		return strconv.ParseFloat(answer, 64)
	}
	return answer, nil
}

func (r *Renderer) promptDropdown(ctx context.Context, field form.FieldView, input form.DropdownInput) (any, error) {
	options := choiceLabels(input.Choices)
	current := stringValues(field.Value)
	if input.Multiple {
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  label(field),
			Options:  options,
			Defaults: choiceIndices(input.Choices, current),
			Help:     field.Helper,
		})
		if err != nil {
			return nil, err
		}
		selected := choiceValues(input.Choices, indices)
		if field.Required && len(selected) == 0 {
			return nil, ErrRequired
		}
		return selected, nil
	}

	defaultIndex := -1
	if len(current) > 0 {
		defaultIndex = slices.IndexFunc(input.Choices, func(c form.Choice) bool { return c.Value == current[0] })
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      label(field),
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         field.Helper,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(input.Choices) {
		return nil, fmt.Errorf("selection %d out of range", idx)
	}
	if input.Choices[idx].Disabled {
		return nil, fmt.Errorf("choice %q is disabled", input.Choices[idx].Value)
	}
	return input.Choices[idx].Value, nil
}

func (r *Renderer) promptCheckbox(ctx context.Context, field form.FieldView, input form.CheckboxInput) (any, error) {
	if len(input.Choices) > 0 {
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  label(field),
			Options:  choiceLabels(input.Choices),
			Defaults: choiceIndices(input.Choices, stringValues(field.Value)),
			Help:     field.Helper,
		})
		if err != nil {
			return nil, err
		}
		selected := choiceValues(input.Choices, indices)
		if field.Required && len(selected) == 0 {
			return nil, ErrRequired
		}
		return selected, nil
	}

	message := label(field)
	if input.Text != "" {
		message = input.Text
	}
	checked, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: message,
		Default: boolValue(field.Value),
		Help:    field.Helper,
	})
	if err != nil {
		return nil, err
	}
	if field.Required && !checked {
		return nil, ErrRequired
	}
	return checked, nil
}

func (r *Renderer) promptOTP(ctx context.Context, field form.FieldView, input form.OTPInput) (any, error) {
	length := input.Length
	if length <= 0 {
		length = otp.DefaultLength
	}
	validate := func(answer string) error {
		if strings.TrimSpace(answer) == "" && !field.Required {
			return nil
		}
		if !otp.Complete(strings.TrimSpace(answer), length) {
			return fmt.Errorf("enter all %d digits", length)
		}
		return nil
	}
	cfg := InputConfig{Message: label(field), Help: field.Helper, Validator: validate}

	var (
		answer string
		err    error
	)
	if input.Masked {
		answer, err = r.driver.Password(ctx, cfg)
	} else {
		answer, err = r.driver.Input(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}
	if err := validate(answer); err != nil {
		return nil, err
	}
	return otp.Normalize(answer, length), nil
}

func (r *Renderer) promptPhone(ctx context.Context, field form.FieldView, input form.PhoneInput) (any, error) {
	countries := input.CountryList()
	dial, number := splitPhone(stringValue(field.Value))

	options := make([]string, len(countries))
	defaultIndex := 0
	for idx, country := range countries {
		name := country.Name
		if name == "" {
			name = country.Code
		}
		options[idx] = fmt.Sprintf("%s (%s)", name, country.Dial)
		if (dial != "" && country.Dial == dial) || (dial == "" && strings.EqualFold(country.Code, input.DefaultCountry)) {
			defaultIndex = idx
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: label(field) + " country", Options: options, DefaultIndex: defaultIndex})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(countries) {
		return nil, fmt.Errorf("selection %d out of range", idx)
	}

	answer, err := r.ask(ctx, field, InputConfig{Default: number}, func(value string) error {
		if strings.TrimSpace(value) == "" {
			return required(field.Required)(value)
		}
		digits := strings.Map(func(c rune) rune {
			if c >= '0' && c <= '9' {
				return c
			}
			return -1
		}, value)
		if len(digits) < 4 {
			return errors.New("enter a valid phone number")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if answer == "" {
		return "", nil
	}
	return countries[idx].Dial + " " + answer, nil
}

func (r *Renderer) promptDate(ctx context.Context, field form.FieldView, input form.DateInput) (any, error) {
	return r.ask(ctx, field, InputConfig{Help: helpOr(field.Helper, "YYYY-MM-DD")}, func(value string) error {
		if value == "" {
			return required(field.Required)(value)
		}
		day, err := time.Parse(dateLayout, value)
		if err != nil {
			return errors.New("use the YYYY-MM-DD format")
		}
		if !input.Min.IsZero() && day.Before(truncate(input.Min)) {
			return fmt.Errorf("must be on or after %s", input.Min.Format(dateLayout))
		}
		if !input.Max.IsZero() && day.After(truncate(input.Max)) {
			return fmt.Errorf("must be on or before %s", input.Max.Format(dateLayout))
		}
		return nil
	})
}

func (r *Renderer) promptTime(ctx context.Context, field form.FieldView, input form.TimeInput) (any, error) {
	answer, err := r.ask(ctx, field, InputConfig{Help: helpOr(field.Helper, "HH:MM or h:MM AM")}, func(value string) error {
		if value == "" {
			return required(field.Required)(value)
		}
		_, err := clock.Parse(value)
		return err
	})
	if err != nil || answer == "" {
		return answer, err
	}
	parsed, _ := clock.Parse(answer)
	if input.Step > 0 {
		parsed = parsed.Snap(input.Step)
	}
	if input.Use12Hour {
		return parsed.Format12(), nil
	}
	return parsed.Format24(), nil
}

func (r *Renderer) promptFile(ctx context.Context, field form.FieldView, input form.FileInput) (any, error) {
	help := field.Helper
	if len(input.Accept) > 0 {
		help = helpOr(help, "Accepts "+strings.Join(input.Accept, ", "))
	}
	answer, err := r.ask(ctx, field, InputConfig{Help: help}, required(field.Required))
	if err != nil {
		return nil, err
	}
	if !input.Multiple {
		return answer, nil
	}
	var paths []string
	for _, part := range strings.Split(answer, ",") {
		if part = strings.TrimSpace(part); part != "" {
			paths = append(paths, part)
		}
	}
	return paths, nil
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	if r.outputFormat != OutputFormatFormURLEncoded {
		return json.Marshal(values)
	}
	encoded := url.Values{}
	for key, value := range values {
		switch v := value.(type) {
		case []string:
			for _, item := range v {
				encoded.Add(key, item)
			}
		case float64:
			encoded.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			encoded.Set(key, fmt.Sprint(v))
		}
	}
	return []byte(encoded.Encode()), nil
}

func textValidator(isRequired bool, input form.TextInput) func(string) error {
	var pattern *regexp.Regexp
	if input.Pattern != "" {
		pattern, _ = regexp.Compile("^(?:" + input.Pattern + ")$")
	}
	return func(value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			return required(isRequired)(value)
		}
		length := utf8.RuneCountInString(value)
		if input.MinLength > 0 && length < input.MinLength {
			return fmt.Errorf("must be at least %d characters", input.MinLength)
		}
		if input.MaxLength > 0 && length > input.MaxLength {
			return fmt.Errorf("must be at most %d characters", input.MaxLength)
		}
		if pattern != nil && !pattern.MatchString(value) {
			return errors.New("has an invalid format")
		}
		switch input.Type {
		case "email":
			if at := strings.Index(value, "@"); at <= 0 || at == len(value)-1 {
				return errors.New("must be an email address")
			}
		case "number":
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				return errors.New("must be a number")
			}
		case "url":
			if u, err := url.Parse(value); err != nil || u.Scheme == "" || u.Host == "" {
				return errors.New("must be a URL")
			}
		}
		return nil
	}
}

func required(isRequired bool) func(string) error {
	return func(value string) error {
		if isRequired && strings.TrimSpace(value) == "" {
			return ErrRequired
		}
		return nil
	}
}
