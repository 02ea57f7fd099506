package form

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/clock"
	"github.com/goliatone/go-formkit/pkg/config"
	"github.com/goliatone/go-formkit/pkg/responsive"
)

// ErrUnknownKind is returned when a definition names an input kind that does
// not exist.
var ErrUnknownKind = errors.New("form: unknown input kind")

// DefinitionError reports the first invalid entry of a definition by its
// yaml path.
type DefinitionError struct {
	Field   string
	Message string
	Err     error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("form: %s: %s", e.Field, e.Message)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// Definition is the YAML document describing a form.
type Definition struct {
	ID          string                   `yaml:"id,omitempty"`
	Action      string                   `yaml:"action,omitempty"`
	Method      string                   `yaml:"method,omitempty" validate:"omitempty,oneof=GET POST PUT PATCH DELETE get post put patch delete"`
	Title       string                   `yaml:"title,omitempty"`
	Description string                   `yaml:"description,omitempty"`
	ClassName   string                   `yaml:"className,omitempty"`
	Columns     responsive.Value[int]    `yaml:"columns,omitempty"`
	Gap         responsive.Value[string] `yaml:"gap,omitempty"`
	Fields      []FieldDefinition        `yaml:"fields" validate:"dive"`
	Buttons     []ButtonProps            `yaml:"buttons,omitempty" validate:"dive"`
}

// FieldDefinition is a field entry. Input holds the kind-tagged payload.
type FieldDefinition struct {
	FieldProps `yaml:",inline"`
	Input      InputDefinition `yaml:"input"`
}

// InputDefinition decodes a kind-tagged input payload.
type InputDefinition struct {
	Input Input `validate:"-"`
}

// UnmarshalYAML reads the kind key and decodes the rest of the mapping into
// the matching payload. A missing input block means a text input.
func (d *InputDefinition) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Kind Kind `yaml:"kind"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}
	kind := Kind(strings.ToLower(strings.TrimSpace(string(head.Kind))))
	if kind == "" {
		kind = KindText
	}

	var (
		input Input
		err   error
	)
	switch kind {
	case KindText:
		input, err = decodeAs[TextInput](node)
	case KindDropdown:
		input, err = decodeAs[DropdownInput](node)
	case KindCheckbox:
		input, err = decodeAs[CheckboxInput](node)
	case KindOTP:
		input, err = decodeAs[OTPInput](node)
	case KindPhone:
		input, err = decodeAs[PhoneInput](node)
	case KindDate:
		input, err = decodeAs[DateInput](node)
	case KindTime:
		input, err = decodeAs[TimeInput](node)
	case KindFile:
		input, err = decodeAs[FileInput](node)
	case KindSearch:
		input, err = decodeAs[SearchInput](node)
	default:
		return fmt.Errorf("%w %q (line %d)", ErrUnknownKind, head.Kind, node.Line)
	}
	if err != nil {
		return err
	}
	d.Input = input
	return nil
}

// MarshalYAML writes the payload with its kind key first.
func (d InputDefinition) MarshalYAML() (any, error) {
	if d.Input == nil {
		return nil, nil
	}
	var node yaml.Node
	if err := node.Encode(d.Input); err != nil {
		return nil, err
	}
	kind := []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: "kind"},
		{Kind: yaml.ScalarNode, Value: string(d.Input.Kind())},
	}
	node.Content = append(kind, node.Content...)
	return &node, nil
}

func decodeAs[T Input](node *yaml.Node) (Input, error) {
	var payload T
	if err := node.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// DecodeDefinition parses and validates a YAML form definition.
func DecodeDefinition(data []byte) (Definition, error) {
	var def Definition
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return def, errors.New("form: empty definition")
		}
		return def, fmt.Errorf("form: decode definition: %w", err)
	}
	if err := ValidateDefinition(def); err != nil {
		return def, err
	}
	return def, nil
}

// LoadDefinitionFile reads a definition from disk.
func LoadDefinitionFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("form: read %s: %w", path, err)
	}
	return DecodeDefinition(data)
}

// LoadDefinitionFS reads a definition from fsys.
func LoadDefinitionFS(fsys fs.FS, path string) (Definition, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Definition{}, fmt.Errorf("form: read %s: %w", path, err)
	}
	return DecodeDefinition(data)
}

// ValidateDefinition checks required names, enum attributes and every input
// payload.
func ValidateDefinition(def Definition) error {
	v := definitionValidator()
	if err := v.Struct(def); err != nil {
		return convertValidationError(err)
	}
	seen := make(map[string]struct{}, len(def.Fields))
	for i, field := range def.Fields {
		name := strings.TrimSpace(field.Name)
		if _, dup := seen[name]; dup {
			return &DefinitionError{
				Field:   fmt.Sprintf("fields[%d].name", i),
				Message: fmt.Sprintf("duplicate field %q", name),
			}
		}
		seen[name] = struct{}{}
		if field.VisibleWhen != "" {
			if _, err := compileRule(strings.TrimSpace(field.VisibleWhen)); err != nil {
				return &DefinitionError{
					Field:   fmt.Sprintf("fields[%d].visibleWhen", i),
					Message: err.Error(),
					Err:     err,
				}
			}
		}
		if field.Input.Input == nil {
			continue
		}
		if err := v.Struct(field.Input.Input); err != nil {
			converted := convertValidationError(err)
			var verr *DefinitionError
			if errors.As(converted, &verr) {
				verr.Field = fmt.Sprintf("fields[%d].input.%s", i, verr.Field)
			}
			return converted
		}
		if err := validateInputValues(field.Input.Input); err != nil {
			err.Field = fmt.Sprintf("fields[%d].input.%s", i, err.Field)
			return err
		}
	}
	return nil
}

// validateInputValues checks input settings that are parsed at submit time.
func validateInputValues(input Input) *DefinitionError {
	switch in := input.(type) {
	case TextInput:
		if in.Pattern == "" {
			return nil
		}
		if _, err := compilePattern(in.Pattern); err != nil {
			return &DefinitionError{Field: "pattern", Message: "invalid pattern: " + err.Error(), Err: err}
		}
	case TimeInput:
		bounds := []struct{ name, value string }{{"min", in.Min}, {"max", in.Max}}
		for _, bound := range bounds {
			if bound.value == "" {
				continue
			}
			if _, err := clock.Parse(bound.value); err != nil {
				return &DefinitionError{Field: bound.name, Message: err.Error(), Err: err}
			}
		}
	}
	return nil
}

// Build creates a form from def bound to store. Options are applied after the
// definition so callers can bind values and errors.
func Build(def Definition, store *config.Store, options ...Option) *Form {
	base := []Option{
		WithID(def.ID),
		WithTitle(def.Title),
		WithDescription(def.Description),
		WithClassName(def.ClassName),
		WithLayout(def.Columns, def.Gap),
	}
	if def.Action != "" || def.Method != "" {
		base = append(base, WithAction(def.Action, def.Method))
	}
	f := New(store, append(base, options...)...)
	for _, field := range def.Fields {
		input := field.Input.Input
		if input == nil {
			input = TextInput{}
		}
		f.Field(field.FieldProps, input)
	}
	for _, button := range def.Buttons {
		f.Button(button)
	}
	return f
}

const inlineSegment = "_"

var (
	validatorOnce sync.Once
	validate      *validator.Validate
)

func definitionValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			tag := field.Tag.Get("yaml")
			if strings.Contains(tag, ",inline") {
				return inlineSegment
			}
			name := strings.SplitN(tag, ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

func convertValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	first := errs[0]
	message := fmt.Sprintf("failed %s validation", first.Tag())
	switch first.Tag() {
	case "required":
		message = "is required"
	case "oneof":
		message = fmt.Sprintf("must be one of [%s]", first.Param())
	case "gte":
		message = fmt.Sprintf("must be >= %s", first.Param())
	case "lte":
		message = fmt.Sprintf("must be <= %s", first.Param())
	}
	return &DefinitionError{Field: fieldPath(first.Namespace()), Message: message, Err: err}
}

func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) <= 1 {
		return namespace
	}
	kept := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		if part == "" || part == inlineSegment {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, ".")
}
