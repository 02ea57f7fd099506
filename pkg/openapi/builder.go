package openapi

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// DefaultSubmitLabel labels the submit button when an operation sets no
// x-formkit-submit extension.
const DefaultSubmitLabel = "Save"

const dateLayout = "2006-01-02"

// BuilderOption customises a Builder.
type BuilderOption func(*Builder)

// WithWidgets replaces the widget registry.
func WithWidgets(registry *widgets.Registry) BuilderOption {
	return func(b *Builder) {
		if registry != nil {
			b.widgets = registry
		}
	}
}

// WithBuilderLogger sets the logger used for skipped properties.
func WithBuilderLogger(logger zerolog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// Builder turns operations into form definitions.
type Builder struct {
	widgets *widgets.Registry
	logger  zerolog.Logger
}

// NewBuilder returns a builder using the default widget registry.
func NewBuilder(options ...BuilderOption) *Builder {
	b := &Builder{widgets: widgets.NewRegistry(), logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Definition builds the form for op's request body. Nested objects are
// flattened into dotted field names; read-only properties are skipped.
func (b *Builder) Definition(op Operation) (form.Definition, error) {
	body := op.RequestBody
	if body.Type != "" && body.Type != "object" {
		return form.Definition{}, fmt.Errorf("openapi: %s: request body is %q, want object", op.ID, body.Type)
	}
	if !body.HasProperties() {
		return form.Definition{}, fmt.Errorf("openapi: %s: request body has no properties", op.ID)
	}

	def := form.Definition{
		ID:          formID(op.ID),
		Action:      op.Path,
		Method:      op.Method,
		Title:       op.Summary,
		Description: op.Description,
	}
	def.Fields = b.fields("", body)

	submit := DefaultSubmitLabel
	if label, ok := op.Extensions[ExtensionPrefix+"-submit"].(string); ok && strings.TrimSpace(label) != "" {
		submit = strings.TrimSpace(label)
	}
	def.Buttons = []form.ButtonProps{{Label: submit, Type: "submit"}}

	if err := form.ValidateDefinition(def); err != nil {
		return form.Definition{}, fmt.Errorf("openapi: %s: %w", op.ID, err)
	}
	return def, nil
}

// Definitions builds every operation that has an object request body,
// keyed by operation ID. Operations without one are skipped.
func (b *Builder) Definitions(operations map[string]Operation) (map[string]form.Definition, error) {
	out := make(map[string]form.Definition)
	for _, id := range OperationIDs(operations) {
		op := operations[id]
		if !op.RequestBody.HasProperties() {
			b.logger.Debug().Str("operation", id).Msg("openapi: skipping operation without request body")
			continue
		}
		def, err := b.Definition(op)
		if err != nil {
			return nil, err
		}
		out[id] = def
	}
	return out, nil
}

// Defaults collects schema defaults keyed by field name, for form.WithValues.
func Defaults(schema Schema) map[string]any {
	values := map[string]any{}
	collectDefaults(values, "", schema)
	return values
}

func collectDefaults(values map[string]any, prefix string, schema Schema) {
	for name, property := range schema.Properties {
		key := joinName(prefix, name)
		if property.Type == "object" && property.HasProperties() {
			collectDefaults(values, key, property)
			continue
		}
		if property.Default != nil {
			values[key] = property.Default
		}
	}
}

func (b *Builder) fields(prefix string, schema Schema) []form.FieldDefinition {
	var fields []form.FieldDefinition
	for _, name := range orderedProperties(schema) {
		property := schema.Properties[name]
		key := joinName(prefix, name)
		if property.ReadOnly {
			b.logger.Debug().Str("property", key).Msg("openapi: skipping read-only property")
			continue
		}
		if property.Type == "object" && property.HasProperties() {
			fields = append(fields, b.fields(key, property)...)
			continue
		}
		fields = append(fields, b.field(key, property, schema.IsRequired(name)))
	}
	return fields
}

func (b *Builder) field(name string, schema Schema, required bool) form.FieldDefinition {
	label := schema.stringExtension(ExtensionPrefix + "-label")
	if label == "" {
		label = schema.Title
	}
	kind := b.widgets.ResolveOrText(property(name, schema))
	return form.FieldDefinition{
		FieldProps: form.FieldProps{
			Name:     name,
			Label:    label,
			Helper:   schema.Description,
			Required: required,
		},
		Input: form.InputDefinition{Input: inputFor(kind, schema)},
	}
}

func property(name string, schema Schema) widgets.Property {
	prop := widgets.Property{
		Name:       name,
		Type:       schema.Type,
		Format:     schema.Format,
		Enum:       schema.Enum,
		Extensions: schema.Extensions,
	}
	if accept := schema.listExtension(ExtensionPrefix + "-accept"); len(accept) > 0 {
		prop.MediaType = accept[0]
	}
	if schema.Items != nil {
		items := property(name, *schema.Items)
		prop.Items = &items
	}
	return prop
}

func inputFor(kind form.Kind, schema Schema) form.Input {
	switch kind {
	case form.KindDropdown:
		return form.DropdownInput{
			Choices:     choices(schema.Enum),
			Placeholder: schema.stringExtension(ExtensionPrefix + "-placeholder"),
		}
	case form.KindCheckbox:
		if schema.Type == "array" && schema.Items != nil {
			return form.CheckboxInput{Choices: choices(schema.Items.Enum)}
		}
		return form.CheckboxInput{
			Text:   schema.stringExtension(ExtensionPrefix + "-text"),
			Toggle: schema.boolExtension(ExtensionPrefix + "-toggle"),
		}
	case form.KindOTP:
		input := form.OTPInput{}
		if schema.MaxLength != nil && *schema.MaxLength <= 12 {
			input.Length = *schema.MaxLength
		}
		return input
	case form.KindPhone:
		return form.PhoneInput{DefaultCountry: schema.stringExtension(ExtensionPrefix + "-country")}
	case form.KindDate:
		input := form.DateInput{ShowCalendar: schema.boolExtension(ExtensionPrefix + "-calendar")}
		input.Min, _ = time.Parse(dateLayout, schema.stringExtension(ExtensionPrefix+"-min"))
		input.Max, _ = time.Parse(dateLayout, schema.stringExtension(ExtensionPrefix+"-max"))
		return input
	case form.KindTime:
		step, _ := schema.intExtension(ExtensionPrefix + "-step")
		return form.TimeInput{Step: step}
	case form.KindFile:
		input := form.FileInput{
			Accept:   schema.listExtension(ExtensionPrefix + "-accept"),
			Multiple: schema.Type == "array",
			DropZone: true,
		}
		if size, ok := schema.intExtension(ExtensionPrefix + "-max-size"); ok {
			input.MaxSize = int64(size)
		}
		return input
	case form.KindSearch:
		minChars, _ := schema.intExtension(ExtensionPrefix + "-min-chars")
		return form.SearchInput{
			Endpoint: schema.stringExtension(ExtensionPrefix + "-endpoint"),
			MinChars: minChars,
		}
	default:
		return textInput(schema)
	}
}

func textInput(schema Schema) form.TextInput {
	input := form.TextInput{
		MinLength:   schema.MinLength,
		Pattern:     schema.Pattern,
		Placeholder: schema.stringExtension(ExtensionPrefix + "-placeholder"),
		Multiline:   schema.boolExtension(ExtensionPrefix + "-multiline"),
	}
	if schema.MaxLength != nil {
		input.MaxLength = *schema.MaxLength
	}
	switch strings.ToLower(schema.Format) {
	case "email":
		input.Type = "email"
	case "password":
		input.Type = "password"
	case "uri", "url":
		input.Type = "url"
	case "markdown", "html", "textarea":
		input.Multiline = true
	}
	if schema.Type == "integer" || schema.Type == "number" {
		input.Type = "number"
	}
	if input.Multiline {
		input.Type = ""
		input.Rows = 4
	}
	return input
}

func choices(values []any) []form.Choice {
	out := make([]form.Choice, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		text := fmt.Sprint(value)
		out = append(out, form.Choice{Value: text, Label: form.Humanize(text)})
	}
	return out
}

// orderedProperties sorts by x-formkit-order (unset counts as 0), then
// required fields in the order they are listed, then the rest
// alphabetically.
func orderedProperties(schema Schema) []string {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	requiredIndex := func(name string) int {
		for idx, required := range schema.Required {
			if required == name {
				return idx
			}
		}
		return len(schema.Required)
	}
	sort.SliceStable(names, func(i, j int) bool {
		a, b := names[i], names[j]
		orderA, _ := schema.Properties[a].intExtension(ExtensionPrefix + "-order")
		orderB, _ := schema.Properties[b].intExtension(ExtensionPrefix + "-order")
		if orderA != orderB {
			return orderA < orderB
		}
		if ra, rb := requiredIndex(a), requiredIndex(b); ra != rb {
			return ra < rb
		}
		return a < b
	})
	return names
}

func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func formID(operationID string) string {
	return strings.NewReplacer(":", "-", "/", "-", "{", "", "}", "").Replace(operationID)
}
