package openapi

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ExtensionPrefix marks the schema extensions carried into Schema and
// Operation.
const ExtensionPrefix = "x-formkit"

// ParserOptions toggles parser behaviour.
type ParserOptions struct {
	// Validate runs the kin-openapi document validation before extraction.
	Validate bool
	// ExternalRefs allows $ref pointers to other files or URLs.
	ExternalRefs bool
}

// ParserOption mutates ParserOptions.
type ParserOption func(*ParserOptions)

// WithValidation toggles document validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// WithExternalRefs toggles external reference resolution.
func WithExternalRefs(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ExternalRefs = enabled
	}
}

var methods = []string{"GET", "PUT", "POST", "DELETE", "PATCH"}

// Parse converts doc into operations keyed by operation ID. Operations
// without an ID are keyed "<method>:<path>" in lower-case method.
func Parse(ctx context.Context, doc Document, options ...ParserOption) (map[string]Operation, error) {
	opts := ParserOptions{Validate: true}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = opts.ExternalRefs

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if opts.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation(), openapi3.DisableSchemaFormatValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}

	operations := make(map[string]Operation)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, method := range methods {
			if op := item.GetOperation(method); op != nil {
				collect(operations, method, path, op)
			}
		}
	}
	if len(operations) == 0 {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return operations, nil
}

// OperationIDs returns the sorted keys of operations.
func OperationIDs(operations map[string]Operation) []string {
	return slices.Sorted(maps.Keys(operations))
}

func collect(target map[string]Operation, method, path string, operation *openapi3.Operation) {
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	target[id] = Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		Summary:     operation.Summary,
		Description: operation.Description,
		Tags:        append([]string(nil), operation.Tags...),
		RequestBody: requestSchema(operation.RequestBody),
		Extensions:  extractExtensions(operation.Extensions),
	}
}

func requestSchema(body *openapi3.RequestBodyRef) Schema {
	if body == nil {
		return Schema{}
	}
	if body.Value == nil {
		return Schema{Ref: body.Ref}
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	for _, key := range slices.Sorted(maps.Keys(content)) {
		if mt := content[key]; mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	return Schema{}
}

func convertSchema(ref *openapi3.SchemaRef) Schema {
	if ref == nil {
		return Schema{}
	}
	if ref.Value == nil {
		return Schema{Ref: ref.Ref}
	}
	src := ref.Value
	schema := Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Default:     src.Default,
		MinLength:   int(src.MinLength),
		Pattern:     src.Pattern,
		ReadOnly:    src.ReadOnly,
		Extensions:  extractExtensions(src.Extensions),
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convertSchema(property)
		}
	}
	if src.Items != nil {
		items := convertSchema(src.Items)
		schema.Items = &items
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		schema.MaxLength = &value
	}
	if src.Min != nil {
		value := *src.Min
		schema.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		schema.Maximum = &value
	}
	for _, member := range src.AllOf {
		mergeAllOf(&schema, convertSchema(member))
	}
	return schema
}

// mergeAllOf folds an allOf member into target. Values already set on
// target win.
func mergeAllOf(target *Schema, member Schema) {
	if target.Type == "" {
		target.Type = member.Type
	}
	if target.Format == "" {
		target.Format = member.Format
	}
	if target.Title == "" {
		target.Title = member.Title
	}
	if target.Description == "" {
		target.Description = member.Description
	}
	for _, name := range member.Required {
		if !target.IsRequired(name) {
			target.Required = append(target.Required, name)
		}
	}
	if len(member.Properties) > 0 {
		if target.Properties == nil {
			target.Properties = make(map[string]Schema, len(member.Properties))
		}
		for name, property := range member.Properties {
			if _, exists := target.Properties[name]; !exists {
				target.Properties[name] = property
			}
		}
	}
	for key, value := range member.Extensions {
		if target.Extensions == nil {
			target.Extensions = make(map[string]any, len(member.Extensions))
		}
		if _, exists := target.Extensions[key]; !exists {
			target.Extensions[key] = value
		}
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

func extractExtensions(raw map[string]any) map[string]any {
	var result map[string]any
	for key, value := range raw {
		if !strings.HasPrefix(key, ExtensionPrefix) {
			continue
		}
		if result == nil {
			result = make(map[string]any)
		}
		result[key] = value
	}
	return result
}
