// Package formkit is the top-level entry point: it renders forms to HTML and
// generates admin forms straight from OpenAPI operations.
package formkit

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formkit/pkg/config"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Render resolves f and renders it with a renderer built from opts.
func Render(ctx context.Context, f *form.Form, opts ...html.Option) ([]byte, error) {
	renderer, err := html.New(opts...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, f)
}

// Option configures GenerateHTML.
type Option func(*generateConfig)

type generateConfig struct {
	store     *config.Store
	loader    []openapi.LoaderOption
	parser    []openapi.ParserOption
	widgets   *widgets.Registry
	renderer  []html.Option
	formOpts  []form.Option
	useSchema bool
}

// WithStore binds generated forms to store.
func WithStore(store *config.Store) Option {
	return func(c *generateConfig) { c.store = store }
}

// WithLoaderOptions configures how the document is read.
func WithLoaderOptions(options ...openapi.LoaderOption) Option {
	return func(c *generateConfig) { c.loader = append(c.loader, options...) }
}

// WithParserOptions configures document parsing.
func WithParserOptions(options ...openapi.ParserOption) Option {
	return func(c *generateConfig) { c.parser = append(c.parser, options...) }
}

// WithWidgets replaces the property to input kind registry.
func WithWidgets(registry *widgets.Registry) Option {
	return func(c *generateConfig) { c.widgets = registry }
}

// WithRendererOptions forwards options to the HTML renderer.
func WithRendererOptions(options ...html.Option) Option {
	return func(c *generateConfig) { c.renderer = append(c.renderer, options...) }
}

// WithFormOptions applies form options, such as values and errors, after the
// generated definition.
func WithFormOptions(options ...form.Option) Option {
	return func(c *generateConfig) { c.formOpts = append(c.formOpts, options...) }
}

// WithSchemaDefaults prefills fields with the request schema defaults.
func WithSchemaDefaults(enabled bool) Option {
	return func(c *generateConfig) { c.useSchema = enabled }
}

// GenerateDefinition loads src and builds the form definition for the
// operation with operationID.
func GenerateDefinition(ctx context.Context, src openapi.Source, operationID string, options ...Option) (form.Definition, openapi.Operation, error) {
	cfg := newGenerateConfig(options)

	doc, err := openapi.NewLoader(cfg.loader...).Load(ctx, src)
	if err != nil {
		return form.Definition{}, openapi.Operation{}, err
	}
	operations, err := openapi.Parse(ctx, doc, cfg.parser...)
	if err != nil {
		return form.Definition{}, openapi.Operation{}, err
	}
	op, ok := operations[operationID]
	if !ok {
		return form.Definition{}, openapi.Operation{}, fmt.Errorf("formkit: operation %q not found in %s", operationID, src.Location())
	}
	def, err := openapi.NewBuilder(openapi.WithWidgets(cfg.widgets)).Definition(op)
	if err != nil {
		return form.Definition{}, openapi.Operation{}, err
	}
	return def, op, nil
}

// GenerateHTML loads src, builds the form for operationID and renders it.
func GenerateHTML(ctx context.Context, src openapi.Source, operationID string, options ...Option) ([]byte, error) {
	cfg := newGenerateConfig(options)
	def, op, err := GenerateDefinition(ctx, src, operationID, options...)
	if err != nil {
		return nil, err
	}
	var formOpts []form.Option
	if cfg.useSchema {
		formOpts = append(formOpts, form.WithValues(openapi.Defaults(op.RequestBody)))
	}
	f := form.Build(def, cfg.store, append(formOpts, cfg.formOpts...)...)
	return Render(ctx, f, cfg.renderer...)
}

// AssetsFS exposes the progressive enhancement scripts and stylesheets so
// applications can serve them under html.DefaultAssetPrefix.
func AssetsFS() fs.FS {
	return html.AssetsFS()
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can copy
// or extend them.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

func newGenerateConfig(options []Option) *generateConfig {
	cfg := &generateConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}
