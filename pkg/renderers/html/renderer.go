// Package html renders resolved forms to HTML. The form shell comes from a
// pongo2 template; controls and field chrome are written directly with
// escaping so custom templates only need to handle layout.
package html

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/pongo"
	"github.com/goliatone/go-formkit/pkg/renderers/html/components"
	"github.com/goliatone/go-formkit/pkg/style"
)

// DefaultAssetPrefix is where the built-in client assets are expected to be
// served from.
const DefaultAssetPrefix = "/formkit/assets"

const formTemplate = "form"

// Option customises a Renderer.
type Option func(*Renderer)

// WithTemplateRenderer replaces the template engine. The engine must provide
// a "form" template.
func WithTemplateRenderer(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.templates = engine
		}
	}
}

// WithComponents replaces the component registry.
func WithComponents(registry *components.Registry) Option {
	return func(r *Renderer) {
		if registry != nil {
			r.components = registry
		}
	}
}

// WithAssetPrefix changes the URL prefix of the default component assets.
func WithAssetPrefix(prefix string) Option {
	return func(r *Renderer) {
		r.assetPrefix = strings.TrimSpace(prefix)
	}
}

// WithAssets toggles emission of stylesheet and script tags.
func WithAssets(enabled bool) Option {
	return func(r *Renderer) {
		r.emitAssets = enabled
	}
}

// WithCSSVars sets custom properties on the form element, typically theme
// tokens.
func WithCSSVars(vars map[string]string) Option {
	return func(r *Renderer) {
		r.cssVars = maps.Clone(vars)
	}
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithClock overrides the time source used for calendar "today" markers.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.clock = now
		}
	}
}

// Renderer turns forms into HTML.
type Renderer struct {
	templates   template.TemplateRenderer
	components  *components.Registry
	assetPrefix string
	emitAssets  bool
	cssVars     map[string]string
	logger      zerolog.Logger
	clock       func() time.Time
}

// New builds a renderer backed by the embedded templates unless
// WithTemplateRenderer is supplied.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		assetPrefix: DefaultAssetPrefix,
		emitAssets:  true,
		logger:      zerolog.Nop(),
		clock:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.templates == nil {
		engine, err := pongo.New(pongo.WithFS(TemplatesFS()))
		if err != nil {
			return nil, fmt.Errorf("html: template engine: %w", err)
		}
		r.templates = engine
	}
	if r.components == nil {
		r.components = components.NewDefaultRegistry(r.assetPrefix)
	}
	return r, nil
}

// Render resolves f against its config store and renders it.
func (r *Renderer) Render(ctx context.Context, f *form.Form) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("html: form is nil")
	}
	return r.RenderView(ctx, f.Resolve())
}

// RenderView renders an already resolved view.
func (r *Renderer) RenderView(ctx context.Context, view form.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var items, buttons []string
	flush := func() {
		if len(buttons) == 0 {
			return
		}
		items = append(items, actionsMarkup(buttons))
		buttons = nil
	}

	for _, item := range view.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch {
		case item.Button != nil:
			buttons = append(buttons, buttonMarkup(*item.Button))
		case item.Field != nil:
			flush()
			markup, err := r.fieldMarkup(*item.Field)
			if err != nil {
				return nil, err
			}
			items = append(items, markup)
		}
	}
	flush()

	data := map[string]any{
		"chrome": chromeContext(),
		"form":   r.formContext(view),
		"items":  items,
	}
	if r.emitAssets {
		stylesheets, scripts := r.components.Assets(UsedKinds(view))
		data["stylesheets"] = stylesheets
		data["scripts"] = scriptContext(scripts)
	}

	out, err := r.templates.RenderTemplate(formTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("html: render form: %w", err)
	}
	r.logger.Debug().
		Str("form", view.ID).
		Int("items", len(view.Items)).
		Int("bytes", len(out)).
		Msg("html: rendered form")
	return []byte(out), nil
}

// UsedKinds lists the input kinds in view, in first-use order.
func UsedKinds(view form.View) []form.Kind {
	var kinds []form.Kind
	for _, item := range view.Items {
		if item.Field == nil || item.Field.Input == nil {
			continue
		}
		if kind := item.Field.Input.Kind(); !slices.Contains(kinds, kind) {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func (r *Renderer) now() time.Time {
	return r.clock()
}

func (r *Renderer) control(field form.FieldView) (string, error) {
	var buf strings.Builder
	if field.Input != nil {
		if descriptor, ok := r.components.Descriptor(field.Input.Kind()); ok && descriptor.Renderer != nil {
			if err := descriptor.Renderer(&buf, field); err != nil {
				return "", fmt.Errorf("html: render %s control for %q: %w", field.Input.Kind(), field.Name, err)
			}
			return buf.String(), nil
		}
	}
	if err := r.writeControl(&buf, field); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) formContext(view form.View) map[string]any {
	method := strings.ToUpper(view.Method)
	override := ""
	if method != "GET" && method != "POST" {
		override = method
		method = "POST"
	}
	return map[string]any{
		"id":          view.ID,
		"action":      view.Action,
		"method":      method,
		"override":    override,
		"title":       view.Title,
		"description": view.Description,
		"classes":     view.Classes,
		"errors":      view.Errors,
		"hidden":      view.Hidden,
		"validate_on": view.ValidateOn,
		"style":       cssVarStyle(r.cssVars),
	}
}

func scriptContext(scripts []components.Script) []map[string]any {
	out := make([]map[string]any, 0, len(scripts))
	for _, script := range scripts {
		out = append(out, map[string]any{
			"src":    script.Src,
			"inline": script.Inline,
			"defer":  script.Defer,
			"module": script.Module,
		})
	}
	return out
}

func cssVarStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := slices.Sorted(maps.Keys(vars))
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		parts = append(parts, name+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}

func actionsMarkup(buttons []string) string {
	return `<div class="` + style.Join(string(ClassActions), "col-span-full flex flex-wrap items-center gap-3") + `">` +
		strings.Join(buttons, "") + "</div>"
}
