package form

import (
	"maps"
	"strings"

	"github.com/goliatone/go-formkit/pkg/config"
	"github.com/goliatone/go-formkit/pkg/responsive"
	"github.com/goliatone/go-formkit/pkg/style"
)

// Context is shared by every component of a form. It carries the
// form-control handle (current values), externally supplied validation
// messages, and the configuration the components resolve against.
type Context struct {
	store   *config.Store
	presets *style.Registry
	values  map[string]any
	errors  map[string][]string
	success map[string]string
}

// Store returns the config store the form resolves against.
func (c *Context) Store() *config.Store {
	return c.store
}

// Value returns the bound value for name.
func (c *Context) Value(name string) (any, bool) {
	value, ok := c.values[name]
	return value, ok
}

// Errors returns the raw error messages supplied for name.
func (c *Context) Errors(name string) []string {
	return c.errors[name]
}

// Option customises a Form.
type Option func(*Form)

// WithID sets the form element id.
func WithID(id string) Option {
	return func(f *Form) {
		f.ID = strings.TrimSpace(id)
	}
}

// WithAction sets the submit target and HTTP method.
func WithAction(action, method string) Option {
	return func(f *Form) {
		f.Action = strings.TrimSpace(action)
		f.Method = strings.ToUpper(strings.TrimSpace(method))
	}
}

// WithTitle sets the heading rendered above the fields.
func WithTitle(title string) Option {
	return func(f *Form) {
		f.Title = title
	}
}

// WithDescription sets an introductory paragraph. Basic inline HTML is kept
// after sanitisation.
func WithDescription(description string) Option {
	return func(f *Form) {
		f.Description = description
	}
}

// WithClassName appends classes to the form element.
func WithClassName(className string) Option {
	return func(f *Form) {
		f.ClassName = className
	}
}

// WithLayout overrides the configured grid for this form only. Unset values
// fall back to the config layout section.
func WithLayout(columns responsive.Value[int], gap responsive.Value[string]) Option {
	return func(f *Form) {
		f.Columns = columns
		f.Gap = gap
	}
}

// WithValues binds current field values keyed by field name.
func WithValues(values map[string]any) Option {
	return func(f *Form) {
		if len(values) == 0 {
			return
		}
		if f.ctx.values == nil {
			f.ctx.values = make(map[string]any, len(values))
		}
		maps.Copy(f.ctx.values, values)
	}
}

// WithErrors supplies validation messages keyed by field name or path.
// Unknown paths surface as form-level errors.
func WithErrors(errors map[string][]string) Option {
	return func(f *Form) {
		if len(errors) == 0 {
			return
		}
		if f.ctx.errors == nil {
			f.ctx.errors = make(map[string][]string, len(errors))
		}
		for key, messages := range errors {
			f.ctx.errors[key] = append(f.ctx.errors[key], messages...)
		}
	}
}

// WithSuccess supplies success messages keyed by field name.
func WithSuccess(messages map[string]string) Option {
	return func(f *Form) {
		if len(messages) == 0 {
			return
		}
		if f.ctx.success == nil {
			f.ctx.success = make(map[string]string, len(messages))
		}
		maps.Copy(f.ctx.success, messages)
	}
}

// WithPresets replaces the preset registry. Presets from the config presets
// section are layered on top at resolve time.
func WithPresets(registry *style.Registry) Option {
	return func(f *Form) {
		if registry != nil {
			f.ctx.presets = registry
		}
	}
}

// Node is a component placed in a form.
type Node interface {
	node()
}

// Form is the root component. Child components are created through its
// Field, Input and Button methods, or built standalone and attached with Add.
type Form struct {
	ID          string
	Action      string
	Method      string
	Title       string
	Description string
	ClassName   string
	Columns     responsive.Value[int]
	Gap         responsive.Value[string]

	ctx    *Context
	nodes  []Node
	hidden map[string]string
}

// New creates a form bound to store. A nil store behaves as an empty config.
func New(store *config.Store, options ...Option) *Form {
	if store == nil {
		store = config.NewStore()
	}
	f := &Form{
		Method: "POST",
		ctx: &Context{
			store:   store,
			presets: style.NewDefaultRegistry(),
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.Method == "" {
		f.Method = "POST"
	}
	return f
}

// Context exposes the shared form context.
func (f *Form) Context() *Context {
	return f.ctx
}

// Nodes returns the attached components in order.
func (f *Form) Nodes() []Node {
	return append([]Node(nil), f.nodes...)
}

// Add attaches standalone components.
func (f *Form) Add(nodes ...Node) *Form {
	for _, n := range nodes {
		if n != nil {
			f.nodes = append(f.nodes, n)
		}
	}
	return f
}

// Field attaches a labelled field wrapping input.
func (f *Form) Field(props FieldProps, input Input) *Field {
	field := NewField(props, input)
	f.nodes = append(f.nodes, field)
	return field
}

// Input attaches a bare input without label or messages.
func (f *Form) Input(name string, input Input, props InputProps) *BareInput {
	bare := NewInput(name, input, props)
	f.nodes = append(f.nodes, bare)
	return bare
}

// Button attaches a button.
func (f *Form) Button(props ButtonProps) *Button {
	button := NewButton(props)
	f.nodes = append(f.nodes, button)
	return button
}

// FieldProps configure a labelled field.
type FieldProps struct {
	Name        string                `yaml:"name" json:"name" validate:"required"`
	Label       string                `yaml:"label,omitempty" json:"label,omitempty"`
	Helper      string                `yaml:"helper,omitempty" json:"helper,omitempty"`
	Required    bool                  `yaml:"required,omitempty" json:"required,omitempty"`
	Disabled    bool                  `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	HideLabel   bool                  `yaml:"hideLabel,omitempty" json:"hideLabel,omitempty"`
	Error       string                `yaml:"error,omitempty" json:"error,omitempty"`
	Success     string                `yaml:"success,omitempty" json:"success,omitempty"`
	Preset      string                `yaml:"preset,omitempty" json:"preset,omitempty"`
	Style       style.Preset          `yaml:",inline" json:"style,omitempty"`
	Span        responsive.Value[int] `yaml:"span,omitempty" json:"span,omitempty"`
	ClassName   string                `yaml:"className,omitempty" json:"className,omitempty"`
	// VisibleWhen is a condition over the form values. The field is hidden
	// and its post ignored while it does not hold.
	VisibleWhen string                `yaml:"visibleWhen,omitempty" json:"visibleWhen,omitempty"`
}

// Field is a label, an input and its validation messages.
type Field struct {
	Props FieldProps
	Input Input
}

// NewField builds a standalone field.
func NewField(props FieldProps, input Input) *Field {
	props.Name = strings.TrimSpace(props.Name)
	return &Field{Props: props, Input: input}
}

func (*Field) node() {}

// InputProps configure a bare input.
type InputProps struct {
	Disabled  bool
	Required  bool
	Error     string
	Preset    string
	Style     style.Preset
	ClassName string
}

// BareInput is an input rendered without field chrome.
type BareInput struct {
	Name  string
	Props InputProps
	Input Input
}

// NewInput builds a standalone bare input.
func NewInput(name string, input Input, props InputProps) *BareInput {
	return &BareInput{Name: strings.TrimSpace(name), Props: props, Input: input}
}

func (*BareInput) node() {}

// ButtonProps configure a button.
type ButtonProps struct {
	Label     string       `yaml:"label" json:"label" validate:"required"`
	Type      string       `yaml:"type,omitempty" json:"type,omitempty" validate:"omitempty,oneof=submit button reset"`
	Name      string       `yaml:"name,omitempty" json:"name,omitempty"`
	Value     string       `yaml:"value,omitempty" json:"value,omitempty"`
	Disabled  bool         `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Loading   bool         `yaml:"loading,omitempty" json:"loading,omitempty"`
	Icon      string       `yaml:"icon,omitempty" json:"icon,omitempty"`
	IconRight bool         `yaml:"iconRight,omitempty" json:"iconRight,omitempty"`
	Preset    string       `yaml:"preset,omitempty" json:"preset,omitempty"`
	Style     style.Preset `yaml:",inline" json:"style,omitempty"`
	ClassName string       `yaml:"className,omitempty" json:"className,omitempty"`
}

// Button is a form action.
type Button struct {
	Props ButtonProps
}

// NewButton builds a standalone button.
func NewButton(props ButtonProps) *Button {
	if props.Type == "" {
		props.Type = "submit"
	}
	return &Button{Props: props}
}

func (*Button) node() {}
