package form

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/config"
	"github.com/goliatone/go-formkit/pkg/responsive"
	"github.com/goliatone/go-formkit/pkg/style"
)

// Label positions accepted by the label section.
const (
	LabelTop      = "top"
	LabelLeft     = "left"
	LabelFloating = "floating"
)

const defaultRequiredMarker = "*"

var (
	defaultColumns = responsive.Of(1)
	defaultGap     = responsive.Of("4")
)

// View is a form resolved against a config snapshot. Renderers consume views
// and never read the config store directly.
type View struct {
	ID          string
	Action      string
	Method      string
	Title       string
	Description string
	Classes     string
	Errors      []string
	ValidateOn  string
	ShowIcons   bool
	Hidden      []HiddenField
	Items       []Item
}

// Item is one resolved component. Exactly one pointer is set.
type Item struct {
	Field  *FieldView
	Button *ButtonView
}

// FieldView is a resolved field or bare input.
type FieldView struct {
	Name           string
	ID             string
	Bare           bool
	Label          string
	ShowLabel      bool
	LabelPosition  string
	Required       bool
	RequiredMarker string
	Disabled       bool
	Helper         string
	Status         style.Status
	Message        string
	Attrs          style.Attributes
	Input          Input
	Value          any
	VisibleWhen    string
	Hidden         bool

	WrapperClasses string
	LabelClasses   string
	InputClasses   string
	MessageClasses string
	HelperClasses  string
}

// ButtonView is a resolved button.
type ButtonView struct {
	Label     string
	Type      string
	Name      string
	Value     string
	Disabled  bool
	Loading   bool
	Icon      string
	IconRight bool
	Attrs     style.Attributes
	Classes   string
}

// Resolve snapshots the config and resolves every component in order.
func (f *Form) Resolve() View {
	cfg := f.ctx.store.Snapshot()
	r := resolver{cfg: cfg, ctx: f.ctx}

	fieldNames := make([]string, 0, len(f.nodes))
	for _, n := range f.nodes {
		switch node := n.(type) {
		case *Field:
			fieldNames = append(fieldNames, node.Props.Name)
		case *BareInput:
			fieldNames = append(fieldNames, node.Name)
		}
	}
	mapping := MapErrors(fieldNames, f.ctx.errors)
	r.fieldErrors = mapping.Fields

	view := View{
		ID:          f.ID,
		Action:      f.Action,
		Method:      f.Method,
		Title:       f.Title,
		Description: SanitizeDescription(f.Description),
		Classes:     r.formClasses(f),
		Errors:      mapping.Form,
		Hidden:      SortedHiddenFields(f.hidden),
		ValidateOn:  r.validateOn(),
		ShowIcons:   flag(validationFlag(cfg, func(v *config.Validation) *bool { return v.ShowIcons }), false),
	}
	if !r.showErrors() {
		view.Errors = nil
	}

	for _, n := range f.nodes {
		switch node := n.(type) {
		case *Field:
			fv := r.field(node)
			view.Items = append(view.Items, Item{Field: &fv})
		case *BareInput:
			fv := r.bare(node)
			view.Items = append(view.Items, Item{Field: &fv})
		case *Button:
			bv := r.button(node)
			view.Items = append(view.Items, Item{Button: &bv})
		}
	}
	return view
}

// StatusFor reports the status a field named name would resolve to given an
// explicit error and success message.
func (c *Context) StatusFor(name, errMessage, successMessage string) style.Status {
	message := strings.TrimSpace(errMessage)
	if message == "" {
		message = firstMessage(c.errors[name])
	}
	return style.StatusOf(message, successMessage)
}

type resolver struct {
	cfg         *config.Config
	ctx         *Context
	fieldErrors map[string][]string
}

func (r resolver) preset(name string) *style.Preset {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if preset, ok := r.cfg.Presets[name]; ok {
		return preset.Clone()
	}
	if preset, ok := r.cfg.Presets[strings.ToLower(name)]; ok {
		return preset.Clone()
	}
	if r.ctx.presets == nil {
		return nil
	}
	preset, _ := r.ctx.presets.Lookup(name)
	return preset
}

func (r resolver) field(node *Field) FieldView {
	props := node.Props
	errMessage := strings.TrimSpace(props.Error)
	if errMessage == "" {
		errMessage = firstMessage(r.fieldErrors[props.Name])
	}
	successMessage := strings.TrimSpace(props.Success)
	if successMessage == "" {
		successMessage = strings.TrimSpace(r.ctx.success[props.Name])
	}
	status := style.StatusOf(errMessage, successMessage)

	fv := FieldView{
		Name:          props.Name,
		ID:            fieldID(props.Name),
		Label:         props.Label,
		LabelPosition: r.labelPosition(),
		Required:      props.Required,
		Disabled:      props.Disabled,
		Helper:        props.Helper,
		Status:        status,
		Input:         node.Input,
	}
	if fv.Label == "" {
		fv.Label = Humanize(props.Name)
	}
	fv.ShowLabel = !props.HideLabel && !r.labelHidden()
	if fv.Required && r.showRequired() {
		fv.RequiredMarker = r.requiredMarker()
	}
	switch status {
	case style.StatusError:
		if r.showErrors() {
			fv.Message = errMessage
		}
	case style.StatusSuccess:
		if r.showSuccess() {
			fv.Message = successMessage
		}
	}
	if value, ok := r.ctx.values[props.Name]; ok {
		fv.Value = value
	}
	if rule := strings.TrimSpace(props.VisibleWhen); rule != "" {
		fv.VisibleWhen = rule
		fv.Hidden = !visible(rule, r.ctx.values)
	}

	fv.Attrs = style.Resolve(style.Fallback, &props.Style, r.preset(props.Preset), r.cfg.Defaults)
	names := r.cfg.ClassNames
	fv.WrapperClasses = style.Join(
		wrapperBase(fv.LabelPosition),
		responsive.ToClasses(props.Span, "col-span"),
		names[config.SlotField],
		props.ClassName,
	)
	fv.LabelClasses = style.Join(style.LabelClasses(status), names[config.SlotLabel])
	fv.InputClasses = style.Join(style.InputClasses(fv.Attrs, status), names[config.SlotInput])
	fv.MessageClasses = style.Join(style.MessageClasses(status), statusSlot(names, status))
	fv.HelperClasses = style.Join(style.MessageClasses(style.StatusDefault), names[config.SlotHelper])
	return fv
}

func (r resolver) bare(node *BareInput) FieldView {
	props := node.Props
	errMessage := strings.TrimSpace(props.Error)
	if errMessage == "" {
		errMessage = firstMessage(r.fieldErrors[node.Name])
	}
	status := style.StatusOf(errMessage, "")

	fv := FieldView{
		Name:     node.Name,
		ID:       fieldID(node.Name),
		Bare:     true,
		Required: props.Required,
		Disabled: props.Disabled,
		Status:   status,
		Input:    node.Input,
	}
	if value, ok := r.ctx.values[node.Name]; ok {
		fv.Value = value
	}
	fv.Attrs = style.Resolve(style.Fallback, &props.Style, r.preset(props.Preset), r.cfg.Defaults)
	fv.InputClasses = style.Join(style.InputClasses(fv.Attrs, status), r.cfg.ClassNames[config.SlotInput], props.ClassName)
	return fv
}

func (r resolver) button(node *Button) ButtonView {
	props := node.Props
	fallback := style.Fallback
	fallback.FullWidth = false

	bv := ButtonView{
		Label:     props.Label,
		Type:      props.Type,
		Name:      props.Name,
		Value:     props.Value,
		Disabled:  props.Disabled || props.Loading,
		Loading:   props.Loading,
		Icon:      SanitizeIcon(props.Icon),
		IconRight: props.IconRight,
	}
	if bv.Type == "" {
		bv.Type = "submit"
	}
	if props.Loading && r.cfg.Button != nil && r.cfg.Button.LoadingText != nil && *r.cfg.Button.LoadingText != "" {
		bv.Label = *r.cfg.Button.LoadingText
	}
	bv.Attrs = style.Resolve(fallback, &props.Style, r.preset(props.Preset), r.cfg.Button.Preset(), r.cfg.Defaults)
	bv.Classes = style.Join(style.ButtonClasses(bv.Attrs), r.cfg.ClassNames[config.SlotButton], props.ClassName)
	return bv
}

func (r resolver) formClasses(f *Form) string {
	columns, gap := defaultColumns, defaultGap
	direction := ""
	if layout := r.cfg.Layout; layout != nil {
		if layout.Columns.IsSet() {
			columns = layout.Columns
		}
		if layout.Gap.IsSet() {
			gap = layout.Gap
		}
		if layout.Direction != nil {
			direction = *layout.Direction
		}
	}
	if f.Columns.IsSet() {
		columns = f.Columns
	}
	if f.Gap.IsSet() {
		gap = f.Gap
	}

	base := "grid"
	if direction == "horizontal" {
		base = "grid grid-flow-col auto-cols-fr"
	}
	return style.Join(
		base,
		responsive.ColumnClasses(columns),
		responsive.GapClasses(gap),
		r.cfg.ClassNames[config.SlotForm],
		f.ClassName,
	)
}

func (r resolver) labelPosition() string {
	if r.cfg.Label != nil && r.cfg.Label.Position != nil && *r.cfg.Label.Position != "" {
		return *r.cfg.Label.Position
	}
	return LabelTop
}

func (r resolver) labelHidden() bool {
	if r.cfg.Label == nil {
		return false
	}
	return flag(r.cfg.Label.Hidden, false)
}

func (r resolver) showRequired() bool {
	if r.cfg.Label == nil {
		return true
	}
	return flag(r.cfg.Label.Required, true)
}

func (r resolver) requiredMarker() string {
	if r.cfg.Label != nil && r.cfg.Label.RequiredMarker != nil {
		return *r.cfg.Label.RequiredMarker
	}
	return defaultRequiredMarker
}

func (r resolver) showErrors() bool {
	return flag(validationFlag(r.cfg, func(v *config.Validation) *bool { return v.ShowErrors }), true)
}

func (r resolver) showSuccess() bool {
	return flag(validationFlag(r.cfg, func(v *config.Validation) *bool { return v.ShowSuccess }), true)
}

func (r resolver) validateOn() string {
	if r.cfg.Validation != nil && r.cfg.Validation.ValidateOn != nil {
		return *r.cfg.Validation.ValidateOn
	}
	return "submit"
}

func validationFlag(cfg *config.Config, pick func(*config.Validation) *bool) *bool {
	if cfg == nil || cfg.Validation == nil {
		return nil
	}
	return pick(cfg.Validation)
}

func flag(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func wrapperBase(position string) string {
	switch position {
	case LabelLeft:
		return "grid grid-cols-[minmax(0,12rem)_1fr] items-start gap-x-4 gap-y-1"
	case LabelFloating:
		return "relative flex flex-col"
	default:
		return "flex flex-col gap-1.5"
	}
}

func statusSlot(names map[string]string, status style.Status) string {
	switch status {
	case style.StatusError:
		return names[config.SlotError]
	case style.StatusSuccess:
		return names[config.SlotSuccess]
	default:
		return names[config.SlotHelper]
	}
}

func firstMessage(messages []string) string {
	for _, message := range messages {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func fieldID(name string) string {
	if name == "" {
		return ""
	}
	replacer := strings.NewReplacer(".", "-", "[", "-", "]", "", " ", "-")
	return "fk-" + replacer.Replace(name)
}
