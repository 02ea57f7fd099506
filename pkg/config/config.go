package config

import (
	"maps"

	"github.com/goliatone/go-formkit/pkg/responsive"
	"github.com/goliatone/go-formkit/pkg/style"
)

// Section names a top-level config section.
type Section string

const (
	SectionTheme      Section = "theme"
	SectionDefaults   Section = "defaults"
	SectionButton     Section = "button"
	SectionLabel      Section = "label"
	SectionValidation Section = "validation"
	SectionLayout     Section = "layout"
	SectionClassNames Section = "classNames"
	SectionPresets    Section = "presets"
)

// Sections lists every known section in declaration order.
var Sections = []Section{
	SectionTheme,
	SectionDefaults,
	SectionButton,
	SectionLabel,
	SectionValidation,
	SectionLayout,
	SectionClassNames,
	SectionPresets,
}

// Class name slots accepted in the classNames section.
const (
	SlotForm    = "form"
	SlotField   = "field"
	SlotLabel   = "label"
	SlotInput   = "input"
	SlotButton  = "button"
	SlotError   = "error"
	SlotSuccess = "success"
	SlotHelper  = "helper"
	SlotActions = "actions"
)

// Config is the form package settings tree. Every leaf is optional so a
// Config doubles as a patch.
type Config struct {
	Theme      *Theme                  `yaml:"theme,omitempty" json:"theme,omitempty"`
	Defaults   *style.Preset           `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Button     *Button                 `yaml:"button,omitempty" json:"button,omitempty"`
	Label      *Label                  `yaml:"label,omitempty" json:"label,omitempty"`
	Validation *Validation             `yaml:"validation,omitempty" json:"validation,omitempty"`
	Layout     *Layout                 `yaml:"layout,omitempty" json:"layout,omitempty"`
	ClassNames map[string]string       `yaml:"classNames,omitempty" json:"classNames,omitempty"`
	Presets    map[string]style.Preset `yaml:"presets,omitempty" json:"presets,omitempty" validate:"omitempty,dive"`
}

// Theme holds colour tokens and global typography.
type Theme struct {
	Colors     map[string]string `yaml:"colors,omitempty" json:"colors,omitempty"`
	Mode       *string           `yaml:"mode,omitempty" json:"mode,omitempty" validate:"omitempty,oneof=light dark system"`
	FontFamily *string           `yaml:"fontFamily,omitempty" json:"fontFamily,omitempty"`
}

// Button holds button specific defaults. Unset attributes fall through to
// the defaults section.
type Button struct {
	Variant     *style.Variant `yaml:"variant,omitempty" json:"variant,omitempty" validate:"omitempty,oneof=default outline filled ghost underline"`
	Size        *style.Size    `yaml:"size,omitempty" json:"size,omitempty" validate:"omitempty,oneof=xs sm md lg xl"`
	Radius      *style.Radius  `yaml:"radius,omitempty" json:"radius,omitempty" validate:"omitempty,oneof=none sm md lg full"`
	FullWidth   *bool          `yaml:"fullWidth,omitempty" json:"fullWidth,omitempty"`
	LoadingText *string        `yaml:"loadingText,omitempty" json:"loadingText,omitempty"`
}

// Preset exposes the style attributes of the button section as a tier.
func (b *Button) Preset() *style.Preset {
	if b == nil {
		return nil
	}
	return &style.Preset{
		Variant:   b.Variant,
		Size:      b.Size,
		Radius:    b.Radius,
		FullWidth: b.FullWidth,
	}
}

// Label controls how field labels render.
type Label struct {
	Required       *bool   `yaml:"required,omitempty" json:"required,omitempty"`
	RequiredMarker *string `yaml:"requiredMarker,omitempty" json:"requiredMarker,omitempty"`
	Position       *string `yaml:"position,omitempty" json:"position,omitempty" validate:"omitempty,oneof=top left floating"`
	Hidden         *bool   `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// Validation controls how validation feedback is displayed.
type Validation struct {
	ShowErrors  *bool   `yaml:"showErrors,omitempty" json:"showErrors,omitempty"`
	ShowSuccess *bool   `yaml:"showSuccess,omitempty" json:"showSuccess,omitempty"`
	ShowIcons   *bool   `yaml:"showIcons,omitempty" json:"showIcons,omitempty"`
	ValidateOn  *string `yaml:"validateOn,omitempty" json:"validateOn,omitempty" validate:"omitempty,oneof=submit blur change"`
}

// Layout controls the form grid.
type Layout struct {
	Columns   responsive.Value[int]    `yaml:"columns,omitempty" json:"columns,omitempty"`
	Gap       responsive.Value[string] `yaml:"gap,omitempty" json:"gap,omitempty"`
	Direction *string                  `yaml:"direction,omitempty" json:"direction,omitempty" validate:"omitempty,oneof=vertical horizontal"`
}

// Ptr returns a pointer to value, handy when building patches.
func Ptr[T any](value T) *T {
	return &value
}

// Merge deep-merges patch into c. Sections, maps and breakpoint mappings
// combine key by key; scalars and slices overwrite.
func (c *Config) Merge(patch *Config) {
	if c == nil || patch == nil {
		return
	}
	if patch.Theme != nil {
		if c.Theme == nil {
			c.Theme = &Theme{}
		}
		c.Theme.merge(patch.Theme)
	}
	if patch.Defaults != nil {
		if c.Defaults == nil {
			c.Defaults = &style.Preset{}
		}
		c.Defaults.Merge(patch.Defaults)
	}
	if patch.Button != nil {
		if c.Button == nil {
			c.Button = &Button{}
		}
		c.Button.merge(patch.Button)
	}
	if patch.Label != nil {
		if c.Label == nil {
			c.Label = &Label{}
		}
		c.Label.merge(patch.Label)
	}
	if patch.Validation != nil {
		if c.Validation == nil {
			c.Validation = &Validation{}
		}
		c.Validation.merge(patch.Validation)
	}
	if patch.Layout != nil {
		if c.Layout == nil {
			c.Layout = &Layout{}
		}
		c.Layout.merge(patch.Layout)
	}
	if patch.ClassNames != nil {
		c.ClassNames = mergeStrings(c.ClassNames, patch.ClassNames)
	}
	if patch.Presets != nil {
		if c.Presets == nil {
			c.Presets = make(map[string]style.Preset, len(patch.Presets))
		}
		for name, preset := range patch.Presets {
			existing := c.Presets[name]
			merged := existing.Clone()
			merged.Merge(&preset)
			c.Presets[name] = *merged
		}
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := &Config{}
	out.Merge(c)
	return out
}

// IsEmpty reports whether no section is set.
func (c *Config) IsEmpty() bool {
	return c == nil || len(c.sections()) == 0
}

func (c *Config) sections() []string {
	var out []string
	add := func(set bool, section Section) {
		if set {
			out = append(out, string(section))
		}
	}
	add(c.Theme != nil, SectionTheme)
	add(c.Defaults != nil, SectionDefaults)
	add(c.Button != nil, SectionButton)
	add(c.Label != nil, SectionLabel)
	add(c.Validation != nil, SectionValidation)
	add(c.Layout != nil, SectionLayout)
	add(c.ClassNames != nil, SectionClassNames)
	add(c.Presets != nil, SectionPresets)
	return out
}

func (t *Theme) merge(src *Theme) {
	if src.Colors != nil {
		t.Colors = mergeStrings(t.Colors, src.Colors)
	}
	assign(&t.Mode, src.Mode)
	assign(&t.FontFamily, src.FontFamily)
}

func (b *Button) merge(src *Button) {
	assign(&b.Variant, src.Variant)
	assign(&b.Size, src.Size)
	assign(&b.Radius, src.Radius)
	assign(&b.FullWidth, src.FullWidth)
	assign(&b.LoadingText, src.LoadingText)
}

func (l *Label) merge(src *Label) {
	assign(&l.Required, src.Required)
	assign(&l.RequiredMarker, src.RequiredMarker)
	assign(&l.Position, src.Position)
	assign(&l.Hidden, src.Hidden)
}

func (v *Validation) merge(src *Validation) {
	assign(&v.ShowErrors, src.ShowErrors)
	assign(&v.ShowSuccess, src.ShowSuccess)
	assign(&v.ShowIcons, src.ShowIcons)
	assign(&v.ValidateOn, src.ValidateOn)
}

func (l *Layout) merge(src *Layout) {
	l.Columns = l.Columns.Merge(src.Columns)
	l.Gap = l.Gap.Merge(src.Gap)
	assign(&l.Direction, src.Direction)
}

func assign[T any](dst **T, src *T) {
	if src == nil {
		return
	}
	value := *src
	*dst = &value
}

func mergeStrings(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	maps.Copy(dst, src)
	return dst
}
