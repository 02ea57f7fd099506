package style

import "strings"

// Variant selects the visual treatment of a control.
type Variant string

const (
	VariantDefault   Variant = "default"
	VariantOutline   Variant = "outline"
	VariantFilled    Variant = "filled"
	VariantGhost     Variant = "ghost"
	VariantUnderline Variant = "underline"
)

// Size selects control height, padding and type scale.
type Size string

const (
	SizeXS Size = "xs"
	SizeSM Size = "sm"
	SizeMD Size = "md"
	SizeLG Size = "lg"
	SizeXL Size = "xl"
)

// Radius selects the corner rounding of a control.
type Radius string

const (
	RadiusNone Radius = "none"
	RadiusSM   Radius = "sm"
	RadiusMD   Radius = "md"
	RadiusLG   Radius = "lg"
	RadiusFull Radius = "full"
)

// Preset is a bundle of optional style attributes. The same shape is used for
// component props and the global defaults so every tier resolves uniformly.
type Preset struct {
	Variant   *Variant `yaml:"variant,omitempty" json:"variant,omitempty" validate:"omitempty,oneof=default outline filled ghost underline"`
	Size      *Size    `yaml:"size,omitempty" json:"size,omitempty" validate:"omitempty,oneof=xs sm md lg xl"`
	Radius    *Radius  `yaml:"radius,omitempty" json:"radius,omitempty" validate:"omitempty,oneof=none sm md lg full"`
	FullWidth *bool    `yaml:"fullWidth,omitempty" json:"fullWidth,omitempty"`
}

// Attributes are fully resolved style attributes.
type Attributes struct {
	Variant   Variant
	Size      Size
	Radius    Radius
	FullWidth bool
}

// Fallback is the hardcoded bottom tier used when nothing else is configured.
var Fallback = Attributes{
	Variant:   VariantDefault,
	Size:      SizeMD,
	Radius:    RadiusMD,
	FullWidth: true,
}

// Resolve picks each attribute from the first tier that sets it, falling back
// to fallback. Callers pass tiers in priority order, typically
// props, preset, global defaults.
func Resolve(fallback Attributes, tiers ...*Preset) Attributes {
	out := fallback
	variantSet, sizeSet, radiusSet, widthSet := false, false, false, false
	for _, tier := range tiers {
		if tier == nil {
			continue
		}
		if !variantSet && tier.Variant != nil && *tier.Variant != "" {
			out.Variant = *tier.Variant
			variantSet = true
		}
		if !sizeSet && tier.Size != nil && *tier.Size != "" {
			out.Size = *tier.Size
			sizeSet = true
		}
		if !radiusSet && tier.Radius != nil && *tier.Radius != "" {
			out.Radius = *tier.Radius
			radiusSet = true
		}
		if !widthSet && tier.FullWidth != nil {
			out.FullWidth = *tier.FullWidth
			widthSet = true
		}
	}
	return out
}

// Merge overlays src onto p, keeping p's values where src is unset.
func (p *Preset) Merge(src *Preset) {
	if p == nil || src == nil {
		return
	}
	if src.Variant != nil {
		value := *src.Variant
		p.Variant = &value
	}
	if src.Size != nil {
		value := *src.Size
		p.Size = &value
	}
	if src.Radius != nil {
		value := *src.Radius
		p.Radius = &value
	}
	if src.FullWidth != nil {
		value := *src.FullWidth
		p.FullWidth = &value
	}
}

// Clone returns an independent copy of p.
func (p *Preset) Clone() *Preset {
	if p == nil {
		return nil
	}
	out := &Preset{}
	out.Merge(p)
	return out
}

// IsEmpty reports whether no attribute is set.
func (p *Preset) IsEmpty() bool {
	return p == nil || (p.Variant == nil && p.Size == nil && p.Radius == nil && p.FullWidth == nil)
}

// Join concatenates class lists, dropping blanks and duplicate tokens while
// preserving first-seen order.
func Join(lists ...string) string {
	seen := make(map[string]struct{})
	tokens := make([]string, 0, len(lists)*4)
	for _, list := range lists {
		for _, token := range strings.Fields(list) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			tokens = append(tokens, token)
		}
	}
	return strings.Join(tokens, " ")
}
