// Package wizard walks a user through creating a formkit config file.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/goliatone/go-formkit/pkg/config"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/responsive"
	"github.com/goliatone/go-formkit/pkg/style"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var (
	modes       = []string{"light", "dark", "system"}
	variants    = []string{string(style.VariantDefault), string(style.VariantOutline), string(style.VariantFilled), string(style.VariantGhost), string(style.VariantUnderline)}
	sizes       = []string{string(style.SizeXS), string(style.SizeSM), string(style.SizeMD), string(style.SizeLG), string(style.SizeXL)}
	radii       = []string{string(style.RadiusNone), string(style.RadiusSM), string(style.RadiusMD), string(style.RadiusLG), string(style.RadiusFull)}
	positions   = []string{"top", "left", "floating"}
	validateOns = []string{"submit", "blur", "change"}
	columnSteps = []string{"1", "2", "3", "4"}
)

// Wizard prompts for the common config sections.
type Wizard struct {
	driver tui.PromptDriver
}

// New returns a wizard using driver, or the survey driver when nil.
func New(driver tui.PromptDriver) *Wizard {
	if driver == nil {
		driver = tui.NewSurveyDriver(nil)
	}
	return &Wizard{driver: driver}
}

// Run prompts for each section, using base for defaults, and returns the
// validated result.
func (w *Wizard) Run(ctx context.Context, base config.Config) (config.Config, error) {
	cfg := *base.Clone()
	if err := w.driver.Info(ctx, "formkit config"); err != nil {
		return config.Config{}, err
	}

	mode, err := w.choose(ctx, "Colour mode", modes, themeMode(cfg))
	if err != nil {
		return config.Config{}, err
	}
	primary, err := w.driver.Input(ctx, tui.InputConfig{
		Message:   "Primary colour",
		Default:   primaryColor(cfg),
		Help:      "Hex value such as #2563eb",
		Validator: validateHex,
	})
	if err != nil {
		return config.Config{}, err
	}
	if err := validateHex(primary); err != nil {
		return config.Config{}, fmt.Errorf("wizard: primary colour: %w", err)
	}

	variant, err := w.choose(ctx, "Control variant", variants, presetValue(cfg.Defaults, func(p *style.Preset) *style.Variant { return p.Variant }, style.VariantDefault))
	if err != nil {
		return config.Config{}, err
	}
	size, err := w.choose(ctx, "Control size", sizes, presetValue(cfg.Defaults, func(p *style.Preset) *style.Size { return p.Size }, style.SizeMD))
	if err != nil {
		return config.Config{}, err
	}
	radius, err := w.choose(ctx, "Corner radius", radii, presetValue(cfg.Defaults, func(p *style.Preset) *style.Radius { return p.Radius }, style.RadiusMD))
	if err != nil {
		return config.Config{}, err
	}
	position, err := w.choose(ctx, "Label position", positions, labelPosition(cfg))
	if err != nil {
		return config.Config{}, err
	}
	validateOn, err := w.choose(ctx, "Validate on", validateOns, validationTrigger(cfg))
	if err != nil {
		return config.Config{}, err
	}
	columns, err := w.choose(ctx, "Columns from md up", columnSteps, "1")
	if err != nil {
		return config.Config{}, err
	}
	showSuccess, err := w.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Show success messages?", Default: true})
	if err != nil {
		return config.Config{}, err
	}

	cfg.Merge(&config.Config{
		Theme: &config.Theme{
			Mode:   config.Ptr(mode),
			Colors: map[string]string{"primary": primary},
		},
		Defaults: &style.Preset{
			Variant: config.Ptr(style.Variant(variant)),
			Size:    config.Ptr(style.Size(size)),
			Radius:  config.Ptr(style.Radius(radius)),
		},
		Label:      &config.Label{Position: config.Ptr(position)},
		Validation: &config.Validation{ValidateOn: config.Ptr(validateOn), ShowSuccess: config.Ptr(showSuccess)},
		Layout:     &config.Layout{Columns: columnsValue(columns)},
	})
	if err := config.Validate(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("wizard: %w", err)
	}
	return cfg, nil
}

func (w *Wizard) choose(ctx context.Context, message string, options []string, current string) (string, error) {
	idx, err := w.driver.Select(ctx, tui.SelectConfig{
		Message:      message,
		Options:      options,
		DefaultIndex: slices.Index(options, current),
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("wizard: %s: selection %d out of range", message, idx)
	}
	return options[idx], nil
}

func validateHex(value string) error {
	if !hexColor.MatchString(value) {
		return errors.New("enter a hex colour like #2563eb")
	}
	return nil
}

func columnsValue(columns string) responsive.Value[int] {
	n := int(columns[0] - '0')
	if n <= 1 {
		return responsive.Of(1)
	}
	return responsive.At(map[responsive.Breakpoint]int{responsive.Base: 1, responsive.MD: n})
}

func themeMode(cfg config.Config) string {
	if cfg.Theme != nil && cfg.Theme.Mode != nil {
		return *cfg.Theme.Mode
	}
	return "light"
}

func primaryColor(cfg config.Config) string {
	if cfg.Theme != nil && cfg.Theme.Colors["primary"] != "" {
		return cfg.Theme.Colors["primary"]
	}
	return "#2563eb"
}

func labelPosition(cfg config.Config) string {
	if cfg.Label != nil && cfg.Label.Position != nil {
		return *cfg.Label.Position
	}
	return "top"
}

func validationTrigger(cfg config.Config) string {
	if cfg.Validation != nil && cfg.Validation.ValidateOn != nil {
		return *cfg.Validation.ValidateOn
	}
	return "submit"
}

func presetValue[T ~string](preset *style.Preset, get func(*style.Preset) *T, fallback T) string {
	if preset != nil {
		if value := get(preset); value != nil {
			return string(*value)
		}
	}
	return string(fallback)
}
