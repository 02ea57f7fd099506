package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formkit/pkg/responsive"
)

// ValidationError reports the first invalid field using its yaml path.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate = v
	})
	return validate
}

// Validate checks enum fields and layout bounds. It never mutates cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	if err := instance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	if cfg.Layout != nil {
		if err := validateColumns(cfg.Layout.Columns); err != nil {
			return err
		}
		if err := validateGap(cfg.Layout.Gap); err != nil {
			return err
		}
	}
	return nil
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		field := yamlPath(fe.Namespace())
		msg := fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("must be one of [%s]", fe.Param())
		}
		return &ValidationError{Field: field, Message: msg, Err: err}
	}
	return &ValidationError{Field: "config", Message: err.Error(), Err: err}
}

func yamlPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}

func validateColumns(value responsive.Value[int]) error {
	check := func(bp string, columns int) error {
		if columns < 1 || columns > 12 {
			return &ValidationError{
				Field:   "layout.columns" + bp,
				Message: fmt.Sprintf("must be between 1 and 12, got %d", columns),
			}
		}
		return nil
	}
	if scalar, ok := value.Scalar(); ok {
		return check("", scalar)
	}
	for _, bp := range value.Breakpoints() {
		columns, _ := value.Get(bp)
		if err := check("."+string(bp), columns); err != nil {
			return err
		}
	}
	return nil
}

func validateGap(value responsive.Value[string]) error {
	check := func(bp, gap string) error {
		if strings.TrimSpace(gap) == "" {
			return &ValidationError{Field: "layout.gap" + bp, Message: "must not be empty"}
		}
		return nil
	}
	if scalar, ok := value.Scalar(); ok {
		return check("", scalar)
	}
	for _, bp := range value.Breakpoints() {
		gap, _ := value.Get(bp)
		if err := check("."+string(bp), gap); err != nil {
			return err
		}
	}
	return nil
}
