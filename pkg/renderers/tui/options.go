package tui

import (
	"fmt"
	"io"
	"strings"
)

// OutputFormat names the encoding of the collected answers.
type OutputFormat string

const (
	OutputFormatJSON           OutputFormat = "json"
	OutputFormatFormURLEncoded OutputFormat = "form"
)

// ParseOutputFormat accepts json, form or urlencoded, case-insensitively.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return OutputFormatJSON, nil
	case "form", "urlencoded":
		return OutputFormatFormURLEncoded, nil
	}
	return "", fmt.Errorf("tui: unknown output format %q", raw)
}

// SubmitTransformer rewrites the answers before they are encoded.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures a Renderer.
type Option func(*Renderer)

// WithPromptDriver replaces the survey driver. A nil driver is ignored.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) { r.submitTransformer = fn }
}

// WithOutput sets where the default driver prints Info messages.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		if w != nil {
			r.out = w
		}
	}
}
