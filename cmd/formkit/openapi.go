package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
)

type openAPIOptions struct {
	format   string
	outPath  string
	defaults bool
	noAssets bool
}

func newOpenAPICmd(flags *rootFlags) *cobra.Command {
	opts := &openAPIOptions{}

	cmd := &cobra.Command{
		Use:   "openapi <file-or-url> [operation-id]",
		Short: "List operations or generate a form from an OpenAPI request body",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			operationID := ""
			if len(args) == 2 {
				operationID = args[1]
			}
			return runOpenAPI(cmd, flags, args[0], operationID, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "yaml", "Output format: yaml (definition) or html")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "Write output to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.defaults, "defaults", true, "Prefill html output with schema defaults")
	cmd.Flags().BoolVar(&opts.noAssets, "no-assets", false, "Omit script and stylesheet tags in html output")
	cmd.Flags().Duration(keyTimeout, 10*time.Second, "Timeout for URL sources")

	return cmd
}

func loadOperations(cmd *cobra.Command, flags *rootFlags, location string) (map[string]openapi.Operation, error) {
	src, err := openapi.SourceFor(location)
	if err != nil {
		return nil, newCommandError("load OpenAPI document", location, err, "Pass a file path or an http(s) URL.")
	}
	loader := openapi.NewLoader(openapi.WithHTTPFallback(flags.settings.GetDuration(keyTimeout)))
	doc, err := loader.Load(cmd.Context(), src)
	if err != nil {
		return nil, newCommandError("load OpenAPI document", location, err, "Check the path or URL and try again.")
	}
	operations, err := openapi.Parse(cmd.Context(), doc)
	if err != nil {
		return nil, newCommandError("parse OpenAPI document", location, err, "Validate the document with an OpenAPI linter.")
	}
	return operations, nil
}

func runOpenAPI(cmd *cobra.Command, flags *rootFlags, location, operationID string, opts *openAPIOptions) error {
	operations, err := loadOperations(cmd, flags, location)
	if err != nil {
		return err
	}

	if operationID == "" {
		for _, id := range openapi.OperationIDs(operations) {
			op := operations[id]
			marker := " "
			if op.RequestBody.HasProperties() {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-24s %-6s %s\n", marker, id, op.Method, op.Path)
		}
		return nil
	}

	op, ok := operations[operationID]
	if !ok {
		return newCommandError("generate form", fmt.Sprintf("operation %q", operationID), fmt.Errorf("not found in %s", location), "Run 'formkit openapi "+location+"' to list operations.")
	}
	def, err := openapi.NewBuilder(openapi.WithBuilderLogger(flags.logger)).Definition(op)
	if err != nil {
		return newCommandError("generate form", fmt.Sprintf("operation %q", operationID), err, "Only operations with an object request body produce forms.")
	}

	var out []byte
	switch strings.ToLower(opts.format) {
	case "yaml", "yml":
		out, err = yaml.Marshal(def)
		if err != nil {
			return newCommandError("generate form", "encoding YAML", err, "Report this as a bug.")
		}
	case "html":
		store, cssVars, err := flags.loadStore("generate form")
		if err != nil {
			return err
		}
		var values map[string]any
		if opts.defaults {
			values = openapi.Defaults(op.RequestBody)
		}
		renderer, err := html.New(html.WithCSSVars(cssVars), html.WithAssets(!opts.noAssets), html.WithLogger(flags.logger))
		if err != nil {
			return newCommandError("generate form", "creating renderer", err, "Report this as a bug.")
		}
		out, err = renderer.Render(cmd.Context(), form.Build(def, store, form.WithValues(values)))
		if err != nil {
			return newCommandError("generate form", "rendering HTML", err, "Check the x-formkit extensions on the schema.")
		}
	default:
		return newCommandError("generate form", "validating --format", fmt.Errorf("unknown format %q", opts.format), "Use yaml or html.")
	}

	if err := writeOutput(cmd.OutOrStdout(), opts.outPath, out); err != nil {
		return newCommandError("generate form", "writing output", err, "Check that the output directory is writable.")
	}
	return nil
}
