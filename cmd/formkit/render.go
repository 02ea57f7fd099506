package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
)

type renderOptions struct {
	valuesPath string
	errorsPath string
	outPath    string
	noAssets   bool
	assetURL   string
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <definition.yaml>",
		Short: "Render a form definition to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, flags, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.valuesPath, "values", "", "YAML or JSON file with field values")
	cmd.Flags().StringVar(&opts.errorsPath, "errors", "", "YAML or JSON file with validation messages keyed by field path")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "Write HTML to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.noAssets, "no-assets", false, "Omit script and stylesheet tags")
	cmd.Flags().StringVar(&opts.assetURL, "asset-prefix", html.DefaultAssetPrefix, "URL prefix the component assets are served from")

	return cmd
}

func runRender(cmd *cobra.Command, flags *rootFlags, path string, opts *renderOptions) error {
	def, err := loadDefinition("render", path)
	if err != nil {
		return err
	}
	store, cssVars, err := flags.loadStore("render")
	if err != nil {
		return err
	}
	values, err := readValues("render", opts.valuesPath)
	if err != nil {
		return err
	}
	messages, err := readErrors("render", opts.errorsPath)
	if err != nil {
		return err
	}

	renderer, err := html.New(
		html.WithCSSVars(cssVars),
		html.WithAssets(!opts.noAssets),
		html.WithAssetPrefix(opts.assetURL),
		html.WithLogger(flags.logger),
	)
	if err != nil {
		return newCommandError("render", "creating renderer", err, "Report this as a bug.")
	}

	f := form.Build(def, store, form.WithValues(values), form.WithErrors(messages))
	out, err := renderer.Render(cmd.Context(), f)
	if err != nil {
		return newCommandError("render", fmt.Sprintf("rendering %s", path), err, "Check the field inputs in the definition.")
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.outPath, out); err != nil {
		return newCommandError("render", "writing output", err, "Check that the output directory is writable.")
	}
	flags.logger.Info().Str("form", def.ID).Int("bytes", len(out)).Msg("form rendered")
	return nil
}
