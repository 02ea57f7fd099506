package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
)

type fillOptions struct {
	valuesPath string
	format     string
	outPath    string
}

func newFillCmd(flags *rootFlags) *cobra.Command {
	opts := &fillOptions{}

	cmd := &cobra.Command{
		Use:   "fill <definition.yaml>",
		Short: "Fill a form interactively in the terminal and print the submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cmd, flags, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.valuesPath, "values", "", "YAML or JSON file with starting values")
	cmd.Flags().StringVar(&opts.format, "format", string(tui.OutputFormatJSON), "Submission format: json or form")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "Write the submission to this file instead of stdout")

	return cmd
}

func runFill(cmd *cobra.Command, flags *rootFlags, path string, opts *fillOptions) error {
	format, err := tui.ParseOutputFormat(opts.format)
	if err != nil {
		return newCommandError("fill", "validating --format", err, "Use json or form.")
	}
	def, err := loadDefinition("fill", path)
	if err != nil {
		return err
	}
	store, _, err := flags.loadStore("fill")
	if err != nil {
		return err
	}
	values, err := readValues("fill", opts.valuesPath)
	if err != nil {
		return err
	}

	renderer := tui.New(
		tui.WithPromptDriver(flags.newDriver(cmd.ErrOrStderr())),
		tui.WithOutputFormat(format),
		tui.WithOutput(cmd.ErrOrStderr()),
	)
	out, err := renderer.Render(cmd.Context(), form.Build(def, store, form.WithValues(values)))
	if err != nil {
		return newCommandError("fill", fmt.Sprintf("collecting %s", path), err, "Answer every required prompt, or press Ctrl+C to abort.")
	}
	if opts.outPath == "" || opts.outPath == "-" {
		out = append(out, '\n')
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.outPath, out); err != nil {
		return newCommandError("fill", "writing output", err, "Check that the output directory is writable.")
	}
	return nil
}
