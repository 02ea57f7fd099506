package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/internal/wizard"
	"github.com/goliatone/go-formkit/pkg/config"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect, validate and create form config files",
	}
	cmd.AddCommand(newConfigShowCmd(flags))
	cmd.AddCommand(newConfigValidateCmd())
	cmd.AddCommand(newConfigInitCmd(flags))
	return cmd
}

func newConfigShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config after --config and --theme are merged",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := flags.loadStore("show config")
			if err != nil {
				return err
			}
			data, err := config.Encode(store.Snapshot())
			if err != nil {
				return newCommandError("show config", "encoding YAML", err, "Report this as a bug.")
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config.yaml>...",
		Short: "Validate one or more config files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed []string
			for _, path := range args {
				if _, err := config.LoadFile(path); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
					failed = append(failed, path)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", path)
			}
			if len(failed) > 0 {
				return newCommandError("validate config", strings.Join(failed, ", "), errors.New("invalid config"), "Fix the fields reported above.")
			}
			return nil
		},
	}
}

type configInitOptions struct {
	outPath string
	force   bool
}

func newConfigInitCmd(flags *rootFlags) *cobra.Command {
	opts := &configInitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "formkit.yaml", "Where to write the config, or - for stdout")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, flags *rootFlags, opts *configInitOptions) error {
	if opts.outPath != "-" && !opts.force {
		if _, err := os.Stat(opts.outPath); err == nil {
			return newCommandError("create config", fmt.Sprintf("%s already exists", opts.outPath), os.ErrExist, "Pass --force to overwrite it or choose another --out.")
		}
	}

	store, _, err := flags.loadStore("create config")
	if err != nil {
		return err
	}
	cfg, err := wizard.New(flags.newDriver(cmd.ErrOrStderr())).Run(cmd.Context(), *store.Snapshot())
	if err != nil {
		return newCommandError("create config", "running the wizard", err, "Answer every prompt, or press Ctrl+C to abort.")
	}
	data, err := config.Encode(&cfg)
	if err != nil {
		return newCommandError("create config", "encoding YAML", err, "Report this as a bug.")
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.outPath, data); err != nil {
		return newCommandError("create config", "writing output", err, "Check that the output directory is writable.")
	}
	flags.logger.Info().Str("path", opts.outPath).Msg("config written")
	return nil
}
