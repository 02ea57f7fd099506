package main

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-formkit/internal/logger"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
)

// Setting keys. Each is also read from FORMKIT_<KEY> with dashes as
// underscores.
const (
	keyConfig   = "config"
	keyTheme    = "theme"
	keyVariant  = "variant"
	keyLogLevel = "log-level"
	keyVerbose  = "verbose"
	keyAddress  = "address"
	keyTimeout  = "timeout"
)

// promptDriver builds the terminal driver for fill and config init.
var promptDriver = tui.NewSurveyDriver

type rootFlags struct {
	settings *viper.Viper
	logger   zerolog.Logger
	newDriver func(out io.Writer) tui.PromptDriver
}

func newSettings() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyLogLevel, "warn")
	v.SetDefault(keyAddress, "127.0.0.1:8080")
	v.SetDefault(keyTimeout, "10s")
	v.SetEnvPrefix("FORMKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{
		settings:  newSettings(),
		logger:    zerolog.Nop(),
		newDriver: promptDriver,
	}

	cmd := &cobra.Command{
		Use:           "formkit",
		Short:         "formkit renders and previews design-system forms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return flags.init(cmd)
		},
	}

	cmd.PersistentFlags().String(keyConfig, "", "Form config file (YAML)")
	cmd.PersistentFlags().String(keyTheme, "", "go-theme manifest file (YAML)")
	cmd.PersistentFlags().String(keyVariant, "", "Theme variant to apply")
	cmd.PersistentFlags().String(keyLogLevel, "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolP(keyVerbose, "v", false, "Enable debug logging")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newFillCmd(flags))
	cmd.AddCommand(newConfigCmd(flags))
	cmd.AddCommand(newOpenAPICmd(flags))
	cmd.AddCommand(newServeCmd(flags))

	return cmd
}

func (f *rootFlags) init(cmd *cobra.Command) error {
	if err := f.settings.BindPFlags(cmd.Flags()); err != nil {
		return newCommandError("read settings", "binding flags", err, "Report this as a bug.")
	}
	level := f.settings.GetString(keyLogLevel)
	if f.settings.GetBool(keyVerbose) {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: true, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return newCommandError("configure logging", "parsing --log-level", err, "Use one of debug, info, warn or error.")
	}
	f.logger = log
	return nil
}
