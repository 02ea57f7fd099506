package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/components/suggest"
	"github.com/goliatone/go-formkit/internal/preview"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
)

type serveOptions struct {
	openAPI  []string
	csrf     bool
	quiet    bool
	tailwind string
	suggest  map[string]string
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve [definition.yaml]...",
		Short: "Preview form definitions in the browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags, args, opts)
		},
	}

	cmd.Flags().String(keyAddress, "127.0.0.1:8080", "Address to listen on")
	cmd.Flags().StringSliceVar(&opts.openAPI, "openapi", nil, "OpenAPI file or URL whose request bodies are served as forms")
	cmd.Flags().BoolVar(&opts.csrf, "csrf", false, "Require a CSRF token on submissions")
	cmd.Flags().BoolVar(&opts.quiet, "quiet", false, "Disable request logs")
	cmd.Flags().StringVar(&opts.tailwind, "tailwind", preview.DefaultTailwindScript, "Tailwind script URL loaded by preview pages")
	cmd.Flags().StringToStringVar(&opts.suggest, "suggest", nil, "Serve a choices file as a search endpoint, as name=path")
	cmd.Flags().Duration(keyTimeout, 10*time.Second, "Timeout for URL sources")

	return cmd
}

func collectDefinitions(cmd *cobra.Command, flags *rootFlags, paths []string, opts *serveOptions) ([]form.Definition, error) {
	var defs []form.Definition
	for _, path := range paths {
		def, err := loadDefinition("start preview", path)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	for _, location := range opts.openAPI {
		operations, err := loadOperations(cmd, flags, location)
		if err != nil {
			return nil, err
		}
		generated, err := openapi.NewBuilder(openapi.WithBuilderLogger(flags.logger)).Definitions(operations)
		if err != nil {
			return nil, newCommandError("start preview", fmt.Sprintf("building forms from %s", location), err, "Check the request body schemas.")
		}
		for _, id := range openapi.OperationIDs(operations) {
			if def, ok := generated[id]; ok {
				defs = append(defs, def)
			}
		}
	}
	if len(defs) == 0 {
		return nil, newCommandError("start preview", "collecting forms", errors.New("no forms given"), "Pass definition files or --openapi.")
	}
	return defs, nil
}

func loadSuggestions(files map[string]string) (map[string][]form.Choice, error) {
	if len(files) == 0 {
		return nil, nil
	}
	out := make(map[string][]form.Choice, len(files))
	for name, path := range files {
		choices, err := suggest.LoadChoicesFile(path)
		if err != nil {
			return nil, newCommandError("start preview", "loading suggestions "+name, err, "Use a YAML list of values or {value, label} entries.")
		}
		out[name] = choices
	}
	return out, nil
}

func runServe(cmd *cobra.Command, flags *rootFlags, paths []string, opts *serveOptions) error {
	defs, err := collectDefinitions(cmd, flags, paths, opts)
	if err != nil {
		return err
	}
	suggestions, err := loadSuggestions(opts.suggest)
	if err != nil {
		return err
	}
	store, cssVars, err := flags.loadStore("start preview")
	if err != nil {
		return err
	}
	renderer, err := html.New(html.WithCSSVars(cssVars), html.WithLogger(flags.logger))
	if err != nil {
		return newCommandError("start preview", "creating renderer", err, "Report this as a bug.")
	}

	address := flags.settings.GetString(keyAddress)
	srv, err := preview.NewServer(preview.Options{
		Address:        address,
		Forms:          defs,
		Store:          store,
		Renderer:       renderer,
		CSRF:           opts.csrf,
		DisableReqLogs: opts.quiet,
		TailwindScript: opts.tailwind,
		Suggestions:    suggestions,
		Logger:         flags.logger,
	})
	if err != nil {
		return newCommandError("start preview", "preparing forms", err, "Give every definition a unique id.")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()
	fmt.Fprintf(cmd.OutOrStdout(), "Previewing %d forms on http://%s\n", len(defs), address)

	select {
	case err := <-errCh:
		if err != nil {
			return newCommandError("start preview", "listening on "+address, err, "Pick a free port with --address.")
		}
		return nil
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdown); err != nil {
		return newCommandError("stop preview", "shutting down", err, "Retry, or stop the process manually.")
	}
	return <-errCh
}
