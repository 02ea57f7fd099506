package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/config"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/theming"
)

// loadStore builds the config store from --config and the optional theme
// manifest. The returned CSS variables come from the merged theme section.
func (f *rootFlags) loadStore(operation string) (*config.Store, map[string]string, error) {
	store := config.NewStore(config.WithLogger(f.logger))

	if path := strings.TrimSpace(f.settings.GetString(keyConfig)); path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, nil, newCommandError(operation, fmt.Sprintf("loading config %s", path), err, "Run 'formkit config validate' on the file to see every problem.")
		}
		store.Configure(cfg)
	}

	if path := strings.TrimSpace(f.settings.GetString(keyTheme)); path != "" {
		manifest, err := theming.LoadManifestFile(path)
		if err != nil {
			return nil, nil, newCommandError(operation, fmt.Sprintf("loading theme %s", path), err, "Check that the manifest is YAML with a name and tokens.")
		}
		selector, err := theming.NewSelector(manifest)
		if err != nil {
			return nil, nil, newCommandError(operation, "registering theme", err, "Give the manifest a name.")
		}
		variant := f.settings.GetString(keyVariant)
		if _, err := theming.Apply(store, selector, manifest.Name, variant); err != nil {
			return nil, nil, newCommandError(operation, fmt.Sprintf("applying theme %s", manifest.Name), err, "Check the variant name and the theme tokens.")
		}
		f.logger.Debug().Str("theme", manifest.Name).Str("variant", variant).Msg("theme applied")
	}

	return store, theming.CSSVars(store.Snapshot()), nil
}

func loadDefinition(operation, path string) (form.Definition, error) {
	def, err := form.LoadDefinitionFile(path)
	if err != nil {
		return form.Definition{}, newCommandError(operation, fmt.Sprintf("loading definition %s", path), err, "Check the field list and each input kind.")
	}
	return def, nil
}

// readValues decodes a YAML or JSON map of field values.
func readValues(operation, path string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newCommandError(operation, fmt.Sprintf("reading values %s", path), err, "Pass a YAML or JSON file mapping field names to values.")
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, newCommandError(operation, fmt.Sprintf("decoding values %s", path), err, "Pass a YAML or JSON file mapping field names to values.")
	}
	return values, nil
}

// readErrors decodes a map of field paths to messages. A plain string is
// accepted in place of a list.
func readErrors(operation, path string) (map[string][]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newCommandError(operation, fmt.Sprintf("reading errors %s", path), err, "Pass a YAML or JSON file mapping field paths to messages.")
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, newCommandError(operation, fmt.Sprintf("decoding errors %s", path), err, "Pass a YAML or JSON file mapping field paths to messages.")
	}
	out := make(map[string][]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			out[key] = []string{v}
		case []any:
			for _, item := range v {
				out[key] = append(out[key], fmt.Sprint(item))
			}
		default:
			out[key] = []string{fmt.Sprint(v)}
		}
	}
	return out, nil
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
