package suggest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/form"
)

// DecodeChoices reads a YAML or JSON list whose entries are plain strings or
// {value, label} mappings.
func DecodeChoices(data []byte) ([]form.Choice, error) {
	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("suggest: decode choices: %w", err)
	}
	choices := make([]form.Choice, 0, len(nodes))
	for idx := range nodes {
		node := &nodes[idx]
		var choice form.Choice
		switch node.Kind {
		case yaml.ScalarNode:
			choice.Value = node.Value
		case yaml.MappingNode:
			if err := node.Decode(&choice); err != nil {
				return nil, fmt.Errorf("suggest: choice %d: %w", idx, err)
			}
		default:
			return nil, fmt.Errorf("suggest: choice %d: expected a string or mapping", idx)
		}
		if choice.Value == "" {
			return nil, fmt.Errorf("suggest: choice %d has no value", idx)
		}
		choices = append(choices, choice)
	}
	return choices, nil
}

// LoadChoicesFile decodes the choice list at path.
func LoadChoicesFile(path string) ([]form.Choice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("suggest: read %s: %w", path, err)
	}
	return DecodeChoices(data)
}
