package naming

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/restgen/restgen/pkg/errors"
)

// ModelEntry maps one kebab-case model name to its table.
type ModelEntry struct {
	Model string
	Table string
}

// ModelMap is an ordered model to table mapping. It reads and writes as a
// YAML mapping and keeps the key order of the document.
type ModelMap []ModelEntry

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *ModelMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*m = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return errors.NewConfigError("models must be a mapping of model name to table name", nil)
	}

	entries := make(ModelMap, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
			return errors.NewConfigError(fmt.Sprintf("models: line %d: expected model: table", key.Line), nil)
		}
		entries = append(entries, ModelEntry{Model: key.Value, Table: value.Value})
	}
	*m = entries
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m ModelMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range m {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Model},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Table},
		)
	}
	return node, nil
}

// Models returns the model names in document order.
func (m ModelMap) Models() []string {
	models := make([]string, len(m))
	for i, e := range m {
		models[i] = e.Model
	}
	return models
}

// Tables returns the table names in document order.
func (m ModelMap) Tables() []string {
	tables := make([]string, len(m))
	for i, e := range m {
		tables[i] = e.Table
	}
	return tables
}
