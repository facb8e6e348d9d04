// Package connectors loads structured documents from files. Each format has
// its own connector; connectors/factory picks one from the file extension.
package connectors

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Format names.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatYAML = "yaml"
)

// Connector exposes a parsed document.
type Connector interface {
	Format() string
	Path() string
	// Data returns the parsed document: decoded values for JSON and YAML,
	// the root *Element for XML.
	Data() any
}

// JSONConnector holds a decoded JSON document.
type JSONConnector struct {
	path string
	data any
}

// NewJSONConnector reads and decodes the JSON file at path.
func NewJSONConnector(path string) (*JSONConnector, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data any
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &JSONConnector{path: path, data: data}, nil
}

func (c *JSONConnector) Format() string { return FormatJSON }
func (c *JSONConnector) Path() string   { return c.path }
func (c *JSONConnector) Data() any      { return c.data }

// YAMLConnector holds a decoded YAML document.
type YAMLConnector struct {
	path string
	data any
}

// NewYAMLConnector reads and decodes the YAML file at path.
func NewYAMLConnector(path string) (*YAMLConnector, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data any
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &YAMLConnector{path: path, data: data}, nil
}

func (c *YAMLConnector) Format() string { return FormatYAML }
func (c *YAMLConnector) Path() string   { return c.path }
func (c *YAMLConnector) Data() any      { return c.data }
