package factory

import (
	"github.com/kilianp07/foundry/connectors"
	corefactory "github.com/kilianp07/foundry/core/factory"
)

// Registry picks a connector from a file path.
type Registry = corefactory.Registry[string, string, connectors.Connector]

// Suffixes bound by NewRegistry, in registration order.
var Suffixes = []string{".json", ".xml", ".yaml", ".yml"}

// NewRegistry returns a registry binding each known file suffix to its
// connector. The path is both the discriminator and the producer argument.
func NewRegistry(opts ...corefactory.Option) (*Registry, error) {
	opts = append([]corefactory.Option{corefactory.WithName("connectors")}, opts...)
	reg := corefactory.NewRegistry[string, string, connectors.Connector](opts...)
	producers := map[string]corefactory.Producer[string, connectors.Connector]{
		".json": func(path string) (connectors.Connector, error) { return connectors.NewJSONConnector(path) },
		".xml":  func(path string) (connectors.Connector, error) { return connectors.NewXMLConnector(path) },
		".yaml": func(path string) (connectors.Connector, error) { return connectors.NewYAMLConnector(path) },
		".yml":  func(path string) (connectors.Connector, error) { return connectors.NewYAMLConnector(path) },
	}
	for _, s := range Suffixes {
		if err := reg.RegisterMatch(s, corefactory.Suffix(s), producers[s]); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Connect opens path with the connector matching its suffix.
func Connect(reg *Registry, path string) (connectors.Connector, error) {
	return reg.Create(path, path)
}
