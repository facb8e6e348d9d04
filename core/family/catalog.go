package family

import (
	"errors"
	"fmt"

	"github.com/kilianp07/foundry/core/factory"
)

// ErrSchemaMismatch is returned when a constructor builds a family of another schema.
var ErrSchemaMismatch = errors.New("family schema mismatch")

// Constructor builds a family from raw settings.
type Constructor = factory.Producer[map[string]any, *Factory]

// Catalog selects families of one schema by name.
type Catalog struct {
	schema *Schema
	reg    *factory.Registry[string, map[string]any, *Factory]
}

// NewCatalog creates an empty catalog for schema. The registry is named
// after the schema unless opts say otherwise.
func NewCatalog(schema *Schema, opts ...factory.Option) *Catalog {
	opts = append([]factory.Option{factory.WithName(schema.Name())}, opts...)
	return &Catalog{schema: schema, reg: factory.NewRegistry[string, map[string]any, *Factory](opts...)}
}

// Register adds a family constructor under name.
func (c *Catalog) Register(name string, ctor Constructor) error {
	if ctor == nil {
		return c.reg.Register(name, nil)
	}
	return c.reg.Register(name, func(conf map[string]any) (*Factory, error) {
		f, err := ctor(conf)
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, fmt.Errorf("constructor returned no family")
		}
		if f.Schema() != c.schema {
			return nil, fmt.Errorf("%w: %s is a %s family, want %s", ErrSchemaMismatch, f.Name(), f.Schema().Name(), c.schema.Name())
		}
		return f, nil
	})
}

// Select builds the family registered under name.
func (c *Catalog) Select(name string, conf map[string]any) (*Factory, error) {
	return c.reg.Create(name, conf)
}

// Names returns the registered family names in registration order.
func (c *Catalog) Names() []string { return c.reg.Keys() }

// Schema returns the catalog schema.
func (c *Catalog) Schema() *Schema { return c.schema }
