package family

import (
	"errors"
	"fmt"

	"github.com/kilianp07/foundry/core/factory"
)

var (
	// ErrUndeclaredRole is returned when a binding targets a role outside the schema.
	ErrUndeclaredRole = errors.New("role not declared by schema")
	// ErrDuplicateBinding is returned when a role is bound twice.
	ErrDuplicateBinding = errors.New("role bound twice")
	// ErrRoleType is returned when a role instance does not have the requested type.
	ErrRoleType = errors.New("role instance has unexpected type")
	// ErrSchemaRequired is returned when New is called without a schema.
	ErrSchemaRequired = errors.New("schema is required")
)

// Producer builds the instance of a role.
type Producer[T any] func() (T, error)

// Binding pairs a role with its producer.
type Binding struct {
	role    string
	produce func() (any, error)
}

// Bind binds p to r.
func Bind[T any](r Role[T], p Producer[T]) Binding {
	b := Binding{role: r.Name()}
	if p != nil {
		b.produce = func() (any, error) { return p() }
	}
	return b
}

// Factory is a complete, immutable bundle of role producers.
type Factory struct {
	name      string
	schema    *Schema
	producers map[string]func() (any, error)
}

// New builds a family and checks it against schema. Every declared role
// without a producer is reported as an UnboundRoleError.
func New(name string, schema *Schema, bindings ...Binding) (*Factory, error) {
	if schema == nil {
		return nil, fmt.Errorf("family %s: %w", name, ErrSchemaRequired)
	}
	f := &Factory{name: name, schema: schema, producers: make(map[string]func() (any, error), len(bindings))}
	bound := make(map[string]struct{}, len(bindings))
	for _, b := range bindings {
		if !schema.Declares(b.role) {
			return nil, fmt.Errorf("family %s: %w: %q", name, ErrUndeclaredRole, b.role)
		}
		if _, ok := bound[b.role]; ok {
			return nil, fmt.Errorf("family %s: %w: %q", name, ErrDuplicateBinding, b.role)
		}
		bound[b.role] = struct{}{}
		if b.produce == nil {
			continue
		}
		f.producers[b.role] = b.produce
	}
	var missing []error
	for _, role := range schema.roles {
		if _, ok := f.producers[role]; !ok {
			missing = append(missing, &factory.UnboundRoleError{Family: name, Role: role})
		}
	}
	if len(missing) > 0 {
		return nil, errors.Join(missing...)
	}
	return f, nil
}

// Name returns the family name.
func (f *Factory) Name() string { return f.name }

// Schema returns the schema the family satisfies.
func (f *Factory) Schema() *Schema { return f.schema }

// Make builds the instance of role.
func (f *Factory) Make(role string) (any, error) {
	produce, ok := f.producers[role]
	if !ok {
		return nil, &factory.UnboundRoleError{Family: f.name, Role: role}
	}
	inst, err := produce()
	if err != nil {
		return nil, &factory.ProducerError{Scope: f.name, Key: role, Err: err}
	}
	return inst, nil
}

// Make builds the instance of r from f.
func Make[T any](f *Factory, r Role[T]) (T, error) {
	var zero T
	inst, err := f.Make(r.Name())
	if err != nil {
		return zero, err
	}
	v, ok := inst.(T)
	if !ok {
		return zero, fmt.Errorf("family %s: role %q: %w: %T", f.name, r.Name(), ErrRoleType, inst)
	}
	return v, nil
}
