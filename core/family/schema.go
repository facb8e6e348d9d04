package family

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrEmptySchema is returned when a schema declares no role.
	ErrEmptySchema = errors.New("schema declares no role")
	// ErrDuplicateRole is returned when a schema declares a role twice.
	ErrDuplicateRole = errors.New("role declared twice")
	// ErrRoleName is returned for blank role names or names with surrounding
	// whitespace.
	ErrRoleName = errors.New("invalid role name")
)

// RoleKey is implemented by every Role[T].
type RoleKey interface {
	Name() string
}

// Role is a named slot whose producer yields a T.
type Role[T any] struct {
	name string
}

// NewRole declares a role.
func NewRole[T any](name string) Role[T] { return Role[T]{name: name} }

// Name returns the role name.
func (r Role[T]) Name() string { return r.name }

func (r Role[T]) String() string { return r.name }

// Schema is the closed, ordered set of roles of a family kind.
type Schema struct {
	name     string
	roles    []string
	declared map[string]struct{}
}

// NewSchema declares a schema. Role order is the construction order used by
// compositions.
func NewSchema(name string, roles ...RoleKey) (*Schema, error) {
	if len(roles) == 0 {
		return nil, fmt.Errorf("schema %s: %w", name, ErrEmptySchema)
	}
	s := &Schema{name: name, declared: make(map[string]struct{}, len(roles))}
	for _, r := range roles {
		n := r.Name()
		if n == "" || strings.TrimSpace(n) != n {
			return nil, fmt.Errorf("schema %s: %w: %q", name, ErrRoleName, n)
		}
		if _, ok := s.declared[n]; ok {
			return nil, fmt.Errorf("schema %s: %w: %s", name, ErrDuplicateRole, n)
		}
		s.declared[n] = struct{}{}
		s.roles = append(s.roles, n)
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error. It is meant for
// package-level schema declarations.
func MustSchema(name string, roles ...RoleKey) *Schema {
	s, err := NewSchema(name, roles...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Roles returns the declared roles in declaration order.
func (s *Schema) Roles() []string { return slices.Clone(s.roles) }

// Declares reports whether role belongs to the schema.
func (s *Schema) Declares(role string) bool {
	_, ok := s.declared[role]
	return ok
}
