// Package family implements role-based abstract factories.
//
// A Schema declares the closed, ordered set of roles a kind of family must
// provide, for example a "world" with a primary-entity and an obstacle-entity.
// Roles are typed: Role[T] carries the capability contract T that the bound
// producer must satisfy, so the compiler checks that a frog is a Character
// and a bug is a Hazard.
//
// New validates a family against its schema before any producer runs: every
// declared role must be bound exactly once and nothing undeclared may be
// bound. Families are immutable once built and share no state, so several
// can be used side by side.
//
// A Catalog selects a family by name. It is a factory.Registry whose
// producers are family constructors, so family selection follows the same
// ordering, duplicate and error rules as any other registry lookup.
package family
