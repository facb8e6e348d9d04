package factory

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedDiscriminator is returned when no binding matches the input.
	ErrUnsupportedDiscriminator = errors.New("unsupported discriminator")
	// ErrDuplicateDiscriminator is returned when a key is registered twice and overwrite is disabled.
	ErrDuplicateDiscriminator = errors.New("discriminator already registered")
	// ErrUnboundRole indicates a family role without a producer.
	ErrUnboundRole = errors.New("role has no producer")
	// ErrProducerFailure wraps any error returned by a producer.
	ErrProducerFailure = errors.New("producer failed")
	// ErrCompositionFailure indicates an object graph could not be assembled.
	ErrCompositionFailure = errors.New("composition failed")
	// ErrNilProducer is returned when registering a nil producer.
	ErrNilProducer = errors.New("producer is nil")
)

// UnsupportedDiscriminatorError carries the input no binding matched.
type UnsupportedDiscriminatorError struct {
	Registry      string
	Discriminator any
}

func (e *UnsupportedDiscriminatorError) Error() string {
	if e.Registry == "" {
		return fmt.Sprintf("unsupported discriminator %v", e.Discriminator)
	}
	return fmt.Sprintf("%s: unsupported discriminator %v", e.Registry, e.Discriminator)
}

func (e *UnsupportedDiscriminatorError) Is(target error) bool {
	return target == ErrUnsupportedDiscriminator
}

// DuplicateDiscriminatorError carries the key that was already bound.
type DuplicateDiscriminatorError struct {
	Registry      string
	Discriminator any
}

func (e *DuplicateDiscriminatorError) Error() string {
	if e.Registry == "" {
		return fmt.Sprintf("discriminator %v already registered", e.Discriminator)
	}
	return fmt.Sprintf("%s: discriminator %v already registered", e.Registry, e.Discriminator)
}

func (e *DuplicateDiscriminatorError) Is(target error) bool {
	return target == ErrDuplicateDiscriminator
}

// UnboundRoleError names the family and the role left without a producer.
type UnboundRoleError struct {
	Family string
	Role   string
}

func (e *UnboundRoleError) Error() string {
	return fmt.Sprintf("family %s: role %q has no producer", e.Family, e.Role)
}

func (e *UnboundRoleError) Is(target error) bool {
	return target == ErrUnboundRole
}

// ProducerError wraps a producer failure with the registry or family (Scope)
// and the discriminator or role (Key) that selected the producer.
type ProducerError struct {
	Scope string
	Key   any
	Err   error
}

func (e *ProducerError) Error() string {
	return fmt.Sprintf("%s: producer for %v failed: %v", e.Scope, e.Key, e.Err)
}

func (e *ProducerError) Is(target error) bool {
	return target == ErrProducerFailure
}

func (e *ProducerError) Unwrap() error { return e.Err }

// CompositionError reports the role whose construction aborted a composition.
// Err holds the role failure joined with any release failures of the members
// built before it.
type CompositionError struct {
	Family string
	Role   string
	Err    error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("compose %s: role %q: %v", e.Family, e.Role, e.Err)
}

func (e *CompositionError) Is(target error) bool {
	return target == ErrCompositionFailure
}

func (e *CompositionError) Unwrap() error { return e.Err }
