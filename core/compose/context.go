// Package compose assembles an object graph from a family and owns it.
//
// A Context moves Uninitialized -> Composing -> Ready, or to Failed when any
// role cannot be built. Construction is all or nothing: members built before a
// failing role are released in reverse order and never exposed. Members are
// only reachable through Use, which lends a member to a callback for the
// duration of the call.
package compose

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/foundry/core/factory"
	"github.com/kilianp07/foundry/core/family"
)

var (
	// ErrInvalidState is returned when Compose is called on a used context.
	ErrInvalidState = errors.New("context already composed")
	// ErrNotReady is returned when a member is requested before the graph is ready.
	ErrNotReady = errors.New("context not ready")
	// ErrFamilyRequired is returned when Compose receives a nil family.
	ErrFamilyRequired = errors.New("family is required")
	// ErrProducerPanic wraps the value of a producer that panicked.
	ErrProducerPanic = errors.New("producer panicked")
)

// State is the lifecycle state of a Context.
type State int

const (
	StateUninitialized State = iota
	StateComposing
	StateReady
	StateFailed
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateComposing:
		return "composing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateReleased:
		return "released"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Releaser is implemented by members holding resources. io.Closer members
// are released through Close.
type Releaser interface {
	Release() error
}

// Option customizes a Context.
type Option func(*Context)

// WithObserver reports role construction and composition events to o.
func WithObserver(o factory.Observer) Option {
	return func(c *Context) {
		if o != nil {
			c.observer = o
		}
	}
}

type member struct {
	role string
	inst any
}

// Context builds and owns the object graph of one family.
type Context struct {
	mu       sync.RWMutex
	id       string
	state    State
	family   string
	members  []member
	observer factory.Observer
}

// New returns an uninitialized context.
func New(opts ...Option) *Context {
	c := &Context{id: uuid.NewString(), observer: factory.NopObserver{}}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Compose builds a ready context from f.
func Compose(f *family.Factory, opts ...Option) (*Context, error) {
	c := New(opts...)
	if err := c.Compose(f); err != nil {
		return nil, err
	}
	return c, nil
}

// Compose builds every role of f once, in schema order. It may only be
// called on an uninitialized context; compose a new context to switch
// families.
func (c *Context) Compose(f *family.Factory) error {
	if f == nil {
		return ErrFamilyRequired
	}
	c.mu.Lock()
	if c.state != StateUninitialized {
		st := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrInvalidState, st)
	}
	c.state = StateComposing
	c.family = f.Name()
	c.mu.Unlock()

	start := time.Now()
	members, err := c.build(f)

	c.mu.Lock()
	if err != nil {
		c.state = StateFailed
	} else {
		c.members = members
		c.state = StateReady
	}
	c.mu.Unlock()

	c.observer.Observe(factory.Event{
		Op:       factory.OpCompose,
		Scope:    f.Name(),
		Key:      c.id,
		Start:    start,
		Duration: time.Since(start),
		Err:      err,
	})
	return err
}

func (c *Context) build(f *family.Factory) ([]member, error) {
	roles := f.Schema().Roles()
	members := make([]member, 0, len(roles))
	for _, role := range roles {
		start := time.Now()
		inst, err := makeRole(f, role)
		c.observer.Observe(factory.Event{
			Op:       factory.OpMake,
			Scope:    f.Name(),
			Key:      role,
			Start:    start,
			Duration: time.Since(start),
			Err:      err,
		})
		if err != nil {
			if rerr := release(members); rerr != nil {
				err = errors.Join(err, rerr)
			}
			return nil, &factory.CompositionError{Family: f.Name(), Role: role, Err: err}
		}
		members = append(members, member{role: role, inst: inst})
	}
	return members, nil
}

// makeRole turns a producer panic into an error so the members already built
// are rolled back like on any other failure.
func makeRole(f *family.Factory, role string) (inst any, err error) {
	defer func() {
		if r := recover(); r != nil {
			inst, err = nil, fmt.Errorf("%w: %v", ErrProducerPanic, r)
		}
	}()
	return f.Make(role)
}

// release frees members in reverse construction order.
func release(members []member) error {
	var errs []error
	for i := len(members) - 1; i >= 0; i-- {
		m := members[i]
		var err error
		switch r := m.inst.(type) {
		case Releaser:
			err = r.Release()
		case io.Closer:
			err = r.Close()
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", m.role, err))
		}
	}
	return errors.Join(errs...)
}

// ID identifies the composition in logs and events.
func (c *Context) ID() string { return c.id }

// State returns the current lifecycle state.
func (c *Context) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Family returns the name of the composed family.
func (c *Context) Family() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.family
}

// Roles returns the roles of the graph in construction order.
func (c *Context) Roles() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	roles := make([]string, len(c.members))
	for i, m := range c.members {
		roles[i] = m.role
	}
	return roles
}

func (c *Context) member(role string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != StateReady {
		return nil, fmt.Errorf("%w: %s", ErrNotReady, c.state)
	}
	i := slices.IndexFunc(c.members, func(m member) bool { return m.role == role })
	if i < 0 {
		return nil, &factory.UnboundRoleError{Family: c.family, Role: role}
	}
	return c.members[i].inst, nil
}

// Use lends the member of r to fn. The member must not be retained after fn
// returns. Use does not hold the context lock while fn runs: a Close racing
// with fn may release the lent member.
func Use[T any](c *Context, r family.Role[T], fn func(T) error) error {
	inst, err := c.member(r.Name())
	if err != nil {
		return err
	}
	v, ok := inst.(T)
	if !ok {
		return fmt.Errorf("role %q: %w: %T", r.Name(), family.ErrRoleType, inst)
	}
	return fn(v)
}

// Close releases the graph. Calling Close more than once is a no-op. Close
// must not run while a Use callback is in flight.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return nil
	}
	err := release(c.members)
	c.members = nil
	c.state = StateReleased
	return err
}
