package factory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// ModuleConfig contains the type name and raw configuration for a module.
type ModuleConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Producer constructs an instance of T from the construction arguments.
type Producer[A, T any] func(args A) (T, error)

// Matcher reports whether a binding serves the given input.
type Matcher[K comparable] func(input K) bool

// Suffix matches string inputs ending with s.
func Suffix(s string) Matcher[string] {
	return func(input string) bool { return strings.HasSuffix(input, s) }
}

// Options is the configuration form of the registry options shared by every
// registry of a process. Names are fixed by the code building each registry.
type Options struct {
	AllowOverwrite bool `json:"allow_overwrite"`
}

// Apply converts the options into functional options.
func (o Options) Apply() []Option {
	return []Option{WithOverwrite(o.AllowOverwrite)}
}

type settings struct {
	name           string
	allowOverwrite bool
	observer       Observer
}

// Option customizes a Registry.
type Option func(*settings)

// WithName names the registry in errors and events.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithOverwrite allows a later Register to replace an existing binding.
func WithOverwrite(allow bool) Option {
	return func(s *settings) { s.allowOverwrite = allow }
}

// WithObserver sets the observer notified on every Create.
func WithObserver(o Observer) Option {
	return func(s *settings) {
		if o != nil {
			s.observer = o
		}
	}
}

type binding[K comparable, A, T any] struct {
	key     K
	match   Matcher[K]
	produce Producer[A, T]
}

func (b binding[K, A, T]) matches(input K) bool {
	if b.match == nil {
		return input == b.key
	}
	return b.match(input)
}

// Registry stores producers keyed by discriminator, in registration order.
type Registry[K comparable, A, T any] struct {
	mu       sync.RWMutex
	settings settings
	bindings []binding[K, A, T]
	index    map[K]int
}

// NewRegistry returns an empty registry. Overwrite is disabled by default.
func NewRegistry[K comparable, A, T any](opts ...Option) *Registry[K, A, T] {
	s := settings{observer: NopObserver{}}
	for _, o := range opts {
		o(&s)
	}
	return &Registry[K, A, T]{settings: s, index: make(map[K]int)}
}

// Name returns the registry name.
func (r *Registry[K, A, T]) Name() string { return r.settings.name }

// Register binds key to p. The binding matches inputs equal to key.
func (r *Registry[K, A, T]) Register(key K, p Producer[A, T]) error {
	return r.register(binding[K, A, T]{key: key, produce: p})
}

// RegisterMatch binds key to p; the binding matches any input accepted by m.
// Key identifies the binding for duplicate detection and Resolve.
func (r *Registry[K, A, T]) RegisterMatch(key K, m Matcher[K], p Producer[A, T]) error {
	if m == nil {
		return fmt.Errorf("%s: nil matcher for %v", r.scope(), key)
	}
	return r.register(binding[K, A, T]{key: key, match: m, produce: p})
}

func (r *Registry[K, A, T]) register(b binding[K, A, T]) error {
	if b.produce == nil {
		return fmt.Errorf("%s: %w for %v", r.scope(), ErrNilProducer, b.key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.index[b.key]; ok {
		if !r.settings.allowOverwrite {
			return &DuplicateDiscriminatorError{Registry: r.settings.name, Discriminator: b.key}
		}
		r.bindings[i] = b
		return nil
	}
	r.index[b.key] = len(r.bindings)
	r.bindings = append(r.bindings, b)
	return nil
}

func (r *Registry[K, A, T]) lookup(input K) (binding[K, A, T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bindings {
		if b.matches(input) {
			return b, true
		}
	}
	return binding[K, A, T]{}, false
}

// Create builds an instance with the first binding matching input. The
// producer runs outside the registry lock and its result is returned as is.
func (r *Registry[K, A, T]) Create(input K, args A) (T, error) {
	start := time.Now()
	inst, err := r.create(input, args)
	r.settings.observer.Observe(Event{
		Op:       OpCreate,
		Scope:    r.settings.name,
		Key:      fmt.Sprint(input),
		Start:    start,
		Duration: time.Since(start),
		Err:      err,
	})
	return inst, err
}

func (r *Registry[K, A, T]) create(input K, args A) (T, error) {
	var zero T
	b, ok := r.lookup(input)
	if !ok {
		return zero, &UnsupportedDiscriminatorError{Registry: r.settings.name, Discriminator: input}
	}
	inst, err := b.produce(args)
	if err != nil {
		return zero, &ProducerError{Scope: r.scope(), Key: b.key, Err: err}
	}
	return inst, nil
}

// Resolve returns the key of the binding that would serve input.
func (r *Registry[K, A, T]) Resolve(input K) (K, bool) {
	b, ok := r.lookup(input)
	return b.key, ok
}

// Keys returns the bound keys in registration order.
func (r *Registry[K, A, T]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]K, len(r.bindings))
	for i, b := range r.bindings {
		keys[i] = b.key
	}
	return keys
}

// Len returns the number of bindings.
func (r *Registry[K, A, T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}

func (r *Registry[K, A, T]) scope() string {
	if r.settings.name == "" {
		return "registry"
	}
	return r.settings.name
}

// CreateModule instantiates a module based on its configuration.
func CreateModule[T any](r *Registry[string, map[string]any, T], cfg ModuleConfig) (T, error) {
	return r.Create(cfg.Type, cfg.Conf)
}

// Decode fills out the provided struct using json tags.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: out, WeaklyTypedInput: true})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}
