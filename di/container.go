package di

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BindingKey identifies a binding in a Container.
//
// Keys play the role of symbols: one key, one binding. Derived bindings refer
// to their inputs by key.
type BindingKey string

// Scope controls how often a binding's factory runs.
type Scope int

const (
	// Transient bindings run their factory on every resolve.
	Transient Scope = iota
	// Singleton bindings run their factory once and cache a successful value.
	Singleton
)

func (s Scope) String() string {
	switch s {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	default:
		return "scope(" + strconv.Itoa(int(s)) + ")"
	}
}

var (
	// ErrNilContainer is returned by every operation on a nil *Container.
	ErrNilContainer = errors.New("di: nil container")

	// ErrNilFactory is returned when a binding is registered without a factory.
	ErrNilFactory = errors.New("di: nil factory")

	// ErrFactoryPanic wraps a panic raised inside a factory.
	ErrFactoryPanic = errors.New("di: panic during factory")
)

// DuplicateBindingError is returned when a key is bound twice.
type DuplicateBindingError struct{ Key BindingKey }

func (e DuplicateBindingError) Error() string {
	return "di: duplicate binding " + strconv.Quote(string(e.Key))
}

// UnboundKeyError is returned when a resolve reaches a key with no binding.
type UnboundKeyError struct{ Key BindingKey }

func (e UnboundKeyError) Error() string {
	return "di: no binding for " + strconv.Quote(string(e.Key))
}

// WrongTypeBindingError is returned when a resolved value does not have the
// type its consumer asked for.
type WrongTypeBindingError struct {
	Key  BindingKey
	Want string
	Got  string
}

func (e WrongTypeBindingError) Error() string {
	return "di: binding " + strconv.Quote(string(e.Key)) + " is " + e.Got + ", want " + e.Want
}

// CycleError is returned when a binding depends on itself, directly or not.
// Path starts and ends with the same key.
type CycleError struct{ Path []BindingKey }

func (e CycleError) Error() string {
	parts := make([]string, len(e.Path))
	for i, k := range e.Path {
		parts[i] = strconv.Quote(string(k))
	}
	return "di: binding cycle " + strings.Join(parts, " -> ")
}

// ResolveError carries the key whose factory failed.
type ResolveError struct {
	Key BindingKey
	Err error
}

func (e ResolveError) Error() string {
	return "di: resolve " + strconv.Quote(string(e.Key)) + ": " + e.Err.Error()
}

func (e ResolveError) Unwrap() error { return e.Err }

type factory func(ctx context.Context, deps []any) (any, error)

type binding struct {
	key   BindingKey
	scope Scope
	deps  []BindingKey
	build factory

	mu   sync.Mutex
	done bool
	val  any
}

func (b *binding) cached() (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.val, b.done
}

// keep stores v unless another resolve got there first, and returns the
// value every caller should see.
func (b *binding) keep(v any) any {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.done {
		b.val, b.done = v, true
	}
	return b.val
}

func (b *binding) call(ctx context.Context, deps []any) (val any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			val = nil
			err = fmt.Errorf("%w: %v", ErrFactoryPanic, rec)
		}
	}()
	return b.build(ctx, deps)
}

// Container maps binding keys to factories and resolves them on demand.
//
// There is no reflection-driven construction and no lifecycle hooks.
// Objects are still wired explicitly (see Service and Injecting); the
// container only answers "give me the value for this key", including values
// derived from other keys.
//
// A Container is safe for concurrent use.
type Container struct {
	mu       sync.RWMutex
	bindings map[BindingKey]*binding
	logger   *zap.Logger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for resolution tracing. nil means no logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l == nil {
			l = zap.NewNop()
		}
		c.logger = l
	}
}

// NewContainer returns an empty Container.
func NewContainer(opts ...Option) *Container {
	c := &Container{
		bindings: make(map[BindingKey]*binding),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Container) bind(b *binding) error {
	if c == nil {
		return ErrNilContainer
	}
	if b.build == nil {
		return ErrNilFactory
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.bindings[b.key]; exists {
		return DuplicateBindingError{Key: b.key}
	}
	c.bindings[b.key] = b
	c.logger.Debug("binding registered",
		zap.String("key", string(b.key)),
		zap.Stringer("scope", b.scope),
		zap.Int("deps", len(b.deps)),
	)
	return nil
}

// BindConstant binds key to v. Every resolve returns v itself.
func BindConstant[T any](c *Container, key BindingKey, v T) error {
	return c.bind(&binding{
		key:   key,
		scope: Singleton,
		build: func(context.Context, []any) (any, error) { return v, nil },
		done:  true,
		val:   v,
	})
}

// BindFactory binds key to fn.
func BindFactory[T any](c *Container, key BindingKey, scope Scope, fn func(ctx context.Context) (T, error)) error {
	if fn == nil {
		return ErrNilFactory
	}
	return c.bind(&binding{
		key:   key,
		scope: scope,
		build: func(ctx context.Context, _ []any) (any, error) { return fn(ctx) },
	})
}

// BindDerived binds key to a value computed from the value bound under dep.
//
// dep is resolved first (honoring its own scope), checked against D, and
// passed to fn. Chaining derived bindings builds multi-stage resolutions.
func BindDerived[D any, T any](
	c *Container,
	key BindingKey,
	scope Scope,
	dep BindingKey,
	fn func(ctx context.Context, in D) (T, error),
) error {
	if fn == nil {
		return ErrNilFactory
	}
	return c.bind(&binding{
		key:   key,
		scope: scope,
		deps:  []BindingKey{dep},
		build: func(ctx context.Context, deps []any) (any, error) {
			in, ok := deps[0].(D)
			if !ok {
				return nil, WrongTypeBindingError{Key: dep, Want: typeName[D](), Got: dynamicTypeName(deps[0])}
			}
			return fn(ctx, in)
		},
	})
}

// Has reports whether key is bound.
func (c *Container) Has(key BindingKey) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[key]
	return ok
}

// Keys returns the bound keys in sorted order.
func (c *Container) Keys() []BindingKey {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	keys := make([]BindingKey, 0, len(c.bindings))
	for k := range c.bindings {
		keys = append(keys, k)
	}
	c.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Get resolves key and returns the untyped value.
func (c *Container) Get(ctx context.Context, key BindingKey) (any, error) {
	if c == nil {
		return nil, ErrNilContainer
	}
	log := c.logger.With(zap.String("resolution_id", uuid.NewString()))
	return c.resolve(ctx, key, nil, log)
}

// Resolve resolves key and asserts the value to T.
func Resolve[T any](ctx context.Context, c *Container, key BindingKey) (T, error) {
	var zero T
	raw, err := c.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	v, ok := raw.(T)
	if !ok {
		return zero, WrongTypeBindingError{Key: key, Want: typeName[T](), Got: dynamicTypeName(raw)}
	}
	return v, nil
}

func (c *Container) resolve(ctx context.Context, key BindingKey, path []BindingKey, log *zap.Logger) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, k := range path {
		if k == key {
			cycle := append(append([]BindingKey(nil), path...), key)
			return nil, CycleError{Path: cycle}
		}
	}

	c.mu.RLock()
	b, ok := c.bindings[key]
	c.mu.RUnlock()
	if !ok {
		return nil, UnboundKeyError{Key: key}
	}

	if b.scope == Singleton {
		if v, ok := b.cached(); ok {
			log.Debug("binding cached", zap.String("key", string(key)))
			return v, nil
		}
	}

	next := append(path[:len(path):len(path)], key)
	args := make([]any, len(b.deps))
	for i, dep := range b.deps {
		v, err := c.resolve(ctx, dep, next, log)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	val, err := b.call(ctx, args)
	if err != nil {
		log.Debug("binding failed", zap.String("key", string(key)), zap.Error(err))
		return nil, ResolveError{Key: key, Err: err}
	}
	if b.scope == Singleton {
		val = b.keep(val)
	}

	log.Debug("binding resolved",
		zap.String("key", string(key)),
		zap.Stringer("scope", b.scope),
	)
	return val, nil
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func dynamicTypeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
