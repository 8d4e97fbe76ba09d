package di

import (
	"errors"
	"reflect"
	"strconv"
)

var (
	// ErrNilTarget is returned when an injector runs against a nil service
	// or a service whose Val is nil.
	ErrNilTarget = errors.New("di: nil target service")

	// ErrNilDep is the generic form of NilDependencyServiceError.
	ErrNilDep = errors.New("di: nil dependency service")

	// ErrNilBind is the generic form of NilBindError.
	ErrNilBind = errors.New("di: nil bind function")
)

// DependencyKey names a dependency recorded in a Service's Deps bag.
//
// The composition root declares them as constants:
//
//	const (
//	  KeyKatana di.DependencyKey = "katana"
//	  KeyStore  di.DependencyKey = "store"
//	)
type DependencyKey string

// Key converts a string into a DependencyKey.
func Key(name string) DependencyKey { return DependencyKey(name) }

// DuplicateKeyError is returned when an injector records a key that the
// target Service already holds.
type DuplicateKeyError struct{ Key DependencyKey }

func (e DuplicateKeyError) Error() string {
	// di: duplicate dependency key "katana"
	return "di: duplicate dependency key " + strconv.Quote(string(e.Key))
}

// MissingDependencyError is returned by TryGetAs when the key is absent.
type MissingDependencyError struct{ Key DependencyKey }

func (e MissingDependencyError) Error() string {
	return "di: dependency " + strconv.Quote(string(e.Key)) + " missing"
}

// WrongTypeDependencyError is returned by TryGetAs when the key holds a value
// of another type.
type WrongTypeDependencyError struct {
	Key DependencyKey

	// GotType is the dynamic type of the stored value.
	GotType string
}

func (e WrongTypeDependencyError) Error() string {
	return "di: dependency " + strconv.Quote(string(e.Key)) + " has wrong type (" + e.GotType + ")"
}

// NilDependencyServiceError reports a nil dependency service for a key.
type NilDependencyServiceError struct{ Key DependencyKey }

func (e NilDependencyServiceError) Error() string {
	return "di: nil dependency service for key " + strconv.Quote(string(e.Key))
}

// Is lets errors.Is(err, ErrNilDep) match the keyed form.
func (e NilDependencyServiceError) Is(target error) bool { return target == ErrNilDep }

// NilBindError reports a nil bind function for a key.
type NilBindError struct{ Key DependencyKey }

func (e NilBindError) Error() string {
	return "di: nil bind function for key " + strconv.Quote(string(e.Key))
}

// Is lets errors.Is(err, ErrNilBind) match the keyed form.
func (e NilBindError) Is(target error) bool { return target == ErrNilBind }

// Service wraps a constructed value together with the dependencies injected
// into it.
//
// Deps is loose on purpose (map[DependencyKey]any) so that shared pointers,
// such as the one Katana held by every combatant, can be inspected after
// wiring. Typed access goes through GetAs / TryGetAs / MustGetAs.
type Service[T any] struct {
	Val  *T
	Deps map[DependencyKey]any
}

// Init calls ctor and returns a Service with an empty dependency bag.
func Init[T any](ctor func() *T) *Service[T] {
	return &Service[T]{Val: ctor(), Deps: make(map[DependencyKey]any)}
}

// Value returns the wrapped pointer.
func (s *Service[T]) Value() *T { return s.Val }

// Injector wires one dependency into a Service in place.
type Injector[T any] func(*Service[T]) error

// With applies inj. A nil injector is a no-op.
func (s *Service[T]) With(inj Injector[T]) (*Service[T], error) {
	if inj == nil {
		return s, nil
	}
	if err := inj(s); err != nil {
		return s, err
	}
	return s, nil
}

// WithAll applies injectors in order and stops at the first error.
func (s *Service[T]) WithAll(injs ...Injector[T]) (*Service[T], error) {
	for _, inj := range injs {
		if _, err := s.With(inj); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Injecting returns an Injector that records dep.Val under key and hands it
// to bind.
//
// The injector fails with ErrNilTarget, NilDependencyServiceError,
// NilBindError or DuplicateKeyError; on failure nothing is recorded and bind
// is not called.
func Injecting[T any, D any](
	key DependencyKey,
	dep *Service[D],
	bind func(target *T, dependency *D),
) Injector[T] {
	return func(s *Service[T]) error {
		if s == nil || s.Val == nil {
			return ErrNilTarget
		}
		if dep == nil || dep.Val == nil {
			return NilDependencyServiceError{Key: key}
		}
		if bind == nil {
			return NilBindError{Key: key}
		}
		if s.Deps == nil {
			s.Deps = make(map[DependencyKey]any)
		}
		if _, exists := s.Deps[key]; exists {
			return DuplicateKeyError{Key: key}
		}

		s.Deps[key] = dep.Val
		bind(s.Val, dep.Val)
		return nil
	}
}

// Has reports whether key was injected, whatever its type.
func (s *Service[T]) Has(key DependencyKey) bool {
	if s == nil || s.Deps == nil {
		return false
	}
	_, ok := s.Deps[key]
	return ok
}

// GetAny returns the raw recorded dependency.
func (s *Service[T]) GetAny(key DependencyKey) (any, bool) {
	if s == nil || s.Deps == nil {
		return nil, false
	}
	v, ok := s.Deps[key]
	return v, ok
}

// GetAs returns the dependency recorded under key as *D.
func GetAs[T any, D any](s *Service[T], key DependencyKey) (*D, bool) {
	raw, ok := s.GetAny(key)
	if !ok || raw == nil {
		return nil, false
	}
	d, ok := raw.(*D)
	return d, ok
}

// TryGetAs is GetAs with a typed error that separates "missing" from
// "wrong type".
func TryGetAs[T any, D any](s *Service[T], key DependencyKey) (*D, error) {
	raw, ok := s.GetAny(key)
	if !ok || raw == nil {
		return nil, MissingDependencyError{Key: key}
	}
	d, ok := raw.(*D)
	if !ok {
		return nil, WrongTypeDependencyError{Key: key, GotType: reflect.TypeOf(raw).String()}
	}
	return d, nil
}

// MustGetAs returns the dependency as *D or panics with the TryGetAs error.
func MustGetAs[T any, D any](s *Service[T], key DependencyKey) *D {
	d, err := TryGetAs[T, D](s, key)
	if err != nil {
		panic(err)
	}
	return d
}
