package systems

import (
	"reflect"

	"github.com/matzehuels/sysgraph/pkg/errors"
)

// Key identifies one system kind. Keys are assigned by the registrant and must
// pass [errors.ValidateKey].
type Key string

// System is implemented by everything a [Manager] owns.
type System interface {
	// Name is a display name used in diagnostics.
	Name() string
	// Destroy releases the system. The Manager calls it at most once.
	Destroy() error
}

// Kind describes how to construct one kind of system.
type Kind[T System] struct {
	// Key is the identity under which instances are registered.
	Key Key
	// Requires lists the keys this kind depends on. Nil means none.
	Requires []Key
	// Load is the construction entrypoint. It should load every key in
	// Requires through the Manager before building the system.
	Load func(*Manager) (T, error)
}

// Configured is a [Kind] whose entrypoint takes extra configuration.
// Use [LoadWith] to construct it.
type Configured[T System, C any] struct {
	Kind[T]
	LoadWith func(*Manager, C) (T, error)
}

func (k Kind[T]) validate() error {
	if err := errors.ValidateKey(string(k.Key)); err != nil {
		return err
	}
	for _, r := range k.Requires {
		if r == k.Key {
			return errors.New(errors.ErrCodeInvalidKey, "system %q requires itself", k.Key)
		}
		if err := errors.ValidateKey(string(r)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidKey, err, "system %q has an invalid requirement", k.Key)
		}
	}
	return nil
}

// isNil reports whether s is nil or a typed nil behind the interface.
func isNil(s System) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
