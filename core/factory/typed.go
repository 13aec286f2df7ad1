package factory

import (
	"fmt"
	"sync"

	"github.com/kilianp07/simfactory/core/events"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/core/object"
)

// Typed is a factory that only admits objects implementing T.
//
// Built-in prototypes are registered by the seed function the first time an
// object is created.
type Typed[T object.Object] struct {
	base  *Factory
	entry string
	seed  func(*Typed[T]) error
	once  sync.Once
	err   error
}

// NewTyped returns a factory for the family named family. entryPoint is the
// symbol resolved in modules. seed, when not nil, registers the built-in
// prototypes.
func NewTyped[T object.Object](family, entryPoint, dsoPath string, seed func(*Typed[T]) error, opts ...Option) (*Typed[T], error) {
	f, err := New(dsoPath, append([]Option{WithFamily(family)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Typed[T]{base: f, entry: entryPoint, seed: seed}, nil
}

// Factory returns the underlying untyped factory.
func (t *Typed[T]) Factory() *Factory { return t.base }

// EntryPoint returns the symbol resolved in modules.
func (t *Typed[T]) EntryPoint() string { return t.entry }

// Seed registers the built-in prototypes if that has not happened yet.
func (t *Typed[T]) Seed() error {
	t.once.Do(func() {
		if t.seed != nil {
			t.err = t.seed(t)
		}
	})
	return t.err
}

// check reports whether o belongs to the family. Type markers of admitted
// objects are remembered; a known marker whose value does not implement T
// comes from a module built against a different copy of the family types.
func (t *Typed[T]) check(o object.Object, op string) (T, error) {
	var zero T
	if o == nil {
		return zero, t.base.warn(fmt.Errorf("%s: %w: null object", op, ErrNilObject), nil)
	}
	marker := object.TypeID(o)
	if v, ok := o.(T); ok {
		t.base.AddKnownTypeID(marker)
		return v, nil
	}
	if t.base.IsKnownTypeID(marker) {
		return zero, t.base.warn(fmt.Errorf("%s: %w: %s has a known type marker %s but a different type identity",
			op, ErrWrongFamily, o.Name(), marker), map[string]any{"type": o.Type()})
	}
	return zero, t.base.warn(fmt.Errorf("%s: %w: %s is of type %s, not a %s", op, ErrWrongFamily, o.Name(), marker, t.base.family),
		map[string]any{"type": o.Type()})
}

// CreateSingleObject creates one object from item. An object that does not
// implement T is destroyed and reported as an error.
func (t *Typed[T]) CreateSingleObject(item *input.Item, unique bool) (T, error) {
	var zero T
	if err := t.Seed(); err != nil {
		return zero, err
	}
	o, err := t.base.CreateSingleObject(item, t.entry, unique)
	if err != nil {
		return zero, err
	}
	v, err := t.check(o, "createSingleObject")
	if err != nil {
		t.base.reject(o.Type(), events.ReasonWrongKind)
		object.Destroy(o)
		t.base.publish(events.ObjectEvent{Type: o.Type(), Name: o.Name(), Kind: events.ObjectDestroyed})
		return zero, err
	}
	return v, nil
}

// CreateObjects is Factory.CreateObjects restricted to objects implementing T.
func (t *Typed[T]) CreateObjects(item *input.Item, section, objectTag, selectKey string, unique bool) (T, error) {
	var zero T
	if err := t.Seed(); err != nil {
		return zero, err
	}
	o, err := t.base.createObjects(item, section, objectTag, selectKey, func(ij *input.Item) error {
		_, err := t.CreateSingleObject(ij, unique)
		return err
	})
	if o == nil {
		return zero, err
	}
	v, ok := o.(T)
	if !ok {
		return zero, fmt.Errorf("%w: selected object %s", ErrWrongFamily, o.Name())
	}
	return v, err
}

// AddObject adds o after checking that it implements T.
func (t *Typed[T]) AddObject(o object.Object, unique bool) error {
	if _, err := t.check(o, "addObject"); err != nil {
		return err
	}
	return t.base.AddObject(o, unique)
}

// AddKnownObject registers a prototype after checking that it implements T.
func (t *Typed[T]) AddKnownObject(p object.Prototype) error {
	if p == nil {
		return nil
	}
	if _, err := t.check(p, "addKnownObject"); err != nil {
		return err
	}
	return t.base.AddKnownObject(p)
}

// AddKnownTypeID records a type marker as belonging to the family.
func (t *Typed[T]) AddKnownTypeID(marker string) { t.base.AddKnownTypeID(marker) }

// IsKnownTypeID reports whether marker belongs to the family.
func (t *Typed[T]) IsKnownTypeID(marker string) bool { return t.base.IsKnownTypeID(marker) }

// Get returns the object named name.
func (t *Typed[T]) Get(name string) (T, bool) {
	v, ok := t.base.GetObject(name).(T)
	return v, ok
}

// TakeObject removes the object named name and hands it to the caller.
func (t *Typed[T]) TakeObject(name string) (T, bool) {
	var zero T
	if _, ok := t.Get(name); !ok {
		return zero, false
	}
	v, ok := t.base.TakeObject(name).(T)
	return v, ok
}

// Objects returns the held objects in creation order.
func (t *Typed[T]) Objects() []T {
	out := make([]T, 0, t.base.NObjects())
	for _, o := range t.base.objects {
		if v, ok := o.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// KnownTypes returns the names of the built-in and registered prototypes.
func (t *Typed[T]) KnownTypes() ([]string, error) {
	if err := t.Seed(); err != nil {
		return nil, err
	}
	return t.base.KnownTypes(), nil
}

// Close releases everything the factory holds.
func (t *Typed[T]) Close() error { return t.base.Close() }
