// Package object defines the identity and ownership contract shared by every
// component a factory can create: a display name, a type tag, a reference
// count and at most one owning factory.
package object

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/kilianp07/simfactory/core/input"
)

// Object is implemented by every component. Concrete components embed Base.
type Object interface {
	Name() string
	SetName(name string)
	Type() string
	Ref() int
	Deref() int
	RefCount() int
	Owner() Owner
	// Core exposes the embedded Base so helpers can compare identities.
	Core() *Base
}

// Prototype is a statically known object used to construct new instances of
// its own type from an input item. New objects take their generated names
// from c.
type Prototype interface {
	Object
	CreateObject(item *input.Item, c *Counter) (Object, error)
}

// Destroyer is implemented by objects that release resources when they are
// destroyed.
type Destroyer interface {
	OnDestroy()
}

// Owner is the weak back-reference an object keeps to the factory listing it.
type Owner interface {
	AddObject(o Object, unique bool) error
	RemoveObject(o Object)
}

// Counter hands out the numbers used to build unique object names.
type Counter struct {
	n atomic.Uint64
}

// Default is the process wide counter used when none is supplied.
var Default = &Counter{}

// Next increments the counter and returns the new value.
func (c *Counter) Next() uint64 { return c.n.Add(1) }

// Current returns the number of objects constructed so far.
func (c *Counter) Current() uint64 { return c.n.Load() }

// UniqueName returns "<type>_<n>" for a prototype or "object_<n>" when proto
// is nil, n being the current counter value.
func (c *Counter) UniqueName(proto Object) string {
	if proto != nil && proto.Type() != "" {
		return fmt.Sprintf("%s_%d", proto.Type(), c.Current())
	}
	return fmt.Sprintf("object_%d", c.Current())
}

func counterOrDefault(c *Counter) *Counter {
	if c == nil {
		return Default
	}
	return c
}

// Base carries the state common to all objects.
type Base struct {
	name      string
	otype     string
	nref      int
	owner     Owner
	destroyed bool
}

// NewBase initialises an object of type typ. An empty name is replaced by a
// generated unique name.
func NewBase(name, typ string, c *Counter) Base {
	c = counterOrDefault(c)
	c.Next()
	b := Base{name: name, otype: typ}
	if b.name == "" {
		b.name = b.uniqueName(c)
	}
	return b
}

// BaseFromInput initialises an object of type typ named after the "name" key
// of item. A missing key or a nil item yields a generated unique name.
func BaseFromInput(item *input.Item, typ string, c *Counter) Base {
	c = counterOrDefault(c)
	c.Next()
	b := Base{otype: typ}
	b.SetNameFrom(item, c)
	return b
}

func (b *Base) uniqueName(c *Counter) string {
	if b.otype == "" {
		return c.UniqueName(nil)
	}
	return fmt.Sprintf("%s_%d", b.otype, c.Current())
}

// SetNameFrom sets the name from the "name" key of item, falling back to a
// generated name.
func (b *Base) SetNameFrom(item *input.Item, c *Counter) {
	if item != nil {
		if n, err := item.GetString("name"); err == nil && n != "" {
			b.name = n
			return
		}
	}
	b.name = b.uniqueName(counterOrDefault(c))
}

func (b *Base) Name() string        { return b.name }
func (b *Base) SetName(name string) { b.name = name }
func (b *Base) Type() string        { return b.otype }
func (b *Base) RefCount() int       { return b.nref }
func (b *Base) Owner() Owner        { return b.owner }
func (b *Base) Core() *Base         { return b }

// Ref increments the reference count and returns the new value.
func (b *Base) Ref() int {
	b.nref++
	return b.nref
}

// Deref decrements the reference count and returns the new value.
func (b *Base) Deref() int {
	b.nref--
	return b.nref
}

// Destroyed reports whether Destroy ran for this object.
func (b *Base) Destroyed() bool { return b.destroyed }

// Same reports whether a and b are the same object.
func Same(a, b Object) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Core() == b.Core()
}

// SetOwner moves o to owner. The object is removed from its previous owner
// first and then added to the new owner's list. Setting the current owner
// again, or a nil owner, does nothing.
func SetOwner(o Object, owner Owner) {
	if o == nil || owner == nil {
		return
	}
	b := o.Core()
	if b.owner == owner {
		return
	}
	if b.owner != nil {
		b.owner.RemoveObject(o)
	}
	b.owner = owner
	_ = owner.AddObject(o, false)
}

// Detach clears the owner of o without touching the owner's list. Owners
// call it after removing o themselves.
func Detach(o Object) {
	if o != nil {
		o.Core().owner = nil
	}
}

// Destroy removes o from its owner and runs its OnDestroy hook. Destroying
// an object twice is a no-op.
func Destroy(o Object) {
	if o == nil {
		return
	}
	b := o.Core()
	if b.destroyed {
		return
	}
	b.destroyed = true
	if owner := b.owner; owner != nil {
		b.owner = nil
		owner.RemoveObject(o)
	}
	if d, ok := o.(Destroyer); ok {
		d.OnDestroy()
	}
}

// Release drops one reference to o and destroys it when the count reaches
// zero or below. Releasing an object nobody referenced (0 to -1) destroys it
// too. It reports whether o was destroyed.
func Release(o Object) bool {
	if o == nil {
		return false
	}
	if o.Deref() <= 0 {
		Destroy(o)
		return true
	}
	return false
}

// TypeID returns the marker identifying the dynamic type of o.
func TypeID(o any) string {
	if o == nil {
		return ""
	}
	return reflect.TypeOf(o).String()
}
