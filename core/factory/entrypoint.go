package factory

import (
	"fmt"

	"github.com/kilianp07/simfactory/core/dso"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/core/object"
)

// APIVersion is the entry point ABI version understood by this package.
// Modules exporting a Registration must set it.
const APIVersion = 1

// DefaultEntryPoint is resolved when a caller does not name one.
const DefaultEntryPoint = "createObject"

// EntryPoint creates an object from an input item. f is the factory the
// object is being created for.
type EntryPoint func(item *input.Item, f *Factory) (object.Object, error)

// Registration is the preferred exported entry point symbol of a module:
//
//	var CreateShape = factory.Registration{
//	    APIVersion: factory.APIVersion,
//	    Family:     "shape",
//	    Create:     newShape,
//	}
//
// A non-empty Family is checked against the family of the calling factory.
type Registration struct {
	APIVersion int
	Family     string
	Create     EntryPoint
}

func (r *Registration) entryPoint(family string) (EntryPoint, error) {
	if r == nil || r.Create == nil {
		return nil, fmt.Errorf("%w: empty registration", ErrBadEntryPoint)
	}
	if r.APIVersion != APIVersion {
		return nil, fmt.Errorf("%w: module %d, factory %d", ErrAPIVersion, r.APIVersion, APIVersion)
	}
	if r.Family != "" && family != "" && r.Family != family {
		return nil, fmt.Errorf("%w: module creates %s objects, factory wants %s", ErrWrongFamily, r.Family, family)
	}
	return r.Create, nil
}

// NativeBinder turns the address of a native entry point into an EntryPoint.
// Native modules cannot return Go objects by themselves, so factories reject
// them unless a binder is configured.
type NativeBinder func(name string, addr dso.Address) (EntryPoint, error)

// bind converts a resolved symbol into an EntryPoint.
func (f *Factory) bind(name string, sym any) (EntryPoint, error) {
	switch v := sym.(type) {
	case *Registration:
		return v.entryPoint(f.family)
	case Registration:
		return v.entryPoint(f.family)
	case EntryPoint:
		if v != nil {
			return v, nil
		}
	case *EntryPoint:
		if v != nil && *v != nil {
			return *v, nil
		}
	case func(*input.Item, *Factory) (object.Object, error):
		if v != nil {
			return v, nil
		}
	case *func(*input.Item, *Factory) (object.Object, error):
		if v != nil && *v != nil {
			return *v, nil
		}
	case dso.Address:
		if f.binder == nil {
			return nil, fmt.Errorf("%w: %s is a native symbol at %s and no native binder is configured", ErrBadEntryPoint, name, v)
		}
		return f.binder(name, v)
	}
	return nil, fmt.Errorf("%w: %s has type %T", ErrBadEntryPoint, name, sym)
}
