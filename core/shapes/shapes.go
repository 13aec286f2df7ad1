// Package shapes provides shapes random points can be sampled from.
//
// Shapes are created by a typed factory seeded with the built-in point, box,
// sphere and cylinder shapes. Other shapes are loaded from modules exporting
// a createShape entry point.
package shapes

import (
	"github.com/kilianp07/simfactory/core/factory"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/core/object"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Family is the family name of shapes.
	Family = "shape"
	// EntryPoint is the symbol resolved in shape modules.
	EntryPoint = "createShape"
)

// Rand is the source of uniform random numbers in [0,1).
type Rand interface {
	Float64() float64
}

// Shape is an object random points can be sampled from.
type Shape interface {
	object.Object
	// Point samples a point, in the shape's frame after its transformation.
	Point(rng Rand) r3.Vec
}

// Factory is the typed shape factory.
type Factory = factory.Typed[Shape]

// NewFactory returns a shape factory seeded with the built-in shapes.
func NewFactory(dsoPath string, opts ...factory.Option) (*Factory, error) {
	return factory.NewTyped[Shape](Family, EntryPoint, dsoPath, seed, opts...)
}

func seed(f *Factory) error {
	c := f.Factory().Counter()
	for _, p := range []object.Prototype{
		&pointShape{Base: object.NewBase("", "point", c)},
		&boxShape{Base: object.NewBase("", "box", c)},
		&sphereShape{Base: object.NewBase("", "sphere", c)},
		&cylinderShape{Base: object.NewBase("", "cylinder", c)},
	} {
		if err := f.AddKnownObject(p); err != nil {
			return err
		}
	}
	return nil
}

var shared = factory.Lazy[Shape]{New: func() (*Factory, error) {
	return NewFactory(factory.DefaultDSOPath())
}}

// SetDefault installs the process-wide shape factory used by CreateShape and
// GetShape and returns the previous one.
func SetDefault(f *Factory) *Factory { return shared.Set(f) }

// Default returns the process-wide shape factory.
func Default() (*Factory, error) { return shared.Get() }

// CreateShape creates a shape from item with the process-wide factory.
func CreateShape(item *input.Item) (Shape, error) {
	f, err := shared.Get()
	if err != nil {
		return nil, err
	}
	return f.CreateSingleObject(item, true)
}

// GetShape returns the shape named name from the process-wide factory.
func GetShape(name string) (Shape, bool) {
	f, err := shared.Get()
	if err != nil {
		return nil, false
	}
	return f.Get(name)
}

// Close releases the process-wide shape factory.
func Close() error { return shared.Close() }
