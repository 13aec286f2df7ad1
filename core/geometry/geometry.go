// Package geometry defines simulation geometries and the factory creating
// them from a "geometry definition" input section.
package geometry

import (
	"errors"

	"github.com/kilianp07/simfactory/core/factory"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/core/object"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Family is the family name of geometries.
	Family = "geometry"
	// EntryPoint is the symbol resolved in geometry modules.
	EntryPoint = "createGeometry"

	Section   = "geometry definition"
	ObjectTag = "geometry"
	SelectKey = "simulation geometry"
)

// Geometry partitions space into regions.
type Geometry interface {
	object.Object
	// Regions returns the number of regions.
	Regions() int
	// Region returns the index of the region containing x, or -1 when x is
	// outside the geometry.
	Region(x r3.Vec) int
}

// IsInside reports whether x is inside g.
func IsInside(g Geometry, x r3.Vec) bool { return g.Region(x) >= 0 }

// Factory is the typed geometry factory.
type Factory = factory.Typed[Geometry]

// NewFactory returns a geometry factory.
func NewFactory(dsoPath string, opts ...factory.Option) (*Factory, error) {
	return factory.NewTyped[Geometry](Family, EntryPoint, dsoPath, nil, opts...)
}

// ErrNoSimulationGeometry is returned when a geometry definition does not
// name its simulation geometry.
var ErrNoSimulationGeometry = errors.New("geometry: missing/wrong keyword 'simulation geometry'")

// Create creates every geometry of the geometry definition in item with f
// and returns the simulation geometry, which the definition must name.
func Create(f *Factory, item *input.Item) (Geometry, error) {
	sec := item
	if item != nil && !item.IsA(Section) {
		sec = item.GetItem(Section)
	}
	named := sec != nil && sec.Has(SelectKey)
	g, err := f.CreateObjects(item, Section, ObjectTag, SelectKey, true)
	if sec != nil && !named {
		f.Factory().Logger().Warnw(ErrNoSimulationGeometry.Error(), map[string]any{"family": Family})
		return nil, errors.Join(err, ErrNoSimulationGeometry)
	}
	return g, err
}

var shared = factory.Lazy[Geometry]{New: func() (*Factory, error) {
	return NewFactory(factory.DefaultDSOPath())
}}

// SetDefault installs the process-wide geometry factory and returns the
// previous one.
func SetDefault(f *Factory) *Factory { return shared.Set(f) }

// CreateGeometry creates the geometries of item with the process-wide factory.
func CreateGeometry(item *input.Item) (Geometry, error) {
	f, err := shared.Get()
	if err != nil {
		return nil, err
	}
	return Create(f, item)
}

// GetGeometry returns the geometry named name.
func GetGeometry(name string) (Geometry, bool) {
	f, err := shared.Get()
	if err != nil {
		return nil, false
	}
	return f.Get(name)
}

// Close releases the process-wide geometry factory.
func Close() error { return shared.Close() }
