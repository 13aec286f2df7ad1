// Package sources defines particle sources and the factory creating them
// from a "source definition" input section.
package sources

import (
	"github.com/kilianp07/simfactory/core/factory"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/core/object"
	"github.com/kilianp07/simfactory/core/shapes"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Family is the family name of sources.
	Family = "source"
	// EntryPoint is the symbol resolved in source modules.
	EntryPoint = "createSource"

	Section   = "source definition"
	ObjectTag = "source"
	SelectKey = "simulation source"
)

// Particle is a particle emitted by a source.
type Particle struct {
	Charge    int
	Energy    float64
	Weight    float64
	Position  r3.Vec
	Direction r3.Vec
}

// Source emits particles.
type Source interface {
	object.Object
	// NextParticle samples the next particle.
	NextParticle(rng shapes.Rand) Particle
	// MaxEnergy is the largest energy the source can emit.
	MaxEnergy() float64
	// Fluence returns the number of particles emitted so far, normalised the
	// way the source defines it.
	Fluence() float64
	Description() string
}

// Factory is the typed source factory.
type Factory = factory.Typed[Source]

// NewFactory returns a source factory. Sources have no built-in types; every
// source comes from a module.
func NewFactory(dsoPath string, opts ...factory.Option) (*Factory, error) {
	return factory.NewTyped[Source](Family, EntryPoint, dsoPath, nil, opts...)
}

// Create creates every source of the source definition in item with f and
// returns the simulation source.
func Create(f *Factory, item *input.Item) (Source, error) {
	return f.CreateObjects(item, Section, ObjectTag, SelectKey, true)
}

var shared = factory.Lazy[Source]{New: func() (*Factory, error) {
	return NewFactory(factory.DefaultDSOPath())
}}

// SetDefault installs the process-wide source factory and returns the
// previous one.
func SetDefault(f *Factory) *Factory { return shared.Set(f) }

// CreateSource creates the sources of item with the process-wide factory.
func CreateSource(item *input.Item) (Source, error) {
	f, err := shared.Get()
	if err != nil {
		return nil, err
	}
	return Create(f, item)
}

// GetSource returns the source named name.
func GetSource(name string) (Source, bool) {
	f, err := shared.Get()
	if err != nil {
		return nil, false
	}
	return f.Get(name)
}

// AddKnownSource registers a statically known source type.
func AddKnownSource(p object.Prototype) error {
	f, err := shared.Get()
	if err != nil {
		return err
	}
	f.Factory().Logger().Infof("Adding known source of type %s", p.Type())
	return f.AddKnownObject(p)
}

// AddKnownTypeID records a type marker as a source type.
func AddKnownTypeID(marker string) error {
	f, err := shared.Get()
	if err != nil {
		return err
	}
	f.AddKnownTypeID(marker)
	return nil
}

// Close releases the process-wide source factory.
func Close() error { return shared.Close() }
