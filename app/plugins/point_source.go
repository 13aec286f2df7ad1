package plugins

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kilianp07/simfactory/core/factory"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/core/object"
	"github.com/kilianp07/simfactory/core/shapes"
	"github.com/kilianp07/simfactory/core/sources"
)

// pointSource emits particles isotropically from a single point.
type pointSource struct {
	object.Base
	pos      r3.Vec
	charge   int
	spectrum sources.Spectrum
	count    float64
}

func newPointSource(item *input.Item, f *factory.Factory) (object.Object, error) {
	var p struct {
		Position []float64 `input:"position"`
		Charge   int       `input:"charge"`
	}
	if err := factory.DecodeItem(item, &p); err != nil {
		return nil, err
	}
	if len(p.Position) != 3 {
		return nil, fmt.Errorf("%w: position needs 3 values", input.ErrBadValue)
	}
	if !item.Has("charge") {
		return nil, fmt.Errorf("%w: charge", input.ErrNoKey)
	}
	if p.Charge < -1 || p.Charge > 1 {
		return nil, fmt.Errorf("%w: charge must be -1, 0 or 1", input.ErrBadValue)
	}
	spectrum, err := sources.SpectrumFrom(item)
	if err != nil {
		return nil, err
	}
	return &pointSource{
		Base:     object.BaseFromInput(item, "point_source", f.Counter()),
		pos:      r3.Vec{X: p.Position[0], Y: p.Position[1], Z: p.Position[2]},
		charge:   p.Charge,
		spectrum: spectrum,
	}, nil
}

func (s *pointSource) NextParticle(rng shapes.Rand) sources.Particle {
	s.count++
	return sources.Particle{
		Charge:    s.charge,
		Energy:    s.spectrum.Sample(rng),
		Weight:    1,
		Position:  s.pos,
		Direction: sources.Isotropic(rng),
	}
}

func (s *pointSource) MaxEnergy() float64 { return s.spectrum.MaxEnergy() }
func (s *pointSource) Fluence() float64   { return s.count }

func (s *pointSource) Description() string {
	return fmt.Sprintf("point source at (%g, %g, %g), charge %d, %s",
		s.pos.X, s.pos.Y, s.pos.Z, s.charge, s.spectrum.Description())
}
