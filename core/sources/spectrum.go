package sources

import (
	"fmt"
	"math"

	"github.com/kilianp07/simfactory/core/factory"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/core/shapes"
	"gonum.org/v1/gonum/spatial/r3"
)

// Spectrum samples particle energies.
type Spectrum interface {
	Sample(rng shapes.Rand) float64
	MaxEnergy() float64
	Description() string
}

// Monoenergetic always returns the same energy.
type Monoenergetic float64

func (m Monoenergetic) Sample(shapes.Rand) float64 { return float64(m) }
func (m Monoenergetic) MaxEnergy() float64         { return float64(m) }
func (m Monoenergetic) Description() string {
	return fmt.Sprintf("monoenergetic %g MeV", float64(m))
}

// Gaussian samples energies from a normal distribution truncated at zero.
type Gaussian struct {
	Mean, Sigma float64
}

func (g Gaussian) Sample(rng shapes.Rand) float64 {
	for {
		u1 := rng.Float64()
		if u1 == 0 {
			continue
		}
		e := g.Mean + g.Sigma*math.Sqrt(-2*math.Log(u1))*math.Cos(2*math.Pi*rng.Float64())
		if e > 0 {
			return e
		}
	}
}

func (g Gaussian) MaxEnergy() float64 { return g.Mean + 4*g.Sigma }
func (g Gaussian) Description() string {
	return fmt.Sprintf("Gaussian spectrum, mean %g MeV, sigma %g MeV", g.Mean, g.Sigma)
}

// fwhmToSigma converts a full width at half maximum into a standard deviation.
const fwhmToSigma = 0.4246609001440095

// SpectrumFrom reads the "spectrum" child of item. Supported types are
// "monoenergetic" (energy) and "Gaussian" (mean energy, sigma or fwhm).
func SpectrumFrom(item *input.Item) (Spectrum, error) {
	si := item.GetItem("spectrum")
	if si == nil || si == item {
		return nil, fmt.Errorf("%w: spectrum", input.ErrNoKey)
	}
	var p struct {
		Type   string  `input:"type"`
		Energy float64 `input:"energy"`
		Mean   float64 `input:"mean energy"`
		Sigma  float64 `input:"sigma"`
		FWHM   float64 `input:"fwhm"`
	}
	if err := factory.DecodeItem(si, &p); err != nil {
		return nil, err
	}
	switch {
	case input.Compare(p.Type, "monoenergetic"):
		if !si.Has("energy") || p.Energy <= 0 {
			return nil, fmt.Errorf("%w: monoenergetic spectrum needs a positive energy", input.ErrBadValue)
		}
		return Monoenergetic(p.Energy), nil
	case input.Compare(p.Type, "Gaussian"):
		sigma := p.Sigma
		if sigma == 0 {
			sigma = p.FWHM * fwhmToSigma
		}
		if p.Mean <= 0 || sigma <= 0 {
			return nil, fmt.Errorf("%w: Gaussian spectrum needs a positive mean energy and sigma or fwhm", input.ErrBadValue)
		}
		return Gaussian{Mean: p.Mean, Sigma: sigma}, nil
	case p.Type == "":
		return nil, fmt.Errorf("%w: spectrum type", input.ErrNoKey)
	}
	return nil, fmt.Errorf("%w: unknown spectrum type %s", input.ErrBadValue, p.Type)
}

// Isotropic samples a direction uniformly on the unit sphere.
func Isotropic(rng shapes.Rand) r3.Vec {
	w := 2*rng.Float64() - 1
	s := math.Sqrt(1 - w*w)
	phi := 2 * math.Pi * rng.Float64()
	return r3.Vec{X: s * math.Cos(phi), Y: s * math.Sin(phi), Z: w}
}
