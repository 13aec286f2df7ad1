package shapes

import (
	"fmt"
	"math"

	"github.com/kilianp07/simfactory/core/factory"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/core/object"
	"gonum.org/v1/gonum/spatial/r3"
)

func required(item *input.Item, typ string, keys ...string) error {
	for _, k := range keys {
		if !item.Has(k) {
			return fmt.Errorf("%s shape: %w: %s", typ, input.ErrNoKey, k)
		}
	}
	return nil
}

// pointShape always returns the same point.
type pointShape struct {
	object.Base
	pos r3.Vec
}

func (s *pointShape) Point(Rand) r3.Vec { return s.pos }

func (s *pointShape) CreateObject(item *input.Item, c *object.Counter) (object.Object, error) {
	if err := required(item, "point", "position"); err != nil {
		return nil, err
	}
	var p struct {
		Position []float64 `input:"position"`
	}
	if err := factory.DecodeItem(item, &p); err != nil {
		return nil, err
	}
	pos, err := vec(p.Position, "position")
	if err != nil {
		return nil, err
	}
	return &pointShape{Base: object.BaseFromInput(item, "point", c), pos: pos}, nil
}

// boxShape samples uniformly inside a box centred at the origin.
type boxShape struct {
	object.Base
	size r3.Vec
	t    *Transform
}

func (s *boxShape) Point(rng Rand) r3.Vec {
	v := r3.Vec{
		X: s.size.X * (rng.Float64() - 0.5),
		Y: s.size.Y * (rng.Float64() - 0.5),
		Z: s.size.Z * (rng.Float64() - 0.5),
	}
	return s.t.Apply(v)
}

func (s *boxShape) CreateObject(item *input.Item, c *object.Counter) (object.Object, error) {
	if err := required(item, "box", "box size"); err != nil {
		return nil, err
	}
	var p struct {
		Size []float64 `input:"box size"`
	}
	if err := factory.DecodeItem(item, &p); err != nil {
		return nil, err
	}
	var size r3.Vec
	switch len(p.Size) {
	case 1:
		size = r3.Vec{X: p.Size[0], Y: p.Size[0], Z: p.Size[0]}
	case 3:
		size = r3.Vec{X: p.Size[0], Y: p.Size[1], Z: p.Size[2]}
	default:
		return nil, fmt.Errorf("box shape: %w: box size needs 1 or 3 values, got %d", input.ErrBadValue, len(p.Size))
	}
	t, err := TransformFrom(item)
	if err != nil {
		return nil, err
	}
	return &boxShape{Base: object.BaseFromInput(item, "box", c), size: size, t: t}, nil
}

// sphereShape samples uniformly inside a sphere.
type sphereShape struct {
	object.Base
	r   float64
	mid r3.Vec
}

func (s *sphereShape) Point(rng Rand) r3.Vec {
	r := math.Max(rng.Float64(), math.Max(rng.Float64(), rng.Float64()))
	cost := 2*rng.Float64() - 1
	sint := math.Sqrt(1 - cost*cost)
	phi := 2 * math.Pi * rng.Float64()
	rho := s.r * r * sint
	return r3.Add(s.mid, r3.Vec{X: rho * math.Cos(phi), Y: rho * math.Sin(phi), Z: s.r * r * cost})
}

func (s *sphereShape) CreateObject(item *input.Item, c *object.Counter) (object.Object, error) {
	if err := required(item, "sphere", "radius"); err != nil {
		return nil, err
	}
	var p struct {
		Radius   float64   `input:"radius"`
		Midpoint []float64 `input:"midpoint"`
	}
	if err := factory.DecodeItem(item, &p); err != nil {
		return nil, err
	}
	res := &sphereShape{Base: object.BaseFromInput(item, "sphere", c), r: p.Radius}
	if len(p.Midpoint) == 3 {
		res.mid = r3.Vec{X: p.Midpoint[0], Y: p.Midpoint[1], Z: p.Midpoint[2]}
	}
	return res, nil
}

// cylinderShape samples uniformly inside a cylinder, or a sector of it,
// with its axis along z before transformation.
type cylinderShape struct {
	object.Base
	r, h           float64
	phiMin, phiMax float64
	t              *Transform
}

func (s *cylinderShape) Point(rng Rand) r3.Vec {
	rho := s.r * math.Sqrt(rng.Float64())
	phi := s.phiMin + (s.phiMax-s.phiMin)*rng.Float64()
	z := s.h * (rng.Float64() - 0.5)
	return s.t.Apply(r3.Vec{X: rho * math.Cos(phi), Y: rho * math.Sin(phi), Z: z})
}

func (s *cylinderShape) CreateObject(item *input.Item, c *object.Counter) (object.Object, error) {
	if err := required(item, "cylinder", "radius", "height"); err != nil {
		return nil, err
	}
	var p struct {
		Radius   float64   `input:"radius"`
		Height   float64   `input:"height"`
		PhiRange []float64 `input:"phi range"`
		Midpoint []float64 `input:"midpoint"`
		Axis     []float64 `input:"axis"`
	}
	if err := factory.DecodeItem(item, &p); err != nil {
		return nil, err
	}
	res := &cylinderShape{r: p.Radius, h: p.Height, phiMax: 2 * math.Pi}
	if len(p.PhiRange) == 2 {
		res.phiMin = p.PhiRange[0] * math.Pi / 180
		res.phiMax = p.PhiRange[1] * math.Pi / 180
	}
	t, err := TransformFrom(item)
	if err != nil {
		return nil, err
	}
	if t == nil && (len(p.Midpoint) == 3 || len(p.Axis) == 3) {
		t = &Transform{}
		if len(p.Axis) == 3 {
			rot, err := AlignZ(r3.Vec{X: p.Axis[0], Y: p.Axis[1], Z: p.Axis[2]})
			if err != nil {
				return nil, err
			}
			t.rots = append(t.rots, rot)
		}
		if len(p.Midpoint) == 3 {
			t.Translation = r3.Vec{X: p.Midpoint[0], Y: p.Midpoint[1], Z: p.Midpoint[2]}
		}
	}
	res.t = t
	res.Base = object.BaseFromInput(item, "cylinder", c)
	return res, nil
}
