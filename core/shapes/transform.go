package shapes

import (
	"fmt"
	"math"

	"github.com/kilianp07/simfactory/core/factory"
	"github.com/kilianp07/simfactory/core/input"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform rotates and then translates points.
type Transform struct {
	rots        []r3.Rotation
	Translation r3.Vec
}

// Apply transforms v. A nil transform is the identity.
func (t *Transform) Apply(v r3.Vec) r3.Vec {
	if t == nil {
		return v
	}
	for _, r := range t.rots {
		v = r.Rotate(v)
	}
	return r3.Add(v, t.Translation)
}

// AlignZ returns the rotation taking the z axis onto the direction of a.
func AlignZ(a r3.Vec) (r3.Rotation, error) {
	n := r3.Norm(a)
	if n == 0 {
		return r3.Rotation{}, fmt.Errorf("%w: zero length axis", input.ErrBadValue)
	}
	z := r3.Vec{Z: 1}
	u := r3.Scale(1/n, a)
	axis := r3.Cross(z, u)
	if r3.Norm(axis) < 1e-12 {
		if u.Z < 0 {
			return r3.NewRotation(math.Pi, r3.Vec{X: 1}), nil
		}
		return r3.NewRotation(0, z), nil
	}
	return r3.NewRotation(math.Acos(r3.Dot(z, u)), axis), nil
}

// TransformFrom reads the optional "transformation" child of item. It
// understands "rotation vector" (the z axis is rotated onto it), "rotation"
// (angles in radians about x, y and z, applied in that order) and
// "translation".
func TransformFrom(item *input.Item) (*Transform, error) {
	ti := item.GetItem("transformation")
	if ti == nil || ti == item {
		return nil, nil
	}
	var p struct {
		Translation    []float64 `input:"translation"`
		RotationVector []float64 `input:"rotation vector"`
		Rotation       []float64 `input:"rotation"`
	}
	if err := factory.DecodeItem(ti, &p); err != nil {
		return nil, err
	}
	t := &Transform{}
	if p.RotationVector != nil {
		v, err := vec(p.RotationVector, "rotation vector")
		if err != nil {
			return nil, err
		}
		r, err := AlignZ(v)
		if err != nil {
			return nil, err
		}
		t.rots = append(t.rots, r)
	}
	if p.Rotation != nil {
		if len(p.Rotation) != 3 {
			return nil, fmt.Errorf("%w: rotation needs 3 angles, got %d", input.ErrBadValue, len(p.Rotation))
		}
		for i, axis := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
			if p.Rotation[i] != 0 {
				t.rots = append(t.rots, r3.NewRotation(p.Rotation[i], axis))
			}
		}
	}
	if p.Translation != nil {
		v, err := vec(p.Translation, "translation")
		if err != nil {
			return nil, err
		}
		t.Translation = v
	}
	return t, nil
}

func vec(v []float64, key string) (r3.Vec, error) {
	if len(v) != 3 {
		return r3.Vec{}, fmt.Errorf("%w: %s needs 3 values, got %d", input.ErrBadValue, key, len(v))
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}
