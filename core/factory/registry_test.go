package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/simfactory/core/input"
)

type sample struct{ A int }

type sampleConf struct {
	A int `json:"a"`
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sample]()
	require.NoError(t, reg.Register("Sample Sink", func(conf map[string]any) (*sample, error) {
		var c sampleConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sample{A: c.A}, nil
	}))
	inst, err := reg.Create(ModuleConfig{Type: "samplesink", Conf: map[string]any{"a": 3}})
	require.NoError(t, err)
	assert.Equal(t, 3, inst.A)
	assert.True(t, reg.Has("SAMPLE sink"))
	assert.Equal(t, []string{"Sample Sink"}, reg.Names())
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	require.NoError(t, reg.Register("x", func(map[string]any) (int, error) { return 1, nil }))
	assert.Error(t, reg.Register("x", func(map[string]any) (int, error) { return 2, nil }))
	assert.Error(t, reg.Register("y", nil))
	assert.Error(t, reg.Register(" ", func(map[string]any) (int, error) { return 3, nil }))
	_, err := reg.Create(ModuleConfig{Type: "y"})
	assert.Error(t, err)
}

func TestDecodeItem(t *testing.T) {
	var p struct {
		Size     []float64 `input:"box size"`
		Midpoint []float64 `input:"midpoint"`
		Radius   float64   `input:"radius"`
		Count    int       `input:"count"`
		Label    string    `input:"label"`
	}
	item := input.Section("shape",
		input.New("type", "box"),
		input.New("Box Size", "1 2, 3"),
		input.New("midpoint", "0 0 1"),
		input.New("radius", "2.5"),
		input.New("count", "4"),
		input.New("label", "inner box"))
	require.NoError(t, DecodeItem(item, &p))
	assert.Equal(t, []float64{1, 2, 3}, p.Size)
	assert.Equal(t, []float64{0, 0, 1}, p.Midpoint)
	assert.Equal(t, 2.5, p.Radius)
	assert.Equal(t, 4, p.Count)
	assert.Equal(t, "inner box", p.Label)

	bad := input.Section("shape", input.New("radius", "wide"))
	assert.ErrorIs(t, DecodeItem(bad, &p), input.ErrBadValue)
	assert.ErrorIs(t, DecodeItem(nil, &p), input.ErrNoKey)
}
