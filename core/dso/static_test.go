package dso

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_OpenByFileName(t *testing.T) {
	s := NewStatic()
	require.NoError(t, s.Register("egs_space", map[string]any{"createGeometry": 1}))
	require.Error(t, s.Register("egs_space", nil))
	require.Error(t, s.Register("", nil))

	assert.Equal(t, []string{"egs_space"}, s.Modules())
	assert.Equal(t, []string{"createGeometry"}, s.Symbols("egs_space"))

	lib := New("egs_space", "/opt/egs/dso", WithLoader(s))
	v, err := lib.Resolve("createGeometry")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = lib.Resolve("createSource")
	assert.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestStatic_UnknownModule(t *testing.T) {
	s := NewStatic()
	_, err := s.Open(FileName("missing_module", "dso"))
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestStatic_LookupAfterClose(t *testing.T) {
	s := NewStatic()
	require.NoError(t, s.Register("m", map[string]any{"x": 1}))
	h, err := s.Open("m")
	require.NoError(t, err)
	require.NoError(t, h.Close())
	_, err = h.Lookup("x")
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestChain(t *testing.T) {
	s := NewStatic()
	require.NoError(t, s.Register("egs_space", map[string]any{"createGeometry": 1}))
	failing := LoaderFunc(func(string) (Handle, error) { return nil, errors.New("first") })

	h, err := Chain(failing, s).Open(FileName("egs_space", ""))
	require.NoError(t, err)
	v, err := h.Lookup("createGeometry")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = Chain(failing, s).Open(FileName("other", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first")
	assert.ErrorIs(t, err, ErrModuleNotFound)

	_, err = Chain().Open("x")
	assert.ErrorIs(t, err, ErrUnsupported)
}
