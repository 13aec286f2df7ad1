package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	assert.True(t, Compare("box size", "BoxSize"))
	assert.True(t, Compare(" Source Definition ", "source definition"))
	assert.False(t, Compare("source", "sources"))
	assert.Equal(t, "BOXSIZE", Normalize("box\tsize"))
}

func TestItem_Getters(t *testing.T) {
	it := Section("shape",
		New("type", "box"),
		New("box size", "1, 2 3"),
		New("radius", "2.5"),
		New("count", "7"),
		New("bad", "x"),
	)
	s, err := it.GetString("Type")
	require.NoError(t, err)
	assert.Equal(t, "box", s)

	fs, err := it.GetFloats("boxsize")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, fs)

	r, err := it.GetFloat("radius")
	require.NoError(t, err)
	assert.Equal(t, 2.5, r)

	n, err := it.GetInt("count")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = it.GetFloat("bad")
	assert.ErrorIs(t, err, ErrBadValue)
	_, err = it.GetString("library")
	assert.ErrorIs(t, err, ErrNoKey)
	assert.False(t, it.Has("library"))

	var nilItem *Item
	_, err = nilItem.GetString("name")
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestItem_TakeItem(t *testing.T) {
	sec := Section("source definition",
		Section("source", New("name", "A")),
		Section("source", New("name", "B")),
		New("simulation source", "A"),
	)
	assert.Same(t, sec, sec.TakeItem("source definition", true))
	assert.Nil(t, sec.TakeItem("source definition", false))

	first := sec.TakeItem("source", true)
	require.NotNil(t, first)
	name, _ := first.GetString("name")
	assert.Equal(t, "A", name)

	second := sec.TakeItem("source", true)
	require.NotNil(t, second)
	assert.Nil(t, sec.TakeItem("source", true))
	assert.Len(t, sec.Children(), 1)
	assert.NotNil(t, sec.GetItem("simulation source"))
}

func TestParse_PreservesOrderAndRepeats(t *testing.T) {
	doc := `
geometry definition:
  geometry:
    - name: A
      library: egs_box
      box size: [1, 2, 3]
    - name: B
      type: space
  simulation geometry: B
`
	root, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, RootKey, root.Key())

	sec := root.GetItem("geometry definition")
	require.NotNil(t, sec)
	require.Len(t, sec.Children(), 3)
	assert.True(t, sec.Children()[0].IsA("geometry"))
	assert.True(t, sec.Children()[1].IsA("geometry"))

	a := sec.Children()[0]
	sz, err := a.GetFloats("box size")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, sz)

	sel, err := sec.GetString("simulation geometry")
	require.NoError(t, err)
	assert.Equal(t, "B", sel)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("- a\n- b\n"))
	assert.Error(t, err)

	root, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, root.Children())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shape:\n  type: sphere\n  radius: 2\n"), 0o644))
	root, err := LoadFile(path)
	require.NoError(t, err)
	r, err := root.GetItem("shape").GetFloat("radius")
	require.NoError(t, err)
	assert.Equal(t, 2.0, r)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestItem_MapKeepsFirstDuplicate(t *testing.T) {
	it := Section("source", New("charge", "-1"), New("charge", "1"))
	s, err := it.GetString("charge")
	require.NoError(t, err)
	assert.Equal(t, "-1", s)
	assert.Equal(t, map[string]any{"charge": "-1"}, it.Map())
}

func TestItem_MapCloneString(t *testing.T) {
	it := Section("shape", New("type", "sphere"), Value("midpoint", []float64{0, 1.5, 2}), Section("sub", New("x", "1")))
	m := it.Map()
	assert.Equal(t, map[string]any{"type": "sphere", "midpoint": "0 1.5 2"}, m)

	cp := it.Clone()
	cp.Add(New("name", "copy"))
	assert.Len(t, it.Children(), 3)
	assert.Len(t, cp.Children(), 4)

	s := it.String()
	assert.Contains(t, s, ":start shape:")
	assert.Contains(t, s, "type = sphere")
	assert.Contains(t, s, ":stop sub:")
}
