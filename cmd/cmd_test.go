package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/simfactory/core/factory"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		cfgPath = ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

const staticConfig = "factory:\n  loader: static\nlogging:\n  level: error\n"

func TestModules(t *testing.T) {
	out, err := execute(t, "modules")
	require.NoError(t, err)
	assert.Contains(t, out, "egs_point_source: createSource")
	assert.Contains(t, out, "egs_track_counter: createAusgabObject")
	assert.Contains(t, out, "metric sinks: influx, nop, prometheus")
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HEN_HOUSE", dir)
	cfgFile := writeFile(t, dir, "config.yaml", staticConfig)
	in := writeFile(t, dir, "input.yaml", `
geometry definition:
  geometry:
    name: world
    library: egs_space
  simulation geometry: world
source definition:
  source:
    name: beam
    library: egs_point_source
    position: [0, 0, 0]
    charge: -1
    spectrum:
      type: monoenergetic
      energy: 20
  simulation source: beam
ausgab object definition:
  ausgab object:
    name: counter
    library: egs_track_counter
`)
	out, err := execute(t, "--config", cfgFile, "build", in, "--report", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "geometry: world (1 regions)")
	assert.Contains(t, out, "source:   beam, max energy 20 MeV")
	assert.Contains(t, out, "counter:\n")

	out, err = execute(t, "--config", cfgFile, "build", in, "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "family,name,type,ref_count\n"+
		"geometry,world,space,0\n"+
		"source,beam,point_source,0\n"+
		"ausgab,counter,track_counter,0\n", out)

	_, err = execute(t, "--config", cfgFile, "build", in, "--format", "xml")
	assert.Error(t, err)
}

func TestBuild_MissingSearchRoot(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HEN_HOUSE", "")
	in := writeFile(t, dir, "input.yaml", "geometry definition: {}\n")
	_, err := execute(t, "build", in)
	assert.ErrorIs(t, err, factory.ErrSearchRoot)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "config.yaml", staticConfig)
	out, err := execute(t, "--config", cfgFile, "resolve", "egs_space", "createGeometry", "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `registration (api 1, family "geometry")`)

	_, err = execute(t, "--config", cfgFile, "resolve", "egs_space", "createShape", "--path", dir)
	assert.Error(t, err)
}

func TestShapesSample(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HEN_HOUSE", dir)
	cfgFile := writeFile(t, dir, "config.yaml", staticConfig)
	in := writeFile(t, dir, "shapes.yaml", `
shape:
  name: origin
  type: point
  position: [1, 2, 3]
`)
	out, err := execute(t, "--config", cfgFile, "shapes", "sample", in, "-n", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, "origin 1 2 3", l)
	}
}
