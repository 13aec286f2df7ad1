package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	var buf bytes.Buffer
	require.NoError(t, Configure(Options{Level: "debug", Out: &buf}))
	t.Cleanup(func() { _ = Configure(Options{}) })

	l := NewZerologLogger("test")
	require.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Warnw("warn", map[string]any{"k": 2})
	l.Errorf("error")
	assert.Equal(t, 6, strings.Count(buf.String(), "\n"))
}

func TestZerologLogger_JSONFieldsAndLevel(t *testing.T) {
	t.Setenv("APP_ENV", "")
	var buf bytes.Buffer
	require.NoError(t, Configure(Options{Level: "warn", Format: "json", Out: &buf}))
	t.Cleanup(func() { _ = Configure(Options{}) })

	l := New("factory")
	l.Infof("dropped")
	l.Warnw("failed to load the library egs_box", map[string]any{"family": "shape", "factory_id": "abc"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "factory", rec["component"])
	assert.Equal(t, "shape", rec["family"])
	assert.Equal(t, "abc", rec["factory_id"])
	assert.Equal(t, "failed to load the library egs_box", rec["message"])
}

func TestConfigure_Errors(t *testing.T) {
	assert.Error(t, Configure(Options{Level: "loud"}))
	assert.Error(t, Configure(Options{Format: "xml"}))
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Warnw("ignored", nil)
}
