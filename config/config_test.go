package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/simfactory/core/factory"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yaml", `factory:
  dso_path: "/opt/egs/dso"
  location: "egs_home"
  loader: "static"
families:
  source:
    dso_path: "sources/dso"
logging:
  level: "debug"
  format: "console"
metrics:
  listen: ":9100"
  sinks:
    - type: "nop"
    - type: "influx"
      conf:
        url: "http://localhost:8086"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"factory.dso_path", cfg.Factory.DSOPath, "/opt/egs/dso"},
		{"factory.location", cfg.Factory.SearchLocation(), factory.EgsHome},
		{"factory.loader", cfg.Factory.Loader, LoaderStatic},
		{"source dso path", cfg.DSOPath("source"), "sources/dso"},
		{"shape dso path", cfg.DSOPath("shape"), "/opt/egs/dso"},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"logging.format", cfg.Logging.Format, "console"},
		{"metrics.listen", cfg.Metrics.Listen, ":9100"},
		{"metrics.sinks", len(cfg.Metrics.Sinks), 2},
		{"influx url", cfg.Metrics.Sinks[1].Conf["url"], "http://localhost:8086"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeFile(t, "config.json", `{"metrics": {"sinks": [{"type": "nop"}]}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Factory.DSOPath != factory.DefaultDSOPath() {
		t.Errorf("dso path default: %s", cfg.Factory.DSOPath)
	}
	if cfg.Factory.SearchLocation() != factory.HenHouse || cfg.Factory.Loader != LoaderChain {
		t.Errorf("factory defaults: %+v", cfg.Factory)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults: %+v", cfg.Logging)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("K_FACTORY__LOADER", "native")
	t.Setenv("K_LOGGING__LEVEL", "warn")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Factory.Loader != LoaderNative {
		t.Errorf("loader override: %s", cfg.Factory.Loader)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level override: %s", cfg.Logging.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"loader":   "factory:\n  loader: rpc\n",
		"location": "factory:\n  location: nowhere\n",
		"level":    "logging:\n  level: loud\n",
		"format":   "logging:\n  format: xml\n",
		"sink":     "metrics:\n  sinks:\n    - conf: {}\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeFile(t, "config.yaml", data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := Load(writeFile(t, "config.toml", "")); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
