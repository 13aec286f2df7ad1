package scenarios

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/simfactory/app"
	"github.com/kilianp07/simfactory/config"
	"github.com/kilianp07/simfactory/infra/logger"
	"github.com/kilianp07/simfactory/infra/metrics"
)

func RunScenario(t *testing.T, sc *Scenario) {
	t.Setenv("HEN_HOUSE", t.TempDir())
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	cfg := &config.Config{Factory: config.FactoryConfig{Loader: config.LoaderStatic}}
	cfg.SetDefaults()
	a, err := app.New(cfg)
	if err != nil {
		t.Fatalf("app: %v", err)
	}
	done := metrics.StartEventCollector(context.Background(), a.Bus(), sink, logger.NopLogger{})

	item, err := sc.Item()
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	s, berr := a.Build(item)
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	<-done

	exp := sc.Expected
	if exp.Fails {
		if berr == nil {
			t.Fatalf("expected build error")
		}
		return
	}
	if berr != nil {
		t.Fatalf("build: %v", berr)
	}
	if s.Geometry != exp.Geometry {
		t.Errorf("geometry: got %s want %s", s.Geometry, exp.Geometry)
	}
	if s.Source != exp.Source {
		t.Errorf("source: got %s want %s", s.Source, exp.Source)
	}
	if len(s.Ausgab) != len(exp.Ausgab) {
		t.Errorf("ausgab: got %v want %v", s.Ausgab, exp.Ausgab)
	} else {
		for i := range s.Ausgab {
			if s.Ausgab[i] != exp.Ausgab[i] {
				t.Errorf("ausgab %d: got %s want %s", i, s.Ausgab[i], exp.Ausgab[i])
			}
		}
	}
	if len(s.Errors) != exp.Errors {
		t.Errorf("errors: got %d %v want %d", len(s.Errors), s.Errors, exp.Errors)
	}
	for fam, n := range exp.Created {
		if got := objectCount(t, reg, fam, "created"); got != float64(n) {
			t.Errorf("%s created: got %v want %d", fam, got, n)
		}
	}
	for fam, n := range exp.Rejected {
		if got := objectCount(t, reg, fam, "rejected"); got != float64(n) {
			t.Errorf("%s rejected: got %v want %d", fam, got, n)
		}
	}
	for fam := range exp.Created {
		if got := liveObjects(t, reg, fam); got != 0 {
			t.Errorf("%s: %v objects still live after close", fam, got)
		}
	}
}

func objectCount(t *testing.T, reg *prometheus.Registry, family, kind string) float64 {
	t.Helper()
	var sum float64
	for _, m := range gather(t, reg, "factory_objects_total") {
		if label(m.GetLabel(), "family") == family && label(m.GetLabel(), "kind") == kind {
			sum += m.GetCounter().GetValue()
		}
	}
	return sum
}

func liveObjects(t *testing.T, reg *prometheus.Registry, family string) float64 {
	t.Helper()
	for _, m := range gather(t, reg, "factory_live_objects") {
		if label(m.GetLabel(), "family") == family {
			return m.GetGauge().GetValue()
		}
	}
	return 0
}
