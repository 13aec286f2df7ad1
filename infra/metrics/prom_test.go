package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kilianp07/simfactory/core/events"
)

func TestPromSink_RecordObject(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink, ok := sinkIf.(*PromSink)
	if !ok {
		t.Fatalf("expected PromSink")
	}
	for _, ev := range []events.ObjectEvent{
		{Family: "shape", Type: "box", Kind: events.ObjectCreated},
		{Family: "shape", Type: "box", Kind: events.ObjectCreated},
		{Family: "shape", Type: "box", Kind: events.ObjectDestroyed},
		{Family: "shape", Type: "egs_ring", Kind: events.ObjectRejected, Reason: events.ReasonLoad},
	} {
		if err := sink.RecordObject(ev); err != nil {
			t.Fatalf("record error: %v", err)
		}
	}

	expected := `
# HELP factory_objects_total Object lifecycle events per family, type and kind
# TYPE factory_objects_total counter
factory_objects_total{family="shape",kind="created",type="box"} 2
factory_objects_total{family="shape",kind="destroyed",type="box"} 1
factory_objects_total{family="shape",kind="rejected",type="egs_ring"} 1
`
	if err := testutil.CollectAndCompare(sink.objects, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if v := testutil.ToFloat64(sink.live.WithLabelValues("shape")); v != 1 {
		t.Errorf("expected 1 live shape, got %v", v)
	}
}

func TestPromSink_RecordModule(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink := sinkIf.(*PromSink)
	_ = sink.RecordModule(events.ModuleEvent{Family: "source", Kind: events.ModuleLoaded})
	_ = sink.RecordModule(events.ModuleEvent{Family: "source", Kind: events.ModuleUnloaded})
	if v := testutil.ToFloat64(sink.modules.WithLabelValues("source", "loaded")); v != 1 {
		t.Errorf("expected 1 load, got %v", v)
	}
	if c := testutil.CollectAndCount(sink.modules); c != 2 {
		t.Errorf("expected 2 series, got %d", c)
	}
}

// Registering twice on the same registry reuses the existing collectors.
func TestPromSink_Reregister(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	_ = a.RecordObject(events.ObjectEvent{Family: "ausgab", Type: "t", Kind: events.ObjectCreated})
	if v := testutil.ToFloat64(b.(*PromSink).live.WithLabelValues("ausgab")); v != 1 {
		t.Errorf("collectors not shared, got %v", v)
	}
}
