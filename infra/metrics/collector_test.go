package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kilianp07/simfactory/core/events"
	"github.com/kilianp07/simfactory/internal/eventbus"
)

func TestStartEventCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink := sinkIf.(*PromSink)

	bus := eventbus.New[events.Event]()
	done := StartEventCollector(context.Background(), bus, sink, nil)
	bus.Publish(events.ObjectEvent{Family: "geometry", Type: "slab", Kind: events.ObjectCreated})
	bus.Publish(events.ModuleEvent{Family: "geometry", Kind: events.ModuleLoaded})
	bus.Publish("ignored")
	bus.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("collector did not stop after bus close")
	}
	if v := testutil.ToFloat64(sink.objects.WithLabelValues("geometry", "slab", "created")); v != 1 {
		t.Errorf("object event not recorded: %v", v)
	}
	if v := testutil.ToFloat64(sink.modules.WithLabelValues("geometry", "loaded")); v != 1 {
		t.Errorf("module event not recorded: %v", v)
	}
}

// gatedSink blocks its first record until release is closed.
type gatedSink struct {
	release chan struct{}
	once    sync.Once
	objects atomic.Int64
}

func (g *gatedSink) RecordObject(events.ObjectEvent) error {
	g.once.Do(func() { <-g.release })
	g.objects.Add(1)
	return nil
}

func (g *gatedSink) RecordModule(events.ModuleEvent) error { return nil }

func TestStartEventCollector_LargeBuild(t *testing.T) {
	const n = 1000
	sink := &gatedSink{release: make(chan struct{})}
	bus := eventbus.New[events.Event]()
	done := StartEventCollector(context.Background(), bus, sink, nil)
	for i := 0; i < n; i++ {
		bus.Publish(events.ObjectEvent{Family: "shape", Type: "box", Kind: events.ObjectCreated})
	}
	close(sink.release)
	bus.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("collector did not stop after bus close")
	}
	if got := sink.objects.Load(); got != n {
		t.Errorf("recorded %d events, want %d", got, n)
	}
	if d := bus.Dropped(); d != 0 {
		t.Errorf("dropped %d events", d)
	}
}

func TestStartEventCollector_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	bus := eventbus.New[events.Event]()
	defer bus.Close()
	done := StartEventCollector(ctx, bus, nil, nil)
	<-done

	done = StartEventCollector(ctx, bus, &PromSink{}, nil)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("collector did not stop on cancel")
	}
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	_ = sink.RecordObject(events.ObjectEvent{Family: "shape", Type: "point", Kind: events.ObjectCreated})

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `factory_live_objects{family="shape"} 1`) {
		t.Errorf("metrics not exposed:\n%s", rec.Body.String())
	}
}
