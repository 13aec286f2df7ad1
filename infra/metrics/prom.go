package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/simfactory/core/events"
	coremetrics "github.com/kilianp07/simfactory/core/metrics"
)

// PromSink records factory events in Prometheus metrics.
type PromSink struct {
	objects *prometheus.CounterVec
	modules *prometheus.CounterVec
	live    *prometheus.GaugeVec
}

// NewPromSink registers factory metrics on the default Prometheus registerer.
// The endpoint should be started separately with StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	objects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "factory_objects_total",
		Help: "Object lifecycle events per family, type and kind",
	}, []string{"family", "type", "kind"})
	modules := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "factory_modules_total",
		Help: "Module loads, load failures and unloads per family",
	}, []string{"family", "kind"})
	live := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "factory_live_objects",
		Help: "Objects currently held by factories",
	}, []string{"family"})

	var err error
	if objects, err = register(reg, objects); err != nil {
		return nil, err
	}
	if modules, err = register(reg, modules); err != nil {
		return nil, err
	}
	if live, err = register(reg, live); err != nil {
		return nil, err
	}
	return &PromSink{objects: objects, modules: modules, live: live}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordObject counts the event and tracks the number of live objects.
func (s *PromSink) RecordObject(ev events.ObjectEvent) error {
	s.objects.WithLabelValues(ev.Family, ev.Type, string(ev.Kind)).Inc()
	switch ev.Kind {
	case events.ObjectCreated:
		s.live.WithLabelValues(ev.Family).Inc()
	case events.ObjectTaken, events.ObjectDestroyed:
		s.live.WithLabelValues(ev.Family).Dec()
	}
	return nil
}

// RecordModule counts module events.
func (s *PromSink) RecordModule(ev events.ModuleEvent) error {
	s.modules.WithLabelValues(ev.Family, string(ev.Kind)).Inc()
	return nil
}
