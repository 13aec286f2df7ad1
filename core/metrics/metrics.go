package metrics

import (
	"errors"

	"github.com/kilianp07/simfactory/core/events"
)

// MetricsSink records factory lifecycle events for observability purposes.
type MetricsSink interface {
	RecordObject(ev events.ObjectEvent) error
	RecordModule(ev events.ModuleEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordObject(events.ObjectEvent) error { return nil }
func (NopSink) RecordModule(events.ModuleEvent) error { return nil }

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordObject forwards the event to all sinks. Every sink is called; the
// errors are joined.
func (m *MultiSink) RecordObject(ev events.ObjectEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordObject(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordModule forwards the event to all sinks.
func (m *MultiSink) RecordModule(ev events.ModuleEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordModule(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Closer is implemented by sinks holding resources.
type Closer interface {
	Close() error
}

// Close closes every sink implementing Closer.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
