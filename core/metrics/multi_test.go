package metrics

import (
	"errors"
	"testing"

	"github.com/kilianp07/simfactory/core/events"
)

// TestMultiSink ensures events are forwarded to all sinks.

type recordSink struct {
	count  int
	err    error
	closed bool
}

func (r *recordSink) RecordObject(events.ObjectEvent) error {
	r.count++
	return r.err
}

func (r *recordSink) RecordModule(events.ModuleEvent) error {
	r.count++
	return r.err
}

func (r *recordSink) Close() error {
	r.closed = true
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{err: errors.New("s1 down")}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2, NopSink{})
	if err := m.RecordObject(events.ObjectEvent{}); err == nil {
		t.Fatalf("expected the s1 error")
	}
	if err := m.RecordModule(events.ModuleEvent{}); err == nil {
		t.Fatalf("expected the s1 error")
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("events not forwarded to every sink")
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !s1.closed || !s2.closed {
		t.Fatalf("sinks not closed")
	}
}
