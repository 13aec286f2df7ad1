package metrics

import (
	"context"

	"github.com/kilianp07/simfactory/core/events"
	coremetrics "github.com/kilianp07/simfactory/core/metrics"
	"github.com/kilianp07/simfactory/infra/logger"
	"github.com/kilianp07/simfactory/internal/eventbus"
)

// CollectorBuffer is the bus buffer held by StartEventCollector.
const CollectorBuffer = 4096

// StartEventCollector subscribes to the event bus and records metrics for events.
// It stops when the context is canceled or the bus is closed. The returned
// channel is closed once the collector has stopped.
//
// The bus never blocks publishers: once CollectorBuffer events are pending
// further events are dropped and counted in bus.Dropped, so the recorded
// metrics under-count.
func StartEventCollector(ctx context.Context, bus *eventbus.Bus[events.Event], sink coremetrics.MetricsSink, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	sub := bus.SubscribeBuffered(CollectorBuffer)
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				var err error
				switch e := ev.(type) {
				case events.ObjectEvent:
					err = sink.RecordObject(e)
				case events.ModuleEvent:
					err = sink.RecordModule(e)
				}
				if err != nil {
					log.Errorf("record factory event: %v", err)
				}
			}
		}
	}()
	return done
}
