// Package app wires the object factories of a simulation application: one
// typed factory per component family, sharing a module loader, a logger and
// an event bus feeding the metrics sinks.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/simfactory/app/plugins"
	"github.com/kilianp07/simfactory/config"
	"github.com/kilianp07/simfactory/core/ausgab"
	"github.com/kilianp07/simfactory/core/dso"
	"github.com/kilianp07/simfactory/core/events"
	"github.com/kilianp07/simfactory/core/factory"
	"github.com/kilianp07/simfactory/core/geometry"
	coremetrics "github.com/kilianp07/simfactory/core/metrics"
	"github.com/kilianp07/simfactory/core/object"
	"github.com/kilianp07/simfactory/core/shapes"
	"github.com/kilianp07/simfactory/core/sources"
	"github.com/kilianp07/simfactory/infra/logger"
	"github.com/kilianp07/simfactory/infra/metrics"
	"github.com/kilianp07/simfactory/internal/eventbus"
)

// App owns the factories of one application run.
type App struct {
	Shapes   *shapes.Factory
	Sources  *sources.Factory
	Geometry *geometry.Factory
	Ausgab   *ausgab.Factory

	bus    *eventbus.Bus[events.Event]
	sink   coremetrics.MetricsSink
	log    logger.Logger
	cancel context.CancelFunc
	done   <-chan struct{}
	closed bool
}

// NewLoader returns the module loader selected by kind.
func NewLoader(kind string) (dso.Loader, error) {
	switch kind {
	case config.LoaderChain, "":
		return dso.Chain(plugins.Loader(), dso.Default()), nil
	case config.LoaderGoPlugin:
		return dso.GoPlugin(), nil
	case config.LoaderNative:
		return dso.Native(), nil
	case config.LoaderStatic:
		return plugins.Loader(), nil
	}
	return nil, fmt.Errorf("unknown loader %s", kind)
}

// New creates the factories described by cfg and installs them as the
// process-wide factories of their family. A missing search root environment
// variable is returned as factory.ErrSearchRoot.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = &config.Config{}
		cfg.SetDefaults()
	}
	log := logger.New("app")
	loader, err := NewLoader(cfg.Factory.Loader)
	if err != nil {
		return nil, err
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	a := &App{bus: eventbus.New[events.Event](), sink: sink, log: log}
	opts := []factory.Option{
		factory.WithLocation(cfg.Factory.SearchLocation()),
		factory.WithLoader(loader),
		factory.WithLogger(logger.New("factory")),
		factory.WithPublisher(a.bus),
		factory.WithCounter(object.Default),
	}
	if a.Shapes, err = shapes.NewFactory(cfg.DSOPath(shapes.Family), opts...); err == nil {
		if a.Sources, err = sources.NewFactory(cfg.DSOPath(sources.Family), opts...); err == nil {
			if a.Geometry, err = geometry.NewFactory(cfg.DSOPath(geometry.Family), opts...); err == nil {
				a.Ausgab, err = ausgab.NewFactory(cfg.DSOPath(ausgab.Family), opts...)
			}
		}
	}
	if err != nil {
		_ = a.closeFactories()
		a.bus.Close()
		closeSink(sink)
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.done = metrics.StartEventCollector(ctx, a.bus, sink, logger.New("collector"))
	if cfg.Metrics.Listen != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, cfg.Metrics.Listen, prometheus.DefaultGatherer); err != nil {
				log.Errorf("prom server: %v", err)
			}
		}()
	}

	closeReplaced(shapes.SetDefault(a.Shapes), log)
	closeReplaced(sources.SetDefault(a.Sources), log)
	closeReplaced(geometry.SetDefault(a.Geometry), log)
	closeReplaced(ausgab.SetDefault(a.Ausgab), log)
	return a, nil
}

func closeReplaced[T object.Object](f *factory.Typed[T], log logger.Logger) {
	if f == nil {
		return
	}
	if err := f.Close(); err != nil {
		log.Warnf("close replaced %s factory: %v", f.Factory().Family(), err)
	}
}

func uninstall[T object.Object](set func(*factory.Typed[T]) *factory.Typed[T], f *factory.Typed[T]) {
	if cur := set(nil); cur != f {
		set(cur)
	}
}

// Bus returns the event bus the factories publish to.
func (a *App) Bus() *eventbus.Bus[events.Event] { return a.bus }

// Close destroys every object, unloads every module and stops the metrics
// collector.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	uninstall(shapes.SetDefault, a.Shapes)
	uninstall(sources.SetDefault, a.Sources)
	uninstall(geometry.SetDefault, a.Geometry)
	uninstall(ausgab.SetDefault, a.Ausgab)

	err := a.closeFactories()
	a.bus.Close()
	<-a.done
	a.cancel()
	closeSink(a.sink)
	if dropped := a.bus.Dropped(); dropped > 0 {
		a.log.Warnf("%d factory events were not recorded", dropped)
	}
	return err
}

func (a *App) closeFactories() error {
	var errs []error
	// Ausgab objects and sources may hold shapes and geometries.
	if a.Ausgab != nil {
		errs = append(errs, a.Ausgab.Close())
	}
	if a.Sources != nil {
		errs = append(errs, a.Sources.Close())
	}
	if a.Geometry != nil {
		errs = append(errs, a.Geometry.Close())
	}
	if a.Shapes != nil {
		errs = append(errs, a.Shapes.Close())
	}
	return errors.Join(errs...)
}

func closeSink(s coremetrics.MetricsSink) {
	if c, ok := s.(coremetrics.Closer); ok {
		_ = c.Close()
	}
}
