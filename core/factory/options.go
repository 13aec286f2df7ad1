package factory

import (
	"fmt"
	"strings"

	"github.com/kilianp07/simfactory/core/dso"
	"github.com/kilianp07/simfactory/core/events"
	"github.com/kilianp07/simfactory/core/logger"
	"github.com/kilianp07/simfactory/core/object"
)

// Location selects the environment variable used to anchor a relative module
// path.
type Location int

const (
	// HenHouse anchors relative paths at $HEN_HOUSE, the system tree.
	HenHouse Location = iota
	// EgsHome anchors relative paths at $EGS_HOME, the user tree.
	EgsHome
)

// EnvVar returns the name of the environment variable for l.
func (l Location) EnvVar() string {
	if l == EgsHome {
		return "EGS_HOME"
	}
	return "HEN_HOUSE"
}

func (l Location) String() string {
	if l == EgsHome {
		return "egs_home"
	}
	return "hen_house"
}

// ParseLocation parses "hen_house" or "egs_home", ignoring case.
func ParseLocation(s string) (Location, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hen_house", "henhouse":
		return HenHouse, nil
	case "egs_home", "egshome":
		return EgsHome, nil
	}
	return HenHouse, fmt.Errorf("unknown location %q", s)
}

// Option configures a Factory.
type Option func(*Factory)

// WithLocation selects the search root used for a relative path.
func WithLocation(l Location) Option { return func(f *Factory) { f.location = l } }

// WithLoader sets the module loader. The default is dso.Default().
func WithLoader(l dso.Loader) Option {
	return func(f *Factory) {
		if l != nil {
			f.loader = l
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logger.Logger) Option { return func(f *Factory) { f.log = logger.OrNop(l) } }

// WithPublisher sets where lifecycle events are published.
func WithPublisher(p events.Publisher) Option {
	return func(f *Factory) {
		if p != nil {
			f.pub = p
		}
	}
}

// WithCounter sets the counter used for generated object names. The default
// is object.Default.
func WithCounter(c *object.Counter) Option {
	return func(f *Factory) {
		if c != nil {
			f.counter = c
		}
	}
}

// WithFamily names the kind of objects the factory creates. It is used in
// logs, events and to check Registration.Family.
func WithFamily(name string) Option { return func(f *Factory) { f.family = name } }

// WithNativeBinder enables native entry points.
func WithNativeBinder(b NativeBinder) Option { return func(f *Factory) { f.binder = b } }
