package dso

import (
	"fmt"

	"github.com/kilianp07/simfactory/core/logger"
)

// Library is one module identified by its logical name. It is opened lazily
// and at most once; Unload returns it to the not-loaded state.
type Library struct {
	name   string
	file   string
	loader Loader
	handle Handle
	auto   bool
	err    error
	log    logger.Logger
}

// Option configures a Library.
type Option func(*Library)

// WithLoader selects the mechanism used to open the module file.
func WithLoader(l Loader) Option {
	return func(lib *Library) {
		if l != nil {
			lib.loader = l
		}
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(l logger.Logger) Option {
	return func(lib *Library) { lib.log = logger.OrNop(l) }
}

// New prepares the module name found in path. Nothing is opened yet.
func New(name, path string, opts ...Option) *Library {
	lib := &Library{
		name:   name,
		file:   FileName(name, path),
		loader: Default(),
		auto:   true,
		log:    logger.Nop{},
	}
	for _, o := range opts {
		o(lib)
	}
	return lib
}

// Name returns the logical module name.
func (l *Library) Name() string { return l.name }

// File returns the resolved file name.
func (l *Library) File() string { return l.file }

// IsLoaded reports whether the module is open.
func (l *Library) IsLoaded() bool { return l.handle != nil }

// AutoUnload reports whether Close unloads the module.
func (l *Library) AutoUnload() bool { return l.auto }

// SetAutoUnload controls whether Close unloads the module.
func (l *Library) SetAutoUnload(u bool) { l.auto = u }

// Err returns the diagnostic of the last failed operation, if any.
func (l *Library) Err() error { return l.err }

// Load opens the module. Loading an already loaded module is a no-op.
func (l *Library) Load() error {
	if l.handle != nil {
		return nil
	}
	h, err := l.loader.Open(l.file)
	if err != nil {
		l.err = fmt.Errorf("load %s: %w", l.file, err)
		l.log.Debugf("dso: %v", l.err)
		return l.err
	}
	l.handle = h
	l.err = nil
	l.log.Debugf("dso: loaded %s", l.file)
	return nil
}

// Resolve returns the value exported under symbol, loading the module first
// when needed.
func (l *Library) Resolve(symbol string) (any, error) {
	if err := l.Load(); err != nil {
		return nil, err
	}
	v, err := l.handle.Lookup(symbol)
	if err == nil && v == nil {
		err = ErrSymbolNotFound
	}
	if err != nil {
		l.err = fmt.Errorf("resolve %q in %s: %w", symbol, l.file, err)
		return nil, l.err
	}
	return v, nil
}

// Unload closes the module. Unloading a module that is not loaded is a no-op.
func (l *Library) Unload() error {
	if l.handle == nil {
		return nil
	}
	if err := l.handle.Close(); err != nil {
		l.err = fmt.Errorf("unload %s: %w", l.file, err)
		return l.err
	}
	l.handle = nil
	l.log.Debugf("dso: unloaded %s", l.file)
	return nil
}

// Close releases the library. The module is unloaded only when auto-unload
// is enabled, which is the default.
func (l *Library) Close() error {
	if !l.auto {
		return nil
	}
	return l.Unload()
}

// ResolveOnce opens the module name in path, resolves symbol and returns it.
// The module is not unloaded afterwards so the returned value stays valid.
// A nil loader selects Default.
func ResolveOnce(loader Loader, name, symbol, path string) (any, error) {
	lib := New(name, path, WithLoader(loader))
	lib.SetAutoUnload(false)
	if err := lib.Load(); err != nil {
		return nil, err
	}
	return lib.Resolve(symbol)
}
