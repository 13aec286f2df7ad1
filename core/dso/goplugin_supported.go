//go:build (linux || darwin || freebsd) && cgo

package dso

import (
	"fmt"
	"plugin"
)

type goPluginLoader struct{}

// GoPlugin returns a Loader for modules built with -buildmode=plugin.
func GoPlugin() Loader { return goPluginLoader{} }

// Default returns the loader used when none is configured.
func Default() Loader { return GoPlugin() }

func (goPluginLoader) Open(file string) (Handle, error) {
	p, err := plugin.Open(file)
	if err != nil {
		return nil, err
	}
	return goPluginHandle{p: p}, nil
}

type goPluginHandle struct {
	p *plugin.Plugin
}

func (h goPluginHandle) Lookup(symbol string) (any, error) {
	sym, err := h.p.Lookup(symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSymbolNotFound, err)
	}
	return sym, nil
}

// Close is a no-op: the Go runtime cannot unload plugins, they stay resident
// for the lifetime of the process.
func (goPluginHandle) Close() error { return nil }
