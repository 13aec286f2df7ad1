//go:build darwin || freebsd || linux

package dso

import (
	"fmt"

	"github.com/ebitengine/purego"
)

type nativeLoader struct {
	mode int
}

// Native returns a Loader for C-ABI shared objects. Symbols resolve to an
// Address.
func Native() Loader {
	return nativeLoader{mode: purego.RTLD_LAZY | purego.RTLD_LOCAL}
}

func (n nativeLoader) Open(file string) (Handle, error) {
	h, err := purego.Dlopen(file, n.mode)
	if err != nil {
		return nil, err
	}
	return &nativeHandle{h: h}, nil
}

type nativeHandle struct {
	h uintptr
}

func (n *nativeHandle) Lookup(symbol string) (any, error) {
	if n.h == 0 {
		return nil, ErrNotLoaded
	}
	addr, err := purego.Dlsym(n.h, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSymbolNotFound, err)
	}
	if addr == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	return Address(addr), nil
}

func (n *nativeHandle) Close() error {
	if n.h == 0 {
		return nil
	}
	if err := purego.Dlclose(n.h); err != nil {
		return err
	}
	n.h = 0
	return nil
}
