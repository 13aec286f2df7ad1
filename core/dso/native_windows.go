//go:build windows

package dso

import (
	"fmt"

	"golang.org/x/sys/windows"
)

type nativeLoader struct{}

// Native returns a Loader for DLLs. Symbols resolve to an Address.
func Native() Loader { return nativeLoader{} }

func (nativeLoader) Open(file string) (Handle, error) {
	h, err := windows.LoadLibrary(file)
	if err != nil {
		return nil, err
	}
	return &nativeHandle{h: h}, nil
}

type nativeHandle struct {
	h windows.Handle
}

func (n *nativeHandle) Lookup(symbol string) (any, error) {
	if n.h == 0 {
		return nil, ErrNotLoaded
	}
	addr, err := windows.GetProcAddress(n.h, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSymbolNotFound, err)
	}
	return Address(addr), nil
}

func (n *nativeHandle) Close() error {
	if n.h == 0 {
		return nil
	}
	if err := windows.FreeLibrary(n.h); err != nil {
		return err
	}
	n.h = 0
	return nil
}
