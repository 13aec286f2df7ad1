//go:build !darwin && !freebsd && !linux && !windows

package dso

type nativeLoader struct{}

// Native returns a Loader for shared objects. This platform has no dynamic
// loader, every Open fails.
func Native() Loader { return nativeLoader{} }

func (nativeLoader) Open(string) (Handle, error) { return nil, ErrUnsupported }
