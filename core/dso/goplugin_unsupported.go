//go:build !((linux || darwin || freebsd) && cgo)

package dso

type goPluginLoader struct{}

// GoPlugin returns a Loader for modules built with -buildmode=plugin. Go
// plugins are not available in this build, every Open fails.
func GoPlugin() Loader { return goPluginLoader{} }

// Default returns the loader used when none is configured.
func Default() Loader { return Native() }

func (goPluginLoader) Open(string) (Handle, error) {
	return nil, ErrUnsupported
}
