package dso

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotLoaded is returned when a handle is used after it was closed.
	ErrNotLoaded = errors.New("module not loaded")
	// ErrSymbolNotFound is returned when a module does not export a symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrModuleNotFound is returned by loaders that know their modules up
	// front when the requested module is not among them.
	ErrModuleNotFound = errors.New("module not found")
	// ErrUnsupported is returned when the platform cannot load modules with
	// the selected mechanism.
	ErrUnsupported = errors.New("module loading not supported on this platform")
)

// Loader opens module files.
type Loader interface {
	Open(file string) (Handle, error)
}

// Handle is an opened module.
type Handle interface {
	// Lookup returns the value exported under symbol.
	Lookup(symbol string) (any, error)
	// Close releases the module. Closing twice is not an error.
	Close() error
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(file string) (Handle, error)

// Open calls f(file).
func (f LoaderFunc) Open(file string) (Handle, error) { return f(file) }

// Address is the raw address of a symbol resolved from a native module.
type Address uintptr

func (a Address) String() string { return fmt.Sprintf("%#x", uintptr(a)) }

// FileName builds the platform specific file name of the module called name.
// When path is empty the name is left for the platform loader to search.
func FileName(name, path string) string {
	var b strings.Builder
	if path != "" {
		b.WriteString(path)
		if !os.IsPathSeparator(path[len(path)-1]) {
			b.WriteByte(filepath.Separator)
		}
	}
	b.WriteString(LibPrefix)
	b.WriteString(name)
	b.WriteString(LibSuffix)
	return b.String()
}

// LogicalName reverses FileName: it strips the directory, the platform
// prefix and the platform suffix from file.
func LogicalName(file string) string {
	base := filepath.Base(file)
	if LibPrefix != "" {
		base = strings.TrimPrefix(base, LibPrefix)
	}
	return strings.TrimSuffix(base, LibSuffix)
}

type chain []Loader

// Chain returns a Loader that tries each loader in order and returns the
// first handle that opens. When all of them fail the errors are joined.
func Chain(loaders ...Loader) Loader {
	return chain(loaders)
}

func (c chain) Open(file string) (Handle, error) {
	if len(c) == 0 {
		return nil, ErrUnsupported
	}
	var errs []error
	for _, l := range c {
		h, err := l.Open(file)
		if err == nil {
			return h, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}
