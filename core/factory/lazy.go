package factory

import (
	"path/filepath"
	"runtime"
	"sync"

	"github.com/kilianp07/simfactory/core/object"
)

// ConfigName names the per-platform module directory under a search root.
var ConfigName = runtime.GOOS

// DefaultDSOPath is the module directory, relative to $HEN_HOUSE, used by
// family factories that are not configured explicitly.
func DefaultDSOPath() string { return filepath.Join("egs++", "dso", ConfigName) }

// Lazy holds a process-wide typed factory that is created on first use.
type Lazy[T object.Object] struct {
	mu  sync.Mutex
	f   *Typed[T]
	New func() (*Typed[T], error)
}

// Get returns the factory, creating it with New when needed.
func (l *Lazy[T]) Get() (*Typed[T], error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f != nil {
		return l.f, nil
	}
	f, err := l.New()
	if err != nil {
		return nil, err
	}
	l.f = f
	return f, nil
}

// Set installs f and returns the factory it replaces, which the caller
// should close.
func (l *Lazy[T]) Set(f *Typed[T]) *Typed[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	prev := l.f
	l.f = f
	return prev
}

// Close closes and forgets the current factory.
func (l *Lazy[T]) Close() error {
	l.mu.Lock()
	f := l.f
	l.f = nil
	l.mu.Unlock()
	if f == nil {
		return nil
	}
	return f.Close()
}
