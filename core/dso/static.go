package dso

import (
	"fmt"
	"sort"
	"sync"
)

// Static serves modules linked into the binary. Modules are registered under
// their logical name together with the symbols they export; Open maps a file
// name produced by FileName back to that logical name.
type Static struct {
	mu      sync.RWMutex
	modules map[string]map[string]any
}

// NewStatic returns an empty Static loader.
func NewStatic() *Static {
	return &Static{modules: make(map[string]map[string]any)}
}

// Register adds a module exporting symbols.
func (s *Static) Register(name string, symbols map[string]any) error {
	if name == "" {
		return fmt.Errorf("static module without a name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.modules[name]; ok {
		return fmt.Errorf("static module %s already registered", name)
	}
	table := make(map[string]any, len(symbols))
	for k, v := range symbols {
		table[k] = v
	}
	s.modules[name] = table
	return nil
}

// Modules lists the registered module names in sorted order.
func (s *Static) Modules() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.modules))
	for n := range s.modules {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Symbols lists the symbols exported by module name in sorted order.
func (s *Static) Symbols(name string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table := s.modules[name]
	syms := make([]string, 0, len(table))
	for k := range table {
		syms = append(syms, k)
	}
	sort.Strings(syms)
	return syms
}

// Open implements Loader.
func (s *Static) Open(file string) (Handle, error) {
	name := LogicalName(file)
	s.mu.RLock()
	table, ok := s.modules[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, name)
	}
	return &staticHandle{symbols: table}, nil
}

type staticHandle struct {
	symbols map[string]any
	closed  bool
}

func (h *staticHandle) Lookup(symbol string) (any, error) {
	if h.closed {
		return nil, ErrNotLoaded
	}
	v, ok := h.symbols[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	return v, nil
}

func (h *staticHandle) Close() error {
	h.closed = true
	return nil
}
