package factory

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"

	"github.com/kilianp07/simfactory/core/input"
)

// ModuleConfig contains the type name and raw configuration for a module.
type ModuleConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Constructor builds an implementation of T using the provided raw config.
type Constructor[T any] func(map[string]any) (T, error)

// Registry stores constructors keyed by module type. Type names are matched
// the way input keys are: case and white space do not matter.
type Registry[T any] struct {
	mu    sync.RWMutex
	ctors map[string]Constructor[T]
	names map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{ctors: make(map[string]Constructor[T]), names: make(map[string]string)}
}

// Register adds a constructor for the given type name.
func (r *Registry[T]) Register(name string, f Constructor[T]) error {
	if f == nil {
		return fmt.Errorf("constructor nil for %s", name)
	}
	key := input.Normalize(name)
	if key == "" {
		return fmt.Errorf("empty module type")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ctors[key]; ok {
		return fmt.Errorf("constructor already registered for %s", name)
	}
	r.ctors[key] = f
	r.names[key] = name
	return nil
}

// Has reports whether a constructor is registered for name.
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[input.Normalize(name)]
	return ok
}

// Names returns the registered type names, sorted.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Create instantiates a module based on its configuration.
func (r *Registry[T]) Create(cfg ModuleConfig) (T, error) {
	r.mu.RLock()
	f, ok := r.ctors[input.Normalize(cfg.Type)]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown module type %s", cfg.Type)
	}
	return f(cfg.Conf)
}

// Decode fills out the provided struct using json tags.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: out})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}

// DecodeItem fills out the provided struct from the leaf values of an input
// item, using input tags. Keys are matched like input keys, list values are
// split on white space and commas, and numbers are parsed from their text.
//
//	var p struct {
//	    Size []float64 `input:"box size"`
//	}
//	err := factory.DecodeItem(item, &p)
func DecodeItem(item *input.Item, out any) error {
	if item == nil {
		return fmt.Errorf("%w: nil item", input.ErrNoKey)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "input",
		WeaklyTypedInput: true,
		DecodeHook:       splitListHook,
		MatchName:        input.Compare,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(item.Map()); err != nil {
		return fmt.Errorf("%w: %s: %v", input.ErrBadValue, item.Key(), err)
	}
	return nil
}

func splitListHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to.Kind() == reflect.Slice {
		return input.SplitList(reflect.ValueOf(data).String()), nil
	}
	return data, nil
}

// catalog holds the statically known prototypes of a factory in insertion
// order, keyed by normalized type name.
type catalog[T any] struct {
	keys  []string
	items map[string]T
}

func newCatalog[T any]() *catalog[T] { return &catalog[T]{items: make(map[string]T)} }

func (c *catalog[T]) add(name string, v T) bool {
	key := input.Normalize(name)
	if _, ok := c.items[key]; ok {
		return false
	}
	c.keys = append(c.keys, key)
	c.items[key] = v
	return true
}

func (c *catalog[T]) get(name string) (T, bool) {
	v, ok := c.items[input.Normalize(name)]
	return v, ok
}

func (c *catalog[T]) values() []T {
	out := make([]T, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.items[k])
	}
	return out
}

func (c *catalog[T]) len() int { return len(c.keys) }
