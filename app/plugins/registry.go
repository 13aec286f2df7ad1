// Package plugins holds the modules linked into the simfactory binary. They
// are served by a dso.Static loader so that "library = egs_point_source"
// works without a shared object on disk.
package plugins

import (
	"github.com/kilianp07/simfactory/core/dso"
)

var modules = dso.NewStatic()

// Register adds a linked-in module exporting symbols.
func Register(name string, symbols map[string]any) error { return modules.Register(name, symbols) }

// Loader returns the loader serving the linked-in modules.
func Loader() *dso.Static { return modules }

// Modules lists the linked-in module names.
func Modules() []string { return modules.Modules() }

// Symbols lists the symbols exported by module name.
func Symbols(name string) []string { return modules.Symbols(name) }
