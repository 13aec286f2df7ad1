// Package dso loads separately compiled modules at runtime and resolves the
// symbols they export.
//
// A Library is identified by a logical name such as "egs_box". The file that
// is actually opened is derived from that name with the platform naming
// convention (see FileName) and handed to a Loader. Three loaders ship with
// the package:
//
//   - GoPlugin opens modules built with -buildmode=plugin. Symbols are Go
//     values, which is what the object factory needs to construct components.
//   - Native opens C-ABI shared objects (purego on unix, LoadLibrary on
//     Windows). Symbols are raw Addresses.
//   - Static serves modules that were linked into the binary and registered
//     under their logical name.
//
// Chain combines loaders; the first one that opens a file wins.
//
// Example usage:
//
//	lib := dso.New("egs_box", "/opt/egs/dso", dso.WithLoader(dso.GoPlugin()))
//	defer lib.Close()
//	sym, err := lib.Resolve("createGeometry")
package dso
