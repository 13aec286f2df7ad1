//go:build windows

package dso

// Platform naming convention for modules.
const (
	LibPrefix = ""
	LibSuffix = ".dll"
)
