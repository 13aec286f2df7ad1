package factory

import "errors"

var (
	// ErrSearchRoot is returned when a relative module path cannot be
	// anchored because the environment variable naming the root is unset.
	ErrSearchRoot = errors.New("factory: search root not defined")
	// ErrNilInput is returned when a nil input item is passed.
	ErrNilInput = errors.New("factory: null input")
	// ErrNoSection is returned when the input has no definition section.
	ErrNoSection = errors.New("factory: missing definition section")
	// ErrUnknownType is returned when an item names neither a known type
	// nor a module.
	ErrUnknownType = errors.New("factory: unknown object type")
	// ErrLoadModule is returned when a module fails to load.
	ErrLoadModule = errors.New("factory: failed to load module")
	// ErrResolveEntryPoint is returned when a module lacks the entry point.
	ErrResolveEntryPoint = errors.New("factory: failed to resolve entry point")
	// ErrBadEntryPoint is returned when the entry point symbol cannot be
	// used to create objects.
	ErrBadEntryPoint = errors.New("factory: unusable entry point")
	// ErrAPIVersion is returned for a registration built against another
	// factory API version.
	ErrAPIVersion = errors.New("factory: entry point API version mismatch")
	// ErrConstruct is returned when an entry point or prototype fails.
	ErrConstruct = errors.New("factory: object construction failed")
	// ErrNilObject is returned when a nil object is added.
	ErrNilObject = errors.New("factory: null object")
	// ErrDuplicateName is returned when unique naming is requested and the
	// name is already taken.
	ErrDuplicateName = errors.New("factory: duplicate object name")
	// ErrNoObject is returned when a selected object does not exist.
	ErrNoObject = errors.New("factory: no such object")
	// ErrWrongFamily is returned by typed factories for objects of another
	// family.
	ErrWrongFamily = errors.New("factory: object is not of the factory type")
	// ErrClosed is returned by a closed factory.
	ErrClosed = errors.New("factory: closed")
)
