package factory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/simfactory/core/dso"
	"github.com/kilianp07/simfactory/core/events"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/core/logger"
	"github.com/kilianp07/simfactory/core/object"
)

// Factory creates, owns and destroys objects. It is not safe for concurrent
// use.
type Factory struct {
	id       string
	family   string
	dsoPath  string
	location Location
	loader   dso.Loader
	log      logger.Logger
	pub      events.Publisher
	counter  *object.Counter
	binder   NativeBinder

	libs    []*dso.Library
	known   *catalog[object.Prototype]
	objects []object.Object
	typeIDs []string
	closed  bool
}

// New returns a factory loading modules from dsoPath. A relative path is
// joined to the root named by the configured Location; New fails with
// ErrSearchRoot when that environment variable is not set.
func New(dsoPath string, opts ...Option) (*Factory, error) {
	f := &Factory{
		id:      uuid.NewString(),
		family:  "object",
		loader:  dso.Default(),
		log:     logger.Nop{},
		pub:     events.Nop{},
		counter: object.Default,
		known:   newCatalog[object.Prototype](),
	}
	for _, o := range opts {
		o(f)
	}
	p, err := SearchPath(dsoPath, f.location)
	if err != nil {
		return nil, err
	}
	f.dsoPath = p
	return f, nil
}

// SearchPath resolves dsoPath against the root selected by loc.
func SearchPath(dsoPath string, loc Location) (string, error) {
	if filepath.IsAbs(dsoPath) {
		return filepath.Clean(dsoPath), nil
	}
	env := loc.EnvVar()
	root, ok := os.LookupEnv(env)
	if !ok || root == "" {
		return "", fmt.Errorf("%w: the environment variable %s must be defined", ErrSearchRoot, env)
	}
	return filepath.Join(root, dsoPath), nil
}

// ID returns the unique identifier of the factory.
func (f *Factory) ID() string { return f.id }

// Family returns the kind of objects the factory creates.
func (f *Factory) Family() string { return f.family }

// DSOPath returns the absolute directory modules are loaded from.
func (f *Factory) DSOPath() string { return f.dsoPath }

// Counter returns the counter used for generated object names. Entry points
// should build their objects with it.
func (f *Factory) Counter() *object.Counter { return f.counter }

// Logger returns the factory logger.
func (f *Factory) Logger() logger.Logger { return f.log }

// CreateObjects creates one object for every objectTag child of the section
// named section, and returns the selected object.
//
// If item is not itself the section, the first section child is taken out of
// item. Failed children are skipped. When the section has a selectKey value
// the object of that name is returned, otherwise the most recently created
// object. The returned error joins every failure.
func (f *Factory) CreateObjects(item *input.Item, section, objectTag, selectKey, entryPoint string, unique bool) (object.Object, error) {
	return f.createObjects(item, section, objectTag, selectKey, func(ij *input.Item) error {
		_, err := f.CreateSingleObject(ij, entryPoint, unique)
		return err
	})
}

func (f *Factory) createObjects(item *input.Item, section, objectTag, selectKey string, create func(*input.Item) error) (object.Object, error) {
	if item == nil {
		return nil, f.warn(fmt.Errorf("%w: createObjects called with null input", ErrNilInput), nil)
	}
	in := item
	if !item.IsA(section) {
		in = item.TakeItem(section, false)
		if in == nil {
			return nil, f.warn(fmt.Errorf("%w: the input is not of type %s and also does not have items of this type",
				ErrNoSection, section), map[string]any{"section": section})
		}
	}
	var errs []error
	for ij := in.TakeItem(objectTag, false); ij != nil; ij = in.TakeItem(objectTag, false) {
		if err := create(ij); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		f.log.Warnw(fmt.Sprintf("%d errors occurred while creating objects", len(errs)), f.fields(map[string]any{"section": section}))
	}
	var o object.Object
	if n := len(f.objects); n > 0 {
		o = f.objects[n-1]
	}
	if sel, err := in.GetString(selectKey); err == nil {
		o = f.GetObject(sel)
		if o == nil {
			errs = append(errs, f.warn(fmt.Errorf("%w: an object with the name %s does not exist", ErrNoObject, sel),
				map[string]any{"name": sel}))
		}
	}
	return o, errors.Join(errs...)
}

// CreateSingleObject creates one object from item and adds it to the
// factory.
//
// A "type" naming a known prototype is constructed from the prototype.
// Otherwise the "library" module is loaded and its entryPoint symbol, or
// DefaultEntryPoint when empty, is invoked. Every failure is logged once as
// a warning and returned.
func (f *Factory) CreateSingleObject(item *input.Item, entryPoint string, unique bool) (object.Object, error) {
	if item == nil {
		return nil, f.warn(fmt.Errorf("%w: createSingleObject called with null input", ErrNilInput), nil)
	}
	if f.closed {
		return nil, f.warn(ErrClosed, nil)
	}
	otype, terr := item.GetString("type")
	if terr == nil {
		if p, ok := f.known.get(otype); ok {
			o, err := p.CreateObject(item, f.counter)
			if err == nil && o == nil {
				err = ErrNilObject
			}
			if err != nil {
				f.reject(otype, events.ReasonConstruct)
				return nil, f.warn(fmt.Errorf("%w: %s: %w", ErrConstruct, otype, err), map[string]any{"type": otype})
			}
			return f.register(o, unique)
		}
	}
	name, err := item.GetString("library")
	if err != nil {
		if terr != nil {
			err = fmt.Errorf("%w: input item %s does not define an object type or an object library", ErrUnknownType, item.Key())
		} else {
			err = fmt.Errorf("%w: input item %s: don't know anything about object type %s and no object library is defined",
				ErrUnknownType, item.Key(), otype)
		}
		f.reject(otype, events.ReasonNoType)
		return nil, f.warn(err, map[string]any{"item": item.Key()})
	}
	lib, err := f.Library(name)
	if err != nil {
		f.reject(name, events.ReasonLoad)
		return nil, f.warn(err, map[string]any{"library": name})
	}
	create, err := f.entryPoint(lib, entryPoint)
	if err != nil {
		f.reject(name, events.ReasonResolve)
		return nil, f.warn(err, map[string]any{"library": name})
	}
	o, err := create(item, f)
	if err == nil && o == nil {
		err = ErrNilObject
	}
	if err != nil {
		f.reject(name, events.ReasonConstruct)
		return nil, f.warn(fmt.Errorf("%w: library %s failed to construct an object: %w", ErrConstruct, name, err),
			map[string]any{"library": name})
	}
	return f.register(o, unique)
}

func (f *Factory) register(o object.Object, unique bool) (object.Object, error) {
	if err := f.AddObject(o, unique); err != nil {
		f.reject(o.Type(), events.ReasonDuplicate)
		object.Destroy(o)
		return nil, err
	}
	f.publish(events.ObjectEvent{Type: o.Type(), Name: o.Name(), Kind: events.ObjectCreated})
	return o, nil
}

// Library returns the named module, loading it on first use. Modules are
// loaded at most once per factory.
func (f *Factory) Library(name string) (*dso.Library, error) {
	for _, l := range f.libs {
		if l.Name() == name {
			return l, nil
		}
	}
	lib := dso.New(name, f.dsoPath, dso.WithLoader(f.loader), dso.WithLogger(f.log))
	if err := lib.Load(); err != nil {
		f.publish(events.ModuleEvent{Library: name, File: lib.File(), Kind: events.ModuleLoadFailed, Err: err})
		return nil, fmt.Errorf("%w: failed to load the library %s from %s: %w", ErrLoadModule, name, f.dsoPath, err)
	}
	f.libs = append(f.libs, lib)
	f.publish(events.ModuleEvent{Library: name, File: lib.File(), Kind: events.ModuleLoaded})
	return lib, nil
}

// Libraries returns the modules loaded so far, in load order.
func (f *Factory) Libraries() []*dso.Library {
	out := make([]*dso.Library, len(f.libs))
	copy(out, f.libs)
	return out
}

func (f *Factory) entryPoint(lib *dso.Library, name string) (EntryPoint, error) {
	if name == "" {
		name = DefaultEntryPoint
	}
	sym, err := lib.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve the '%s' function in the library %s: %w",
			ErrResolveEntryPoint, name, lib.Name(), err)
	}
	ep, err := f.bind(name, sym)
	if err != nil {
		return nil, fmt.Errorf("library %s: %w", lib.Name(), err)
	}
	return ep, nil
}

// AddObject adds o to the factory and makes the factory its owner. Adding an
// object already held by the factory succeeds without changes. With unique
// set, an object whose name is already used is rejected.
func (f *Factory) AddObject(o object.Object, unique bool) error {
	if o == nil {
		return f.warn(fmt.Errorf("%w: attempt to add a null object", ErrNilObject), nil)
	}
	if f.HaveObject(o) {
		return nil
	}
	if unique {
		name := o.Name()
		for _, x := range f.objects {
			if x.Name() == name {
				return f.warn(fmt.Errorf("%w: an object with the name %s already exists", ErrDuplicateName, name),
					map[string]any{"name": name})
			}
		}
	}
	f.objects = append(f.objects, o)
	object.SetOwner(o, f)
	return nil
}

// RemoveObject removes o from the factory without destroying it.
func (f *Factory) RemoveObject(o object.Object) {
	for i, x := range f.objects {
		if object.Same(x, o) {
			f.objects = append(f.objects[:i], f.objects[i+1:]...)
			if x.Owner() == object.Owner(f) {
				object.Detach(x)
			}
			return
		}
	}
}

// HaveObject reports whether o is held by the factory.
func (f *Factory) HaveObject(o object.Object) bool {
	for _, x := range f.objects {
		if object.Same(x, o) {
			return true
		}
	}
	return false
}

// GetObject returns the first object named name, or nil.
func (f *Factory) GetObject(name string) object.Object {
	for _, x := range f.objects {
		if x.Name() == name {
			return x
		}
	}
	return nil
}

// TakeObject removes the object named name from the factory and drops the
// factory's reference to it. The caller becomes responsible for the object.
func (f *Factory) TakeObject(name string) object.Object {
	o := f.GetObject(name)
	if o == nil {
		return nil
	}
	f.RemoveObject(o)
	o.Deref()
	f.publish(events.ObjectEvent{Type: o.Type(), Name: o.Name(), Kind: events.ObjectTaken})
	return o
}

// NObjects returns the number of objects held.
func (f *Factory) NObjects() int { return len(f.objects) }

// ObjectAt returns the j'th object, or nil when j is out of range.
func (f *Factory) ObjectAt(j int) object.Object {
	if j < 0 || j >= len(f.objects) {
		return nil
	}
	return f.objects[j]
}

// Objects returns the held objects in creation order.
func (f *Factory) Objects() []object.Object {
	out := make([]object.Object, len(f.objects))
	copy(out, f.objects)
	return out
}

// AddKnownObject registers a prototype for its type name. The factory keeps
// a reference to it until Close.
func (f *Factory) AddKnownObject(p object.Prototype) error {
	if p == nil {
		return nil
	}
	if !f.known.add(p.Type(), p) {
		return f.warn(fmt.Errorf("%w: a prototype for type %s is already known", ErrDuplicateName, p.Type()),
			map[string]any{"type": p.Type()})
	}
	p.Ref()
	return nil
}

// KnownTypes returns the type names of the registered prototypes.
func (f *Factory) KnownTypes() []string {
	out := make([]string, 0, f.known.len())
	for _, p := range f.known.values() {
		out = append(out, p.Type())
	}
	return out
}

// AddKnownTypeID records a type marker as belonging to the factory family.
func (f *Factory) AddKnownTypeID(marker string) {
	if marker == "" || f.IsKnownTypeID(marker) {
		return
	}
	f.typeIDs = append(f.typeIDs, marker)
}

// IsKnownTypeID reports whether marker was recorded with AddKnownTypeID.
func (f *Factory) IsKnownTypeID(marker string) bool {
	for _, t := range f.typeIDs {
		if t == marker {
			return true
		}
	}
	return false
}

// Close destroys the known prototypes, then the held objects, then unloads
// the modules. Closing twice is a no-op.
func (f *Factory) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	for _, p := range f.known.values() {
		object.Destroy(p)
	}
	f.known = newCatalog[object.Prototype]()

	objs := f.objects
	f.objects = nil
	// One destroyed event per held object, including parts destroyed by
	// another object's OnDestroy hook during the loop.
	for _, o := range objs {
		object.Detach(o)
		object.Destroy(o)
		f.publish(events.ObjectEvent{Type: o.Type(), Name: o.Name(), Kind: events.ObjectDestroyed})
	}

	var errs []error
	for _, l := range f.libs {
		loaded := l.IsLoaded()
		if err := l.Close(); err != nil {
			errs = append(errs, err)
			continue
		}
		if loaded && !l.IsLoaded() {
			f.publish(events.ModuleEvent{Library: l.Name(), File: l.File(), Kind: events.ModuleUnloaded})
		}
	}
	f.libs = nil
	return errors.Join(errs...)
}

func (f *Factory) fields(extra map[string]any) map[string]any {
	m := map[string]any{"factory_id": f.id, "family": f.family}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

// warn logs err once and returns it.
func (f *Factory) warn(err error, extra map[string]any) error {
	f.log.Warnw(err.Error(), f.fields(extra))
	return err
}

func (f *Factory) reject(otype, reason string) {
	f.publish(events.ObjectEvent{Type: otype, Kind: events.ObjectRejected, Reason: reason})
}

func (f *Factory) publish(e events.Event) {
	now := time.Now()
	switch ev := e.(type) {
	case events.ObjectEvent:
		ev.FactoryID, ev.Family, ev.Time = f.id, f.family, now
		e = ev
	case events.ModuleEvent:
		ev.FactoryID, ev.Family, ev.Time = f.id, f.family, now
		e = ev
	}
	f.pub.Publish(e)
}
