package events

import "time"

// Event is any value published by a factory.
type Event any

// Publisher receives factory events. *eventbus.Bus[Event] satisfies it.
type Publisher interface {
	Publish(Event)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(Event)

// Publish calls f(e).
func (f PublisherFunc) Publish(e Event) { f(e) }

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(Event) {}

// ObjectKind describes what happened to an object.
type ObjectKind string

const (
	ObjectCreated   ObjectKind = "created"
	ObjectRejected  ObjectKind = "rejected"
	ObjectTaken     ObjectKind = "taken"
	ObjectDestroyed ObjectKind = "destroyed"
)

// Reasons attached to rejected objects.
const (
	ReasonNoType     = "no_type"
	ReasonLoad       = "load"
	ReasonResolve    = "resolve"
	ReasonConstruct  = "construct"
	ReasonDuplicate  = "duplicate"
	ReasonWrongKind  = "wrong_family"
	ReasonNilObject  = "nil_object"
	ReasonNoSelected = "no_selected"
)

// ObjectEvent is published for every object lifecycle transition.
type ObjectEvent struct {
	FactoryID string
	Family    string
	Type      string
	Name      string
	Kind      ObjectKind
	Reason    string
	Time      time.Time
}

// ModuleKind describes what happened to a plugin module.
type ModuleKind string

const (
	ModuleLoaded     ModuleKind = "loaded"
	ModuleLoadFailed ModuleKind = "load_failed"
	ModuleUnloaded   ModuleKind = "unloaded"
)

// ModuleEvent is published when a factory loads or releases a module.
type ModuleEvent struct {
	FactoryID string
	Family    string
	Library   string
	File      string
	Kind      ModuleKind
	Err       error
	Time      time.Time
}
