// Package ausgab defines ausgab objects, the user hooks called during
// particle transport, and the factory creating them from an "ausgab object
// definition" input section.
package ausgab

import (
	"io"

	"github.com/kilianp07/simfactory/core/factory"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/core/object"
)

const (
	// Family is the family name of ausgab objects.
	Family = "ausgab"
	// EntryPoint is the symbol resolved in ausgab modules.
	EntryPoint = "createAusgabObject"

	Section   = "ausgab object definition"
	ObjectTag = "ausgab object"
	// SelectKey is never present in an input: every ausgab object is used.
	SelectKey = "__no__key__"
)

// Call identifies the point of the transport an ausgab object is called at.
type Call int

const (
	BeforeTransport   Call = 0
	EgsCut            Call = 1
	PegsCut           Call = 2
	UserDiscard       Call = 3
	ExtraEnergy       Call = 4
	AfterTransport    Call = 5
	BeforeBrems       Call = 6
	AfterBrems        Call = 7
	BeforeMoller      Call = 8
	AfterMoller       Call = 9
	BeforeBhabha      Call = 10
	AfterBhabha       Call = 11
	BeforeAnnihFlight Call = 12
	AfterAnnihFlight  Call = 13
	AfterAnnihRest    Call = 14
	BeforePair        Call = 15
	AfterPair         Call = 16
	BeforeCompton     Call = 17
	AfterCompton      Call = 18
	BeforePhoto       Call = 19
	AfterPhoto        Call = 20
	EnteringUphi      Call = 21
	LeavingUphi       Call = 22
	BeforeRayleigh    Call = 23
	AfterRayleigh     Call = 24
	FluorescentEvent  Call = 25
	CosterKronigEvent Call = 26
	AugerEvent        Call = 27
	BeforeAnnihRest   Call = 28
	BeforePhotoNuc    Call = 29
	AfterPhotoNuc     Call = 30
	UnknownCall       Call = 31
)

// Object is called by the application at the transport points it needs.
type Object interface {
	object.Object
	NeedsCall(c Call) bool
	ProcessEvent(c Call) error
	// Report writes the results accumulated so far.
	Report(w io.Writer) error
}

// Factory is the typed ausgab factory.
type Factory = factory.Typed[Object]

// NewFactory returns an ausgab object factory.
func NewFactory(dsoPath string, opts ...factory.Option) (*Factory, error) {
	return factory.NewTyped[Object](Family, EntryPoint, dsoPath, nil, opts...)
}

// Create creates every ausgab object of the definition in item with f and
// returns them in input order.
func Create(f *Factory, item *input.Item) ([]Object, error) {
	_, err := f.CreateObjects(item, Section, ObjectTag, SelectKey, true)
	return f.Objects(), err
}

// Dispatch calls ProcessEvent on every object needing c and stops at the
// first error.
func Dispatch(objs []Object, c Call) error {
	for _, o := range objs {
		if !o.NeedsCall(c) {
			continue
		}
		if err := o.ProcessEvent(c); err != nil {
			return err
		}
	}
	return nil
}

var shared = factory.Lazy[Object]{New: func() (*Factory, error) {
	return NewFactory(factory.DefaultDSOPath())
}}

// SetDefault installs the process-wide ausgab factory and returns the
// previous one.
func SetDefault(f *Factory) *Factory { return shared.Set(f) }

// CreateAusgabObjects creates the ausgab objects of item with the
// process-wide factory.
func CreateAusgabObjects(item *input.Item) ([]Object, error) {
	f, err := shared.Get()
	if err != nil {
		return nil, err
	}
	return Create(f, item)
}

// NObjects returns the number of ausgab objects in the process-wide factory.
func NObjects() int {
	f, err := shared.Get()
	if err != nil {
		return 0
	}
	return f.Factory().NObjects()
}

// GetObject returns the j'th ausgab object of the process-wide factory.
func GetObject(j int) (Object, bool) {
	f, err := shared.Get()
	if err != nil {
		return nil, false
	}
	o, ok := f.Factory().ObjectAt(j).(Object)
	return o, ok
}

// GetAusgabObject returns the ausgab object named name.
func GetAusgabObject(name string) (Object, bool) {
	f, err := shared.Get()
	if err != nil {
		return nil, false
	}
	return f.Get(name)
}

// AddKnownAusgabObject registers a statically known ausgab object type.
func AddKnownAusgabObject(p object.Prototype) error {
	f, err := shared.Get()
	if err != nil {
		return err
	}
	f.Factory().Logger().Infof("Adding known ausgab object of type %s", p.Type())
	return f.AddKnownObject(p)
}

// AddKnownTypeID records a type marker as an ausgab object type.
func AddKnownTypeID(marker string) error {
	f, err := shared.Get()
	if err != nil {
		return err
	}
	f.AddKnownTypeID(marker)
	return nil
}

// Close releases the process-wide ausgab factory.
func Close() error { return shared.Close() }
