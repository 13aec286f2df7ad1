package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kilianp07/simfactory/core/ausgab"
	"github.com/kilianp07/simfactory/core/factory"
	"github.com/kilianp07/simfactory/core/geometry"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/core/shapes"
	"github.com/kilianp07/simfactory/core/sources"
	"github.com/kilianp07/simfactory/pkg/export"
)

// Summary describes what Build created.
type Summary struct {
	Geometry string
	Regions  int
	Source   string
	// SourceDescription is the description reported by the source.
	SourceDescription string
	MaxEnergy         float64
	Ausgab            []string
	// Modules maps a family to the modules its factory loaded.
	Modules map[string][]string
	// Errors lists the items that could not be created.
	Errors []string
}

// Build creates the simulation geometry, the simulation source and the
// ausgab objects described by item. The geometry and the source are
// required; failed items that do not prevent selecting them are reported in
// Summary.Errors.
func (a *App) Build(item *input.Item) (*Summary, error) {
	if item == nil {
		return nil, factory.ErrNilInput
	}
	s := &Summary{Modules: map[string][]string{}}

	g, err := geometry.Create(a.Geometry, item)
	if g == nil {
		return nil, fmt.Errorf("simulation geometry: %w", err)
	}
	s.addErrors(err)
	s.Geometry, s.Regions = g.Name(), g.Regions()

	src, err := sources.Create(a.Sources, item)
	if src == nil {
		return nil, fmt.Errorf("simulation source: %w", err)
	}
	s.addErrors(err)
	s.Source, s.SourceDescription, s.MaxEnergy = src.Name(), src.Description(), src.MaxEnergy()

	if item.GetItem(ausgab.Section) != nil {
		objs, err := ausgab.Create(a.Ausgab, item)
		s.addErrors(err)
		for _, o := range objs {
			s.Ausgab = append(s.Ausgab, o.Name())
		}
	}

	for _, f := range []*factory.Factory{a.Shapes.Factory(), a.Geometry.Factory(), a.Sources.Factory(), a.Ausgab.Factory()} {
		for _, l := range f.Libraries() {
			s.Modules[f.Family()] = append(s.Modules[f.Family()], l.Name())
		}
	}
	return s, nil
}

// ShapesFrom creates one shape per "shape" child of item.
func (a *App) ShapesFrom(item *input.Item) ([]shapes.Shape, error) {
	if item == nil {
		return nil, factory.ErrNilInput
	}
	var out []shapes.Shape
	var errs []error
	for _, c := range item.Children() {
		if !c.IsA("shape") {
			continue
		}
		sh, err := a.Shapes.CreateSingleObject(c, true)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, sh)
	}
	if len(out) == 0 && len(errs) == 0 {
		return nil, fmt.Errorf("%w: shape", factory.ErrNoObject)
	}
	return out, errors.Join(errs...)
}

func (s *Summary) addErrors(err error) {
	if err == nil {
		return
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range j.Unwrap() {
			s.Errors = append(s.Errors, e.Error())
		}
		return
	}
	s.Errors = append(s.Errors, err.Error())
}

// Write prints the summary in a human readable form.
func (s *Summary) Write(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "geometry: %s (%d regions)\n", s.Geometry, s.Regions)
	fmt.Fprintf(&b, "source:   %s, max energy %g MeV\n", s.Source, s.MaxEnergy)
	if s.SourceDescription != "" {
		fmt.Fprintf(&b, "          %s\n", s.SourceDescription)
	}
	if len(s.Ausgab) > 0 {
		fmt.Fprintf(&b, "ausgab:   %s\n", strings.Join(s.Ausgab, ", "))
	}
	for _, fam := range []string{shapes.Family, geometry.Family, sources.Family, ausgab.Family} {
		if mods := s.Modules[fam]; len(mods) > 0 {
			fmt.Fprintf(&b, "modules (%s): %s\n", fam, strings.Join(mods, ", "))
		}
	}
	for _, e := range s.Errors {
		fmt.Fprintf(&b, "error: %s\n", e)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Records lists the objects held by every factory.
func (a *App) Records() []export.ObjectRecord {
	var out []export.ObjectRecord
	for _, f := range []*factory.Factory{a.Geometry.Factory(), a.Sources.Factory(), a.Ausgab.Factory(), a.Shapes.Factory()} {
		for _, o := range f.Objects() {
			out = append(out, export.ObjectRecord{Family: f.Family(), Name: o.Name(), Type: o.Type(), RefCount: o.RefCount()})
		}
	}
	return out
}
