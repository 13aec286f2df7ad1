package plugins

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kilianp07/simfactory/core/factory"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/core/object"
)

// space is a geometry with one region filling all of space.
type space struct {
	object.Base
}

func newSpace(item *input.Item, f *factory.Factory) (object.Object, error) {
	return &space{Base: object.BaseFromInput(item, "space", f.Counter())}, nil
}

func (*space) Regions() int      { return 1 }
func (*space) Region(r3.Vec) int { return 0 }
