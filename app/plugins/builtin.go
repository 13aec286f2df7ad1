package plugins

import (
	"github.com/kilianp07/simfactory/core/ausgab"
	"github.com/kilianp07/simfactory/core/factory"
	"github.com/kilianp07/simfactory/core/geometry"
	"github.com/kilianp07/simfactory/core/sources"
)

func init() {
	mustRegister("egs_point_source", sources.EntryPoint, sources.Family, newPointSource)
	mustRegister("egs_space", geometry.EntryPoint, geometry.Family, newSpace)
	mustRegister("egs_track_counter", ausgab.EntryPoint, ausgab.Family, newTrackCounter)
}

func mustRegister(name, symbol, family string, create factory.EntryPoint) {
	err := Register(name, map[string]any{
		symbol: &factory.Registration{APIVersion: factory.APIVersion, Family: family, Create: create},
	})
	if err != nil {
		panic(err)
	}
}
