// Package scenarios runs input files through the application and checks what
// the factories built, as recorded by the metrics pipeline.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/simfactory/core/input"
)

type Expected struct {
	// Fails is set when Build must return an error.
	Fails    bool     `yaml:"fails,omitempty"`
	Geometry string   `yaml:"geometry"`
	Source   string   `yaml:"source"`
	Ausgab   []string `yaml:"ausgab,omitempty"`
	// Errors is the number of items that could not be created.
	Errors int `yaml:"errors"`
	// Created counts created objects per family.
	Created map[string]int `yaml:"created,omitempty"`
	// Rejected counts rejected objects per family.
	Rejected map[string]int `yaml:"rejected,omitempty"`
}

type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Input       yaml.Node `yaml:"input"`
	Expected    Expected  `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Input.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: input must be a mapping", path)
	}
	return &sc, nil
}

// Item returns the scenario input as an input tree.
func (sc *Scenario) Item() (*input.Item, error) {
	data, err := yaml.Marshal(&sc.Input)
	if err != nil {
		return nil, err
	}
	return input.Parse(data)
}
