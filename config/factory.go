package config

import (
	"fmt"
	"strings"

	"github.com/kilianp07/simfactory/core/factory"
)

// Loader kinds accepted in factory.loader.
const (
	LoaderChain    = "chain"
	LoaderGoPlugin = "goplugin"
	LoaderNative   = "native"
	LoaderStatic   = "static"
)

// FactoryConfig holds the settings shared by every object factory.
type FactoryConfig struct {
	// DSOPath is the module directory. A relative path is anchored at the
	// root selected by Location.
	DSOPath string `json:"dso_path"`
	// Location is "hen_house" or "egs_home".
	Location string `json:"location"`
	// Loader selects how modules are opened.
	Loader string `json:"loader"`
}

// FamilyConfig overrides factory settings for one component family.
type FamilyConfig struct {
	DSOPath string `json:"dso_path"`
}

// SetDefaults applies sane defaults.
func (c *FactoryConfig) SetDefaults() {
	if c.DSOPath == "" {
		c.DSOPath = factory.DefaultDSOPath()
	}
	if c.Location == "" {
		c.Location = factory.HenHouse.String()
	}
	if c.Loader == "" {
		c.Loader = LoaderChain
	}
	c.Loader = strings.ToLower(c.Loader)
}

// Validate checks the location and loader names.
func (c FactoryConfig) Validate() error {
	if _, err := factory.ParseLocation(c.Location); err != nil {
		return err
	}
	switch c.Loader {
	case LoaderChain, LoaderGoPlugin, LoaderNative, LoaderStatic:
		return nil
	}
	return fmt.Errorf("unknown loader %s", c.Loader)
}

// SearchLocation returns the parsed location.
func (c FactoryConfig) SearchLocation() factory.Location {
	l, _ := factory.ParseLocation(c.Location)
	return l
}
