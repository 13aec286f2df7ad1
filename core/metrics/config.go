package metrics

import "github.com/kilianp07/simfactory/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// Listen is the address of the Prometheus endpoint. Empty disables it.
	Listen string `json:"listen"`
}
