package metrics

// Package metrics defines the interface and helpers for recording factory
// lifecycle metrics. Sinks like PromSink and InfluxSink record object and
// module events and can be combined with NewMultiSink. The factory helpers
// return a MultiSink automatically when multiple sinks are configured.
