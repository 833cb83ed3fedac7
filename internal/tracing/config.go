package tracing

import "time"

const (
	reconnectionPeriod = 30 * time.Second
	exportTimeout      = 10 * time.Second
	flushTimeout       = 5 * time.Second
)

// Config defines where spans are exported. Tracing is off unless Enabled.
type Config struct {
	Enabled bool `yaml:"enabled"`

	// SampleRate is the fraction of root requests traced, from 0 to 1.
	SampleRate float64 `yaml:"sample_rate" default:"1" validate:"gte=0,lte=1"`

	// ExporterHost and ExporterPort address an OTLP gRPC collector.
	ExporterHost string `yaml:"exporter_host" validate:"required_if=Enabled true"`
	ExporterPort int    `yaml:"exporter_port" default:"4317"`

	// Tags become resource attributes of every span.
	Tags map[string]string `yaml:"tags"`
}
