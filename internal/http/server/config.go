package server

import (
	"fmt"
	"time"
)

// Config defines configuration options for the HTTP server.
type Config struct {
	// HideErrorDetails is a flag to hide error details in the response.
	HideErrorDetails bool `yaml:"hide_error_details"`

	// Host address to bind the server to.
	Host string `yaml:"host" validate:"required" default:"0.0.0.0"`

	// Port number to listen on.
	Port int `yaml:"port" validate:"required" default:"8000"`

	// ReadTimeout is a maximum duration for reading the entire request, uploads included.
	ReadTimeout time.Duration `yaml:"read_timeout" validate:"required" default:"60s"`

	// WriteTimeout is a maximum duration before timing out writes of the response.
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"required" default:"60s"`

	// IdleTimeout is a maximum amount of time to wait for the next request.
	IdleTimeout time.Duration `yaml:"idle_timeout" validate:"required" default:"120s"`

	// HandleTimeout is a maximum duration for handling a single request.
	HandleTimeout time.Duration `yaml:"request_timeout" validate:"required" default:"30s"`

	// BodyLimit is the maximum request body size in bytes, which caps the upload size. Default is 64MB.
	BodyLimit int `yaml:"body_limit" validate:"required" default:"67108864"`

	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
}

// Address returns the server's listen address in the form "host:port".
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
