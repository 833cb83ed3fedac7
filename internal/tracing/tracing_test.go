package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.23.1"
	"go.opentelemetry.io/otel/trace/noop"
)

func keepGlobalProvider(t *testing.T) {
	t.Helper()
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

func TestInit_Disabled(t *testing.T) {
	keepGlobalProvider(t)

	shutdown, err := Init(context.Background(), Config{}, "filestorage", "test")
	require.NoError(t, err)

	assert.IsType(t, noop.TracerProvider{}, otel.GetTracerProvider())
	assert.NoError(t, shutdown())
}

func TestInit_Enabled(t *testing.T) {
	keepGlobalProvider(t)

	cfg := Config{Enabled: true, SampleRate: 1, ExporterHost: "127.0.0.1", ExporterPort: 4317}
	shutdown, err := Init(context.Background(), cfg, "filestorage", "test")
	require.NoError(t, err)

	assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())
	assert.NoError(t, shutdown())
}

func TestNewResource(t *testing.T) {
	res := newResource(map[string]string{"env": "local"}, "filestorage", "1.0.0")

	got := map[string]string{}
	for _, kv := range res.Attributes() {
		got[string(kv.Key)] = kv.Value.AsString()
	}

	assert.Equal(t, "local", got["env"])
	assert.Equal(t, "filestorage", got[string(semconv.ServiceNameKey)])
	assert.Equal(t, "1.0.0", got[string(semconv.ServiceVersionKey)])
}
