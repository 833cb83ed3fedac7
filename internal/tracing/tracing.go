// Package tracing installs the global OpenTelemetry tracer provider that the
// HTTP tracing middleware and the bun query hook report to.
package tracing

import (
	"context"
	"net"
	"strconv"

	"github.com/code19m/errx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.23.1"
	"go.opentelemetry.io/otel/trace/noop"
)

// Init sets the global tracer provider and propagator and returns a func
// that flushes pending spans and stops the exporter. Unless cfg.Enabled a
// no-op provider is installed.
func Init(ctx context.Context, cfg Config, serviceName, serviceVersion string) (func() error, error) {
	if !cfg.Enabled {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func() error { return nil }, nil
	}

	client := otlptracegrpc.NewClient(
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(net.JoinHostPort(cfg.ExporterHost, strconv.Itoa(cfg.ExporterPort))),
		otlptracegrpc.WithReconnectionPeriod(reconnectionPeriod),
		otlptracegrpc.WithTimeout(exportTimeout),
	)

	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"exporter_host": cfg.ExporterHost}))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource(cfg.Tags, serviceName, serviceVersion)),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	otel.SetTracerProvider(tp)

	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()

		if err := tp.ForceFlush(ctx); err != nil {
			return errx.Wrap(err)
		}
		return errx.Wrap(tp.Shutdown(ctx))
	}, nil
}

func newResource(tags map[string]string, serviceName, serviceVersion string) *resource.Resource {
	attrs := make([]attribute.KeyValue, 0, len(tags)+2)
	for k, v := range tags {
		attrs = append(attrs, attribute.String(k, v))
	}
	attrs = append(attrs,
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(serviceVersion),
	)

	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}
