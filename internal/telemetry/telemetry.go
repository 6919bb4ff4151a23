// Package telemetry wires OpenTelemetry tracing for goalmanager.
//
// Tracing is off unless an OTLP endpoint is configured, either in goalmanager
// config or through the standard OTEL_EXPORTER_OTLP_* variables, in which
// case spans are batched to it over HTTP. When disabled the global no-op provider is
// left in place so instrumented code pays nothing.
package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// ServiceName is reported as service.name on exported spans.
const ServiceName = "goalmanager"

// Shutdown flushes and stops the tracer provider.
type Shutdown func(context.Context) error

// Env vars read by the OTLP exporter itself.
const (
	envEndpoint       = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envTracesEndpoint = "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"
)

// tracesPath is appended to a configured base URL that carries no path.
const tracesPath = "/v1/traces"

// Setup installs a global tracer provider exporting to endpoint. The
// endpoint is either a URL such as http://collector:4318 or a bare
// host:port, which is sent to without TLS. An empty endpoint defers to the
// standard OTEL_EXPORTER_OTLP_* variables; if none is set, tracing stays
// disabled and the returned Shutdown is a no-op.
func Setup(ctx context.Context, endpoint string) (Shutdown, error) {
	opts, ok, err := exporterOptions(endpoint)
	if err != nil {
		return nil, err
	}
	if !ok {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(ServiceName),
	)
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}

// exporterOptions maps the configured endpoint to exporter options. ok is
// false when nothing is configured anywhere.
func exporterOptions(endpoint string) (opts []otlptracehttp.Option, ok bool, err error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		if os.Getenv(envEndpoint) == "" && os.Getenv(envTracesEndpoint) == "" {
			return nil, false, nil
		}
		return nil, true, nil
	}

	if !strings.Contains(endpoint, "://") {
		return []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		}, true, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, false, fmt.Errorf("parse otlp endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, false, fmt.Errorf("otlp endpoint %q has no host", endpoint)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = tracesPath
	}
	return []otlptracehttp.Option{otlptracehttp.WithEndpointURL(u.String())}, true, nil
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) oteltrace.Tracer {
	return otel.Tracer(ServiceName + "/" + name)
}
