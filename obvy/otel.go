package cyclorama

import (
	"context"
	"fmt"

	"github.com/honeycombio/otel-config-go/otelconfig"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/maroda/cyclorama"

// TraceConfig names the service on every span.
// Ratio is the share of root traces kept, anything outside (0,1) keeps all.
type TraceConfig struct {
	Service string
	Version string
	Ratio   float64
}

func (tc TraceConfig) sampler() sdktrace.Sampler {
	if tc.Ratio <= 0 || tc.Ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(tc.Ratio))
}

// InitOTelHNY uses the Honeycomb library to interface with OTel
func InitOTelHNY(tc TraceConfig) (func(), error) {
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(tc.Service),
		otelconfig.WithServiceVersion(tc.Version),
		otelconfig.WithSampler(tc.sampler()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure OpenTelemetry: %w", err)
	}
	return func() { otelShutdown() }, nil
}

// InitOTelGRF exports over OTLP HTTP with Baggage for propagation
func InitOTelGRF(ctx context.Context, tc TraceConfig) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptrace.New(ctx, otlptracehttp.NewClient())
	if err != nil {
		return nil, err
	}

	tp := NewTracerProvider(exporter, tc)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))
	return tp, nil
}

// NewTracerProvider batches spans to exp under the service resource
func NewTracerProvider(exp sdktrace.SpanExporter, tc TraceConfig) *sdktrace.TracerProvider {
	res := resource.NewSchemaless(
		attribute.String("service.name", tc.Service),
		attribute.String("service.version", tc.Version),
	)
	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(tc.sampler()),
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exp),
	)
}

// Tracer is the named tracer every cyclorama span comes from
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
