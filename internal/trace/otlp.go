package trace

import (
	"context"
	"encoding/hex"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// DefaultServiceName is reported when no service name is configured.
const DefaultServiceName = "cardstack"

// ExporterConfig selects the OTLP endpoint.
type ExporterConfig struct {
	Endpoint    string // host:port of an OTLP/HTTP collector; empty disables export
	ServiceName string
	Insecure    bool
}

// OTLPExporter exports completed sessions to an OTLP endpoint
type OTLPExporter struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// NewOTLPExporter creates an exporter for cfg.
// Returns nil, nil when cfg.Endpoint is empty (export disabled).
func NewOTLPExporter(ctx context.Context, cfg ExporterConfig) (*OTLPExporter, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating otlp exporter: %w", err)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return newOTLPExporter(provider), nil
}

func newOTLPExporter(provider *sdktrace.TracerProvider) *OTLPExporter {
	return &OTLPExporter{
		provider: provider,
		tracer:   provider.Tracer("cardstack/stack"),
	}
}

// ExportTrace exports a completed Trace to OTLP
func (e *OTLPExporter) ExportTrace(ctx context.Context, t *Trace) error {
	if e == nil || t == nil || t.RootSpan == nil {
		return nil
	}
	traceID, err := hexToTraceID(t.ID)
	if err != nil {
		return err
	}
	traceCtx := oteltrace.ContextWithSpanContext(ctx, oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID:    traceID,
		TraceFlags: oteltrace.FlagsSampled,
	}))
	e.exportSpan(traceCtx, t.RootSpan)
	return nil
}

// exportSpan recreates span and its children under ctx. The SDK assigns new
// span IDs; the trace ID, nesting and timing are preserved.
func (e *OTLPExporter) exportSpan(ctx context.Context, span *Span) {
	spanCtx, otlpSpan := e.tracer.Start(ctx, span.Name, oteltrace.WithTimestamp(span.StartTime))

	attrs := make([]attribute.KeyValue, 0, len(span.Attributes))
	for k, v := range span.Attributes {
		attrs = append(attrs, attribute.String(attributeKey(k), v))
	}
	otlpSpan.SetAttributes(attrs...)

	for _, child := range span.Children {
		e.exportSpan(spanCtx, child)
	}
	otlpSpan.End(oteltrace.WithTimestamp(span.StartTime.Add(span.Duration)))
}

// attributeKey maps a span attribute onto the cardstack.* namespace.
func attributeKey(k string) string {
	switch k {
	case "direction":
		return "cardstack.swipe.direction"
	case "shown_index":
		return "cardstack.stack.shown_index"
	case "visible_count":
		return "cardstack.stack.visible_count"
	case "total":
		return "cardstack.stack.total"
	default:
		return "cardstack." + k
	}
}

// hexToTraceID converts a 32-character hex string to trace.TraceID
func hexToTraceID(hexStr string) (oteltrace.TraceID, error) {
	var traceID oteltrace.TraceID
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return traceID, fmt.Errorf("decoding trace id %q: %w", hexStr, err)
	}
	if len(b) != len(traceID) {
		return traceID, fmt.Errorf("trace id %q: want %d bytes, got %d", hexStr, len(traceID), len(b))
	}
	copy(traceID[:], b)
	return traceID, nil
}

// Shutdown flushes and closes the exporter
func (e *OTLPExporter) Shutdown(ctx context.Context) error {
	if e == nil {
		return nil
	}
	return e.provider.Shutdown(ctx)
}
