package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"employee-service/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

type ShutdownFunc func(context.Context) error

const shutdownTimeout = 5 * time.Second

// Init installs global trace and meter providers exporting over OTLP. With no
// endpoint configured it only installs the propagator and returns a no-op.
func Init(ctx context.Context, appEnv string, cfg config.TelemetryConfig) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	traceEndpoint, metricEndpoint := endpoints(cfg)
	if traceEndpoint == "" && metricEndpoint == "" {
		log.Println("OpenTelemetry disabled: OTEL_EXPORTER_OTLP_ENDPOINT is empty")
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(
		ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			attribute.String("deployment.environment", appEnv),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	var providers []func(context.Context) error

	if traceEndpoint != "" {
		traceExporter, err := newTraceExporter(ctx, cfg, traceEndpoint)
		if err != nil {
			return nil, fmt.Errorf("create trace exporter: %w", err)
		}
		traceProvider := trace.NewTracerProvider(
			trace.WithBatcher(traceExporter),
			trace.WithResource(res),
		)
		otel.SetTracerProvider(traceProvider)
		providers = append(providers, traceProvider.Shutdown)
	}

	if metricEndpoint != "" {
		metricExporter, err := newMetricExporter(ctx, cfg, metricEndpoint)
		if err != nil {
			return nil, fmt.Errorf("create metric exporter: %w", err)
		}
		metricProvider := metric.NewMeterProvider(
			metric.WithResource(res),
			metric.WithReader(metric.NewPeriodicReader(
				metricExporter,
				metric.WithInterval(cfg.MetricExportInterval),
			)),
		)
		otel.SetMeterProvider(metricProvider)
		providers = append(providers, metricProvider.Shutdown)
	}

	return func(shutdownCtx context.Context) error {
		shutdownCtx, cancel := context.WithTimeout(shutdownCtx, shutdownTimeout)
		defer cancel()

		var shutdownErr error
		for _, shutdown := range providers {
			shutdownErr = errors.Join(shutdownErr, shutdown(shutdownCtx))
		}
		return shutdownErr
	}, nil
}

// endpoints resolves the per-signal endpoints, falling back to the shared one.
func endpoints(cfg config.TelemetryConfig) (string, string) {
	traceEndpoint := cfg.OTLPEndpoint
	if cfg.OTLPTracesEndpoint != "" {
		traceEndpoint = cfg.OTLPTracesEndpoint
	}
	metricEndpoint := cfg.OTLPEndpoint
	if cfg.OTLPMetricsEndpoint != "" {
		metricEndpoint = cfg.OTLPMetricsEndpoint
	}
	return traceEndpoint, metricEndpoint
}

func usesHTTP(cfg config.TelemetryConfig) bool {
	return cfg.OTLPProtocol == "http/protobuf" || cfg.OTLPProtocol == "http"
}

func newTraceExporter(ctx context.Context, cfg config.TelemetryConfig, endpoint string) (trace.SpanExporter, error) {
	if usesHTTP(cfg) {
		opts := []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithHeaders(cfg.OTLPHeaders),
			otlptracehttp.WithTimeout(cfg.ExportTimeout),
		}
		if cfg.OTLPInsecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	}

	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithHeaders(cfg.OTLPHeaders),
		otlptracegrpc.WithTimeout(cfg.ExportTimeout),
	}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	return otlptracegrpc.New(ctx, opts...)
}

func newMetricExporter(ctx context.Context, cfg config.TelemetryConfig, endpoint string) (metric.Exporter, error) {
	if usesHTTP(cfg) {
		opts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithHeaders(cfg.OTLPHeaders),
			otlpmetrichttp.WithTimeout(cfg.ExportTimeout),
		}
		if cfg.OTLPInsecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithHeaders(cfg.OTLPHeaders),
		otlpmetricgrpc.WithTimeout(cfg.ExportTimeout),
	}
	if cfg.OTLPInsecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	return otlpmetricgrpc.New(ctx, opts...)
}
