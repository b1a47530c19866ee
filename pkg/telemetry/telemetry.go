// Package telemetry installs the global OpenTelemetry providers used by the
// gin middleware and the PXE client spans.
package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/trace"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

type Config struct {
	Traces  string
	Metrics string
}

// Setup installs providers for the configured exporters and returns a
// function that flushes and stops them. With nothing configured only the
// propagator is installed.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	var shutdownFuncs []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		shutdownFuncs = nil
		return err
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	switch cfg.Traces {
	case "", ExporterNone:
	case ExporterStdout:
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, errors.Join(err, shutdown(ctx))
		}
		provider := trace.NewTracerProvider(trace.WithBatcher(exporter))
		shutdownFuncs = append(shutdownFuncs, provider.Shutdown)
		otel.SetTracerProvider(provider)
	default:
		return nil, errors.Join(fmt.Errorf("unknown trace exporter %q", cfg.Traces), shutdown(ctx))
	}

	switch cfg.Metrics {
	case "", ExporterNone:
	case ExporterStdout:
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, errors.Join(err, shutdown(ctx))
		}
		provider := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(exporter)))
		shutdownFuncs = append(shutdownFuncs, provider.Shutdown)
		otel.SetMeterProvider(provider)
	default:
		return nil, errors.Join(fmt.Errorf("unknown metrics exporter %q", cfg.Metrics), shutdown(ctx))
	}

	return shutdown, nil
}
