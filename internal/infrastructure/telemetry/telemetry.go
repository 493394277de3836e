package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/mrops-br/storefront/internal/infrastructure/config"
)

// Telemetry holds all OpenTelemetry components
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *metric.MeterProvider
	Logger         *slog.Logger

	logCloser io.Closer
}

// NewTelemetry initializes logging, tracing and metrics. Traces are only
// exported when OTLP is enabled; metrics are always exposed for Prometheus.
func NewTelemetry(cfg *config.Config) (*Telemetry, error) {
	// Initialize logger first for debugging
	logger, logCloser := initLogger(os.Stdout, &cfg.Log, &cfg.OTLP)

	logger.Info("Initializing OpenTelemetry",
		slog.Bool("otlp_enabled", cfg.OTLP.Enabled),
		slog.String("endpoint", cfg.OTLP.Endpoint),
		slog.String("service_name", cfg.OTLP.ServiceName),
	)

	tp := sdktrace.NewTracerProvider()
	if cfg.OTLP.Enabled {
		var err error
		tp, err = initTracerProvider(&cfg.OTLP)
		if err != nil {
			_ = logCloser.Close()
			return nil, fmt.Errorf("failed to initialize tracer provider: %w", err)
		}
	}
	otel.SetTracerProvider(tp)
	logger.Info("Tracer provider initialized successfully")

	mp, err := initMeterProvider(&cfg.OTLP)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("failed to initialize meter provider: %w", err)
	}
	otel.SetMeterProvider(mp)
	logger.Info("Meter provider initialized successfully")

	return &Telemetry{
		TracerProvider: tp,
		MeterProvider:  mp,
		Logger:         logger,
		logCloser:      logCloser,
	}, nil
}

// NewNoOpTelemetry creates a telemetry instance with no-op providers (no export)
func NewNoOpTelemetry(w io.Writer) *Telemetry {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Telemetry{
		TracerProvider: sdktrace.NewTracerProvider(),
		MeterProvider:  metric.NewMeterProvider(),
		Logger:         logger,
		logCloser:      nopCloser{},
	}
}

// Shutdown gracefully shuts down all telemetry components
func (t *Telemetry) Shutdown(ctx context.Context) error {
	t.Logger.Info("Shutting down OpenTelemetry")

	if err := t.TracerProvider.Shutdown(ctx); err != nil {
		t.Logger.Error("Failed to shutdown tracer provider", slog.String("error", err.Error()))
		return err
	}

	if err := t.MeterProvider.Shutdown(ctx); err != nil {
		t.Logger.Error("Failed to shutdown meter provider", slog.String("error", err.Error()))
		return err
	}

	t.Logger.Info("OpenTelemetry shutdown successfully")
	return t.logCloser.Close()
}
