// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file initializes the OpenTelemetry SDK: trace and metric providers
// exporting to Google Cloud's observability suite. When no project id is
// configured the providers are still installed (so command counters and
// spans stay cheap no-ops with real types behind them) but nothing is
// exported; local and test runs need no GCP credentials.
package telemetry

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/sdk/metric"

	mexporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/metric"
	traceexporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"

	"github.com/jaycherian/go-screenplay-advisor/internal/config"
	"go.opentelemetry.io/contrib/detectors/gcp"
	"go.opentelemetry.io/contrib/propagators/autoprop"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

// SetupOpenTelemetry initializes tracing and metrics for the application
// and returns a shutdown function that must be called on exit to flush any
// buffered telemetry.
//
// Inputs:
//   - ctx: The parent context used for exporter initialization.
//   - cfg: The application configuration; Application.Name becomes the
//     service name, Application.GoogleProjectId selects the export target.
//
// Outputs:
//   - shutdown: Defer this to tear down the providers cleanly.
//   - err: Non-nil when exporter construction fails.
func SetupOpenTelemetry(ctx context.Context, cfg *config.Config) (shutdown func(context.Context) error, err error) {
	var shutdownFuncs []func(context.Context) error

	shutdown = func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		shutdownFuncs = nil
		return err
	}

	// Resource attributes describing this service instance. The GCP
	// detector fills in infrastructure attributes when running on Google
	// Cloud and is harmless elsewhere.
	res, err := resource.New(ctx,
		resource.WithDetectors(gcp.NewDetector()),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.Application.Name),
		),
	)
	if errors.Is(err, resource.ErrPartialResource) || errors.Is(err, resource.ErrSchemaURLConflict) {
		slog.Warn("partial resource detection", "error", err)
	} else if err != nil {
		slog.Error("resource.New failed", "error", err)
		return nil, err
	}

	// Standard propagators (W3C trace context, B3) so traces survive
	// whatever proxy sits in front of the service.
	otel.SetTextMapPropagator(autoprop.NewTextMapPropagator())

	projectId := cfg.Application.GoogleProjectId

	// Trace provider, batching spans to Cloud Trace when exporting.
	traceOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if projectId != "" {
		traceExporter, err := traceexporter.New(traceexporter.WithProjectID(projectId))
		if err != nil {
			slog.Error("unable to set up trace exporter", "error", err)
			return nil, err
		}
		traceOpts = append(traceOpts, sdktrace.WithBatcher(traceExporter))
	}
	tp := sdktrace.NewTracerProvider(traceOpts...)
	shutdownFuncs = append(shutdownFuncs, tp.Shutdown)
	otel.SetTracerProvider(tp)

	// Metric provider, periodically exporting to Cloud Monitoring.
	metricOpts := []metric.Option{metric.WithResource(res)}
	if projectId != "" {
		mExporter, err := mexporter.New(mexporter.WithProjectID(projectId))
		if err != nil {
			slog.Error("unable to set up metric exporter", "error", err)
			return nil, err
		}
		metricOpts = append(metricOpts, metric.WithReader(metric.NewPeriodicReader(mExporter)))
	}
	mProvider := metric.NewMeterProvider(metricOpts...)
	shutdownFuncs = append(shutdownFuncs, mProvider.Shutdown)
	otel.SetMeterProvider(mProvider)

	return shutdown, nil
}
