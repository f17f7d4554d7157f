package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Mavapay/webhook-dispacther/dispatch"
	"github.com/Mavapay/webhook-dispacther/endpoint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelRecorder provides OpenTelemetry metrics export following OTel standards
type OTelRecorder struct {
	meterProvider *sdkmetric.MeterProvider
	registry      endpoint.Snapshotter

	// OTel meters and instruments
	meter            metric.Meter
	deliveries       metric.Int64Counter
	dispatchDuration metric.Float64Histogram
	activeEndpoints  metric.Int64ObservableGauge
}

// NewOTelRecorder creates a new OpenTelemetry metrics recorder with Prometheus format
func NewOTelRecorder(registry endpoint.Snapshotter) (*OTelRecorder, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"webhook-dispatcher",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	r := &OTelRecorder{
		meterProvider: meterProvider,
		registry:      registry,
		meter:         meter,
	}

	if err := r.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return r, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (r *OTelRecorder) registerInstruments() error {
	var err error

	// Delivery attempts counter (per endpoint and result class)
	r.deliveries, err = r.meter.Int64Counter(
		"webhook.deliveries",
		metric.WithDescription("Number of delivery attempts by endpoint and result"),
		metric.WithUnit("{deliveries}"),
	)
	if err != nil {
		return fmt.Errorf("creating deliveries counter: %w", err)
	}

	// Dispatch wall-clock duration histogram
	r.dispatchDuration, err = r.meter.Float64Histogram(
		"webhook.dispatch.duration",
		metric.WithDescription("Wall-clock duration of one fan-out dispatch"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return fmt.Errorf("creating dispatch duration histogram: %w", err)
	}

	// Active endpoints gauge
	r.activeEndpoints, err = r.meter.Int64ObservableGauge(
		"webhook.endpoints.active",
		metric.WithDescription("Number of active endpoints in the registry"),
		metric.WithUnit("{endpoints}"),
		metric.WithInt64Callback(r.observeActiveEndpoints),
	)
	if err != nil {
		return fmt.Errorf("creating active endpoints gauge: %w", err)
	}

	return nil
}

// RecordDispatch implements dispatch.Recorder
func (r *OTelRecorder) RecordDispatch(ctx context.Context, result dispatch.Result, elapsed time.Duration) {
	r.dispatchDuration.Record(ctx, float64(elapsed.Milliseconds()))

	for _, o := range result.Outcomes {
		resultClass := "success"
		if !o.Success {
			resultClass = o.Error
		}
		r.deliveries.Add(ctx, 1, metric.WithAttributes(
			attribute.String("endpoint.id", o.EndpointID),
			attribute.String("result", resultClass),
		))
	}
}

// observeActiveEndpoints is a callback that reports the active endpoint count
func (r *OTelRecorder) observeActiveEndpoints(ctx context.Context, observer metric.Int64Observer) error {
	active, err := r.registry.ListActive(ctx)
	if err != nil {
		return err
	}

	observer.Observe(int64(len(active)))

	return nil
}

// Handler serves Prometheus-formatted metrics
func (r *OTelRecorder) Handler() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (r *OTelRecorder) Shutdown(ctx context.Context) error {
	if r.meterProvider != nil {
		return r.meterProvider.Shutdown(ctx)
	}
	return nil
}
