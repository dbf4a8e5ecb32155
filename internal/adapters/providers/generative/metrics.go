package generative

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type generativeMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var (
	metricsOnce  sync.Once
	metrics      generativeMetrics
	metricsReady bool
)

func ensureMetrics() {
	metricsOnce.Do(func() {
		meter := otel.Meter("github.com/bolumrehberi/backend/generative")

		requestCount, err := meter.Int64Counter(
			"ai.generative.request.count",
			metric.WithDescription("Number of generative provider requests"),
		)
		if err != nil {
			return
		}
		requestDuration, err := meter.Float64Histogram(
			"ai.generative.request.duration",
			metric.WithDescription("Generative provider request duration in milliseconds"),
			metric.WithUnit("ms"),
		)
		if err != nil {
			return
		}
		requestErrors, err := meter.Int64Counter(
			"ai.generative.request.errors",
			metric.WithDescription("Number of generative provider request errors"),
		)
		if err != nil {
			return
		}

		metrics = generativeMetrics{
			requestCount:    requestCount,
			requestDuration: requestDuration,
			requestErrors:   requestErrors,
		}
		metricsReady = true
	})
}

func recordRequestMetric(ctx context.Context, provider, model string, statusCode int, duration time.Duration, err error) {
	ensureMetrics()
	if !metricsReady {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", provider),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	metrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		metrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
