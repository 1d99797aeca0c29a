package assetsearch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation outcomes used as the status label.
const (
	statusOK       = "ok"
	statusNotFound = "not_found"
	statusInvalid  = "invalid"
	statusError    = "error"
)

type sdkMetrics struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
	results *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetsearch",
			Subsystem: "sdk",
			Name:      "calls_total",
			Help:      "SDK calls by operation and outcome.",
		}, []string{"operation", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "assetsearch",
			Subsystem: "sdk",
			Name:      "call_duration_seconds",
			Help:      "SDK call latency in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"operation"}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "assetsearch",
			Subsystem: "sdk",
			Name:      "search_results",
			Help:      "Items returned by SDK searches.",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500},
		}, []string{"operation"}),
	}
	var err error
	if m.calls, err = register(reg, m.calls); err != nil {
		return nil, err
	}
	if m.latency, err = register(reg, m.latency); err != nil {
		return nil, err
	}
	if m.results, err = register(reg, m.results); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg. When another Client already registered the same
// metric on reg, the existing collector is returned so both share series.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return c, fmt.Errorf("assetsearch: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return c, fmt.Errorf("assetsearch: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	return existing, nil
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, ErrPointNotFound), errors.Is(err, ErrProductNotFound), errors.Is(err, ErrAssetNotFound),
		errors.Is(err, ErrPropertyNotFound):
		return statusNotFound
	case errors.Is(err, ErrInvalidPoint), errors.Is(err, ErrInvalidAsset), errors.Is(err, ErrInvalidProperty):
		return statusInvalid
	default:
		return statusError
	}
}

// observer logs and counts SDK calls. A nil observer does nothing.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *observer) observe(op string, start time.Time, err error) {
	o.record(op, start, -1, err)
}

// observeSearch is observe for calls that return a result list of length n.
func (o *observer) observeSearch(op string, start time.Time, n int, err error) {
	o.record(op, start, n, err)
}

func (o *observer) record(op string, start time.Time, n int, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	status := statusOf(err)

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(op, status).Inc()
		o.metrics.latency.WithLabelValues(op).Observe(dur.Seconds())
		if n >= 0 && err == nil {
			o.metrics.results.WithLabelValues(op).Observe(float64(n))
		}
	}

	if o.logger == nil {
		return
	}
	attrs := []any{"op", op, "status", status, "duration", dur}
	if n >= 0 {
		attrs = append(attrs, "results", n)
	}
	switch status {
	case statusOK, statusNotFound:
		o.logger.Debug("assetsearch call", attrs...)
	default:
		o.logger.Warn("assetsearch call failed", append(attrs, "error", err)...)
	}
}
