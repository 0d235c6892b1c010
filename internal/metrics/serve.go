package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// ServeMetrics are the metrics of the dataset server.
type ServeMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	datasetRecords  *prometheus.GaugeVec
}

// NewServeMetrics creates server metrics and registers them with registry.
func NewServeMetrics(registry *prometheus.Registry) (*ServeMetrics, error) {
	m := &ServeMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Time taken for HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		datasetRecords: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "dataset_records",
				Help:      "Number of records in a served dataset",
			},
			[]string{"file"},
		),
	}
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Describe implements the Collector interface.
func (m *ServeMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.requestsTotal.Describe(ch)
	m.requestDuration.Describe(ch)
	m.datasetRecords.Describe(ch)
}

// Collect implements the Collector interface.
func (m *ServeMetrics) Collect(ch chan<- prometheus.Metric) {
	m.requestsTotal.Collect(ch)
	m.requestDuration.Collect(ch)
	m.datasetRecords.Collect(ch)
}

// RecordRequest records a served request.
func (m *ServeMetrics) RecordRequest(method, path string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SetDatasetRecords publishes the record count of a dataset file.
func (m *ServeMetrics) SetDatasetRecords(file string, n int) {
	m.datasetRecords.WithLabelValues(file).Set(float64(n))
}

// DatasetRecords returns the published record count of a dataset file.
func (m *ServeMetrics) DatasetRecords(file string) float64 {
	metric := &dto.Metric{}
	if err := m.datasetRecords.WithLabelValues(file).Write(metric); err != nil {
		tracer().Errorf("reading dataset gauge: %v", err)
		return 0
	}
	return metric.GetGauge().GetValue()
}

// Middleware records every request handled by an echo server. Requests are
// labelled with the route path, not the raw URL.
func (m *ServeMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			m.RecordRequest(c.Request().Method, path, c.Response().Status, time.Since(start))
			return nil
		}
	}
}
