// Package metrics provides Prometheus metrics for ETL runs and the dataset
// server.
package metrics

import (
	"sort"

	"github.com/npillmayer/schuko/tracing"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// tracer traces to unisearch.etl .
func tracer() tracing.Trace {
	return tracing.Select("unisearch.etl")
}

// Namespace prefixes all metric names.
const Namespace = "unisearch"

// Sources of ETL runs, used as label values.
const (
	SourceEmoji  = "emoji"
	SourceUCD    = "ucd"
	SourceGemoji = "gemoji"
)

// ETLMetrics counts what an ETL run read, produced and skipped.
type ETLMetrics struct {
	registry *prometheus.Registry

	linesTotal      *prometheus.CounterVec
	recordsTotal    *prometheus.CounterVec
	mismatchesTotal *prometheus.CounterVec
	invalidTotal    *prometheus.CounterVec
	flaggedTotal    prometheus.Counter
	mergeMisses     prometheus.Counter
	mergedTotal     prometheus.Counter
}

// NewETLMetrics creates ETL metrics and registers them with registry.
func NewETLMetrics(registry *prometheus.Registry) (*ETLMetrics, error) {
	m := &ETLMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ETLMetrics) initMetrics() {
	m.linesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "etl_lines_total",
			Help:      "Number of input lines read",
		},
		[]string{"source"}, // emoji, ucd
	)
	m.recordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "etl_records_total",
			Help:      "Number of records written",
		},
		[]string{"source"},
	)
	m.mismatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "etl_mismatches_total",
			Help:      "Number of data lines not matching the line grammar",
		},
		[]string{"source"},
	)
	m.invalidTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "etl_invalid_records_total",
			Help:      "Number of records skipped by normalization",
		},
		[]string{"source"},
	)
	m.flaggedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "etl_skin_tone_flagged_total",
		Help:      "Number of skin tone descriptions without a tone name",
	})
	m.mergeMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "etl_merge_misses_total",
		Help:      "Number of records without a keyword entry",
	})
	m.mergedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "etl_merged_total",
		Help:      "Number of records enriched with keywords",
	})
}

func (m *ETLMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.linesTotal,
		m.recordsTotal,
		m.mismatchesTotal,
		m.invalidTotal,
		m.flaggedTotal,
		m.mergeMisses,
		m.mergedTotal,
	}
}

// Describe implements the Collector interface.
func (m *ETLMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors() {
		c.Describe(ch)
	}
}

// Collect implements the Collector interface.
func (m *ETLMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors() {
		c.Collect(ch)
	}
}

// RecordLines counts input lines.
func (m *ETLMetrics) RecordLines(source string, n int) {
	m.linesTotal.WithLabelValues(source).Add(float64(n))
}

// RecordRecords counts records written.
func (m *ETLMetrics) RecordRecords(source string, n int) {
	m.recordsTotal.WithLabelValues(source).Add(float64(n))
}

// RecordMismatches counts data lines the parser could not match.
func (m *ETLMetrics) RecordMismatches(source string, n int) {
	m.mismatchesTotal.WithLabelValues(source).Add(float64(n))
}

// RecordInvalid counts records skipped for being invalid.
func (m *ETLMetrics) RecordInvalid(source string, n int) {
	m.invalidTotal.WithLabelValues(source).Add(float64(n))
}

// RecordFlagged counts flagged skin tone descriptions.
func (m *ETLMetrics) RecordFlagged(n int) {
	m.flaggedTotal.Add(float64(n))
}

// RecordMerge counts the outcome of a keyword merge.
func (m *ETLMetrics) RecordMerge(merged, misses int) {
	m.mergedTotal.Add(float64(merged))
	m.mergeMisses.Add(float64(misses))
}

// Summary gathers all metrics of the registry and sums the values of each
// counter family, keyed by metric name.
func (m *ETLMetrics) Summary() (map[string]float64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}
	summary := make(map[string]float64, len(families))
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		var sum float64
		for _, metric := range mf.GetMetric() {
			sum += metric.GetCounter().GetValue()
		}
		summary[mf.GetName()] = sum
	}
	return summary, nil
}

// LogSummary traces the summary of an ETL run.
func (m *ETLMetrics) LogSummary(runID string) {
	summary, err := m.Summary()
	if err != nil {
		tracer().Errorf("gathering metrics: %v", err)
		return
	}
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tracer().P("run", runID).Infof("%s = %.0f", name, summary[name])
	}
}
