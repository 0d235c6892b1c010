package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestETLSummary(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewETLMetrics(registry)
	require.NoError(t, err)
	m.RecordLines(SourceEmoji, 12)
	m.RecordRecords(SourceEmoji, 10)
	m.RecordMismatches(SourceEmoji, 2)
	m.RecordLines(SourceUCD, 11)
	m.RecordFlagged(1)
	m.RecordMerge(4, 6)

	summary, err := m.Summary()
	require.NoError(t, err)
	assert.Equal(t, 23.0, summary["unisearch_etl_lines_total"])
	assert.Equal(t, 10.0, summary["unisearch_etl_records_total"])
	assert.Equal(t, 2.0, summary["unisearch_etl_mismatches_total"])
	assert.Equal(t, 1.0, summary["unisearch_etl_skin_tone_flagged_total"])
	assert.Equal(t, 4.0, summary["unisearch_etl_merged_total"])
	assert.Equal(t, 6.0, summary["unisearch_etl_merge_misses_total"])
	assert.Equal(t, 12.0, testutil.ToFloat64(m.linesTotal.WithLabelValues(SourceEmoji)))

	m.LogSummary("test-run")
}

func TestDoubleRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := NewETLMetrics(registry)
	require.NoError(t, err)
	_, err = NewETLMetrics(registry)
	assert.Error(t, err)
}

func TestServeMiddleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewServeMetrics(registry)
	require.NoError(t, err)

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/hello", func(c echo.Context) error {
		return c.String(http.StatusOK, "hello")
	})
	for _, path := range []string{"/hello", "/hello", "/nope"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/hello", "200")))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(m.requestDuration), 1)

	m.SetDatasetRecords("emoji.json", 3791)
	assert.Equal(t, 3791.0, m.DatasetRecords("emoji.json"))
	m.RecordRequest("GET", "/x", 200, time.Millisecond)
}
