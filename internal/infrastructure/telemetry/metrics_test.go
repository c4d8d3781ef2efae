package telemetry_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/borrowtrack/backend/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics() *telemetry.Metrics {
	cfg := telemetry.DefaultMetricsConfig()
	cfg.Namespace = "test"
	cfg.IncludeRuntime = false
	return telemetry.NewMetrics(cfg)
}

func TestMetrics_Requests(t *testing.T) {
	m := newTestMetrics()

	m.RequestStarted()
	m.RequestStarted()
	m.RequestFinished("GET", "/api/customers/", "200", 20*time.Millisecond)

	expected := `
# HELP test_http_server_requests_total Total number of HTTP requests served.
# TYPE test_http_server_requests_total counter
test_http_server_requests_total{method="GET",route="/api/customers/",status="200"} 1
# HELP test_http_server_active_requests Number of HTTP requests currently in flight.
# TYPE test_http_server_active_requests gauge
test_http_server_active_requests 1
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"test_http_server_requests_total", "test_http_server_active_requests")
	assert.NoError(t, err)

	count, err := testutil.GatherAndCount(m.Registry(), "test_http_server_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_Sweeps(t *testing.T) {
	m := newTestMetrics()

	m.RecordSweep(3, nil)
	m.RecordSweep(2, nil)
	m.RecordSweep(0, errors.New("db down"))

	expected := `
# HELP test_overdue_sweeps_total Overdue sweeps run, by result.
# TYPE test_overdue_sweeps_total counter
test_overdue_sweeps_total{result="error"} 1
test_overdue_sweeps_total{result="ok"} 2
# HELP test_overdue_transactions_marked_total Transactions moved from borrowed to overdue by the sweeper.
# TYPE test_overdue_transactions_marked_total counter
test_overdue_transactions_marked_total 5
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"test_overdue_sweeps_total", "test_overdue_transactions_marked_total")
	assert.NoError(t, err)
}

func TestMetrics_CacheLookups(t *testing.T) {
	m := newTestMetrics()

	m.RecordCacheLookup("customer", true)
	m.RecordCacheLookup("customer", false)
	m.RecordCacheLookup("item", false)

	count, err := testutil.GatherAndCount(m.Registry(), "test_record_cache_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMetrics_DomainEvents(t *testing.T) {
	m := newTestMetrics()

	m.RecordDomainEvent("BorrowingTransactionCreated")
	m.RecordDomainEvent("BorrowingTransactionCreated")
	m.RecordDomainEvent("BorrowingTransactionStatusChanged")

	expected := `
# HELP test_domain_events_total Domain events published, by type.
# TYPE test_domain_events_total counter
test_domain_events_total{type="BorrowingTransactionCreated"} 2
test_domain_events_total{type="BorrowingTransactionStatusChanged"} 1
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "test_domain_events_total")
	assert.NoError(t, err)
}

func TestMetrics_Handler(t *testing.T) {
	m := newTestMetrics()
	m.RecordSweep(1, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "test_overdue_sweeps_total")
}

func TestMetrics_RuntimeCollectors(t *testing.T) {
	m := telemetry.NewMetrics(telemetry.DefaultMetricsConfig())

	count, err := testutil.GatherAndCount(m.Registry(), "go_goroutines")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
