// internal/monitoring/metrics_test.go
package monitoring

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/valpere/RealtyScrapexter/internal/collect"
)

// The manager registers its collectors on the process-global registry,
// so every test in this binary shares one instance.
var testManager = NewMetricsManager(MetricsConfig{Subsystem: "test"})

var _ collect.Observer = (*MetricsManager)(nil)

func TestObserverMethods(t *testing.T) {
	// Recording must not panic and must show up in the exposition
	testManager.CandidatesLocated("listing", 4)
	testManager.EntityAccepted("listing")
	testManager.ValidationRejected("review")
	testManager.DuplicateSuppressed("listing")
	testManager.PassCompleted("listing", 25*time.Millisecond)

	testManager.RecordSnapshotProcessed("processed")
	testManager.RecordSnapshotError("parse")
	testManager.RecordSnapshotSize("file", 2048)
	testManager.RecordOutputSuccess("json", 3*time.Millisecond, 7)
	testManager.RecordOutputError("json", "write")
	testManager.RecordBatchStart()
	testManager.RecordBatchComplete("completed", 100*time.Millisecond)
	testManager.UpdateSystemMetrics()

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	testManager.MetricsHandler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("metrics endpoint status = %d", w.Code)
	}
	body := w.Body.String()
	for _, metric := range []string{
		"realtyscrapexter_test_candidates_located_total",
		"realtyscrapexter_test_entities_accepted_total",
		"realtyscrapexter_test_snapshots_processed_total",
		"realtyscrapexter_test_records_written_total",
	} {
		if !strings.Contains(body, metric) {
			t.Errorf("exposition missing %s", metric)
		}
	}
}

func TestRegisterCustomMetrics(t *testing.T) {
	counter := testManager.RegisterCustomCounter("custom_events_total", "custom events", []string{"kind"})
	if counter == nil {
		t.Fatal("expected a counter")
	}
	counter.WithLabelValues("demo").Inc()

	gauge := testManager.RegisterCustomGauge("custom_depth", "custom depth", nil)
	if gauge == nil {
		t.Fatal("expected a gauge")
	}

	if _, ok := testManager.GetCustomMetric("custom_events_total"); !ok {
		t.Error("custom counter not retrievable by name")
	}
	if _, ok := testManager.GetCustomMetric("unregistered"); ok {
		t.Error("unexpected metric for unregistered name")
	}
}
