// internal/monitoring/metrics.go
package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsManager manages Prometheus metrics for RealtyScrapexter
type MetricsManager struct {
	// Extraction pass metrics
	candidatesLocated    *prometheus.CounterVec
	entitiesAccepted     *prometheus.CounterVec
	validationRejections *prometheus.CounterVec
	duplicatesSuppressed *prometheus.CounterVec
	passDuration         *prometheus.HistogramVec

	// Snapshot metrics
	snapshotsProcessed *prometheus.CounterVec
	snapshotErrors     *prometheus.CounterVec
	snapshotSize       *prometheus.HistogramVec

	// Output metrics
	outputSuccess  *prometheus.CounterVec
	outputErrors   *prometheus.CounterVec
	outputTime     *prometheus.HistogramVec
	recordsWritten *prometheus.CounterVec

	// System metrics
	memoryUsage    prometheus.Gauge
	goroutineCount prometheus.Gauge

	// Batch metrics
	batchesTotal  *prometheus.CounterVec
	batchDuration *prometheus.HistogramVec
	batchesActive prometheus.Gauge

	// Custom metrics
	customMetrics map[string]prometheus.Collector
	customMutex   sync.RWMutex

	// Configuration
	namespace string
	subsystem string
}

// MetricsConfig configuration for metrics
type MetricsConfig struct {
	Namespace     string `json:"namespace"`
	Subsystem     string `json:"subsystem"`
	MetricsPath   string `json:"metrics_path"`
	ListenAddress string `json:"listen_address"`
}

// NewMetricsManager creates a new metrics manager
func NewMetricsManager(config MetricsConfig) *MetricsManager {
	if config.Namespace == "" {
		config.Namespace = "realtyscrapexter"
	}
	if config.Subsystem == "" {
		config.Subsystem = "extractor"
	}
	if config.MetricsPath == "" {
		config.MetricsPath = "/metrics"
	}
	if config.ListenAddress == "" {
		config.ListenAddress = ":9090"
	}

	mm := &MetricsManager{
		namespace:     config.Namespace,
		subsystem:     config.Subsystem,
		customMetrics: make(map[string]prometheus.Collector),
	}

	mm.initializeMetrics()

	return mm
}

// initializeMetrics initializes all Prometheus metrics
func (mm *MetricsManager) initializeMetrics() {
	// Extraction pass metrics
	mm.candidatesLocated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "candidates_located_total",
			Help:      "Total number of candidate regions located in snapshots",
		},
		[]string{"kind"},
	)

	mm.entitiesAccepted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "entities_accepted_total",
			Help:      "Total number of entities accepted into results",
		},
		[]string{"kind"},
	)

	mm.validationRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "validation_rejections_total",
			Help:      "Total number of candidates rejected by content validation",
		},
		[]string{"kind"},
	)

	mm.duplicatesSuppressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "duplicates_suppressed_total",
			Help:      "Total number of duplicate entities suppressed",
		},
		[]string{"kind"},
	)

	mm.passDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "pass_duration_seconds",
			Help:      "Extraction pass duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"kind"},
	)

	// Snapshot metrics
	mm.snapshotsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "snapshots_processed_total",
			Help:      "Total number of DOM snapshots processed",
		},
		[]string{"status"},
	)

	mm.snapshotErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "snapshot_errors_total",
			Help:      "Total number of snapshot parsing errors",
		},
		[]string{"error_type"},
	)

	mm.snapshotSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "snapshot_size_bytes",
			Help:      "DOM snapshot size in bytes",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10), // 1KB to 256MB
		},
		[]string{"source"},
	)

	// Output metrics
	mm.outputSuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "output_success_total",
			Help:      "Total number of successful output operations",
		},
		[]string{"format"},
	)

	mm.outputErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "output_errors_total",
			Help:      "Total number of output errors",
		},
		[]string{"format", "error_type"},
	)

	mm.outputTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "output_duration_seconds",
			Help:      "Output operation duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 25.0},
		},
		[]string{"format"},
	)

	mm.recordsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "records_written_total",
			Help:      "Total number of records written to output",
		},
		[]string{"format"},
	)

	// System metrics
	mm.memoryUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "memory_usage_bytes",
			Help:      "Current memory usage in bytes",
		},
	)

	mm.goroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "goroutines_count",
			Help:      "Current number of goroutines",
		},
	)

	// Batch metrics
	mm.batchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "batches_total",
			Help:      "Total number of batch runs",
		},
		[]string{"status"},
	)

	mm.batchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "batch_duration_seconds",
			Help:      "Batch run duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
		},
		[]string{"status"},
	)

	mm.batchesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      "batches_active",
			Help:      "Number of currently running batches",
		},
	)
}

// Extraction pass metrics. These methods satisfy the collector's
// Observer interface, so a MetricsManager can be passed directly as
// the collector's observer.

func (mm *MetricsManager) CandidatesLocated(kind string, count int) {
	mm.candidatesLocated.WithLabelValues(kind).Add(float64(count))
}

func (mm *MetricsManager) EntityAccepted(kind string) {
	mm.entitiesAccepted.WithLabelValues(kind).Inc()
}

func (mm *MetricsManager) ValidationRejected(kind string) {
	mm.validationRejections.WithLabelValues(kind).Inc()
}

func (mm *MetricsManager) DuplicateSuppressed(kind string) {
	mm.duplicatesSuppressed.WithLabelValues(kind).Inc()
}

func (mm *MetricsManager) PassCompleted(kind string, duration time.Duration) {
	mm.passDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// Snapshot metrics
func (mm *MetricsManager) RecordSnapshotProcessed(status string) {
	mm.snapshotsProcessed.WithLabelValues(status).Inc()
}

func (mm *MetricsManager) RecordSnapshotError(errorType string) {
	mm.snapshotErrors.WithLabelValues(errorType).Inc()
}

func (mm *MetricsManager) RecordSnapshotSize(source string, bytes int64) {
	mm.snapshotSize.WithLabelValues(source).Observe(float64(bytes))
}

// Output metrics
func (mm *MetricsManager) RecordOutputSuccess(format string, duration time.Duration, records int) {
	mm.outputSuccess.WithLabelValues(format).Inc()
	mm.outputTime.WithLabelValues(format).Observe(duration.Seconds())
	mm.recordsWritten.WithLabelValues(format).Add(float64(records))
}

func (mm *MetricsManager) RecordOutputError(format, errorType string) {
	mm.outputErrors.WithLabelValues(format, errorType).Inc()
}

// System metrics
func (mm *MetricsManager) UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	mm.memoryUsage.Set(float64(m.Alloc))
	mm.goroutineCount.Set(float64(runtime.NumGoroutine()))
}

// Batch metrics
func (mm *MetricsManager) RecordBatchStart() {
	mm.batchesActive.Inc()
}

func (mm *MetricsManager) RecordBatchComplete(status string, duration time.Duration) {
	mm.batchesTotal.WithLabelValues(status).Inc()
	mm.batchDuration.WithLabelValues(status).Observe(duration.Seconds())
	mm.batchesActive.Dec()
}

// Custom metrics
func (mm *MetricsManager) RegisterCustomCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      name,
			Help:      help,
		},
		labels,
	)

	mm.customMutex.Lock()
	mm.customMetrics[name] = counter
	mm.customMutex.Unlock()

	return counter
}

func (mm *MetricsManager) RegisterCustomGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: mm.namespace,
			Subsystem: mm.subsystem,
			Name:      name,
			Help:      help,
		},
		labels,
	)

	mm.customMutex.Lock()
	mm.customMetrics[name] = gauge
	mm.customMutex.Unlock()

	return gauge
}

// GetCustomMetric retrieves a custom metric by name
func (mm *MetricsManager) GetCustomMetric(name string) (prometheus.Collector, bool) {
	mm.customMutex.RLock()
	defer mm.customMutex.RUnlock()
	metric, exists := mm.customMetrics[name]
	return metric, exists
}

// MetricsHandler returns an HTTP handler for the metrics endpoint
func (mm *MetricsManager) MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer starts the metrics HTTP server
func (mm *MetricsManager) StartMetricsServer(ctx context.Context, address, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, mm.MetricsHandler())

	server := &http.Server{
		Addr:    address,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	return server.ListenAndServe()
}
