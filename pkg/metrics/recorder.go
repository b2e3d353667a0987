package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/testhub/testhub-go/pkg/apiclient"
)

// Client latency spans quick lookups up to ten-minute suite runs.
var defaultBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 300, 600}

// Recorder holds the client and agent metrics. It is safe for concurrent use.
type Recorder struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry
	runtime   bool

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errors          *prometheus.CounterVec

	tasks        *prometheus.CounterVec
	taskDuration prometheus.Histogram
	heartbeats   *prometheus.CounterVec
	busy         prometheus.Gauge
}

// NewRecorder creates a Recorder and registers its metrics.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: "testhub",
		buckets:   defaultBuckets,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = prometheus.NewRegistry()
	}
	r.initializeMetrics()
	return r
}

func (r *Recorder) initializeMetrics() {
	auto := promauto.With(r.registry)

	r.requests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Total number of API requests dispatched",
	}, []string{"method", "endpoint", "status"})

	r.requestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "API request latency in seconds",
		Buckets:   r.buckets,
	}, []string{"method", "endpoint"})

	r.errors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "client",
		Name:      "errors_total",
		Help:      "Total number of failed API requests by error code",
	}, []string{"endpoint", "code"})

	r.tasks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "agent",
		Name:      "tasks_total",
		Help:      "Total number of tasks finished by the agent",
	}, []string{"status"})

	r.taskDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: "agent",
		Name:      "task_duration_seconds",
		Help:      "Task run time in seconds",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	r.heartbeats = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "agent",
		Name:      "heartbeats_total",
		Help:      "Total number of heartbeat attempts",
	}, []string{"result"})

	r.busy = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: "agent",
		Name:      "busy",
		Help:      "1 while the agent is running a task",
	})

	if r.runtime {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
}

// ObserveDispatch implements apiclient.Observer.
func (r *Recorder) ObserveDispatch(method, endpoint string, status int, elapsed time.Duration, err error) {
	statusLabel := "none"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}
	r.requests.WithLabelValues(method, endpoint, statusLabel).Inc()
	r.requestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())

	if err != nil {
		code := "unknown"
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Code != "" {
			code = apiErr.Code
		}
		r.errors.WithLabelValues(endpoint, code).Inc()
	}
}

// ObserveTask records a finished agent task.
func (r *Recorder) ObserveTask(status string, elapsed time.Duration) {
	r.tasks.WithLabelValues(status).Inc()
	r.taskDuration.Observe(elapsed.Seconds())
}

// ObserveHeartbeat records one heartbeat attempt.
func (r *Recorder) ObserveHeartbeat(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.heartbeats.WithLabelValues(result).Inc()
}

// SetBusy flips the busy gauge.
func (r *Recorder) SetBusy(busy bool) {
	if busy {
		r.busy.Set(1)
		return
	}
	r.busy.Set(0)
}

// Registry returns the registry the metrics live on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
