package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "assessment_sessions_active",
			Help: "Number of test sessions currently held in memory",
		},
	)

	SessionsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_sessions_created_total",
			Help: "Test sessions successfully initialized",
		},
		[]string{"test_type"},
	)

	SessionsExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assessment_sessions_expired_total",
			Help: "Test sessions removed by the TTL sweep",
		},
	)

	AnswersSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assessment_answers_submitted_total",
			Help: "Answers recorded across all sessions",
		},
	)

	QuestionLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assessment_question_load_duration_seconds",
			Help:    "Latency of the question source",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	QuestionLoadFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_question_load_failures_total",
			Help: "Question source failures by reason",
		},
		[]string{"reason"},
	)

	PersistenceTasks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_persistence_tasks_total",
			Help: "Best-effort persistence tasks by outcome",
		},
		[]string{"task", "status"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			SessionsActive,
			SessionsCreated,
			SessionsExpired,
			AnswersSubmitted,
			QuestionLoadDuration,
			QuestionLoadFailures,
			PersistenceTasks,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
