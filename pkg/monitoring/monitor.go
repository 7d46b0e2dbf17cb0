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
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// GradedSubmissions 按等级和评分结果统计作答
	GradedSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_matrix_graded_submissions_total",
			Help: "Graded quiz submissions by level and status",
		},
		[]string{"level", "status"},
	)

	RetestDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_matrix_retest_decisions_total",
			Help: "Retest authorization outcomes",
		},
		[]string{"outcome"},
	)

	QuestionsServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skill_matrix_questions_served_total",
			Help: "Questions handed out by difficulty",
		},
		[]string{"difficulty"},
	)

	StoreRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "skill_matrix_store_retries_total",
			Help: "Store operations retried after a transient failure",
		},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			GradedSubmissions,
			RetestDecisions,
			QuestionsServed,
			StoreRetries,
		)
	})
}

func ObserveGrade(level int, status string) {
	GradedSubmissions.WithLabelValues(strconv.Itoa(level), status).Inc()
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
