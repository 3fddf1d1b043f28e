package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tanji_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tanji_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 扫描与估价业务指标
	ScansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tanji_scans_total",
			Help: "Total number of price-tag scans ingested",
		},
	)

	// model_source: real / fallback。fallback 飙升说明模型文件没加载上。
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tanji_predictions_total",
			Help: "Total number of discount predictions by model source",
		},
		[]string{"model_source"},
	)

	WritebackFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tanji_price_writebacks_failed_total",
			Help: "Total number of per-record persistence write failures",
		},
	)
)

// RecordPrediction 按模型来源累计预测次数
func RecordPrediction(source string, n int) {
	PredictionsTotal.WithLabelValues(source).Add(float64(n))
}

// Middleware 记录每个请求的量与耗时
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HttpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HttpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
