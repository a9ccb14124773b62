// Package metrics 定义了应用的 Prometheus 指标。
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// 歌词获取结果标签。
const (
	LyricsResultCacheHit = "cache_hit"
	LyricsResultFetched  = "fetched"
	LyricsResultError    = "error"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "samma3ni",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "samma3ni",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	lyricsFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "samma3ni",
			Name:      "lyrics_fetch_total",
			Help:      "Lyrics lookups by result",
		},
		[]string{"result"},
	)

	searchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "samma3ni",
			Name:      "search_candidates",
			Help:      "Number of candidate songs returned by the catalog per search",
			Buckets:   prometheus.LinearBuckets(0, 5, 5),
		},
	)

	searchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "samma3ni",
			Name:      "search_results",
			Help:      "Number of ranked songs with positive similarity per search",
			Buckets:   prometheus.LinearBuckets(0, 5, 5),
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(lyricsFetchTotal)
	prometheus.MustRegister(searchCandidates)
	prometheus.MustRegister(searchResults)
}

// Middleware 记录 HTTP 请求的耗时和次数，path 使用 gin 的路由模板。
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// ObserveLyricsFetch 记录一次歌词获取的结果。
func ObserveLyricsFetch(result string) {
	lyricsFetchTotal.WithLabelValues(result).Inc()
}

// ObserveSearch 记录一次搜索的候选数量和结果数量。
func ObserveSearch(candidates, results int) {
	searchCandidates.Observe(float64(candidates))
	searchResults.Observe(float64(results))
}
