// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ミドルウェアやワーカーから利用する。
type MetricsCollector interface {
	RecordRequest(method, route string, statusCode int, duration time.Duration)
	RecordRateLimited(limitType string)
	RecordSessionsCleaned(count int64)
	RecordCleanupFailure()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpRequests    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rateLimited     *prometheus.CounterVec
	sessionsCleaned prometheus.Counter
	cleanupFail     prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "memoboard_http_requests_total",
			Help: "ルート・メソッド・ステータスコード別のHTTPリクエスト数",
		}, []string{"method", "route", "status_code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "memoboard_http_request_duration_seconds",
			Help:    "HTTPリクエストの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "memoboard_rate_limited_total",
			Help: "レート制限で拒否されたリクエスト数",
		}, []string{"limit_type"}),
		sessionsCleaned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memoboard_sessions_cleaned_total",
			Help: "削除された期限切れセッションの合計数",
		}),
		cleanupFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memoboard_session_cleanup_fail_total",
			Help: "セッションクリーンアップ失敗の合計数",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.requestDuration,
		c.rateLimited,
		c.sessionsCleaned,
		c.cleanupFail,
	)

	return c
}

// RecordRequest はHTTPリクエストの件数と処理時間を記録する。
// routeにはURLではなくルートパターンを渡し、ラベルの濃度を抑える。
func (c *Collector) RecordRequest(method, route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRateLimited はレート制限による拒否を記録する。
func (c *Collector) RecordRateLimited(limitType string) {
	c.rateLimited.WithLabelValues(limitType).Inc()
}

// RecordSessionsCleaned は削除したセッション数を記録する。
func (c *Collector) RecordSessionsCleaned(count int64) {
	c.sessionsCleaned.Add(float64(count))
}

// RecordCleanupFailure はクリーンアップ失敗を記録する。
func (c *Collector) RecordCleanupFailure() {
	c.cleanupFail.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// ワーカープロセスのように独立したリスナーで公開する場合に使う。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
