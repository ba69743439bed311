package middleware

import (
	"net/http"
	"time"
)

// RequestRecorder はHTTPリクエストのメトリクスを記録する。
// metrics.Collectorが実装する。
type RequestRecorder interface {
	RecordRequest(method, route string, statusCode int, duration time.Duration)
}

// NewMetricsMiddleware はリクエスト件数と処理時間を記録するミドルウェアを返す。
// ラベルにはchiのルートパターンを使う。
func NewMetricsMiddleware(recorder RequestRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			recorder.RecordRequest(r.Method, RoutePattern(r), rec.statusCode, time.Since(start))
		})
	}
}
