package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// requestIDHeader はリクエストIDを受け渡すヘッダー名。
const requestIDHeader = "X-Request-ID"

// requestInfo はリクエスト処理中に判明した情報をロギングミドルウェアへ渡す。
type requestInfo struct {
	requestID string
	userID    int64
}

// statusRecorder はhttp.ResponseWriterをラップし、ステータスコードを記録する。
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// WriteHeader はステータスコードを記録してから委譲する。
func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

// Write はデータを書き込む。WriteHeaderが未呼び出しの場合は200を記録する。
func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// NewLoggingMiddleware はリクエストのJSON構造化ログを出力するミドルウェアを返す。
// ログにはmethod、path、route、status、duration_ms、request_id、user_id（認証済みの場合）を含む。
// リクエストIDはX-Request-IDヘッダーで受け取り、なければ生成してレスポンスに付与する。
func NewLoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			info := &requestInfo{requestID: requestIDFrom(r)}
			w.Header().Set(requestIDHeader, info.requestID)
			ctx := context.WithValue(r.Context(), requestInfoContextKey, info)

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r.WithContext(ctx))

			duration := time.Since(start)
			durationMs := float64(duration.Nanoseconds()) / float64(time.Millisecond)

			args := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", RoutePattern(r)),
				slog.Int("status", rec.statusCode),
				slog.Float64("duration_ms", durationMs),
				slog.String("request_id", info.requestID),
			}
			if info.userID > 0 {
				args = append(args, slog.Int64("user_id", info.userID))
			}

			level := slog.LevelInfo
			if rec.statusCode >= 500 {
				level = slog.LevelError
			} else if rec.statusCode >= 400 {
				level = slog.LevelWarn
			}

			logger.Log(ctx, level, "http_request", args...)
		})
	}
}

// RequestIDFromContext はロギングミドルウェアが割り当てたリクエストIDを返す。
func RequestIDFromContext(ctx context.Context) string {
	if info, ok := ctx.Value(requestInfoContextKey).(*requestInfo); ok {
		return info.requestID
	}
	return ""
}

// RoutePattern はchiがマッチしたルートパターンを返す。
// ルーティング前やマッチしなかった場合は "unmatched" を返す。
func RoutePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func requestIDFrom(r *http.Request) string {
	if id := r.Header.Get(requestIDHeader); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	return uuid.NewString()
}
