package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
)

// NewRecoveryMiddleware はpanic発生時にプロセスクラッシュを防ぎ、
// 500レスポンスを返すミドルウェアを生成する。
// Sentryが初期化されていればpanicを報告する。未初期化の場合、報告は何もしない。
func NewRecoveryMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					slog.Error("panic recovered",
						slog.Any("panic", rec),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("request_id", RequestIDFromContext(r.Context())),
						slog.String("stack", string(debug.Stack())),
					)
					reportPanic(r, rec)
					WriteInternalServerError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func reportPanic(r *http.Request, rec any) {
	hub := sentry.CurrentHub().Clone()
	hub.Scope().SetRequest(r)
	hub.Scope().SetTag("request_id", RequestIDFromContext(r.Context()))
	if hub.RecoverWithContext(r.Context(), rec) != nil {
		hub.Flush(2 * time.Second)
	}
}
