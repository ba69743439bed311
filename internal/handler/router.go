package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/memoboard/internal/middleware"
)

// healthCheckTimeout は /health でのDB疎通確認のタイムアウト。
const healthCheckTimeout = 3 * time.Second

// HealthChecker はDBの疎通確認インターフェース。*sql.DBが実装する。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// SetupAuthRoutes は認証関連のルーティングを設定したchi.Routerを返す。
func SetupAuthRoutes(service AuthServiceInterface, config AuthHandlerConfig) http.Handler {
	r := chi.NewRouter()
	h := NewAuthHandler(service, config)

	r.Route("/auth", func(r chi.Router) {
		// OAuthフロー
		r.Get("/google/login", h.Login)
		r.Get("/google/callback", h.Callback)

		// セッション管理
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
	})

	return r
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// 運用系
	HealthChecker  HealthChecker
	Logger         *slog.Logger
	Metrics        middleware.RequestRecorder
	MetricsHandler http.Handler

	// ミドルウェア依存
	SessionFinder       middleware.SessionFinder
	BearerAuthenticator middleware.BearerAuthenticator // nilの場合Bearer認証は無効
	CSRFConfig          middleware.CSRFConfig
	CORSAllowedOrigin   string
	RateLimiter         *middleware.RateLimiter

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// リソース
	MemoService MemoServiceInterface
	TodoService TodoServiceInterface
	PostService PostServiceInterface
	UserService UserServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → SecurityHeaders → CORS → Metrics
//	  公開ルート:     RateLimit(General) → CSRF
//	  認証必須ルート: Identity → RateLimit(General) → CSRF
//
// 認証ルート（/auth/*）とヘルスチェックはレート制限・CSRF検証の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	memoHandler := NewMemoHandler(deps.MemoService)
	todoHandler := NewTodoHandler(deps.TodoService)
	postHandler := NewPostHandler(deps.PostService)
	userHandler := NewUserHandler(deps.UserService)

	// --- 運用系 ---
	r.Get("/health", healthHandler(deps.HealthChecker))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// CSRFトークン取得
	r.Method(http.MethodGet, "/api/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig))

	// 認証ルート（OAuthフロー）
	r.Route("/auth", func(r chi.Router) {
		r.Get("/google/login", authHandler.Login)
		r.Get("/google/callback", authHandler.Callback)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	// --- 認証不要のルート ---
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))

		// 投稿
		r.Get("/api/posts", postHandler.List)
		r.With(deps.RateLimiter.WriteMiddleware()).Post("/api/posts", postHandler.Create)
		r.Get("/api/posts/{id}", postHandler.Get)
		r.Put("/api/posts/{id}", postHandler.Update)
		r.Delete("/api/posts/{id}", postHandler.Delete)

		// ユーザー
		r.Get("/api/users", userHandler.List)
		r.With(deps.RateLimiter.WriteMiddleware()).Post("/api/users", userHandler.Create)
		r.Get("/api/users/{id}", userHandler.Get)
	})

	// --- 認証が必要なルート ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewIdentityMiddleware(deps.SessionFinder, deps.BearerAuthenticator))
		r.Use(deps.RateLimiter.GeneralMiddleware())
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))

		// メモ
		r.Get("/api/memos", memoHandler.List)
		r.Post("/api/memos", memoHandler.Create)
		r.Delete("/api/memos", memoHandler.Delete)
		r.Get("/api/memos/{id}", memoHandler.Get)
		r.Put("/api/memos/{id}", memoHandler.Update)
		r.Delete("/api/memos/{id}", memoHandler.Delete)

		// Todo
		r.Get("/api/todo", todoHandler.List)
		r.Post("/api/todo", todoHandler.Create)
		r.Put("/api/todo", todoHandler.Update)
		r.Delete("/api/todo", todoHandler.Delete)

		// 退会
		r.Delete("/api/users/me", userHandler.Withdraw)
	})

	return r
}

// healthResponse は /health のレスポンス形式。
type healthResponse struct {
	Status string `json:"status"`
}

// healthHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
func healthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			defer cancel()
			if err := checker.PingContext(ctx); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
