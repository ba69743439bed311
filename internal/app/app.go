package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hitoshi/memoboard/internal/auth"
	"github.com/hitoshi/memoboard/internal/config"
	"github.com/hitoshi/memoboard/internal/database"
	"github.com/hitoshi/memoboard/internal/handler"
	"github.com/hitoshi/memoboard/internal/logger"
	"github.com/hitoshi/memoboard/internal/memo"
	"github.com/hitoshi/memoboard/internal/metrics"
	"github.com/hitoshi/memoboard/internal/middleware"
	"github.com/hitoshi/memoboard/internal/post"
	"github.com/hitoshi/memoboard/internal/repository"
	"github.com/hitoshi/memoboard/internal/security"
	"github.com/hitoshi/memoboard/internal/todo"
	"github.com/hitoshi/memoboard/internal/user"
	"github.com/hitoshi/memoboard/internal/worker/cleanup"
)

const (
	shutdownTimeout = 30 * time.Second
	dbPingTimeout   = 5 * time.Second
	sentryFlushWait = 2 * time.Second
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、LOG_LEVELに従ってJSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w, slog.LevelInfo)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 3. 設定されたログレベルで再構成
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.SetupDefault(w, level)

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
		slog.String("env", cfg.AppEnv),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandWorker:
		return runWorker(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	case CommandIssueToken:
		return runIssueToken(w, cfg, args[1:])
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// マイグレーション適用後にDB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	flush := setupSentry(cfg)
	defer flush()

	// 1. マイグレーション
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// 2. DB接続
	db, err := database.Open(cfg.DatabaseURL, database.DefaultPoolConfig())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := database.Ping(context.Background(), db, dbPingTimeout); err != nil {
		return err
	}

	slog.Info("database connection established")

	// 3. リポジトリの初期化
	userRepo := repository.NewPostgresUserRepo(db)
	sessionRepo := repository.NewPostgresSessionRepo(db)
	memoRepo := repository.NewPostgresMemoRepo(db)
	todoRepo := repository.NewPostgresTodoRepo(db)
	postRepo := repository.NewPostgresPostRepo(db)

	// 4. 認証
	resolver := auth.NewResolver(userRepo)
	oauthProvider := auth.NewGoogleOAuthProvider(auth.GoogleOAuthConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
	})
	authService := auth.NewService(
		oauthProvider, resolver, userRepo, sessionRepo,
		auth.ServiceConfig{SessionMaxAge: cfg.SessionMaxAge},
	)

	var bearer middleware.BearerAuthenticator
	if cfg.BearerEnabled() {
		bearer = auth.NewBearerAuthenticator(auth.NewJWTVerifier(cfg.JWTSecret), resolver)
		slog.Info("bearer token authentication enabled")
	}

	// 5. ドメインサービスの初期化
	sanitizer := security.NewContentSanitizer()
	memoService := memo.NewService(memoRepo)
	todoService := todo.NewService(todoRepo)
	postService := post.NewService(postRepo, sanitizer)
	userService := user.NewService(userRepo, sessionRepo)

	// 6. メトリクス
	registry := newRegistry()
	collector := metrics.NewCollector(registry)

	// 7. ルーターの構築
	rateLimiter := middleware.NewRateLimiter(
		middleware.PerMinuteConfig(cfg.RateLimitGeneral, cfg.RateLimitWrite),
		collector,
	)
	defer rateLimiter.Stop()

	deps := &handler.RouterDeps{
		HealthChecker:  db,
		Logger:         slog.Default(),
		Metrics:        collector,
		MetricsHandler: metrics.Handler(registry),

		SessionFinder:       sessionRepo,
		BearerAuthenticator: bearer,
		CSRFConfig: middleware.CSRFConfig{
			CookieSecure: cfg.CookieSecure,
			CookieDomain: cfg.CookieDomain,
		},
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,

		AuthService: authService,
		AuthConfig: handler.AuthHandlerConfig{
			BaseURL:       cfg.BaseURL,
			CookieDomain:  cfg.CookieDomain,
			CookieSecure:  cfg.CookieSecure,
			SessionMaxAge: cfg.SessionMaxAge,
		},

		MemoService: memoService,
		TodoService: todoService,
		PostService: postService,
		UserService: userService,
	}

	router := handler.NewRouter(deps)

	// 8. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return serveUntilSignal(server, "API server")
}

// runWorker はワーカーモードで起動する。
// DB接続を開き、期限切れセッションのクリーンアップジョブとメトリクス公開用サーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとシャットダウンする。
func runWorker(cfg *config.Config) error {
	flush := setupSentry(cfg)
	defer flush()

	// 1. DB接続（ワーカーは接続数を抑える）
	db, err := database.Open(cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns: 2,
		MaxIdleConns: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := database.Ping(context.Background(), db, dbPingTimeout); err != nil {
		return err
	}

	slog.Info("database connection established (worker)")

	// 2. メトリクス
	registry := newRegistry()
	collector := metrics.NewCollector(registry)

	metricsServer := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           metrics.SetupMetricsRoute(registry),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("worker metrics server starting", slog.String("addr", metricsServer.Addr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("worker metrics server error", slog.String("error", err.Error()))
		}
	}()

	// 3. クリーンアップジョブ
	cleanupJob := cleanup.NewSessionCleanupJob(
		repository.NewPostgresSessionRepo(db), collector, slog.Default(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("worker starting",
		slog.Duration("session_cleanup_interval", cfg.SessionCleanupInterval),
	)

	// ctxがキャンセルされるまでブロック
	cleanupJob.Start(ctx, cfg.SessionCleanupInterval)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("worker metrics server shutdown failed", slog.String("error", err.Error()))
	}

	slog.Info("worker stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, err := database.Version(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	slog.Info("database migrations completed successfully",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// serveUntilSignal はサーバーを起動し、SIGINT/SIGTERMを受信したらグレースフルシャットダウンする。
func serveUntilSignal(server *http.Server, name string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info(name+" starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down " + name + "...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info(name + " stopped gracefully")
	return nil
}

// setupSentry はSENTRY_DSNが設定されている場合にSentryを初期化する。
// 戻り値の関数は終了時に未送信イベントをフラッシュする。
func setupSentry(cfg *config.Config) func() {
	if cfg.SentryDSN == "" {
		return func() {}
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.AppEnv,
	}); err != nil {
		slog.Error("sentry init failed", slog.String("error", err.Error()))
		return func() {}
	}

	slog.Info("sentry error reporting enabled")
	return func() { sentry.Flush(sentryFlushWait) }
}

// newRegistry はアプリケーション用のPrometheusレジストリを生成する。
// Goランタイムとプロセスのメトリクスを含む。
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
