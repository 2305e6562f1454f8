package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"personal-site/internal/config"
	pgRepo "personal-site/internal/infra/adapter/persistence/postgres"
	"personal-site/internal/infra/archive"
	"personal-site/internal/infra/blob"
	"personal-site/internal/infra/db"
	"personal-site/internal/infra/feed"
	"personal-site/internal/observability/logging"
	"personal-site/internal/service/gate"

	syncUC "personal-site/internal/usecase/mediumsync"
	postUC "personal-site/internal/usecase/post"
	resumeUC "personal-site/internal/usecase/resume"
	templateUC "personal-site/internal/usecase/template"

	hhttp "personal-site/internal/handler/http"
	hauth "personal-site/internal/handler/http/auth"
	hmedium "personal-site/internal/handler/http/medium"
	hpost "personal-site/internal/handler/http/post"
	"personal-site/internal/handler/http/requestid"
	hresume "personal-site/internal/handler/http/resume"
	htemplate "personal-site/internal/handler/http/template"
	"personal-site/internal/observability/tracing"
)

// @title           Personal Site API
// @version         1.0
// @description     個人ポートフォリオのバックエンド REST API
// @description     ブログ記事、Medium同期、履歴書フォルダ、テンプレートギャラリーを提供します。

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。

func main() {
	logger := logging.NewLogger()

	secCfg := loadSecurityConfig(logger)
	validateCredentials(logger, secCfg)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupServer(logger, database, secCfg, version)

	runServer(logger, handler, version)
}

// loadSecurityConfig loads the security settings, falling back to the
// built-in defaults when SECURITY_CONFIG is not set.
func loadSecurityConfig(logger *slog.Logger) *config.SecurityConfig {
	path := os.Getenv("SECURITY_CONFIG")
	if path == "" {
		return config.DefaultSecurityConfig()
	}
	cfg, err := config.LoadSecurityConfig(path)
	if err != nil {
		logger.Error("failed to load security configuration",
			slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("security configuration loaded", slog.String("path", path))
	return cfg
}

// validateCredentials refuses to start with missing or weak admin
// credentials or JWT secret.
func validateCredentials(logger *slog.Logger, cfg *config.SecurityConfig) {
	if err := hauth.ValidateAdminCredentials(); err != nil {
		logger.Error("admin credentials validation failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := hauth.ValidateJWTSecret(cfg.GetJWTSecretEnv()); err != nil {
		logger.Error("jwt secret validation failed", slog.Any("error", err))
		os.Exit(1)
	}
	// 検証した変数名で署名・検証も行う
	hauth.UseSecretEnv(cfg.GetJWTSecretEnv())
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires repositories, use cases and HTTP handlers, and
// returns the fully assembled handler.
func setupServer(logger *slog.Logger, database *sql.DB, secCfg *config.SecurityConfig, version string) http.Handler {
	resumeStore, err := blob.FromEnv("resumes")
	if err != nil {
		logger.Error("failed to initialize resume store", slog.Any("error", err))
		os.Exit(1)
	}
	templateStore, err := blob.FromEnv("templates")
	if err != nil {
		logger.Error("failed to initialize template store", slog.Any("error", err))
		os.Exit(1)
	}

	postSvc := &postUC.Service{
		Repo:    pgRepo.NewPostRepo(database),
		Archive: newArchiver(logger),
	}
	syncSvc := &syncUC.Service{
		Repo:    pgRepo.NewMediumArticleRepo(database),
		Fetcher: feed.NewRSSFetcher(nil),
	}
	resumeSvc := &resumeUC.Service{
		Repo:  pgRepo.NewResumeRepo(database),
		Store: resumeStore,
	}
	templateSvc := &templateUC.Service{
		Repo:    pgRepo.NewTemplateRepo(database),
		Store:   templateStore,
		SiteURL: siteURL(),
	}

	gateCfg := secCfg.Security.Gate
	resumeGate := gate.New(os.Getenv("RESUMES_PASSWORD"),
		gate.WithSalt(gateCfg.Salt),
		gate.WithCookie(gateCfg.CookieName, time.Duration(gateCfg.CookieMaxAgeHours)*time.Hour),
	)
	if !resumeGate.Configured() {
		logger.Warn("RESUMES_PASSWORD not set - resume folder endpoints will return 503")
	}

	// パスワード総当たり対策のレート制限
	unlockLimiter := hhttp.NewRateLimiter(gateCfg.UnlockPerMinute, gateCfg.UnlockBurst)

	mux := http.NewServeMux()

	jwtExpiry := time.Duration(secCfg.GetJWTExpiryHours()) * time.Hour
	mux.Handle("POST   /auth/token", unlockLimiter.Limit(hauth.TokenHandler(jwtExpiry)))

	// ヘルスチェックエンドポイント（認証不要）
	mux.Handle("GET    /health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("GET    /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET    /live", &hhttp.LiveHandler{})
	mux.Handle("GET    /metrics", hhttp.MetricsHandler())

	hpost.Register(mux, postSvc)
	hmedium.Register(mux, syncSvc)
	hresume.Register(mux, resumeSvc, resumeGate, unlockLimiter)
	htemplate.Register(mux, templateSvc)

	return applyMiddleware(logger, mux)
}

// newArchiver returns the filesystem markdown mirror, or nil when no
// archive directory is configured.
func newArchiver(logger *slog.Logger) postUC.Archiver {
	dir := os.Getenv("ARCHIVE_DIR")
	if dir == "" {
		logger.Info("ARCHIVE_DIR not set - markdown mirror disabled")
		return nil
	}
	return archive.NewMarkdownMirror(dir)
}

func siteURL() string {
	if v := os.Getenv("SITE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

// applyMiddleware wraps the handler with the shared middleware chain.
// Order (outermost first): Request ID, Tracing, Metrics, Logging,
// Recover, Input Validation, Body Limit.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	chain := handler

	// Apply in reverse order (innermost to outermost)
	chain = hhttp.LimitRequestBody(64 << 20)(chain) // アップロードがあるため64MB
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
