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

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"venture-feed/internal/app"
	hhttp "venture-feed/internal/handler/http"
	hingest "venture-feed/internal/handler/http/ingest"
	hoverlay "venture-feed/internal/handler/http/overlay"
	"venture-feed/internal/handler/http/requestid"
	hsignal "venture-feed/internal/handler/http/signal"
	"venture-feed/internal/infra/adapter/persistence"
	"venture-feed/internal/infra/db"
	"venture-feed/internal/observability/logging"
	"venture-feed/internal/observability/tracing"
	"venture-feed/internal/resilience/circuitbreaker"
	"venture-feed/internal/usecase/overlay"
	"venture-feed/internal/usecase/query"
	"venture-feed/pkg/config"

	_ "venture-feed/docs" // swagger docs
)

// @title           Venture Feed API
// @version         1.0
// @description     スタートアップ・研究・イベントのシグナルを収集し、LLM で分類・スコアリングする API
// @description     記事・論文・イベント・スタートアップの閲覧、CSV エクスポート、ピン留めや通知設定を提供します。

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey CronSecret
// @in header
// @name Authorization
// @description 取り込みエンドポイント用。CRON_SECRET を "Bearer {secret}" 形式で指定してください。

const shutdownTimeout = 15 * time.Second

func main() {
	logger := initLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, repos := initDatabase(ctx, logger)
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ingestion, err := app.NewIngestion(logger, repos, app.Options{
		NotifyMaxConcurrent: config.GetEnvInt("NOTIFY_MAX_CONCURRENT", 10),
		RunTimeout:          config.GetEnvDuration("CRAWL_TIMEOUT", 30*time.Minute),
	})
	if err != nil {
		logger.Error("failed to build ingestion", slog.Any("error", err))
		os.Exit(1)
	}

	version := getVersion()
	handler := setupServer(logger, conn, repos, ingestion, version)

	if err := runServer(ctx, logger, handler, ingestion, version); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens DATABASE_URL, applies the schema and builds the repositories.
func initDatabase(ctx context.Context, logger *slog.Logger) (*sql.DB, *persistence.Repositories) {
	conn, dialect, err := db.Open(ctx)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.Migrate(conn, dialect); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	repos, err := persistence.New(conn, dialect)
	if err != nil {
		logger.Error("failed to build repositories", slog.Any("error", err))
		os.Exit(1)
	}
	return conn, repos
}

func getVersion() string {
	return config.GetEnvString("VERSION", "dev")
}

// setupServer registers every route and wraps the mux in the middleware chain.
func setupServer(logger *slog.Logger, conn *sql.DB, repos *persistence.Repositories, ingestion *app.Ingestion, version string) http.Handler {
	querySvc := &query.Service{
		Articles: repos.Articles,
		Papers:   repos.Papers,
		Events:   repos.Events,
		Startups: repos.Startups,
	}
	overlaySvc := &overlay.Service{
		Pins:          repos.Pins,
		Dismissals:    repos.Dismissals,
		Stars:         repos.Stars,
		Subscriptions: repos.Subscriptions,
		Preferences:   repos.Preferences,
		Startups:      ingestion.Resolver,
		DemoUserID:    config.GetEnvString("DEMO_USER_ID", overlay.DefaultUserID),
	}

	cronSecret := config.GetEnvString("CRON_SECRET", "")
	if cronSecret == "" {
		logger.Warn("CRON_SECRET is not set, ingest endpoints are unauthenticated")
	}

	mux := http.NewServeMux()

	// ヘルスチェック・メトリクス（認証不要）
	dbBreaker := circuitbreaker.NewDBCircuitBreaker(conn)
	mux.Handle("/health", &hhttp.HealthHandler{DB: dbBreaker, Alerts: ingestion.Notify, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: dbBreaker})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	hsignal.Register(mux, querySvc)
	hoverlay.Register(mux, overlaySvc)
	hingest.Register(mux, ingestion.Runner, ingestion.Resolver, cronSecret)

	return applyMiddleware(logger, mux)
}

// applyMiddleware wraps handler so that request ids exist before anything logs.
// Order: Request ID → Tracing → Logging → Recovery → Metrics → Input validation.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	return hhttp.Chain(handler,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.MetricsMiddleware,
		hhttp.InputValidation(hhttp.MaxRequestBody),
	)
}

// runServer serves until ctx is cancelled, then drains requests and alerts.
func runServer(ctx context.Context, logger *slog.Logger, handler http.Handler, ingestion *app.Ingestion, version string) error {
	addr := config.GetEnvString("API_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", slog.String("addr", addr), slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		if alertErr := ingestion.Shutdown(shutdownCtx); alertErr != nil {
			logger.Warn("alert drain incomplete", slog.Any("error", alertErr))
		}
		if err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}
