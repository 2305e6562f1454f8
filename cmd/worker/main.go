package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"personal-site/internal/infra/adapter/persistence/postgres"
	"personal-site/internal/infra/db"
	"personal-site/internal/infra/feed"
	"personal-site/internal/observability/logging"
	"personal-site/internal/observability/metrics"
	syncUC "personal-site/internal/usecase/mediumsync"
)

// デフォルトは6時間ごと
const defaultSchedule = "0 */6 * * *"

const syncTimeout = 2 * time.Minute

func main() {
	logger := logging.NewLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	source := syncSource()
	if source == "" {
		logger.Error("no sync source: set MEDIUM_USERNAME or MEDIUM_FEED_URL")
		os.Exit(1)
	}

	svc := &syncUC.Service{
		Repo:    postgres.NewMediumArticleRepo(database),
		Fetcher: feed.NewRSSFetcher(nil),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runMetricsServer(ctx, logger)
	})
	g.Go(func() error {
		return runScheduler(ctx, logger, svc, source)
	})

	if err := g.Wait(); err != nil {
		logger.Error("worker stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

// initDatabase opens the database connection and waits for the API
// container to finish running migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM medium_articles LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

// syncSource resolves the feed source from the environment. A full feed
// URL wins over a Medium handle.
func syncSource() string {
	if v := os.Getenv("MEDIUM_FEED_URL"); v != "" {
		return v
	}
	return os.Getenv("MEDIUM_USERNAME")
}

// runScheduler runs an immediate sync and then repeats on the cron
// schedule until the context is canceled.
func runScheduler(ctx context.Context, logger *slog.Logger, svc *syncUC.Service, source string) error {
	schedule := os.Getenv("SYNC_SCHEDULE")
	if schedule == "" {
		schedule = defaultSchedule
	}

	// 起動直後に一度同期しておく
	runSyncJob(ctx, logger, svc, source)

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		runSyncJob(ctx, logger, svc, source)
	}); err != nil {
		return err
	}
	c.Start()
	logger.Info("worker started", slog.String("schedule", schedule), slog.String("source", source))

	<-ctx.Done()
	stopCtx := c.Stop()
	// 実行中のジョブを待つ
	<-stopCtx.Done()
	return nil
}

// runSyncJob executes a single sync run with a timeout.
func runSyncJob(ctx context.Context, logger *slog.Logger, svc *syncUC.Service, source string) {
	start := time.Now()
	logger.Info("medium sync started")

	jobCtx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	stats, err := svc.Sync(jobCtx, source)
	metrics.RecordSyncRun(err == nil, time.Since(start))
	if err != nil {
		logger.Error("medium sync failed", slog.Any("error", err))
		return
	}
	metrics.RecordArticlesUpserted(stats.Created, stats.Updated)

	logger.Info("medium sync completed",
		slog.Int("total", stats.Total),
		slog.Int("created", stats.Created),
		slog.Int("updated", stats.Updated),
		slog.Duration("duration", time.Since(start)),
	)
}
