// Command scrub-server serves the data cleaning HTTP API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/jgrady/scrub/internal/blob"
	"github.com/jgrady/scrub/internal/config"
	"github.com/jgrady/scrub/internal/logging"
	"github.com/jgrady/scrub/internal/registry"
	"github.com/jgrady/scrub/internal/web"
)

func main() {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()

	var reg registry.Registry
	if cfg.Database.URL != "" {
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		pg := registry.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			slog.Error("failed to migrate registry", "error", err)
			os.Exit(1)
		}
		reg = pg
		slog.Info("using postgres registry")
	} else {
		reg = registry.NewMemory()
		slog.Info("no DATABASE_URL set, using in-memory registry")
	}

	blobs, err := blob.NewStore(cfg.Storage.Dir)
	if err != nil {
		slog.Error("failed to open blob store", "error", err, "dir", cfg.Storage.Dir)
		os.Exit(1)
	}

	server := web.NewServer(reg, blobs, cfg.Upload.MaxFileSize)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(cfg.Server.Addr(), cfg.Server.ReadTimeout, cfg.Server.IdleTimeout); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
