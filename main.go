package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/khairunnisaa/palmcode-api/config"
	"github.com/khairunnisaa/palmcode-api/internal/seed"
	"github.com/khairunnisaa/palmcode-api/internal/server"
	"github.com/khairunnisaa/palmcode-api/internal/service"
	"github.com/khairunnisaa/palmcode-api/pkg/cache"
	"github.com/khairunnisaa/palmcode-api/pkg/database"
	"github.com/khairunnisaa/palmcode-api/pkg/rabbitmq"
	"github.com/khairunnisaa/palmcode-api/pkg/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	seedFlag := flag.Bool("seed", false, "seed demo data into an empty database")
	flag.Parse()

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)})))

	db := database.NewPostgresDB(cfg.DSN())

	if *seedFlag || cfg.SeedOnStart {
		if err := seed.New(db).Run(context.Background()); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	disk, err := storage.NewLocalDisk(cfg.StorageRoot)
	if err != nil {
		slog.Error("failed to prepare storage", "root", cfg.StorageRoot, "error", err)
		os.Exit(1)
	}

	// Optional infrastructure. The interfaces stay nil when a backend is not
	// configured or unreachable.
	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			slog.Warn("RabbitMQ unavailable, domain events disabled", "error", err)
		} else {
			defer p.Close()
			publisher = p
		}
	}

	var tokenCache service.TokenCache
	if cfg.RedisAddr != "" {
		c, err := cache.NewTokenCache(&cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.TokenCacheTTL,
		})
		if err != nil {
			slog.Warn("Redis unavailable, token cache disabled", "error", err)
		} else {
			defer c.Close()
			tokenCache = c
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e := server.New(server.Deps{
		DB:            db,
		Disk:          disk,
		StoragePrefix: cfg.StoragePublicURL,
		Publisher:     publisher,
		TokenCache:    tokenCache,
		Registry:      reg,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Surf booking API starting", "port", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
