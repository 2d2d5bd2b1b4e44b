package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/BruksfildServices01/mv-autocenter/internal/audit"
	"github.com/BruksfildServices01/mv-autocenter/internal/config"
	dbpkg "github.com/BruksfildServices01/mv-autocenter/internal/db"
	infraRepo "github.com/BruksfildServices01/mv-autocenter/internal/infra/repository"
	"github.com/BruksfildServices01/mv-autocenter/internal/logger"
	"github.com/BruksfildServices01/mv-autocenter/internal/metrics"
	"github.com/BruksfildServices01/mv-autocenter/internal/password"
	"github.com/BruksfildServices01/mv-autocenter/internal/routes"
	"github.com/BruksfildServices01/mv-autocenter/internal/session"
)

func main() {
	log := logger.SetupDefault(os.Stdout)

	if err := run(log); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg := config.Load()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ------------------------------
	// Sessões: Redis quando configurado, memória em desenvolvimento
	// ------------------------------
	var sessions session.Store = session.NewMemoryStore()
	if cfg.RedisURL != "" {
		client, err := session.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		sessions = session.NewRedisStore(client)
	} else {
		log.Warn("REDIS_URL not set, sessions are kept in memory")
	}

	auditDispatcher := audit.NewDispatcher(audit.New(log))
	defer auditDispatcher.Close()

	hasher := password.NewBcrypt(cfg.BcryptCost)

	users := infraRepo.NewUserGormRepository(db, hasher, auditDispatcher)
	if err := dbpkg.SeedDeveloper(ctx, users, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	r := gin.New()
	r.Use(gin.Recovery())

	stopWorkers, err := routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Logger:   log,
		Sessions: sessions,
		Audit:    auditDispatcher,
		Hasher:   hasher,
		Metrics:  collector,
		Gatherer: registry,
	})
	if err != nil {
		return err
	}
	defer stopWorkers()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", slog.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
