package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rajeshwar-203/fitness-ai-backend/config"
	"github.com/Rajeshwar-203/fitness-ai-backend/logger"
	"github.com/Rajeshwar-203/fitness-ai-backend/metrics"
	"github.com/Rajeshwar-203/fitness-ai-backend/middlewares"
	"github.com/Rajeshwar-203/fitness-ai-backend/routes"
	"github.com/Rajeshwar-203/fitness-ai-backend/services"
	"github.com/Rajeshwar-203/fitness-ai-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fitness-ai-backend: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("FITNESS_CONFIG_FILE"))
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.App.Debug,
	})
	defer func() { _ = log.Sync() }()

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Warn("failed to close store", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	gen, err := services.NewTextGenerator(cfg.AI)
	if err != nil {
		return err
	}
	if !gen.Configured() {
		log.Warn("AI provider is not configured; AI plan routes will answer 503", zap.String("provider", cfg.AI.Provider))
	}

	history := services.NewHistoryService(st, log)
	router := routes.SetupRouter(routes.Deps{
		Middleware: middlewares.New(log, m, cfg.App.Debug),
		Metrics:    m,
		Auth:       services.NewAuthService(st, cfg.Auth, m, log),
		AIPlans:    services.NewAIPlanService(gen, history, m, log),
		History:    history,
		Progress:   services.NewProgressService(st, log),
		DB:         st,
		AIEnabled:  gen.Configured(),
	})

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (store.Store, error) {
	if cfg.Driver == "mongo" {
		ms, err := store.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := ms.EnsureIndexes(ctx); err != nil {
			_ = ms.Close(ctx)
			return nil, err
		}
		log.Info("database connected", zap.String("driver", "mongo"), zap.String("database", cfg.MongoDatabase))
		return ms, nil
	}

	db, err := config.OpenDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	gs := store.NewGormStore(db)
	if cfg.AutoMigrate {
		if err := gs.AutoMigrate(); err != nil {
			return nil, err
		}
	}
	return gs, nil
}
