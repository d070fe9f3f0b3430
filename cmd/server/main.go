package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyquiz/internal/api"
	"studyquiz/internal/api/handlers"
	"studyquiz/internal/config"
	"studyquiz/internal/gemini"
	"studyquiz/internal/logger"
	"studyquiz/internal/materials"
	"studyquiz/internal/observability"
	"studyquiz/internal/r2"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	logr, err := logger.New(cfg.Production())
	if err != nil {
		log.Fatalf("FATAL: failed to build logger: %v", err)
	}
	defer logr.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := observability.InitTracing(ctx, cfg.Tracing, cfg.Env, logr)

	store, err := newMaterialsStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to initialize materials store", "error", err)
	}

	geminiClient := gemini.NewClient(ctx, cfg.GeminiAPIKey, logr)
	defer geminiClient.Close()

	handler := handlers.NewHandler(cfg, geminiClient, store, logr)
	router := api.NewRouter(cfg, handler, logr)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logr.Info("server listening", "port", cfg.Port, "model", cfg.GeminiModel)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logr.Info("shutting down server")

		// Give server 5 seconds to shut down gracefully
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return shutdownTracing(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logr.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	logr.Info("server exited properly")
}

// newMaterialsStore picks R2 when it is configured and the local directory
// otherwise. The local directory is created if absent.
func newMaterialsStore(ctx context.Context, cfg *config.Config, logr *logger.Logger) (materials.Store, error) {
	if cfg.R2.Enabled() {
		return r2.NewStore(ctx, cfg.R2, logr)
	}
	store := materials.NewDirStore(cfg.MaterialsDir)
	if err := store.EnsureDir(); err != nil {
		return nil, err
	}
	logr.Info("serving study materials from local directory", "dir", store.Dir())
	return store, nil
}
