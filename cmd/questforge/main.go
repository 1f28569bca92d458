// Package main is the entry point for the QuestForge battle server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/questforge/internal/api"
	"github.com/samdwyer/questforge/internal/config"
	"github.com/samdwyer/questforge/internal/game"
	"github.com/samdwyer/questforge/internal/gamedata"
	"github.com/samdwyer/questforge/internal/logger"
	"github.com/samdwyer/questforge/internal/storage"
	"github.com/samdwyer/questforge/internal/telemetry"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		fmt.Fprintf(os.Stderr, "Note: .env file not loaded: %v\n", err)
	}

	logger.Init()
	log := logger.Component("main")

	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.WithError(err).Warn("telemetry setup failed, running without tracing")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.WithError(err).Error("error shutting down telemetry")
			}
		}()
	}

	if err := run(ctx); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(ctx context.Context) error {
	log := logger.Component("main")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	content, err := catalogSource(cfg.ContentDir)
	if err != nil {
		return err
	}

	db, err := storage.OpenAndMigrate(cfg.DBPath)
	if err != nil {
		return err
	}
	players, err := storage.DefaultPlayers()
	if err != nil {
		return err
	}
	if err := storage.SeedPlayers(ctx, db, players); err != nil {
		return fmt.Errorf("seed players: %w", err)
	}
	repo := storage.NewSQLiteRepository(db)

	svc := game.NewService(repo, content, game.Config{Seed: cfg.Seed, MaxRounds: cfg.MaxRounds})
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(api.NewHandler(svc, repo)),
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.WithField("addr", cfg.Addr).Info("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

// catalogSource serves the embedded content tables unless dir is set.
func catalogSource(dir string) (game.CatalogSource, error) {
	if dir != "" {
		src := gamedata.NewDirSource(dir)
		// Fail fast on a broken directory; later edits are picked up per battle.
		if _, err := src.Catalog(context.Background()); err != nil {
			return nil, fmt.Errorf("load content from %s: %w", dir, err)
		}
		return src, nil
	}
	catalog, err := gamedata.LoadEmbeddedCatalog()
	if err != nil {
		return nil, err
	}
	return gamedata.NewStaticSource(catalog), nil
}

// setupOTelEnv derives OTEL_* variables from our own settings.
func setupOTelEnv() {
	if endpoint := os.Getenv("QUESTFORGE_OTLP_ENDPOINT"); endpoint != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", endpoint)
	}
	if headers := os.Getenv("QUESTFORGE_OTLP_HEADERS"); headers != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS", headers)
	}
}
