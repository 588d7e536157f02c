package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/luma/gallery/internal/api"
	"github.com/luma/gallery/internal/infrastructure/db/filestore"
	mongostore "github.com/luma/gallery/internal/infrastructure/db/mongo"
	"github.com/luma/gallery/internal/pkg/config"
	"github.com/luma/gallery/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "luma-server",
	})

	ctx := context.Background()
	repos, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Driver).Msg("failed to open record store")
	}
	defer closeStore()

	e := api.NewRouter(repos, api.Options{BodyLimit: cfg.BodyLimit}, log)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("data", repos.Store.Location()).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (api.Repositories, func(), error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return api.Repositories{}, nil, err
		}
		store, err := mongostore.NewStore(ctx, db)
		if err != nil {
			_ = client.Disconnect(ctx)
			return api.Repositories{}, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		}
		return api.Repositories{Store: store, Users: store.Users(), Artworks: store.Artworks()}, closeFn, nil

	default:
		store, err := filestore.Open(cfg.DataDir, log)
		if err != nil {
			return api.Repositories{}, nil, err
		}
		return api.Repositories{Store: store, Users: store.Users(), Artworks: store.Artworks()}, func() {}, nil
	}
}
