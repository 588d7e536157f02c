package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/luma/gallery/internal/client/app"
	"github.com/luma/gallery/internal/client/cli"
	"github.com/luma/gallery/internal/client/gateway"
	"github.com/luma/gallery/internal/client/session"
	"github.com/luma/gallery/internal/infrastructure/db/redis"
	"github.com/luma/gallery/internal/pkg/config"
	"github.com/luma/gallery/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadClient()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var backend session.Backend
	switch cfg.SessionBackend {
	case config.SessionRedis:
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		store := redis.NewSessionStore(client, "", session.Key)
		defer store.Close()
		backend = session.NewRedisBackend(store)
	default:
		backend = session.NewFileBackend(cfg.SessionFile)
	}

	a := app.New(
		gateway.New(cfg.APIBase, cfg.RequestTimeout, log),
		session.NewStore(backend, log),
		log,
	)

	fmt.Println("LUMA ULTIMATE  type help for commands")
	if err := cli.NewShell(a, os.Stdin, os.Stdout).Run(ctx); err != nil {
		log.Error().Err(err).Msg("input error")
		os.Exit(1)
	}
}
