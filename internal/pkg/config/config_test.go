package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "5000" || cfg.DataDir != "data" || cfg.Driver != DriverFile || cfg.BodyLimit != "50M" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Mongo.Database != "luma" {
		t.Fatalf("unexpected mongo db %q", cfg.Mongo.Database)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":         "8081",
		"STORE_DRIVER": "mongo",
		"MONGO_URI":    "mongodb://db:27017",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8081" || cfg.Driver != DriverMongo || cfg.Mongo.URI != "mongodb://db:27017" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadWith_UnknownDriver(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{"STORE_DRIVER": "sqlite"}))
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestLoadClientWith(t *testing.T) {
	cfg, err := LoadClientWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"LUMA_REQUEST_TIMEOUT": "3s",
		"LUMA_SESSION_BACKEND": "redis",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIBase != "http://localhost:5000/api" {
		t.Fatalf("unexpected api base %q", cfg.APIBase)
	}
	if cfg.RequestTimeout != 3*time.Second || cfg.SessionBackend != SessionRedis {
		t.Fatalf("overrides not applied: %+v", cfg)
	}

	if _, err := LoadClientWith(context.Background(), envconfig.MapLookuper(map[string]string{"LUMA_SESSION_BACKEND": "cookie"})); err == nil {
		t.Fatal("expected error for unknown session backend")
	}
}
