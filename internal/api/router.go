package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/luma/gallery/docs"
	"github.com/luma/gallery/internal/api/handler"
	"github.com/luma/gallery/internal/api/metrics"
	"github.com/luma/gallery/internal/api/middleware"
	"github.com/luma/gallery/internal/core/ports"
	"github.com/luma/gallery/internal/core/service"
)

const defaultBodyLimit = "50M"

// Repositories is the storage backend the router serves.
type Repositories struct {
	Store    ports.Store
	Users    ports.UserRepository
	Artworks ports.ArtworkRepository
}

// Options tunes the router. Zero values fall back to defaults.
type Options struct {
	BodyLimit string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(repos Repositories, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	bodyLimit := opts.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics(errorStatus))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	// --- Dependencies ---
	ids := service.NewIDAllocator()
	userHandler := handler.NewUserHandler(service.NewUserService(repos.Users, ids, log))
	artHandler := handler.NewArtworkHandler(service.NewArtworkService(repos.Artworks, ids, log))
	healthHandler := handler.NewHealthHandler(repos.Store)

	api := e.Group("/api")

	api.GET("/users", userHandler.List)
	api.POST("/users", userHandler.Create)
	api.PUT("/users/:id", userHandler.Update)

	api.GET("/art", artHandler.List)
	api.POST("/art", artHandler.Create)
	api.DELETE("/art/:id", artHandler.Delete)

	api.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	api.GET("/health/ready", healthHandler.Readiness) // readiness – can the store take writes?

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
