package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dfryer1193/superheroes/internal/config"
	"github.com/dfryer1193/superheroes/internal/middleware"
	"github.com/dfryer1193/superheroes/internal/rest"
	"github.com/dfryer1193/superheroes/superhero/application"
	"github.com/dfryer1193/superheroes/superhero/persistence"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	props, err := config.ReadProperties()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read configuration")
	}
	configureLogging(props.LogLevel, props.LogFormat)

	// Initialize dependencies
	database, err := openDatabase(props.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", props.DB.Driver).Msg("Failed to connect to database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	store, err := newImageStore(context.Background(), props)
	if err != nil {
		log.Fatal().Err(err).Str("provider", props.ImageStore.Provider).Msg("Failed to create image store")
	}

	heroRepo := persistence.NewSuperheroRepository(database.DB())
	imageRepo := persistence.NewImageRepository(database.DB())

	handlers := rest.NewHandlers(
		application.NewSuperheroService(heroRepo, imageRepo, store),
		application.NewImageService(imageRepo, store),
		database,
		props.Server.MaxUploadBytes,
	)

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", props.Server.Port),
		Handler:     newRouter(props, handlers),
		ReadTimeout: props.Server.ReadTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	if err := serve(srv, quit, props.Server.ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("Server failed")
		return
	}

	log.Info().Msg("Server stopped")
}

func newRouter(props *config.Properties, handlers *rest.Handlers) *gin.Engine {
	if props.LogLevel != "debug" && props.LogLevel != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))
	router.Use(middleware.LoggingMiddleware())
	if props.FrontendURL != "" {
		router.Use(corsMiddleware(props.FrontendURL))
	}
	router.Use(middleware.ErrorHandler())
	if props.Server.Pprof {
		registerPprof(router)
	}

	rest.NewApi(router, handlers)
	return router
}

// serve runs srv until it fails or quit fires, then shuts it down within timeout.
// It returns instead of exiting so deferred cleanup in main still runs.
func serve(srv *http.Server, quit <-chan os.Signal, timeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting server on " + srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
