package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/productquery/internal/catalog"
	"github.com/kahvecikaan/productquery/internal/domain"
	"github.com/kahvecikaan/productquery/internal/events"
	"github.com/kahvecikaan/productquery/internal/service"
	httpTransport "github.com/kahvecikaan/productquery/internal/transport/http"
	websocketTransport "github.com/kahvecikaan/productquery/internal/transport/websocket"
	"github.com/nicholasjackson/env"
)

func main() {
	if err := env.Parse(); err != nil {
		hclog.Default().Error("Unable to parse environment", "error", err)
		os.Exit(1)
	}

	// Initialize the logger
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "product-query",
		Level: hclog.LevelFromString(*logLevel),
	})

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Create a standard logger for the HTTP server
	standardLogger := logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true})

	// Query diagnostics are published here and streamed over /ws
	eventBus := events.NewEventBus[any]()

	catalogClient := catalog.NewClient(
		*catalogURL,
		cfg.pageSize,
		cfg.catalogTimeout,
		logger.Named("catalog-client"),
	)

	ps := service.NewProductService(
		catalogClient,
		eventBus,
		logger.Named("product-service"),
		cfg.fetcherOptions()...,
	)

	// Initialize the validator
	validator := domain.NewValidation()

	// Initialize HTTP handlers
	ph := httpTransport.NewProductHandler(ps, logger.Named("http-handler"))

	// Initialize the WebSocket handler with the event bus
	wh := websocketTransport.NewHandler(
		logger.Named("websocket-handler"),
		eventBus,
	)

	// Initialize the router
	router := httpTransport.NewRouter(ph, validator, logger, wh, cfg.corsOrigins)

	// Create the HTTP Server
	server := &http.Server{
		Addr:         *bindAddress,
		Handler:      router,
		ErrorLog:     standardLogger,
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.writeTimeout,
	}

	// Start the server in a new goroutine
	go func() {
		logger.Info("Starting server",
			"bind_address", *bindAddress,
			"catalog_url", *catalogURL,
			"max_attempts", cfg.maxAttempts,
			"backoff", cfg.backoff,
			"max_pages", cfg.maxPages)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Error starting server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutting down server", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server", "error", err)
	}
}
