// Command catalog serves a seeded in-memory product catalog with the page
// envelope the query API consumes. It stands in for the real catalog
// during development.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/productquery/internal/repository"
	httpTransport "github.com/kahvecikaan/productquery/internal/transport/http"
	"github.com/nicholasjackson/env"
)

var (
	bindAddress = env.String("BIND_ADDRESS", false,
		":9091", "Bind address for the catalog")
	logLevel = env.String("LOG_LEVEL", false,
		"info", "Log output level for the catalog [trace, debug, info, warn, error]")
	seedCount = env.Int("CATALOG_SEED", false,
		42, "Number of products to seed the catalog with")
)

func main() {
	if err := env.Parse(); err != nil {
		hclog.Default().Error("Unable to parse environment", "error", err)
		os.Exit(1)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "catalog",
		Level: hclog.LevelFromString(*logLevel),
	})

	n := *seedCount
	if n < 0 {
		logger.Error("CATALOG_SEED must not be negative", "value", n)
		os.Exit(1)
	}

	repo := repository.NewMemoryCatalogRepository(repository.SeedProducts(n))
	ch := httpTransport.NewCatalogHandler(repo, logger.Named("catalog-handler"))

	server := &http.Server{
		Addr:         *bindAddress,
		Handler:      httpTransport.NewCatalogRouter(ch, logger),
		ErrorLog:     logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting catalog", "bind_address", *bindAddress, "products", n)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Error starting catalog", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutting down catalog")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Error shutting down catalog", "error", err)
	}
}
