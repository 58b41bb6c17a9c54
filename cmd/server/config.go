package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/kahvecikaan/productquery/internal/catalog"
	"github.com/kahvecikaan/productquery/internal/query"
	"github.com/nicholasjackson/env"
)

// Environment variables
var (
	bindAddress = env.String("BIND_ADDRESS", false,
		":9090", "Bind address for the server")
	logLevel = env.String("LOG_LEVEL", false,
		"debug", "Log output level for the server [trace, debug, info, warn, error]")
	catalogURL = env.String("CATALOG_URL", false,
		"http://localhost:9091/products", "URL of the catalog products endpoint")
	catalogPageSize = env.Int("CATALOG_PAGE_SIZE", false,
		catalog.DefaultPageSize, "Number of products requested per catalog page")
	catalogTimeout = env.Duration("CATALOG_TIMEOUT", false,
		10*time.Second, "Timeout of a single catalog request")
	fetchMaxAttempts = env.Int("FETCH_MAX_ATTEMPTS", false,
		query.DefaultMaxAttempts, "Attempts per catalog page before giving up")
	fetchBackoff = env.Duration("FETCH_BACKOFF", false,
		query.DefaultBackoff, "Base backoff between attempts, multiplied by the attempt number")
	fetchMaxPages = env.Int("FETCH_MAX_PAGES", false,
		query.DefaultMaxPages, "Maximum number of pages requested when fetching all pages")
	writeTimeout = env.Duration("WRITE_TIMEOUT", false,
		120*time.Second, "Write timeout of the HTTP server, must cover a full fetch of all pages")
	corsOrigins = env.String("CORS_ORIGINS", false,
		"", "Comma separated origins allowed to call the API, empty allows any")
)

// config holds the checked environment
type config struct {
	pageSize       int
	catalogTimeout time.Duration
	maxAttempts    int
	backoff        time.Duration
	maxPages       int
	writeTimeout   time.Duration
	corsOrigins    []string
}

func loadConfig() (*config, error) {
	cfg := &config{
		pageSize:       *catalogPageSize,
		catalogTimeout: *catalogTimeout,
		maxAttempts:    *fetchMaxAttempts,
		backoff:        *fetchBackoff,
		maxPages:       *fetchMaxPages,
		writeTimeout:   *writeTimeout,
	}

	for name, n := range map[string]int{
		"CATALOG_PAGE_SIZE":  cfg.pageSize,
		"FETCH_MAX_ATTEMPTS": cfg.maxAttempts,
		"FETCH_MAX_PAGES":    cfg.maxPages,
	} {
		if n < 1 {
			return nil, fmt.Errorf("%s must be a positive integer, got %d", name, n)
		}
	}
	for name, d := range map[string]time.Duration{
		"CATALOG_TIMEOUT": cfg.catalogTimeout,
		"FETCH_BACKOFF":   cfg.backoff,
		"WRITE_TIMEOUT":   cfg.writeTimeout,
	} {
		if d < 0 {
			return nil, fmt.Errorf("%s must not be negative, got %s", name, d)
		}
	}

	for _, o := range strings.Split(*corsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.corsOrigins = append(cfg.corsOrigins, o)
		}
	}

	return cfg, nil
}

func (c *config) fetcherOptions() []query.FetcherOption {
	return []query.FetcherOption{
		query.WithMaxAttempts(c.maxAttempts),
		query.WithBackoff(c.backoff),
		query.WithMaxPages(c.maxPages),
	}
}
