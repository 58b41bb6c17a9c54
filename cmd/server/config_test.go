package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setVar assigns an environment value for the duration of the test
func setVar[T any](t *testing.T, ptr *T, v T) {
	t.Helper()
	old := *ptr
	*ptr = v
	t.Cleanup(func() { *ptr = old })
}

func setValid(t *testing.T) {
	t.Helper()
	setVar(t, catalogPageSize, 10)
	setVar(t, catalogTimeout, 10*time.Second)
	setVar(t, fetchMaxAttempts, 3)
	setVar(t, fetchBackoff, 400*time.Millisecond)
	setVar(t, fetchMaxPages, 200)
	setVar(t, writeTimeout, 2*time.Minute)
	setVar(t, corsOrigins, "")
}

func TestLoadConfig(t *testing.T) {
	setValid(t)
	setVar(t, corsOrigins, "http://localhost:3000, ,https://example.com")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.pageSize)
	assert.Equal(t, 3, cfg.maxAttempts)
	assert.Equal(t, 400*time.Millisecond, cfg.backoff)
	assert.Equal(t, 200, cfg.maxPages)
	assert.Equal(t, 10*time.Second, cfg.catalogTimeout)
	assert.Equal(t, 2*time.Minute, cfg.writeTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.corsOrigins)
	assert.Len(t, cfg.fetcherOptions(), 3)
}

func TestLoadConfig_ZeroBackoffAllowed(t *testing.T) {
	setValid(t)
	setVar(t, fetchBackoff, time.Duration(0))

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Zero(t, cfg.backoff)
	assert.Empty(t, cfg.corsOrigins)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		set     func(t *testing.T)
		wantErr string
	}{
		{"zero attempts", func(t *testing.T) { setVar(t, fetchMaxAttempts, 0) }, "FETCH_MAX_ATTEMPTS"},
		{"negative page size", func(t *testing.T) { setVar(t, catalogPageSize, -5) }, "CATALOG_PAGE_SIZE"},
		{"zero max pages", func(t *testing.T) { setVar(t, fetchMaxPages, 0) }, "FETCH_MAX_PAGES"},
		{"negative backoff", func(t *testing.T) { setVar(t, fetchBackoff, -time.Second) }, "FETCH_BACKOFF"},
		{"negative timeout", func(t *testing.T) { setVar(t, catalogTimeout, -time.Second) }, "CATALOG_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setValid(t)
			tt.set(t)

			_, err := loadConfig()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
