package domain

import "errors"

// Domain-level errors
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrInvalidParams       = errors.New("invalid query parameters")
	ErrUpstreamUnavailable = errors.New("catalog upstream unavailable")
)
