package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/productquery/internal/domain"
)

type contextKey string

// ContextKeyParams holds the validated *domain.QueryParams of a request
const ContextKeyParams contextKey = "query-params"

// Middleware struct holds dependencies for middleware functions
type Middleware struct {
	Logger    hclog.Logger
	Validator *domain.Validation
}

// NewMiddleware creates a new Middleware instance
func NewMiddleware(logger hclog.Logger, validator *domain.Validation) *Middleware {
	return &Middleware{
		Logger:    logger,
		Validator: validator,
	}
}

// ContentTypeMiddleware sets the Content-Type header to application/json
func (m *Middleware) ContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware logs the incoming requests and responses
func (m *Middleware) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		m.Logger.Info("Incoming request",
			"method", r.Method,
			"url", r.URL.Path,
			"request_id", requestID,
		)

		// Add the request ID to the response header
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r)

		m.Logger.Info("Completed request",
			"method", r.Method,
			"url", r.URL.Path,
			"request_id", requestID,
			"duration", time.Since(start),
		)
	})
}

// toolRequest is the body of a tool invocation. Absent fields take the
// tool defaults, in particular page 1.
type toolRequest struct {
	Params *struct {
		Page   *int    `json:"page"`
		Filter *string `json:"filter"`
		Sort   *string `json:"sort"`
	} `json:"params"`
}

// ParamsMiddleware reads the query parameters from the URL (GET) or the
// tool invocation body (POST), validates them and adds them to the context
func (m *Middleware) ParamsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := &domain.QueryParams{Page: domain.DefaultPage}

		switch r.Method {
		case http.MethodPost:
			var body toolRequest
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				m.Logger.Error("Error decoding tool request", "error", err)
				writeValidationErrors(w, []string{"Invalid tool request body"})
				return
			}
			if body.Params != nil {
				if body.Params.Page != nil {
					params.Page = *body.Params.Page
				}
				if body.Params.Filter != nil {
					params.Filter = *body.Params.Filter
				}
				if body.Params.Sort != nil {
					params.Sort = *body.Params.Sort
				}
			}
		default:
			q := r.URL.Query()
			if raw := q.Get("page"); raw != "" {
				page, err := strconv.Atoi(raw)
				if err != nil {
					writeValidationErrors(w, []string{"Field 'Page': must be an integer"})
					return
				}
				params.Page = page
			}
			params.Filter = q.Get("filter")
			params.Sort = q.Get("sort")
		}

		if errs := m.Validator.Validate(params); len(errs) > 0 {
			m.Logger.Error("Validation errors", "errors", errs.Errors())
			writeValidationErrors(w, errs.Errors())
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyParams, params)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeValidationErrors(w http.ResponseWriter, messages []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(ValidationError{Messages: messages})
}
