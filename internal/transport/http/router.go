package http

import (
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/productquery/internal/domain"
	websocketTransport "github.com/kahvecikaan/productquery/internal/transport/websocket"
)

// NewRouter wires the query API. corsOrigins lists the origins allowed
// to call it from a browser, an empty list allows any origin.
func NewRouter(
	ph *ProductHandler,
	validator *domain.Validation,
	logger hclog.Logger,
	wsh *websocketTransport.Handler,
	corsOrigins []string,
) http.Handler {
	router := mux.NewRouter()

	// Create a middleware instance
	mw := NewMiddleware(logger, validator)

	// Apply global middleware
	router.Use(mw.LoggingMiddleware)

	// Event stream and documentation
	router.HandleFunc("/ws", wsh.HandleWebSocket).Methods(http.MethodGet)
	registerDocs(router)

	// Query routes, parameters are validated before they reach the handler
	getRouter := router.Methods(http.MethodGet).Subrouter()
	getRouter.HandleFunc("/products", ph.GetProducts)
	getRouter.Use(mw.ContentTypeMiddleware, mw.ParamsMiddleware)

	postRouter := router.Methods(http.MethodPost).Subrouter()
	postRouter.HandleFunc("/tools/fetch_products", ph.InvokeFetchTool)
	postRouter.Use(mw.ContentTypeMiddleware, mw.ParamsMiddleware)

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(corsOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.ExposedHeaders([]string{"X-Request-ID"}),
	)

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(logger.StandardLogger(&hclog.StandardLoggerOptions{ForceLevel: hclog.Error})),
	)

	return recovery(cors(router))
}

// NewCatalogRouter wires the catalog served to the query API
func NewCatalogRouter(ch *CatalogHandler, logger hclog.Logger) *mux.Router {
	router := mux.NewRouter()

	mw := NewMiddleware(logger, nil)
	router.Use(mw.LoggingMiddleware)
	router.Use(handlers.CompressHandler)

	router.HandleFunc("/products", ch.ListProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/{id:[0-9]+}", ch.GetProduct).Methods(http.MethodGet)

	return router
}

func registerDocs(router *mux.Router) {
	// Determine the absolute path to the swagger.yaml file
	_, filename, _, _ := runtime.Caller(0)
	basePath := filepath.Dir(filename)                        // .../internal/transport/http
	rootDir := filepath.Join(basePath, "..", "..", "..")      // Navigate up to the root
	swaggerFilePath := filepath.Join(rootDir, "swagger.yaml") // .../swagger.yaml

	// Serve the swagger.yaml file
	router.HandleFunc("/swagger.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		http.ServeFile(w, r, swaggerFilePath)
	}).Methods(http.MethodGet)

	swaggerOpts := middleware.RedocOpts{SpecURL: "/swagger.yaml", Title: "Product Query API"}
	swaggerHandler := middleware.Redoc(swaggerOpts, nil)
	router.Handle("/docs", swaggerHandler).Methods(http.MethodGet)
}
