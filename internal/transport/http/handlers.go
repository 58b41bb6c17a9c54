package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	openapierrors "github.com/go-openapi/errors"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/productquery/internal/domain"
	"github.com/kahvecikaan/productquery/internal/service"
)

type ProductHandler struct {
	productService service.ProductService
	logger         hclog.Logger
}

func NewProductHandler(ps service.ProductService, log hclog.Logger) *ProductHandler {
	return &ProductHandler{
		productService: ps,
		logger:         log,
	}
}

// GetProducts handles GET /products
//
// swagger:route GET /products products listProducts
//
// Returns the catalog products matching the filter, sorted.
//
// Responses:
//
//	200: productsResponse
//	422: validationErrorResponse
//	502: errorResponse
//	500: errorResponse
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	h.fetchProducts(w, r)
}

// InvokeFetchTool handles POST /tools/fetch_products
//
// swagger:route POST /tools/fetch_products tools fetchProductsTool
//
// Runs the fetch_products tool. The body carries the tool parameters,
// page defaults to 1.
//
// Responses:
//
//	200: productsResponse
//	422: validationErrorResponse
//	502: errorResponse
//	500: errorResponse
func (h *ProductHandler) InvokeFetchTool(w http.ResponseWriter, r *http.Request) {
	h.fetchProducts(w, r)
}

func (h *ProductHandler) fetchProducts(w http.ResponseWriter, r *http.Request) {
	// Retrieve the validated parameters from the context
	params, ok := r.Context().Value(ContextKeyParams).(*domain.QueryParams)
	if !ok {
		openapierrors.ServeError(w, r, openapierrors.New(http.StatusBadRequest, "Invalid query parameters"))
		return
	}

	products, err := h.productService.FetchProducts(r.Context(), *params)
	if err != nil {
		h.logger.Error("Error fetching products", "page", params.Page, "error", err)
		openapierrors.ServeError(w, r, toAPIError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

// toAPIError maps service errors to HTTP errors
func toAPIError(err error) openapierrors.Error {
	switch {
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return openapierrors.New(http.StatusBadGateway, "Product catalog is unavailable")
	case errors.Is(err, domain.ErrInvalidParams):
		return openapierrors.New(http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		return openapierrors.New(http.StatusNotFound, "Product not found")
	case errors.Is(err, context.DeadlineExceeded):
		return openapierrors.New(http.StatusGatewayTimeout, "Request timed out")
	default:
		return openapierrors.New(http.StatusInternalServerError, "Error fetching products")
	}
}
