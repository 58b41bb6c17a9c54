package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	openapierrors "github.com/go-openapi/errors"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/productquery/internal/catalog"
	"github.com/kahvecikaan/productquery/internal/domain"
	"github.com/kahvecikaan/productquery/internal/query"
	"github.com/kahvecikaan/productquery/internal/repository"
)

// CatalogPage is the page envelope served by the catalog
type CatalogPage struct {
	Products   domain.Products `json:"products"`
	Pagination Pagination      `json:"pagination"`
}

// Pagination describes where a catalog page sits in the result set
type Pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
	// NextPage is null on the last page
	NextPage *int `json:"next_page"`
}

// CatalogHandler serves the product catalog that the query API pages
// through
type CatalogHandler struct {
	repo   repository.CatalogRepository
	logger hclog.Logger
}

func NewCatalogHandler(repo repository.CatalogRepository, log hclog.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo:   repo,
		logger: log,
	}
}

// ListProducts handles GET /products on the catalog, returning one page
// of products in the CatalogPage envelope
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := intParam(q.Get("page"), domain.DefaultPage)
	if err != nil {
		openapierrors.ServeError(w, r, openapierrors.New(http.StatusBadRequest, "Invalid page"))
		return
	}
	limit, err := intParam(q.Get("limit"), catalog.DefaultPageSize)
	if err != nil {
		openapierrors.ServeError(w, r, openapierrors.New(http.StatusBadRequest, "Invalid limit"))
		return
	}

	lq := repository.ListQuery{Page: page, Limit: limit}
	applyFilter(&lq, q.Get("filter"))

	result, err := h.repo.List(r.Context(), lq)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidParams) {
			openapierrors.ServeError(w, r, openapierrors.New(http.StatusBadRequest, err.Error()))
			return
		}
		h.logger.Error("Error listing catalog", "error", err)
		openapierrors.ServeError(w, r, openapierrors.New(http.StatusInternalServerError, "Error listing catalog"))
		return
	}

	h.logger.Debug("Serving catalog page",
		"page", result.CurrentPage,
		"total_pages", result.TotalPages,
		"count", len(result.Products),
		"filter", q.Get("filter"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CatalogPage{
		Products: result.Products,
		Pagination: Pagination{
			CurrentPage: result.CurrentPage,
			TotalPages:  result.TotalPages,
			TotalItems:  result.TotalItems,
			NextPage:    result.NextPage,
		},
	})
}

// GetProduct handles GET /products/{id} on the catalog
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		openapierrors.ServeError(w, r, openapierrors.New(http.StatusBadRequest, "Invalid product ID"))
		return
	}

	product, err := h.repo.GetById(r.Context(), id)
	if err != nil {
		openapierrors.ServeError(w, r, toAPIError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// applyFilter reads the canonical filter tokens the query API sends. Any
// token other than "available" is taken as a product type.
func applyFilter(lq *repository.ListQuery, filter string) {
	for _, term := range strings.Split(filter, ",") {
		term = strings.TrimSpace(strings.ToLower(term))
		switch term {
		case "":
		case string(query.TokenAvailable):
			lq.AvailableOnly = true
		default:
			lq.Types = append(lq.Types, term)
		}
	}
}
