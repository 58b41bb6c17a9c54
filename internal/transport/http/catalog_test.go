package http

import (
	"compress/gzip"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/productquery/internal/domain"
	"github.com/kahvecikaan/productquery/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogRouter(n int) http.Handler {
	repo := repository.NewMemoryCatalogRepository(repository.SeedProducts(n))
	return NewCatalogRouter(NewCatalogHandler(repo, hclog.NewNullLogger()), hclog.NewNullLogger())
}

func getCatalogPage(t *testing.T, h http.Handler, url string) CatalogPage {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var page CatalogPage
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&page))
	return page
}

func TestCatalogHandler_ListProducts(t *testing.T) {
	h := newCatalogRouter(25)

	t.Run("Defaults", func(t *testing.T) {
		page := getCatalogPage(t, h, "/products")
		assert.Len(t, page.Products, 10)
		assert.Equal(t, 1, page.Pagination.CurrentPage)
		assert.Equal(t, 3, page.Pagination.TotalPages)
		assert.Equal(t, 25, page.Pagination.TotalItems)
		require.NotNil(t, page.Pagination.NextPage)
		assert.Equal(t, 2, *page.Pagination.NextPage)
	})

	t.Run("LastPage", func(t *testing.T) {
		page := getCatalogPage(t, h, "/products?page=3&limit=10")
		assert.Len(t, page.Products, 5)
		assert.Nil(t, page.Pagination.NextPage)
	})

	t.Run("Filter", func(t *testing.T) {
		page := getCatalogPage(t, h, "/products?page=1&limit=100&filter=circle,available")
		require.NotEmpty(t, page.Products)
		for _, p := range page.Products {
			assert.Equal(t, "Circle", p.Type)
			assert.True(t, p.Available)
		}
	})

	t.Run("UnknownTypeMatchesNothing", func(t *testing.T) {
		page := getCatalogPage(t, h, "/products?filter=rhombus")
		assert.Empty(t, page.Products)
		assert.Nil(t, page.Pagination.NextPage)
	})
}

func TestCatalogHandler_BadRequests(t *testing.T) {
	h := newCatalogRouter(5)

	for _, url := range []string{"/products?page=0", "/products?limit=0", "/products?limit=500", "/products?page=x"} {
		t.Run(url, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))
			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.EqualValues(t, http.StatusBadRequest, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestCatalogHandler_GetProduct(t *testing.T) {
	h := newCatalogRouter(5)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/3", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var p domain.Product
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&p))
	assert.Equal(t, 3, p.ID)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/99", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCatalogRouter_Compression(t *testing.T) {
	h := newCatalogRouter(5)

	r := httptest.NewRequest(http.MethodGet, "/products", nil)
	r.Header.Set("Accept-Encoding", "gzip, deflate")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", rr.Header().Get("Vary"))

	gr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	var page CatalogPage
	require.NoError(t, json.NewDecoder(gr).Decode(&page))
	assert.Len(t, page.Products, 5)

	// plain clients get plain JSON
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products", nil))
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&page))
}
