package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-openapi/swag"
	"github.com/kahvecikaan/productquery/internal/domain"
)

// MaxLimit caps the page size a caller may ask for
const MaxLimit = 100

// ListQuery selects one page of the catalog
type ListQuery struct {
	Page  int
	Limit int
	// Types keeps products whose type matches any entry, case-insensitive
	Types []string
	// AvailableOnly keeps products that can be ordered
	AvailableOnly bool
}

// ListResult is one page of the catalog
type ListResult struct {
	Products    domain.Products
	CurrentPage int
	TotalPages  int
	TotalItems  int
	// NextPage is nil on the last page
	NextPage *int
}

type CatalogRepository interface {
	List(ctx context.Context, q ListQuery) (*ListResult, error)
	GetById(ctx context.Context, id int) (*domain.Product, error)
}

type memoryCatalogRepository struct {
	products domain.Products
	mutex    sync.RWMutex
}

func NewMemoryCatalogRepository(products domain.Products) CatalogRepository {
	return &memoryCatalogRepository{products: products}
}

func (r *memoryCatalogRepository) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	if q.Page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1", domain.ErrInvalidParams)
	}
	if q.Limit < 1 || q.Limit > MaxLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidParams, MaxLimit)
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	matching := domain.Products{}
	for _, p := range r.products {
		if q.AvailableOnly && !p.Available {
			continue
		}
		if len(q.Types) > 0 && !matchesType(p, q.Types) {
			continue
		}
		matching = append(matching, p)
	}

	total := len(matching)
	pages := (total + q.Limit - 1) / q.Limit

	result := &ListResult{
		Products:    domain.Products{},
		CurrentPage: q.Page,
		TotalPages:  pages,
		TotalItems:  total,
	}

	start := (q.Page - 1) * q.Limit
	if start >= total {
		return result, nil
	}
	end := min(start+q.Limit, total)
	result.Products = append(result.Products, matching[start:end]...)

	if q.Page < pages {
		next := q.Page + 1
		result.NextPage = &next
	}

	return result, nil
}

func (r *memoryCatalogRepository) GetById(ctx context.Context, id int) (*domain.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, product := range r.products {
		if product.ID == id {
			return product, nil
		}
	}

	return nil, domain.ErrProductNotFound
}

func matchesType(p *domain.Product, types []string) bool {
	for _, t := range types {
		if strings.EqualFold(p.Type, t) {
			return true
		}
	}
	return false
}

var (
	seedShapes = []string{"Circle", "Triangle", "Square", "Hexagon"}
	seedColors = []struct{ name, code string }{
		{"Red", "#E53935"},
		{"Blue", "#1E88E5"},
		{"Green", "#43A047"},
		{"Yellow", "#FDD835"},
		{"Purple", "#8E24AA"},
	}
	seedEpoch = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
)

// SeedProducts generates n deterministic catalog products. Every fourth
// product is sold out, and some optional fields are left empty so the
// missing-value handling of clients gets exercised.
func SeedProducts(n int) domain.Products {
	products := make(domain.Products, 0, n)
	for i := 1; i <= n; i++ {
		shape := seedShapes[(i-1)%len(seedShapes)]
		color := seedColors[(i-1)%len(seedColors)]

		p := &domain.Product{
			ID:          i,
			Name:        fmt.Sprintf("%s %s", color.name, shape),
			Type:        shape,
			Available:   i%4 != 0,
			Color:       swag.String(strings.ToLower(color.name)),
			ColorCode:   swag.String(color.code),
			ImageURL:    swag.String(fmt.Sprintf("https://images.example.com/products/%d.png", i)),
			Description: swag.String(fmt.Sprintf("A %s %s.", strings.ToLower(color.name), strings.ToLower(shape))),
		}

		if i%5 != 0 {
			p.Price = &domain.Price{
				Value:    swag.Float64(float64(100+(i*37)%900) / 100),
				Currency: swag.String("EUR"),
			}
		}
		if i%3 != 0 {
			p.Rating = swag.Float64(float64(10+(i*7)%41) / 10)
		}
		if i%7 != 0 {
			p.ReleaseDate = swag.Int64(seedEpoch + int64(i)*86400)
		}
		if i%2 == 0 {
			p.LongDescription = swag.String(fmt.Sprintf("The %s is part of the %s collection.", p.Name, strings.ToLower(shape)))
		}

		products = append(products, p)
	}
	return products
}
