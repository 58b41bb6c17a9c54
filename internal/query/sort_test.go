package query

import (
	"testing"

	"github.com/go-openapi/swag"
	"github.com/kahvecikaan/productquery/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveSort(t *testing.T) {
	tests := []struct {
		directive string
		want      SortSpec
	}{
		{"", SortSpec{Field: SortByID}},
		{"   ", SortSpec{Field: SortByID}},
		{"price", SortSpec{Field: SortByPrice}},
		{"price:asc", SortSpec{Field: SortByPrice}},
		{"price:desc", SortSpec{Field: SortByPrice, Descending: true}},
		{"  PRICE : DESC ", SortSpec{Field: SortByPrice, Descending: true}},
		{"Preis:desc", SortSpec{Field: SortByPrice, Descending: true}},
		{"price.value:desc", SortSpec{Field: SortByPrice, Descending: true}},
		{"name", SortSpec{Field: SortByName}},
		{"Titel:desc", SortSpec{Field: SortByName, Descending: true}},
		{"rating:desc", SortSpec{Field: SortByRating, Descending: true}},
		{"Bewertung", SortSpec{Field: SortByRating}},
		{"releaseDate:desc", SortSpec{Field: SortByReleaseDate, Descending: true}},
		{"releaseDate_iso", SortSpec{Field: SortByReleaseDate}},
		{"Erscheinungsdatum:asc", SortSpec{Field: SortByReleaseDate}},
		{"price:sideways", SortSpec{Field: SortByPrice}},
		{"weight:desc", SortSpec{Field: SortByID}},
		{"id:desc", SortSpec{Field: SortByID}},
		{":desc", SortSpec{Field: SortByID}},
	}

	for _, tt := range tests {
		t.Run(tt.directive, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSort(tt.directive))
		})
	}
}

func TestSortSpec_String(t *testing.T) {
	assert.Equal(t, "price:desc", ResolveSort("Preis:desc").String())
	assert.Equal(t, "id:asc", ResolveSort("bogus:desc").String())
}

func priced(id int, price *float64) *domain.Product {
	p := &domain.Product{ID: id}
	if price != nil {
		p.Price = &domain.Price{Value: price}
	}
	return p
}

func rated(id int, rating *float64) *domain.Product {
	return &domain.Product{ID: id, Rating: rating}
}

func ids(products domain.Products) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestSortSpec_Apply(t *testing.T) {
	t.Run("PriceAscMissingLast", func(t *testing.T) {
		products := domain.Products{
			priced(1, nil),
			priced(2, swag.Float64(5)),
			{ID: 3, Price: &domain.Price{Currency: swag.String("EUR")}},
			priced(4, swag.Float64(1)),
		}
		ResolveSort("price:asc").Apply(products)
		assert.Equal(t, []int{4, 2, 1, 3}, ids(products))
	})

	t.Run("PriceDescMissingFirst", func(t *testing.T) {
		products := domain.Products{
			priced(1, swag.Float64(1)),
			priced(2, nil),
			priced(3, swag.Float64(5)),
		}
		ResolveSort("price:desc").Apply(products)
		assert.Equal(t, []int{2, 3, 1}, ids(products))
	})

	t.Run("RatingDescMissingLast", func(t *testing.T) {
		products := domain.Products{
			rated(1, nil),
			rated(2, swag.Float64(3.5)),
			rated(3, swag.Float64(4.9)),
			rated(4, nil),
			rated(5, swag.Float64(0)),
		}
		ResolveSort("rating:desc").Apply(products)
		assert.Equal(t, []int{3, 2, 5, 1, 4}, ids(products))
	})

	t.Run("RatingAscMissingFirst", func(t *testing.T) {
		products := domain.Products{
			rated(1, swag.Float64(2)),
			rated(2, nil),
		}
		ResolveSort("rating").Apply(products)
		assert.Equal(t, []int{2, 1}, ids(products))
	})

	t.Run("ReleaseDateMissingLowest", func(t *testing.T) {
		products := domain.Products{
			{ID: 1, ReleaseDate: swag.Int64(200)},
			{ID: 2},
			{ID: 3, ReleaseDate: swag.Int64(100)},
		}
		ResolveSort("releaseDate:desc").Apply(products)
		assert.Equal(t, []int{1, 3, 2}, ids(products))
	})

	t.Run("NameIsCaseInsensitive", func(t *testing.T) {
		products := domain.Products{
			{ID: 1, Name: "banana"},
			{ID: 2, Name: "Apple"},
			{ID: 3, Name: "cherry"},
		}
		ResolveSort("name").Apply(products)
		assert.Equal(t, []int{2, 1, 3}, ids(products))
	})

	t.Run("StableAmongEqualKeys", func(t *testing.T) {
		products := domain.Products{
			priced(5, swag.Float64(2)),
			priced(3, swag.Float64(1)),
			priced(9, swag.Float64(2)),
			priced(1, swag.Float64(2)),
		}
		ResolveSort("price:asc").Apply(products)
		assert.Equal(t, []int{3, 5, 9, 1}, ids(products))

		products = domain.Products{
			priced(5, swag.Float64(2)),
			priced(3, swag.Float64(1)),
			priced(9, swag.Float64(2)),
		}
		ResolveSort("price:desc").Apply(products)
		assert.Equal(t, []int{5, 9, 3}, ids(products))
	})

	t.Run("UnknownFieldSortsByIDAscending", func(t *testing.T) {
		products := domain.Products{{ID: 3}, {ID: 1}, {ID: 2}}
		ResolveSort("weight:desc").Apply(products)
		assert.Equal(t, []int{1, 2, 3}, ids(products))
	})
}
