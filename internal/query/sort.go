package query

import (
	"math"
	"sort"
	"strings"

	"github.com/kahvecikaan/productquery/internal/domain"
)

// SortField identifies the key products are ordered by
type SortField int

const (
	SortByID SortField = iota
	SortByPrice
	SortByName
	SortByRating
	SortByReleaseDate
)

// Sort directions
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

var sortFieldNames = map[SortField]string{
	SortByID:          "id",
	SortByPrice:       "price",
	SortByName:        "name",
	SortByRating:      "rating",
	SortByReleaseDate: "releaseDate",
}

func (f SortField) String() string {
	return sortFieldNames[f]
}

// sortFieldSynonyms is checked in order, the first field with a matching
// synonym wins. A synonym matches when it is contained in the requested
// field name, so "price.value" or "releaseDate_iso" resolve as expected.
var sortFieldSynonyms = []struct {
	field SortField
	terms []string
}{
	{SortByPrice, []string{"price", "preis", "cost", "kosten"}},
	{SortByName, []string{"name", "title", "titel", "bezeichnung"}},
	{SortByRating, []string{"rating", "bewertung", "stars", "sterne"}},
	{SortByReleaseDate, []string{"release", "date", "datum", "erscheinung", "veröffentlich"}},
}

// SortSpec is a resolved sort directive
type SortSpec struct {
	Field      SortField
	Descending bool
}

// String renders the resolved "<field>:<order>" directive
func (s SortSpec) String() string {
	order := SortOrderAsc
	if s.Descending {
		order = SortOrderDesc
	}
	return s.Field.String() + ":" + order
}

// ResolveSort parses a directive of the form "<field>[:asc|desc]". Missing
// or unknown fields resolve to ascending id order regardless of the
// requested direction. An unknown direction is treated as ascending.
func ResolveSort(directive string) SortSpec {
	d := fold(directive)
	if d == "" {
		return SortSpec{Field: SortByID}
	}

	field, order, _ := strings.Cut(d, ":")
	field = strings.TrimSpace(field)
	order = strings.TrimSpace(order)

	f, ok := lookupSortField(field)
	if !ok {
		return SortSpec{Field: SortByID}
	}

	return SortSpec{Field: f, Descending: order == SortOrderDesc}
}

func lookupSortField(name string) (SortField, bool) {
	if name == "" {
		return SortByID, false
	}
	for _, candidate := range sortFieldSynonyms {
		for _, term := range candidate.terms {
			if strings.Contains(name, term) {
				return candidate.field, true
			}
		}
	}
	return SortByID, false
}

// Apply orders products in place. Equal keys keep their arrival order.
func (s SortSpec) Apply(products domain.Products) {
	less := s.Field.less
	if s.Descending {
		sort.SliceStable(products, func(i, j int) bool {
			return less(products[j], products[i])
		})
		return
	}
	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}

func (f SortField) less(a, b *domain.Product) bool {
	switch f {
	case SortByPrice:
		return priceKey(a) < priceKey(b)
	case SortByName:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	case SortByRating:
		return ratingKey(a) < ratingKey(b)
	case SortByReleaseDate:
		return releaseKey(a) < releaseKey(b)
	default:
		return a.ID < b.ID
	}
}

// priceKey sorts products without a usable price after every priced one
// in ascending order.
func priceKey(p *domain.Product) float64 {
	if p.Price == nil || p.Price.Value == nil || math.IsNaN(*p.Price.Value) {
		return math.Inf(1)
	}
	return *p.Price.Value
}

// ratingKey treats a missing rating as the lowest possible rating
func ratingKey(p *domain.Product) float64 {
	if p.Rating == nil || math.IsNaN(*p.Rating) {
		return math.Inf(-1)
	}
	return *p.Rating
}

func releaseKey(p *domain.Product) int64 {
	if p.ReleaseDate == nil {
		return math.MinInt64
	}
	return *p.ReleaseDate
}
