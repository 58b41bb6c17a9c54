package query

import (
	"encoding/json"
	"math"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/kahvecikaan/productquery/internal/domain"
)

// RawRecord is a single product object as delivered by the catalog, before
// any coercion. Numbers are either float64 or json.Number depending on how
// the page was decoded.
type RawRecord map[string]any

// Identity returns the integer id of the record. Records without an id or
// with a non-integer id report false.
func (r RawRecord) Identity() (int, bool) {
	v, ok := r["id"]
	if !ok {
		return 0, false
	}
	id, ok := toInt64(v)
	if !ok || id < math.MinInt || id > math.MaxInt {
		return 0, false
	}
	return int(id), true
}

// NewProduct builds a Product from a raw record, coercing optional fields
// and deriving releaseDate_iso. Fields of the wrong type are left empty,
// unknown fields are ignored. It returns false when the record has no
// usable identity.
func NewProduct(r RawRecord) (*domain.Product, bool) {
	id, ok := r.Identity()
	if !ok {
		return nil, false
	}

	p := &domain.Product{
		ID:              id,
		Name:            stringValue(r["name"]),
		Type:            stringValue(r["type"]),
		Available:       boolValue(r["available"]),
		Color:           optionalString(r["color"]),
		ImageURL:        optionalString(r["imageURL"]),
		ColorCode:       optionalString(r["colorCode"]),
		Description:     optionalString(r["description"]),
		LongDescription: optionalString(r["longDescription"]),
		Rating:          optionalFloat(r["rating"]),
		Price:           priceValue(r["price"]),
	}

	// the raw date is kept even when it has no ISO rendering
	if secs, ok := toFloat(r["releaseDate"]); ok && fitsInt64(secs) {
		p.ReleaseDate = swag.Int64(int64(secs))
		if iso, ok := isoFromEpoch(secs); ok {
			p.ReleaseDateISO = &iso
		}
	}

	return p, true
}

// isoFromEpoch converts epoch seconds to a UTC timestamp. Values outside
// the four-digit year range are rejected.
func isoFromEpoch(secs float64) (strfmt.DateTime, bool) {
	if secs < minEpoch || secs > maxEpoch {
		return strfmt.DateTime{}, false
	}
	whole, frac := math.Modf(secs)
	t := time.Unix(int64(whole), int64(frac*1e9)).UTC()
	return strfmt.DateTime(t), true
}

// fitsInt64 reports whether f truncates to an int64 without overflow.
// float64(math.MaxInt64) rounds up to 2^63, hence the strict bound.
func fitsInt64(f float64) bool {
	return f >= math.MinInt64 && f < math.MaxInt64
}

var (
	minEpoch = float64(time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix())
	maxEpoch = float64(time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix())
)

func priceValue(v any) *domain.Price {
	switch pv := v.(type) {
	case map[string]any:
		price := &domain.Price{
			Value:    optionalFloat(pv["value"]),
			Currency: optionalString(pv["currency"]),
		}
		if price.Value == nil && price.Currency == nil {
			return nil
		}
		return price
	default:
		// some catalogs send a bare number
		if f := optionalFloat(v); f != nil {
			return &domain.Price{Value: f}
		}
		return nil
	}
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func boolValue(v any) bool {
	b, _ := v.(bool)
	return b
}

func optionalString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return swag.String(s)
}

func optionalFloat(v any) *float64 {
	f, ok := toFloat(v)
	if !ok {
		return nil
	}
	return swag.Float64(f)
}

// toFloat accepts any finite JSON or Go number
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toInt64 accepts integers and integral floats
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	}

	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
