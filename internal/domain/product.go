package domain

import "github.com/go-openapi/strfmt"

// Product represents a catalog item as returned to the caller
//
// swagger:model
type Product struct {
	// The identity of the product, unique within a result set
	//
	// required: true
	// example: 7
	ID int `json:"id"`

	// The name of the product
	//
	// required: true
	// example: Blue Triangle
	Name string `json:"name"`

	// The shape category of the product
	//
	// required: true
	// example: Triangle
	Type string `json:"type"`

	// Whether the product can currently be ordered
	//
	// required: true
	Available bool `json:"available"`

	Color     *string `json:"color,omitempty"`
	ImageURL  *string `json:"imageURL,omitempty"`
	ColorCode *string `json:"colorCode,omitempty"`

	// Release date in epoch seconds
	//
	// example: 1700000000
	ReleaseDate *int64 `json:"releaseDate,omitempty"`

	// Release date derived locally from releaseDate, always UTC
	ReleaseDateISO *strfmt.DateTime `json:"releaseDate_iso,omitempty"`

	Description     *string  `json:"description,omitempty"`
	LongDescription *string  `json:"longDescription,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	Price           *Price   `json:"price,omitempty"`
}

// Price is the nested price of a product
//
// swagger:model
type Price struct {
	// example: 12.5
	Value *float64 `json:"value,omitempty"`

	// example: EUR
	Currency *string `json:"currency,omitempty"`
}

// Products is a collection of Product
type Products []*Product
