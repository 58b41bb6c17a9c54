package domain

// PageAll is the page sentinel asking for every page of the catalog
const PageAll = 0

// DefaultPage is used when the caller does not name a page
const DefaultPage = 1

// QueryParams are the caller inputs of a product query. They are never
// modified by the query pipeline.
//
// swagger:model
type QueryParams struct {
	// Page to fetch, 1-based. 0 fetches all pages.
	//
	// min: 0
	// example: 1
	Page int `json:"page" validate:"gte=0"`

	// Free-form filter, e.g. "type:Triangle", "Dreiecke" or "circle, available"
	//
	// example: available
	Filter string `json:"filter,omitempty" validate:"max=256"`

	// Sort directive of the shape <field>[:asc|desc]
	//
	// example: price:desc
	Sort string `json:"sort,omitempty" validate:"max=256,directive"`
}
