// Package classification of Product Query API
//
// # Documentation for Product Query API
//
// Queries the product catalog with normalized filters, full pagination
// and local sorting.
//
// Schemes: http
// BasePath: /
// Version: 1.0.0
//
// Consumes:
// - application/json
//
// Produces:
// - application/json
//
// swagger:meta
package http

import "github.com/kahvecikaan/productquery/internal/domain"

// NOTE: Types defined here are purely for documentation purposes
// These types are not used by any of the handlers

// Error returned when a request could not be served
// swagger:response errorResponse
type errorResponseWrapper struct {
	// Description of the error
	// in: body
	Body ErrorResponse
}

// Validation errors defined as an array of strings
// swagger:response validationErrorResponse
type validationErrorResponseWrapper struct {
	// Collection of the errors
	// in: body
	Body ValidationError
}

// A list of products
// swagger:response productsResponse
type productsResponseWrapper struct {
	// The matching products, sorted
	// in: body
	Body []domain.Product
}

// swagger:parameters listProducts
type queryParamsWrapper struct {
	// Page to fetch, 0 fetches every page
	// in: query
	// minimum: 0
	// default: 1
	Page int `json:"page"`

	// Filter such as "type:Triangle", "Kreise" or "circle, available"
	// in: query
	Filter string `json:"filter"`

	// Sort directive "<field>[:asc|desc]"
	// in: query
	Sort string `json:"sort"`
}

// swagger:parameters fetchProductsTool
type toolBodyWrapper struct {
	// in: body
	// required: true
	Body struct {
		Params struct {
			Page   int    `json:"page"`
			Filter string `json:"filter"`
			Sort   string `json:"sort"`
		} `json:"params"`
	}
}

// ErrorResponse defines the structure for API error responses
//
// swagger:model
type ErrorResponse struct {
	// HTTP status of the error
	Code int32 `json:"code"`

	// The error message
	//
	// required: true
	Message string `json:"message"`
}

// ValidationError defines the structure for API validation error responses
//
// swagger:model
type ValidationError struct {
	// The validation errors
	//
	// required: true
	Messages []string `json:"messages"`
}
