// Package model defines the shared data types exchanged between the
// session store, the REST client and the catalog view model, plus the
// sentinel errors for local input validation.
package model

import "errors"

// Validation sentinels returned by SweetInput.Validate and the quantity
// prechecks in the catalog. Server-side rejections are separate and are
// surfaced verbatim by the API client.
var (
	ErrNameRequired        = errors.New("name is required")
	ErrCategoryRequired    = errors.New("category is required")
	ErrNegativePrice       = errors.New("price must not be negative")
	ErrNegativeQuantity    = errors.New("quantity must not be negative")
	ErrQuantityNotPositive = errors.New("quantity must be positive")
)
