package catalog

import "errors"

// Sentinel errors for the catalog service layer.
var (
	// ErrInvalidID means the requested product id failed validation;
	// no upstream call was made.
	ErrInvalidID = errors.New("invalid product id")
	// ErrNotFound means the upstream has no matching ITEM. Also returned
	// when an object exists but is not an ITEM.
	ErrNotFound = errors.New("product not found")
)
