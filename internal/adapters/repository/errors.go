package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrDuplicateID = errors.New("duplicate product id")
	ErrInvalidItem = errors.New("invalid product")
)
