// Package repository defines the product catalog store and errors.
package repository

import (
	"context"

	"github.com/okian/hello-api/internal/domain/model"
)

// Store provides read access to the product catalog.
type Store interface {
	// All returns every product in catalog order. Callers own the slice.
	All(ctx context.Context) ([]model.Product, error)

	// Count returns the number of products in the catalog.
	Count(ctx context.Context) int
}
