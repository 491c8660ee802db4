package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/hello-api/internal/domain/model"
	"github.com/shopspring/decimal"
)

// DefaultProducts is the compiled-in catalog, in serving order.
func DefaultProducts() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Laptop", Price: decimal.RequireFromString("25000.00")},
		{ID: 2, Name: "Mouse", Price: decimal.RequireFromString("500.00")},
		{ID: 3, Name: "Keyboard", Price: decimal.RequireFromString("1200.00")},
	}
}

// StaticCatalog is an immutable, ordered Store. It is safe for concurrent use
// because nothing mutates it after construction.
type StaticCatalog struct {
	products []model.Product
}

// NewStaticCatalog builds a catalog from products, keeping their order.
// With no products it serves DefaultProducts.
func NewStaticCatalog(products ...model.Product) (*StaticCatalog, error) {
	if len(products) == 0 {
		products = DefaultProducts()
	}

	seen := make(map[int64]struct{}, len(products))
	items := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w: id %d has no name", ErrInvalidItem, p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("%w: id %d has negative price", ErrInvalidItem, p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = struct{}{}
		items = append(items, p)
	}
	return &StaticCatalog{products: items}, nil
}

// All returns a copy of the catalog in order.
func (c *StaticCatalog) All(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

// Count returns the number of products.
func (c *StaticCatalog) Count(_ context.Context) int {
	return len(c.products)
}

// MustDefaultCatalog returns a catalog over DefaultProducts.
func MustDefaultCatalog() *StaticCatalog {
	c, err := NewStaticCatalog()
	if err != nil {
		panic(err)
	}
	return c
}
