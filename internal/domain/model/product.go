// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// priceScale is the number of fraction digits written for a price.
const priceScale = 2

// Product is a catalog entry. Records are compiled in and never mutated.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// productJSON is the wire shape; price is a bare JSON number.
type productJSON struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
}

// MarshalJSON writes the price as a number with two fraction digits, e.g. 25000.00.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		ID:    p.ID,
		Name:  p.Name,
		Price: json.Number(p.Price.StringFixed(priceScale)),
	})
}
