package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/hello-api/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductMarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		product model.Product
		want    string
	}{
		{
			name:    "whole amount",
			product: model.Product{ID: 1, Name: "Laptop", Price: decimal.RequireFromString("25000.00")},
			want:    `{"id":1,"name":"Laptop","price":25000.00}`,
		},
		{
			name:    "padded scale",
			product: model.Product{ID: 2, Name: "Mouse", Price: decimal.NewFromInt(500)},
			want:    `{"id":2,"name":"Mouse","price":500.00}`,
		},
		{
			name:    "rounded scale",
			product: model.Product{ID: 9, Name: "Cable", Price: decimal.RequireFromString("9.999")},
			want:    `{"id":9,"name":"Cable","price":10.00}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.product)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestProductDecodesFromWire(t *testing.T) {
	var p model.Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"name":"Keyboard","price":1200.00}`), &p))

	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, "Keyboard", p.Name)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(1200)))
}
