package api

import (
	"net/http"

	"github.com/okian/hello-api/internal/domain/model"
	"github.com/okian/hello-api/pkg/logger"
)

// ProductsHandler serves the product catalog.
type ProductsHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(deps Dependencies, log logger.Logger) *ProductsHandler {
	return &ProductsHandler{deps: deps, logger: log}
}

// HandleProducts handles GET /api/products.
func (h *ProductsHandler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.deps.Products(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "failed to list products", logger.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "catalog_unavailable", nil)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	respond(w, r, h.logger, products)
}
