package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/derob357/sisters-promise/internal/catalog"
	"github.com/derob357/sisters-promise/internal/pkg/httputil"
)

type productsResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Products []catalog.Product `json:"products"`
}

type productResponse struct {
	Success bool            `json:"success"`
	Product catalog.Product `json:"product"`
}

// ListProducts returns the storefront catalog.
//
//	GET /api/products
func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		h.respondUpstreamError(w, http.StatusInternalServerError, err,
			"failed to load products")
		return
	}
	httputil.OK(w, productsResponse{
		Success:  true,
		Count:    len(products),
		Products: products,
	})
}

// GetProduct returns a single product by catalog id.
//
//	GET /api/products/{id}
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, catalog.ErrInvalidID):
		httputil.BadRequest(w, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		httputil.NotFound(w, "product not found")
	case err != nil:
		h.respondUpstreamError(w, http.StatusInternalServerError, err,
			"failed to load product")
	default:
		httputil.OK(w, productResponse{Success: true, Product: *product})
	}
}
