// internal/handler/product_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"autoparts-api/internal/domain"
	"autoparts-api/internal/middleware"
	"autoparts-api/internal/usecase"

	"go.uber.org/zap"
)

type ProductHandler struct {
	catalogUC *usecase.CatalogUsecase
	logger    *zap.Logger
}

func NewProductHandler(catalogUC *usecase.CatalogUsecase, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogUC: catalogUC,
		logger:    logger,
	}
}

// HandleListProducts handles GET /api/products (public).
func (h *ProductHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUC.ListProducts(r.Context())
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "error fetching products")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// HandleCreateProduct handles POST /api/products.
func (h *ProductHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "no authenticated user")
		return
	}

	var req domain.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.catalogUC.CreateProduct(r.Context(), vendorID, &req)
	if err != nil {
		h.logger.Error("failed to create product",
			zap.String("vendor_id", vendorID),
			zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "error adding product")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"id":      product.ID,
		"message": "Product added successfully",
	})
}
