package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mrops-br/storefront/internal/app/dto"
	"github.com/mrops-br/storefront/internal/app/service"
	"github.com/mrops-br/storefront/internal/domain"
	"github.com/mrops-br/storefront/internal/infrastructure/http/response"
)

// ProductHandler serves the read-only JSON catalog API
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := productID(r)

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			h.logger.ErrorContext(r.Context(), "Failed to get product",
				slog.String("product_id", id),
				slog.String("error", err.Error()),
			)
		}
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.ToProductRecord(product))
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.ToProductRecordList(products))
}
