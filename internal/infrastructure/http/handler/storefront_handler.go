package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/spf13/cast"

	"github.com/mrops-br/storefront/internal/app/service"
	"github.com/mrops-br/storefront/internal/domain"
	"github.com/mrops-br/storefront/internal/infrastructure/http/session"
	"github.com/mrops-br/storefront/internal/infrastructure/http/view"
)

// StorefrontHandler serves the public shop pages
type StorefrontHandler struct {
	catalog *service.CatalogService
	pages   *Pages
}

// NewStorefrontHandler creates a new storefront handler
func NewStorefrontHandler(catalog *service.CatalogService, pages *Pages) *StorefrontHandler {
	return &StorefrontHandler{
		catalog: catalog,
		pages:   pages,
	}
}

// Home handles GET /
func (h *StorefrontHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, r, http.StatusOK, view.Home, "", nil)
}

// Shop handles GET /shop
func (h *StorefrontHandler) Shop(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.pages.serverError(w, r, err)
		return
	}

	h.pages.render(w, r, http.StatusOK, view.Shop, "SHOP", view.ShopData{Products: products})
}

// ProductDetail handles GET /product/{id}. The gallery position and the size
// selection travel in the image and size query parameters.
func (h *StorefrontHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id := productID(r)

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			h.pages.notFound(w, r, "PRODUCT NOT FOUND")
		} else {
			h.pages.serverError(w, r, err)
		}
		return
	}

	current := cast.ToInt(r.URL.Query().Get("image"))
	if current < 0 || current >= len(product.Images) {
		current = 0
	}

	size := r.URL.Query().Get("size")
	if !product.HasSize(size) {
		size = ""
	}

	h.pages.render(w, r, http.StatusOK, view.Product, product.Name, view.ProductData{
		Product:      product,
		CurrentImage: current,
		SelectedSize: size,
	})
}

// AddToCart handles POST /product/{id}/cart
func (h *StorefrontHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	id := productID(r)
	size := r.PostFormValue("size")
	back := "/product/" + url.PathEscape(id)

	product, err := h.catalog.AddToCart(r.Context(), id, size)
	switch {
	case err == nil:
		description := product.Name
		if size != "" {
			description += " - Size " + size
			back += "?size=" + url.QueryEscape(size)
		}
		h.pages.notify(w, r, "ADDED TO CART", description, session.VariantDefault)
	case errors.Is(err, domain.ErrProductNotFound):
		h.pages.notFound(w, r, "PRODUCT NOT FOUND")
		return
	case errors.Is(err, domain.ErrSizeRequired):
		h.pages.notify(w, r, "SELECT SIZE", "Please select a size before adding to cart", session.VariantDestructive)
	case errors.Is(err, domain.ErrOutOfStock):
		h.pages.notify(w, r, "OUT OF STOCK", product.Name+" is currently unavailable", session.VariantDestructive)
	default:
		h.pages.serverError(w, r, err)
		return
	}

	redirect(w, r, back)
}

// NotFound renders the 404 page for unknown paths
func (h *StorefrontHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.pages.notFound(w, r, "PAGE NOT FOUND")
}
