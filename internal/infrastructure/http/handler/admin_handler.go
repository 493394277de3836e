package handler

import (
	"errors"
	"net/http"

	"github.com/mrops-br/storefront/internal/app/dto"
	"github.com/mrops-br/storefront/internal/app/service"
	"github.com/mrops-br/storefront/internal/domain"
	"github.com/mrops-br/storefront/internal/infrastructure/http/session"
	"github.com/mrops-br/storefront/internal/infrastructure/http/view"
)

// AdminHandler serves the admin panel: the login gate and catalog mutations
type AdminHandler struct {
	catalog  *service.CatalogService
	gate     *service.AdminGate
	sessions *session.Manager
	pages    *Pages
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(catalog *service.CatalogService, gate *service.AdminGate, sessions *session.Manager, pages *Pages) *AdminHandler {
	return &AdminHandler{
		catalog:  catalog,
		gate:     gate,
		sessions: sessions,
		pages:    pages,
	}
}

// RequireAdmin sends unauthenticated browsers back to the login page
func (h *AdminHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.sessions.IsAuthenticated(r) {
			redirect(w, r, "/admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Show handles GET /admin. Opening the panel provisions the default credential
// when none exists and discloses it once.
func (h *AdminHandler) Show(w http.ResponseWriter, r *http.Request) {
	credential, bootstrapped, err := h.gate.EnsureCredential(r.Context())
	if err != nil {
		h.pages.serverError(w, r, err)
		return
	}
	if bootstrapped {
		h.pages.notify(w, r, "ADMIN PASSWORD SET", "Your admin password is: "+credential, session.VariantDefault)
	}

	if !h.sessions.IsAuthenticated(r) {
		h.pages.render(w, r, http.StatusOK, view.AdminLogin, "ADMIN LOGIN", nil)
		return
	}

	h.renderPanel(w, r, http.StatusOK, dto.NewProductForm())
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	err := h.gate.Authenticate(r.Context(), r.PostFormValue("password"))
	if errors.Is(err, domain.ErrInvalidCredential) {
		h.pages.notify(w, r, "INCORRECT PASSWORD", "", session.VariantDestructive)
		redirect(w, r, "/admin")
		return
	}
	if err != nil {
		h.pages.serverError(w, r, err)
		return
	}

	if err := h.sessions.SetAuthenticated(w, r, true); err != nil {
		h.pages.serverError(w, r, err)
		return
	}
	h.pages.notify(w, r, "AUTHENTICATED", "", session.VariantDefault)
	redirect(w, r, "/admin")
}

// Logout handles POST /admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SetAuthenticated(w, r, false); err != nil {
		h.pages.serverError(w, r, err)
		return
	}
	redirect(w, r, "/admin")
}

// Submit handles POST /admin/products. A form carrying editing_id replaces that
// product; any other form adds a new one.
func (h *AdminHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.pages.notify(w, r, "INVALID PRODUCT", err.Error(), session.VariantDestructive)
		redirect(w, r, "/admin")
		return
	}

	form := dto.ProductFormFromValues(r.PostForm)
	if err := form.Validate(); err != nil {
		h.pages.notify(w, r, "INVALID PRODUCT", err.Error(), session.VariantDestructive)
		h.renderPanel(w, r, http.StatusUnprocessableEntity, form)
		return
	}

	_, created, err := h.catalog.SaveProduct(r.Context(), form.EditingID, form.ToProduct())
	if err != nil {
		h.pages.serverError(w, r, err)
		return
	}

	if created {
		h.pages.notify(w, r, "PRODUCT ADDED", "", session.VariantDefault)
	} else {
		h.pages.notify(w, r, "PRODUCT UPDATED", "", session.VariantDefault)
	}
	redirect(w, r, "/admin")
}

// Edit handles GET /admin/products/{id}/edit
func (h *AdminHandler) Edit(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), productID(r))
	if errors.Is(err, domain.ErrProductNotFound) {
		h.pages.notify(w, r, "PRODUCT NOT FOUND", "", session.VariantDestructive)
		redirect(w, r, "/admin")
		return
	}
	if err != nil {
		h.pages.serverError(w, r, err)
		return
	}

	h.renderPanel(w, r, http.StatusOK, dto.ProductFormFromProduct(product))
}

// Delete handles POST /admin/products/{id}/delete
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), productID(r)); err != nil {
		h.pages.serverError(w, r, err)
		return
	}

	h.pages.notify(w, r, "PRODUCT DELETED", "", session.VariantDefault)
	redirect(w, r, "/admin")
}

func (h *AdminHandler) renderPanel(w http.ResponseWriter, r *http.Request, status int, form dto.ProductForm) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.pages.serverError(w, r, err)
		return
	}

	h.pages.render(w, r, status, view.AdminPanel, "ADMIN PANEL", view.AdminData{
		Form:     form,
		Products: products,
	})
}
