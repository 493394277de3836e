package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mrops-br/storefront/internal/app/dto"
	"github.com/mrops-br/storefront/internal/domain"
	"github.com/mrops-br/storefront/internal/infrastructure/http/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names
const (
	Home        = "home"
	Shop        = "shop"
	Product     = "product"
	AdminLogin  = "admin_login"
	AdminPanel  = "admin_panel"
	NotFound    = "not_found"
	ServerError = "error"
)

var pages = []string{Home, Shop, Product, AdminLogin, AdminPanel, NotFound, ServerError}

// Page is the data every template receives
type Page struct {
	Title   string
	Notices []session.Notice
	Data    any
}

// ShopData feeds the product listing
type ShopData struct {
	Products []domain.Product
}

// ProductData feeds the product detail page
type ProductData struct {
	Product      domain.Product
	CurrentImage int
	SelectedSize string
}

// Image is the image currently shown in the gallery
func (d ProductData) Image() string {
	return d.Product.Image(d.CurrentImage)
}

// AdminData feeds the admin panel
type AdminData struct {
	Form     dto.ProductForm
	Products []domain.Product
}

// MessageData feeds the not found and error pages
type MessageData struct {
	Heading string
	Message string
}

var funcs = template.FuncMap{
	"price": func(p float64) string {
		return strconv.FormatFloat(p, 'f', -1, 64)
	},
	"imageAt": func(p domain.Product, i int) string {
		return p.Image(i)
	},
	// product IDs are opaque and may hold '/', '?' or '#'
	"pathEscape": url.PathEscape,
}

// Renderer renders the embedded HTML templates
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout
func NewRenderer() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = t
	}
	return &Renderer{templates: templates}, nil
}

// Render executes the named page into a buffer and writes it with status.
// Nothing is written when execution fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
