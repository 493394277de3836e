package dto

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/mrops-br/storefront/internal/domain"
)

// ProductForm holds the raw admin form fields
type ProductForm struct {
	EditingID   string
	Name        string
	Price       string
	Category    string
	Sizes       string
	Images      string
	Description string
	InStock     bool
}

// NewProductForm returns the empty form shown when no edit is in progress
func NewProductForm() ProductForm {
	return ProductForm{InStock: true}
}

// ProductFormFromValues reads a submitted admin form
func ProductFormFromValues(values url.Values) ProductForm {
	return ProductForm{
		EditingID:   strings.TrimSpace(values.Get("editing_id")),
		Name:        values.Get("name"),
		Price:       values.Get("price"),
		Category:    values.Get("category"),
		Sizes:       values.Get("sizes"),
		Images:      values.Get("images"),
		Description: values.Get("description"),
		InStock:     checkbox(values.Get("in_stock")),
	}
}

// ProductFormFromProduct fills the form for editing p
func ProductFormFromProduct(p domain.Product) ProductForm {
	return ProductForm{
		EditingID:   p.ID,
		Name:        p.Name,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Category:    p.Category,
		Sizes:       strings.Join(p.Sizes, ", "),
		Images:      strings.Join(p.Images, ", "),
		Description: p.Description,
		InStock:     p.InStock,
	}
}

// Editing reports whether the form targets an existing product
func (f ProductForm) Editing() bool {
	return f.EditingID != ""
}

// Validate rejects forms with an empty name, price or category
func (f ProductForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return domain.ErrInvalidProductName
	}
	if _, ok := parsePrice(f.Price); !ok {
		return domain.ErrInvalidProductPrice
	}
	if strings.TrimSpace(f.Category) == "" {
		return domain.ErrInvalidProductCategory
	}
	return nil
}

// ToProduct builds the candidate product. The ID is left to the caller. A
// price that does not parse becomes 0.
func (f ProductForm) ToProduct() domain.Product {
	price, _ := parsePrice(f.Price)
	return domain.Product{
		Name:        f.Name,
		Price:       price,
		Category:    f.Category,
		Sizes:       SplitList(f.Sizes),
		Images:      SplitList(f.Images),
		Description: f.Description,
		InStock:     f.InStock,
	}
}

// SplitList splits a comma separated field, trimming each element and
// dropping the empty ones
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	price, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, false
	}
	return price, true
}

func checkbox(v string) bool {
	if v == "on" {
		return true
	}
	return cast.ToBool(v)
}
