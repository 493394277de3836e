package domain

import (
	"errors"
	"slices"
)

var (
	ErrInvalidProductName     = errors.New("product name is required")
	ErrInvalidProductPrice    = errors.New("product price must be a non-negative number")
	ErrInvalidProductCategory = errors.New("product category is required")
	ErrInvalidProductID       = errors.New("product id is required")
	ErrSizeRequired           = errors.New("a size must be selected")
	ErrOutOfStock             = errors.New("product is out of stock")
)

// Product represents a catalog entry
type Product struct {
	ID          string
	Name        string
	Price       float64
	Category    string
	Sizes       []string
	Images      []string
	Description string
	InStock     bool
}

// Validate performs the checks the admin form applies before anything is stored.
// The catalog store itself accepts any record.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrInvalidProductName
	}
	if p.Price < 0 {
		return ErrInvalidProductPrice
	}
	if p.Category == "" {
		return ErrInvalidProductCategory
	}
	return nil
}

// Sizeless reports whether the product is sold without a size choice
func (p *Product) Sizeless() bool {
	return len(p.Sizes) == 0
}

// HasSize reports whether size is one of the product's sizes
func (p *Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}

// CheckCartSize tells whether the product can go into a cart with the chosen size.
// Sizeless products are always satisfied.
func (p *Product) CheckCartSize(size string) error {
	if !p.InStock {
		return ErrOutOfStock
	}
	if p.Sizeless() {
		return nil
	}
	if !p.HasSize(size) {
		return ErrSizeRequired
	}
	return nil
}

// Image returns the image URL at index i, or "" when there is none
func (p *Product) Image(i int) string {
	if i < 0 || i >= len(p.Images) {
		return ""
	}
	return p.Images[i]
}
