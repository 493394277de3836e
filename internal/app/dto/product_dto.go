package dto

import (
	"github.com/mrops-br/storefront/internal/domain"
)

// ProductRecord is the serialized shape of a product. It is what the catalog
// store writes under shop_products, what the JSON API returns and what catalog
// files contain.
type ProductRecord struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Price       float64  `json:"price" yaml:"price"`
	Category    string   `json:"category" yaml:"category"`
	Sizes       []string `json:"sizes" yaml:"sizes"`
	Images      []string `json:"images" yaml:"images"`
	Description string   `json:"description" yaml:"description"`
	InStock     bool     `json:"inStock" yaml:"inStock"`
}

// ToProductRecord converts a domain Product to its serialized form.
// Sizes and images are never emitted as null.
func ToProductRecord(p domain.Product) ProductRecord {
	return ProductRecord{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Sizes:       nonNil(p.Sizes),
		Images:      nonNil(p.Images),
		Description: p.Description,
		InStock:     p.InStock,
	}
}

// ToProductRecordList converts a list of domain Products to records
func ToProductRecordList(products []domain.Product) []ProductRecord {
	records := make([]ProductRecord, len(products))
	for i, p := range products {
		records[i] = ToProductRecord(p)
	}
	return records
}

// ToDomain converts a record back to a domain Product
func (r ProductRecord) ToDomain() domain.Product {
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Category:    r.Category,
		Sizes:       nonNil(r.Sizes),
		Images:      nonNil(r.Images),
		Description: r.Description,
		InStock:     r.InStock,
	}
}

// ToDomainList converts records back to domain Products
func ToDomainList(records []ProductRecord) []domain.Product {
	products := make([]domain.Product, len(records))
	for i, r := range records {
		products[i] = r.ToDomain()
	}
	return products
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
