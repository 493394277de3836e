package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCatalogCorrupt    = errors.New("stored catalog is malformed")
	ErrInvalidCredential = errors.New("incorrect admin password")
	ErrEmptyCredential   = errors.New("admin password must not be empty")
)

// CatalogRepository defines the contract for product storage.
//
// Every mutation is a read of the whole catalog followed by ReplaceAll, so a
// subsequent ListProducts is the only thing callers should rely on.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ReplaceAll(ctx context.Context, products []Product) error
	AddProduct(ctx context.Context, product Product) error
	UpdateProduct(ctx context.Context, id string, product Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// CredentialRepository stores the single admin credential
type CredentialRepository interface {
	// GetAdminCredential reports ok=false when no credential was ever stored
	GetAdminCredential(ctx context.Context) (value string, ok bool, err error)
	SetAdminCredential(ctx context.Context, value string) error
}

// Store is everything the storefront persists
type Store interface {
	CatalogRepository
	CredentialRepository
}
