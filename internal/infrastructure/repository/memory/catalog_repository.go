package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mrops-br/storefront/internal/domain"
)

var _ domain.Store = (*CatalogRepository)(nil)

// CatalogRepository is an in-memory implementation of domain.Store. It keeps
// no serialized form, so it never reports a corrupt catalog.
type CatalogRepository struct {
	mu         sync.RWMutex
	products   []domain.Product
	credential *string
	tracer     trace.Tracer
	logger     *slog.Logger
}

// NewCatalogRepository creates a new in-memory catalog repository
func NewCatalogRepository(tracer trace.Tracer, logger *slog.Logger) *CatalogRepository {
	return &CatalogRepository{
		products: []domain.Product{},
		tracer:   tracer,
		logger:   logger,
	}
}

// ListProducts returns a copy of the catalog in insertion order
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	_, span := r.tracer.Start(ctx, "CatalogRepository.ListProducts")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := cloneProducts(r.products)
	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// ReplaceAll overwrites the catalog
func (r *CatalogRepository) ReplaceAll(ctx context.Context, products []domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "CatalogRepository.ReplaceAll")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = cloneProducts(products)

	r.logger.DebugContext(ctx, "Catalog replaced in repository",
		slog.Int("count", len(products)),
	)
	span.SetStatus(codes.Ok, "Catalog replaced")
	return nil
}

// AddProduct appends a product
func (r *CatalogRepository) AddProduct(ctx context.Context, product domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "CatalogRepository.AddProduct")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", product.ID),
		attribute.String("product.name", product.Name),
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = domain.AppendProduct(r.products, cloneProduct(product))

	r.logger.InfoContext(ctx, "Product added in repository",
		slog.String("product_id", product.ID),
		slog.String("product_name", product.Name),
	)

	span.SetStatus(codes.Ok, "Product added")
	return nil
}

// UpdateProduct replaces the first product with the given id, if any
func (r *CatalogRepository) UpdateProduct(ctx context.Context, id string, product domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "CatalogRepository.UpdateProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	updated, found := domain.ReplaceProduct(r.products, id, cloneProduct(product))
	if !found {
		r.logger.DebugContext(ctx, "Product to update not found, ignoring",
			slog.String("product_id", id),
		)
		return nil
	}
	r.products = updated

	span.SetStatus(codes.Ok, "Product updated")
	return nil
}

// DeleteProduct removes every product with the given id
func (r *CatalogRepository) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "CatalogRepository.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int
	r.products, removed = domain.RemoveProducts(r.products, id)

	r.logger.InfoContext(ctx, "Product deleted in repository",
		slog.String("product_id", id),
		slog.Int("removed", removed),
	)
	span.SetStatus(codes.Ok, "Product deleted")
	return nil
}

func (r *CatalogRepository) GetAdminCredential(ctx context.Context) (string, bool, error) {
	_, span := r.tracer.Start(ctx, "CatalogRepository.GetAdminCredential")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.credential == nil {
		return "", false, nil
	}
	return *r.credential, true, nil
}

func (r *CatalogRepository) SetAdminCredential(ctx context.Context, value string) error {
	_, span := r.tracer.Start(ctx, "CatalogRepository.SetAdminCredential")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.credential = &value
	return nil
}

// callers must not be able to reach the stored slices
func cloneProduct(p domain.Product) domain.Product {
	p.Sizes = slices.Clone(p.Sizes)
	p.Images = slices.Clone(p.Images)
	return p
}

func cloneProducts(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[i] = cloneProduct(p)
	}
	return out
}
