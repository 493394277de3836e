package kvstore

import (
	"context"
	"fmt"
	"log/slog"

	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mrops-br/storefront/internal/app/dto"
	"github.com/mrops-br/storefront/internal/domain"
	"github.com/mrops-br/storefront/internal/infrastructure/kv"
)

const (
	ProductsKey      = "shop_products"
	AdminPasswordKey = "admin_password"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var _ domain.Store = (*CatalogStore)(nil)

// CatalogStore persists the catalog as one JSON array under ProductsKey and the
// admin credential as a raw string under AdminPasswordKey.
//
// Mutations read the whole catalog and write it back without locking, so two
// processes sharing the same storage file race and the last write wins.
type CatalogStore struct {
	kv     kv.Store
	tracer trace.Tracer
	logger *slog.Logger
}

// NewCatalogStore creates a catalog store over the given key-value store
func NewCatalogStore(store kv.Store, tracer trace.Tracer, logger *slog.Logger) *CatalogStore {
	return &CatalogStore{
		kv:     store,
		tracer: tracer,
		logger: logger,
	}
}

// ListProducts returns the catalog in stored order. An unset or empty key is an
// empty catalog; a value that does not decode is an error wrapping
// ErrCatalogCorrupt.
func (s *CatalogStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.ListProducts")
	defer span.End()

	products, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load catalog")
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// ReplaceAll overwrites the whole catalog
func (s *CatalogStore) ReplaceAll(ctx context.Context, products []domain.Product) error {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.ReplaceAll")
	defer span.End()

	span.SetAttributes(attribute.Int("product.count", len(products)))

	if err := s.save(ctx, products); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save catalog")
		return err
	}

	s.logger.DebugContext(ctx, "Catalog replaced",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Catalog replaced")
	return nil
}

// AddProduct appends product to the catalog. IDs are not checked for collisions.
func (s *CatalogStore) AddProduct(ctx context.Context, product domain.Product) error {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.AddProduct")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", product.ID),
		attribute.String("product.name", product.Name),
	)

	products, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load catalog")
		return err
	}

	if err := s.save(ctx, domain.AppendProduct(products, product)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save catalog")
		return err
	}

	s.logger.InfoContext(ctx, "Product added to catalog",
		slog.String("product_id", product.ID),
		slog.String("product_name", product.Name),
	)

	span.SetStatus(codes.Ok, "Product added")
	return nil
}

// UpdateProduct replaces the first product with the given id. An unknown id is
// a no-op and nothing is written.
func (s *CatalogStore) UpdateProduct(ctx context.Context, id string, product domain.Product) error {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.UpdateProduct")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", id),
		attribute.String("product.new_id", product.ID),
	)

	products, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load catalog")
		return err
	}

	updated, found := domain.ReplaceProduct(products, id, product)
	if !found {
		s.logger.DebugContext(ctx, "Product to update not found, ignoring",
			slog.String("product_id", id),
		)
		span.SetAttributes(attribute.Bool("product.found", false))
		return nil
	}

	if err := s.save(ctx, updated); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save catalog")
		return err
	}

	s.logger.InfoContext(ctx, "Product updated in catalog",
		slog.String("product_id", id),
	)

	span.SetStatus(codes.Ok, "Product updated")
	return nil
}

// DeleteProduct removes every product with the given id
func (s *CatalogStore) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	products, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load catalog")
		return err
	}

	remaining, removed := domain.RemoveProducts(products, id)
	if err := s.save(ctx, remaining); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save catalog")
		return err
	}

	span.SetAttributes(attribute.Int("product.removed", removed))
	s.logger.InfoContext(ctx, "Product deleted from catalog",
		slog.String("product_id", id),
		slog.Int("removed", removed),
	)

	span.SetStatus(codes.Ok, "Product deleted")
	return nil
}

// GetAdminCredential returns the stored credential, ok=false if never set
func (s *CatalogStore) GetAdminCredential(ctx context.Context) (string, bool, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.GetAdminCredential")
	defer span.End()

	value, ok, err := s.kv.Get(ctx, AdminPasswordKey)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read credential")
		return "", false, err
	}

	span.SetAttributes(attribute.Bool("credential.present", ok))
	return value, ok, nil
}

// SetAdminCredential overwrites the stored credential
func (s *CatalogStore) SetAdminCredential(ctx context.Context, value string) error {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.SetAdminCredential")
	defer span.End()

	if err := s.kv.Set(ctx, AdminPasswordKey, value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to write credential")
		return err
	}

	s.logger.InfoContext(ctx, "Admin credential stored")
	return nil
}

func (s *CatalogStore) load(ctx context.Context) ([]domain.Product, error) {
	raw, ok, err := s.kv.Get(ctx, ProductsKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []domain.Product{}, nil
	}

	var records []dto.ProductRecord
	if err := json.UnmarshalFromString(raw, &records); err != nil {
		s.logger.ErrorContext(ctx, "Stored catalog does not decode",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogCorrupt, err)
	}
	return dto.ToDomainList(records), nil
}

func (s *CatalogStore) save(ctx context.Context, products []domain.Product) error {
	raw, err := json.MarshalToString(dto.ToProductRecordList(products))
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return s.kv.Set(ctx, ProductsKey, raw)
}
