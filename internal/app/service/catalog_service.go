package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/mrops-br/storefront/internal/domain"
)

// CatalogService handles catalog use cases for the storefront and the admin panel
type CatalogService struct {
	repo                  domain.CatalogRepository
	ids                   IDGenerator
	tracer                trace.Tracer
	logger                *slog.Logger
	productCreatedCounter metric.Int64Counter
	catalogOperations     metric.Int64Counter
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	repo domain.CatalogRepository,
	ids IDGenerator,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CatalogService {
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	catalogOperations, _ := meter.Int64Counter(
		"catalog.operations",
		metric.WithDescription("Total number of catalog operations"),
	)

	return &CatalogService{
		repo:                  repo,
		ids:                   ids,
		tracer:                tracer,
		logger:                logger,
		productCreatedCounter: productCreatedCounter,
		catalogOperations:     catalogOperations,
	}
}

// ListProducts returns the full catalog in stored order
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts")
	defer span.End()

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.fail(ctx, span, "list", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.record(ctx, "list", "success")
	span.SetStatus(codes.Ok, "Products listed successfully")
	return products, nil
}

// GetProduct returns the first product with the given id
func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.fail(ctx, span, "read", err)
		return domain.Product{}, err
	}

	product, ok := domain.FindProduct(products, id)
	if !ok {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id),
		)
		s.record(ctx, "read", "not_found")
		return domain.Product{}, domain.ErrProductNotFound
	}

	s.record(ctx, "read", "success")
	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return product, nil
}

// SaveProduct stores the candidate from the admin form. With a non-empty
// editingID the product at that id is replaced and keeps that id; otherwise
// the product is appended under a freshly generated id. The stored product is
// returned along with whether it was created.
func (s *CatalogService) SaveProduct(ctx context.Context, editingID string, product domain.Product) (domain.Product, bool, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.SaveProduct")
	defer span.End()

	if editingID != "" {
		product.ID = editingID
		span.SetAttributes(
			attribute.String("product.id", product.ID),
			attribute.Bool("product.created", false),
		)

		if err := s.repo.UpdateProduct(ctx, editingID, product); err != nil {
			s.fail(ctx, span, "update", err)
			return domain.Product{}, false, err
		}

		s.record(ctx, "update", "success")
		s.logger.InfoContext(ctx, "Product updated successfully",
			slog.String("product_id", product.ID),
		)
		span.SetStatus(codes.Ok, "Product updated successfully")
		return product, false, nil
	}

	product.ID = s.ids.NewID()
	span.SetAttributes(
		attribute.String("product.id", product.ID),
		attribute.Bool("product.created", true),
	)

	if err := s.repo.AddProduct(ctx, product); err != nil {
		s.fail(ctx, span, "create", err)
		return domain.Product{}, false, err
	}

	s.productCreatedCounter.Add(ctx, 1)
	s.record(ctx, "create", "success")
	s.logger.InfoContext(ctx, "Product created successfully",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
		slog.Float64("price", product.Price),
	)
	span.SetStatus(codes.Ok, "Product created successfully")
	return product, true, nil
}

// DeleteProduct removes the product with the given id. Deleting an unknown id
// is not an error.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		s.fail(ctx, span, "delete", err)
		return err
	}

	s.record(ctx, "delete", "success")
	span.SetStatus(codes.Ok, "Product deleted successfully")
	return nil
}

// ReplaceCatalog overwrites the whole catalog, used by imports
func (s *CatalogService) ReplaceCatalog(ctx context.Context, products []domain.Product) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ReplaceCatalog")
	defer span.End()

	span.SetAttributes(attribute.Int("product.count", len(products)))

	if err := s.repo.ReplaceAll(ctx, products); err != nil {
		s.fail(ctx, span, "replace", err)
		return err
	}

	s.record(ctx, "replace", "success")
	s.logger.InfoContext(ctx, "Catalog replaced",
		slog.Int("count", len(products)),
	)
	span.SetStatus(codes.Ok, "Catalog replaced")
	return nil
}

// AddToCart checks a shopper's add-to-cart intent against the product. There
// is no cart to persist; a nil error means the request would be accepted.
func (s *CatalogService) AddToCart(ctx context.Context, id, size string) (domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AddToCart")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", id),
		attribute.String("product.size", size),
	)

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if err := product.CheckCartSize(size); err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.record(ctx, "cart", "rejected")
		return product, err
	}

	s.record(ctx, "cart", "success")
	span.SetStatus(codes.Ok, "Added to cart")
	return product, nil
}

func (s *CatalogService) fail(ctx context.Context, span trace.Span, operation string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, "Catalog "+operation+" failed")
	s.logger.ErrorContext(ctx, "Catalog operation failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)

	result := "failure"
	if errors.Is(err, domain.ErrCatalogCorrupt) {
		result = "corrupt"
	}
	s.record(ctx, operation, result)
}

func (s *CatalogService) record(ctx context.Context, operation, result string) {
	s.catalogOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}
