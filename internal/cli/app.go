package cli

import (
	"fmt"

	"github.com/mrops-br/storefront/internal/app/service"
	"github.com/mrops-br/storefront/internal/infrastructure/config"
	"github.com/mrops-br/storefront/internal/infrastructure/kv"
	"github.com/mrops-br/storefront/internal/infrastructure/repository/kvstore"
	"github.com/mrops-br/storefront/internal/infrastructure/telemetry"
)

// app holds the storage and services shared by every command
type app struct {
	kv      kv.Store
	catalog *service.CatalogService
	gate    *service.AdminGate
}

func openApp(cfg *config.Config, tel *telemetry.Telemetry) (*app, error) {
	ids, err := service.NewIDGenerator(cfg.Catalog.IDStrategy)
	if err != nil {
		return nil, err
	}

	store, err := kv.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage at %s: %w", cfg.Storage.Driver, cfg.Storage.Path, err)
	}

	tracer := tel.TracerProvider.Tracer("storefront")
	meter := tel.MeterProvider.Meter("storefront")
	logger := tel.Logger

	repo := kvstore.NewCatalogStore(store, tracer, logger)

	return &app{
		kv:      store,
		catalog: service.NewCatalogService(repo, ids, tracer, meter, logger),
		gate:    service.NewAdminGate(repo, cfg.Admin.DefaultPassword, tracer, logger),
	}, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}
