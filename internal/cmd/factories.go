package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/productsearch/internal/adapters/cloudvision"
	adapterstorage "github.com/renato0307/productsearch/internal/adapters/storage"
	"github.com/renato0307/productsearch/internal/config"
	"github.com/renato0307/productsearch/internal/logging"
	"github.com/renato0307/productsearch/internal/ports"
	"github.com/renato0307/productsearch/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	ProductService    *services.ProductService
	ProductSetService *services.ProductSetService

	// Internal - for cleanup only
	catalog ports.ProductCatalog
}

// NewContainer wires the services on top of a catalog
func NewContainer(catalog ports.ProductCatalog) *Container {
	return &Container{
		ProductService:    services.NewProductService(catalog, catalog),
		ProductSetService: services.NewProductSetService(catalog, catalog),
		catalog:           catalog,
	}
}

// NewCatalog opens the catalog backend selected by the resolved configuration
func NewCatalog(ctx context.Context, resolved config.Resolved) (ports.ProductCatalog, error) {
	logging.Logger.Info("Opening catalog", "backend", resolved.Backend)

	switch resolved.Backend {
	case config.BackendLocal:
		catalog, err := adapterstorage.NewSQLiteCatalogForHome(resolved.Home)
		if err != nil {
			return nil, err
		}
		return catalog, nil
	case config.BackendVision:
		catalog, err := cloudvision.NewCatalog(ctx, cloudvision.Options{
			CredentialsFile: resolved.CredentialsFile,
			Endpoint:        resolved.Endpoint,
		})
		if err != nil {
			return nil, err
		}
		return catalog, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", resolved.Backend)
	}
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.catalog != nil {
		return c.catalog.Close()
	}
	return nil
}
