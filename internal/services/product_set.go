package services

import (
	"context"
	"fmt"

	"github.com/renato0307/productsearch/internal/domain"
	"github.com/renato0307/productsearch/internal/logging"
	"github.com/renato0307/productsearch/internal/ports"
)

// ProductSetService handles product sets and their membership
type ProductSetService struct {
	reader ports.ProductSetReader
	writer ports.ProductSetWriter
}

// NewProductSetService creates a new ProductSetService
func NewProductSetService(reader ports.ProductSetReader, writer ports.ProductSetWriter) *ProductSetService {
	return &ProductSetService{
		reader: reader,
		writer: writer,
	}
}

// CreateProductSet creates a product set
func (s *ProductSetService) CreateProductSet(ctx context.Context, project, location, productSetID, displayName string) (*domain.ProductSet, error) {
	logging.Logger.Info("Creating product set",
		"project", project,
		"location", location,
		"product_set_id", productSetID)

	productSet := domain.ProductSet{DisplayName: displayName}
	if err := productSet.Validate(); err != nil {
		return nil, err
	}

	parent := domain.LocationPath(project, location)
	created, err := s.writer.CreateProductSet(ctx, parent, productSetID, productSet)
	if err != nil {
		logging.Logger.Error("Failed to create product set", "parent", parent, "error", err)
		return nil, fmt.Errorf("failed to create product set: %w", err)
	}

	logging.Logger.Info("Product set created", "name", created.Name)
	return created, nil
}

// GetProductSet fetches a product set
func (s *ProductSetService) GetProductSet(ctx context.Context, project, location, productSetID string) (*domain.ProductSet, error) {
	name := domain.ProductSetPath(project, location, productSetID)
	productSet, err := s.reader.GetProductSet(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get product set: %w", err)
	}
	return productSet, nil
}

// ListProductSets lists every product set in a location
func (s *ProductSetService) ListProductSets(ctx context.Context, project, location string) ([]domain.ProductSet, error) {
	parent := domain.LocationPath(project, location)
	sets, err := s.reader.ListProductSets(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("failed to list product sets: %w", err)
	}
	return sets, nil
}

// DeleteProductSet deletes a product set; member products are not deleted
func (s *ProductSetService) DeleteProductSet(ctx context.Context, project, location, productSetID string) error {
	name := domain.ProductSetPath(project, location, productSetID)
	logging.Logger.Info("Deleting product set", "name", name)

	if err := s.writer.DeleteProductSet(ctx, name); err != nil {
		logging.Logger.Error("Failed to delete product set", "name", name, "error", err)
		return fmt.Errorf("failed to delete product set: %w", err)
	}
	return nil
}

// AddProduct adds a product to a product set in the same location
func (s *ProductSetService) AddProduct(ctx context.Context, project, location, productID, productSetID string) error {
	setName := domain.ProductSetPath(project, location, productSetID)
	productName := domain.ProductPath(project, location, productID)
	logging.Logger.Info("Adding product to product set", "product", productName, "product_set", setName)

	if err := s.writer.AddProductToProductSet(ctx, setName, productName); err != nil {
		logging.Logger.Error("Failed to add product to product set",
			"product", productName,
			"product_set", setName,
			"error", err)
		return fmt.Errorf("failed to add product to product set: %w", err)
	}
	return nil
}

// RemoveProduct removes a product from a product set
func (s *ProductSetService) RemoveProduct(ctx context.Context, project, location, productID, productSetID string) error {
	setName := domain.ProductSetPath(project, location, productSetID)
	productName := domain.ProductPath(project, location, productID)
	logging.Logger.Info("Removing product from product set", "product", productName, "product_set", setName)

	if err := s.writer.RemoveProductFromProductSet(ctx, setName, productName); err != nil {
		logging.Logger.Error("Failed to remove product from product set",
			"product", productName,
			"product_set", setName,
			"error", err)
		return fmt.Errorf("failed to remove product from product set: %w", err)
	}
	return nil
}

// ListProducts lists the products in a product set
func (s *ProductSetService) ListProducts(ctx context.Context, project, location, productSetID string) ([]domain.Product, error) {
	name := domain.ProductSetPath(project, location, productSetID)
	products, err := s.reader.ListProductsInProductSet(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list products in product set: %w", err)
	}
	return products, nil
}
