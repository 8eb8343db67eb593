package services

import (
	"context"
	"fmt"

	"github.com/renato0307/productsearch/internal/domain"
	"github.com/renato0307/productsearch/internal/logging"
	"github.com/renato0307/productsearch/internal/ports"
)

// ProductService handles product operations addressed by project, location and id
type ProductService struct {
	reader ports.ProductReader
	writer ports.ProductWriter
}

// NewProductService creates a new ProductService
func NewProductService(reader ports.ProductReader, writer ports.ProductWriter) *ProductService {
	return &ProductService{
		reader: reader,
		writer: writer,
	}
}

// CreateProductParams contains parameters for creating a product
type CreateProductParams struct {
	Category    string
	Description string
	DisplayName string
	Location    string
	ProductID   string
	Project     string
}

// CreateProduct creates a product under projects/{project}/locations/{location}
func (s *ProductService) CreateProduct(ctx context.Context, params CreateProductParams) (*domain.Product, error) {
	logging.Logger.Info("Creating product",
		"project", params.Project,
		"location", params.Location,
		"product_id", params.ProductID,
		"category", params.Category)

	product := domain.Product{
		Description:     params.Description,
		DisplayName:     params.DisplayName,
		ProductCategory: params.Category,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	parent := domain.LocationPath(params.Project, params.Location)
	created, err := s.writer.CreateProduct(ctx, parent, params.ProductID, product)
	if err != nil {
		logging.Logger.Error("Failed to create product", "parent", parent, "error", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logging.Logger.Info("Product created", "name", created.Name)
	return created, nil
}

// GetProduct fetches a single product
func (s *ProductService) GetProduct(ctx context.Context, project, location, productID string) (*domain.Product, error) {
	name := domain.ProductPath(project, location, productID)
	logging.Logger.Debug("Getting product", "name", name)

	product, err := s.reader.GetProduct(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ListProducts lists every product in a location
func (s *ProductService) ListProducts(ctx context.Context, project, location string) ([]domain.Product, error) {
	parent := domain.LocationPath(project, location)
	logging.Logger.Debug("Listing products", "parent", parent)

	products, err := s.reader.ListProducts(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	logging.Logger.Debug("Products listed", "parent", parent, "count", len(products))
	return products, nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, project, location, productID string) error {
	name := domain.ProductPath(project, location, productID)
	logging.Logger.Info("Deleting product", "name", name)

	if err := s.writer.DeleteProduct(ctx, name); err != nil {
		logging.Logger.Error("Failed to delete product", "name", name, "error", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logging.Logger.Info("Product deleted", "name", name)
	return nil
}

// UpdateProductLabels replaces the labels of a product with a single key/value pair
func (s *ProductService) UpdateProductLabels(ctx context.Context, project, location, productID, key, value string) (*domain.Product, error) {
	name := domain.ProductPath(project, location, productID)
	logging.Logger.Info("Updating product labels", "name", name, "key", key)

	labels := []domain.KeyValue{{Key: key, Value: value}}
	if err := domain.ValidateLabels(labels); err != nil {
		return nil, err
	}

	updated, err := s.writer.UpdateProductLabels(ctx, name, labels)
	if err != nil {
		logging.Logger.Error("Failed to update product labels", "name", name, "error", err)
		return nil, fmt.Errorf("failed to update product labels: %w", err)
	}
	return updated, nil
}
