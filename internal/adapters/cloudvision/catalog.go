package cloudvision

import (
	"context"
	"errors"
	"fmt"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/fieldmaskpb"

	"github.com/renato0307/productsearch/internal/domain"
	"github.com/renato0307/productsearch/internal/logging"
	"github.com/renato0307/productsearch/internal/ports"
)

// Options configures the Product Search client
type Options struct {
	CredentialsFile string
	Endpoint        string
}

// Catalog implements ports.ProductCatalog against the Cloud Vision Product Search API
type Catalog struct {
	client *vision.ProductSearchClient
}

// Compile-time interface verification
var _ ports.ProductCatalog = (*Catalog)(nil)

// NewCatalog creates a Product Search client
func NewCatalog(ctx context.Context, opts Options) (*Catalog, error) {
	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	client, err := vision.NewProductSearchClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create product search client: %w", err)
	}

	logging.Logger.Debug("Product search client created", "endpoint", opts.Endpoint)
	return &Catalog{client: client}, nil
}

// Close closes the underlying connection
func (c *Catalog) Close() error {
	return c.client.Close()
}

// CreateProduct implements ProductWriter.CreateProduct
func (c *Catalog) CreateProduct(ctx context.Context, parent, productID string, product domain.Product) (*domain.Product, error) {
	resp, err := c.client.CreateProduct(ctx, &visionpb.CreateProductRequest{
		Parent:    parent,
		ProductId: productID,
		Product:   productToProto(product),
	})
	if err != nil {
		return nil, mapError(err, "create product")
	}
	result := productFromProto(resp)
	return &result, nil
}

// GetProduct implements ProductReader.GetProduct
func (c *Catalog) GetProduct(ctx context.Context, name string) (*domain.Product, error) {
	resp, err := c.client.GetProduct(ctx, &visionpb.GetProductRequest{Name: name})
	if err != nil {
		return nil, mapError(err, "get product")
	}
	result := productFromProto(resp)
	return &result, nil
}

// ListProducts implements ProductReader.ListProducts
func (c *Catalog) ListProducts(ctx context.Context, parent string) ([]domain.Product, error) {
	it := c.client.ListProducts(ctx, &visionpb.ListProductsRequest{Parent: parent})
	return collectProducts(it, "list products")
}

// UpdateProductLabels implements ProductWriter.UpdateProductLabels
func (c *Catalog) UpdateProductLabels(ctx context.Context, name string, labels []domain.KeyValue) (*domain.Product, error) {
	resp, err := c.client.UpdateProduct(ctx, &visionpb.UpdateProductRequest{
		Product: &visionpb.Product{
			Name:          name,
			ProductLabels: labelsToProto(labels),
		},
		UpdateMask: &fieldmaskpb.FieldMask{Paths: []string{"product_labels"}},
	})
	if err != nil {
		return nil, mapError(err, "update product labels")
	}
	result := productFromProto(resp)
	return &result, nil
}

// DeleteProduct implements ProductWriter.DeleteProduct
func (c *Catalog) DeleteProduct(ctx context.Context, name string) error {
	err := c.client.DeleteProduct(ctx, &visionpb.DeleteProductRequest{Name: name})
	return mapError(err, "delete product")
}

// CreateProductSet implements ProductSetWriter.CreateProductSet
func (c *Catalog) CreateProductSet(ctx context.Context, parent, productSetID string, productSet domain.ProductSet) (*domain.ProductSet, error) {
	resp, err := c.client.CreateProductSet(ctx, &visionpb.CreateProductSetRequest{
		Parent:       parent,
		ProductSetId: productSetID,
		ProductSet:   &visionpb.ProductSet{DisplayName: productSet.DisplayName},
	})
	if err != nil {
		return nil, mapError(err, "create product set")
	}
	result := productSetFromProto(resp)
	return &result, nil
}

// GetProductSet implements ProductSetReader.GetProductSet
func (c *Catalog) GetProductSet(ctx context.Context, name string) (*domain.ProductSet, error) {
	resp, err := c.client.GetProductSet(ctx, &visionpb.GetProductSetRequest{Name: name})
	if err != nil {
		return nil, mapError(err, "get product set")
	}
	result := productSetFromProto(resp)
	return &result, nil
}

// ListProductSets implements ProductSetReader.ListProductSets
func (c *Catalog) ListProductSets(ctx context.Context, parent string) ([]domain.ProductSet, error) {
	it := c.client.ListProductSets(ctx, &visionpb.ListProductSetsRequest{Parent: parent})

	var result []domain.ProductSet
	for {
		ps, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return result, nil
		}
		if err != nil {
			return nil, mapError(err, "list product sets")
		}
		result = append(result, productSetFromProto(ps))
	}
}

// DeleteProductSet implements ProductSetWriter.DeleteProductSet
func (c *Catalog) DeleteProductSet(ctx context.Context, name string) error {
	err := c.client.DeleteProductSet(ctx, &visionpb.DeleteProductSetRequest{Name: name})
	return mapError(err, "delete product set")
}

// AddProductToProductSet implements ProductSetWriter.AddProductToProductSet
func (c *Catalog) AddProductToProductSet(ctx context.Context, productSetName, productName string) error {
	err := c.client.AddProductToProductSet(ctx, &visionpb.AddProductToProductSetRequest{
		Name:    productSetName,
		Product: productName,
	})
	return mapError(err, "add product to product set")
}

// RemoveProductFromProductSet implements ProductSetWriter.RemoveProductFromProductSet
func (c *Catalog) RemoveProductFromProductSet(ctx context.Context, productSetName, productName string) error {
	err := c.client.RemoveProductFromProductSet(ctx, &visionpb.RemoveProductFromProductSetRequest{
		Name:    productSetName,
		Product: productName,
	})
	return mapError(err, "remove product from product set")
}

// ListProductsInProductSet implements ProductSetReader.ListProductsInProductSet
func (c *Catalog) ListProductsInProductSet(ctx context.Context, name string) ([]domain.Product, error) {
	it := c.client.ListProductsInProductSet(ctx, &visionpb.ListProductsInProductSetRequest{Name: name})
	return collectProducts(it, "list products in product set")
}

// productIterator is the part of vision.ProductIterator collectProducts needs
type productIterator interface {
	Next() (*visionpb.Product, error)
}

func collectProducts(it productIterator, op string) ([]domain.Product, error) {
	var result []domain.Product
	for {
		p, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return result, nil
		}
		if err != nil {
			return nil, mapError(err, op)
		}
		result = append(result, productFromProto(p))
	}
}
