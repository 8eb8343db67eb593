package ports

import (
	"context"

	"github.com/renato0307/productsearch/internal/domain"
)

// ProductReader reads products
type ProductReader interface {
	GetProduct(ctx context.Context, name string) (*domain.Product, error)
	ListProducts(ctx context.Context, parent string) ([]domain.Product, error)
}

// ProductWriter creates, deletes, and relabels products
type ProductWriter interface {
	CreateProduct(ctx context.Context, parent, productID string, product domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, name string) error
	UpdateProductLabels(ctx context.Context, name string, labels []domain.KeyValue) (*domain.Product, error)
}

// ProductSetReader reads product sets and their members
type ProductSetReader interface {
	GetProductSet(ctx context.Context, name string) (*domain.ProductSet, error)
	ListProductSets(ctx context.Context, parent string) ([]domain.ProductSet, error)
	ListProductsInProductSet(ctx context.Context, name string) ([]domain.Product, error)
}

// ProductSetWriter creates and deletes product sets and manages membership
type ProductSetWriter interface {
	AddProductToProductSet(ctx context.Context, productSetName, productName string) error
	CreateProductSet(ctx context.Context, parent, productSetID string, productSet domain.ProductSet) (*domain.ProductSet, error)
	DeleteProductSet(ctx context.Context, name string) error
	RemoveProductFromProductSet(ctx context.Context, productSetName, productName string) error
}

// ProductCatalog is the composite interface
type ProductCatalog interface {
	ProductReader
	ProductWriter
	ProductSetReader
	ProductSetWriter
	Close() error
}
