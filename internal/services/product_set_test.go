package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/productsearch/internal/domain"
	portsmocks "github.com/renato0307/productsearch/internal/ports/mocks"
)

func TestAddProduct_UsesMatchingPaths(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)
	catalog.EXPECT().AddProductToProductSet(mock.Anything,
		"projects/p/locations/us-west1/productSets/test_product_set_id",
		"projects/p/locations/us-west1/products/test_product_id").
		Return(nil)

	service := NewProductSetService(catalog, catalog)
	err := service.AddProduct(context.Background(), "p", "us-west1", "test_product_id", "test_product_set_id")

	assert.NoError(t, err)
}

func TestRemoveProduct_WrapsNotFound(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)
	catalog.EXPECT().RemoveProductFromProductSet(mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ErrNotFound)

	service := NewProductSetService(catalog, catalog)
	err := service.RemoveProduct(context.Background(), "p", "l", "x", "s")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorContains(t, err, "failed to remove product from product set")
}

func TestCreateProductSet(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)
	catalog.EXPECT().CreateProductSet(mock.Anything, "projects/p/locations/l", "s", domain.ProductSet{DisplayName: "shoes"}).
		Return(&domain.ProductSet{Name: "projects/p/locations/l/productSets/s", DisplayName: "shoes"}, nil)

	service := NewProductSetService(catalog, catalog)
	created, err := service.CreateProductSet(context.Background(), "p", "l", "s", "shoes")

	require.NoError(t, err)
	assert.Equal(t, "s", created.ID())
}

func TestCreateProductSet_RequiresDisplayName(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)
	service := NewProductSetService(catalog, catalog)

	_, err := service.CreateProductSet(context.Background(), "p", "l", "s", "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestListProductsInProductSet(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)
	catalog.EXPECT().ListProductsInProductSet(mock.Anything, domain.ProductSetPath("p", "l", "s")).
		Return([]domain.Product{{Name: domain.ProductPath("p", "l", "a")}}, nil)

	service := NewProductSetService(catalog, catalog)
	products, err := service.ListProducts(context.Background(), "p", "l", "s")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "a", products[0].ID())
}

func TestDeleteProductSet(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)
	catalog.EXPECT().DeleteProductSet(mock.Anything, domain.ProductSetPath("p", "l", "s")).Return(nil)

	service := NewProductSetService(catalog, catalog)
	assert.NoError(t, service.DeleteProductSet(context.Background(), "p", "l", "s"))
}
