package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/productsearch/internal/domain"
	portsmocks "github.com/renato0307/productsearch/internal/ports/mocks"
)

func TestCreateProduct_BuildsParentFromProjectAndLocation(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)
	want := domain.Product{DisplayName: "test_product_display_name_1", ProductCategory: domain.CategoryHomegoods}

	catalog.EXPECT().CreateProduct(mock.Anything, "projects/p/locations/us-west1", "lamp", want).
		Return(&domain.Product{Name: "projects/p/locations/us-west1/products/lamp"}, nil)

	service := NewProductService(catalog, catalog)
	created, err := service.CreateProduct(context.Background(), CreateProductParams{
		Category:    domain.CategoryHomegoods,
		DisplayName: "test_product_display_name_1",
		Location:    "us-west1",
		ProductID:   "lamp",
		Project:     "p",
	})

	require.NoError(t, err)
	assert.Equal(t, "lamp", created.ID())
}

func TestCreateProduct_RejectsInvalidBeforeCallingCatalog(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)
	service := NewProductService(catalog, catalog)

	_, err := service.CreateProduct(context.Background(), CreateProductParams{
		Category: domain.CategoryHomegoods,
		Location: "us-west1",
		Project:  "p",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	catalog.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateProduct_PassesCategoryToCatalog(t *testing.T) {
	categories := []string{
		domain.CategoryHomegoodsV2,
		domain.CategoryApparelV2,
		domain.CategoryToysV2,
		domain.CategoryPackagedgoodsV1,
		domain.CategoryGeneralV1,
	}

	for _, category := range categories {
		t.Run(category, func(t *testing.T) {
			catalog := portsmocks.NewMockProductCatalog(t)
			want := domain.Product{DisplayName: "x", ProductCategory: category}

			catalog.EXPECT().CreateProduct(mock.Anything, "projects/p/locations/us-west1", "lamp", want).
				Return(&domain.Product{Name: "projects/p/locations/us-west1/products/lamp", ProductCategory: category}, nil).
				Once()

			service := NewProductService(catalog, catalog)
			created, err := service.CreateProduct(context.Background(), CreateProductParams{
				Category:    category,
				DisplayName: "x",
				Location:    "us-west1",
				ProductID:   "lamp",
				Project:     "p",
			})

			require.NoError(t, err)
			assert.Equal(t, category, created.ProductCategory)
		})
	}
}

func TestCreateProduct_CatalogRejectsCategory(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)

	catalog.EXPECT().CreateProduct(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: unknown product category %q", domain.ErrInvalidArgument, "spaceships"))

	service := NewProductService(catalog, catalog)
	_, err := service.CreateProduct(context.Background(), CreateProductParams{
		Category:    "spaceships",
		DisplayName: "x",
		Location:    "us-west1",
		ProductID:   "lamp",
		Project:     "p",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestGetProduct_WrapsNotFound(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)
	name := domain.ProductPath("p", "us-west1", "missing")

	catalog.EXPECT().GetProduct(mock.Anything, name).
		Return(nil, domain.ErrNotFound)

	service := NewProductService(catalog, catalog)
	_, err := service.GetProduct(context.Background(), "p", "us-west1", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Not found")
}

func TestListProducts(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)
	catalog.EXPECT().ListProducts(mock.Anything, "projects/p/locations/l").
		Return([]domain.Product{{Name: "a"}, {Name: "b"}}, nil)

	service := NewProductService(catalog, catalog)
	products, err := service.ListProducts(context.Background(), "p", "l")

	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestDeleteProduct_PropagatesError(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)
	catalog.EXPECT().DeleteProduct(mock.Anything, domain.ProductPath("p", "l", "x")).
		Return(errors.New("boom"))

	service := NewProductService(catalog, catalog)
	err := service.DeleteProduct(context.Background(), "p", "l", "x")

	assert.ErrorContains(t, err, "failed to delete product: boom")
}

func TestUpdateProductLabels_SendsSingleLabel(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)
	name := domain.ProductPath("p", "l", "x")
	labels := []domain.KeyValue{{Key: "myKey", Value: "myValue"}}

	catalog.EXPECT().UpdateProductLabels(mock.Anything, name, labels).
		Return(&domain.Product{Name: name, Labels: labels}, nil)

	service := NewProductService(catalog, catalog)
	updated, err := service.UpdateProductLabels(context.Background(), "p", "l", "x", "myKey", "myValue")

	require.NoError(t, err)
	assert.Equal(t, labels, updated.Labels)
}

func TestUpdateProductLabels_RejectsEmptyKey(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)
	service := NewProductService(catalog, catalog)

	_, err := service.UpdateProductLabels(context.Background(), "p", "l", "x", "", "v")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
