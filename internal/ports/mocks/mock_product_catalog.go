package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/renato0307/productsearch/internal/domain"
	"github.com/renato0307/productsearch/internal/ports"
)

// MockProductCatalog is a testify mock of ports.ProductCatalog
type MockProductCatalog struct {
	mock.Mock
}

var _ ports.ProductCatalog = (*MockProductCatalog)(nil)

// NewMockProductCatalog creates a mock that asserts its expectations on test cleanup
func NewMockProductCatalog(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProductCatalog {
	m := &MockProductCatalog{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockProductCatalog_Expecter gives typed access to On()
type MockProductCatalog_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the expecter
func (m *MockProductCatalog) EXPECT() *MockProductCatalog_Expecter {
	return &MockProductCatalog_Expecter{mock: &m.Mock}
}

func productResult(args mock.Arguments) (*domain.Product, error) {
	var p *domain.Product
	if v := args.Get(0); v != nil {
		p = v.(*domain.Product)
	}
	return p, args.Error(1)
}

func productsResult(args mock.Arguments) ([]domain.Product, error) {
	var p []domain.Product
	if v := args.Get(0); v != nil {
		p = v.([]domain.Product)
	}
	return p, args.Error(1)
}

func productSetResult(args mock.Arguments) (*domain.ProductSet, error) {
	var s *domain.ProductSet
	if v := args.Get(0); v != nil {
		s = v.(*domain.ProductSet)
	}
	return s, args.Error(1)
}

// AddProductToProductSet mocks ports.ProductSetWriter.AddProductToProductSet
func (m *MockProductCatalog) AddProductToProductSet(ctx context.Context, productSetName, productName string) error {
	return m.Called(ctx, productSetName, productName).Error(0)
}

func (e *MockProductCatalog_Expecter) AddProductToProductSet(ctx, productSetName, productName any) *mock.Call {
	return e.mock.On("AddProductToProductSet", ctx, productSetName, productName)
}

// Close mocks ports.ProductCatalog.Close
func (m *MockProductCatalog) Close() error {
	return m.Called().Error(0)
}

func (e *MockProductCatalog_Expecter) Close() *mock.Call {
	return e.mock.On("Close")
}

// CreateProduct mocks ports.ProductWriter.CreateProduct
func (m *MockProductCatalog) CreateProduct(ctx context.Context, parent, productID string, product domain.Product) (*domain.Product, error) {
	return productResult(m.Called(ctx, parent, productID, product))
}

func (e *MockProductCatalog_Expecter) CreateProduct(ctx, parent, productID, product any) *mock.Call {
	return e.mock.On("CreateProduct", ctx, parent, productID, product)
}

// CreateProductSet mocks ports.ProductSetWriter.CreateProductSet
func (m *MockProductCatalog) CreateProductSet(ctx context.Context, parent, productSetID string, productSet domain.ProductSet) (*domain.ProductSet, error) {
	return productSetResult(m.Called(ctx, parent, productSetID, productSet))
}

func (e *MockProductCatalog_Expecter) CreateProductSet(ctx, parent, productSetID, productSet any) *mock.Call {
	return e.mock.On("CreateProductSet", ctx, parent, productSetID, productSet)
}

// DeleteProduct mocks ports.ProductWriter.DeleteProduct
func (m *MockProductCatalog) DeleteProduct(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (e *MockProductCatalog_Expecter) DeleteProduct(ctx, name any) *mock.Call {
	return e.mock.On("DeleteProduct", ctx, name)
}

// DeleteProductSet mocks ports.ProductSetWriter.DeleteProductSet
func (m *MockProductCatalog) DeleteProductSet(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (e *MockProductCatalog_Expecter) DeleteProductSet(ctx, name any) *mock.Call {
	return e.mock.On("DeleteProductSet", ctx, name)
}

// GetProduct mocks ports.ProductReader.GetProduct
func (m *MockProductCatalog) GetProduct(ctx context.Context, name string) (*domain.Product, error) {
	return productResult(m.Called(ctx, name))
}

func (e *MockProductCatalog_Expecter) GetProduct(ctx, name any) *mock.Call {
	return e.mock.On("GetProduct", ctx, name)
}

// GetProductSet mocks ports.ProductSetReader.GetProductSet
func (m *MockProductCatalog) GetProductSet(ctx context.Context, name string) (*domain.ProductSet, error) {
	return productSetResult(m.Called(ctx, name))
}

func (e *MockProductCatalog_Expecter) GetProductSet(ctx, name any) *mock.Call {
	return e.mock.On("GetProductSet", ctx, name)
}

// ListProducts mocks ports.ProductReader.ListProducts
func (m *MockProductCatalog) ListProducts(ctx context.Context, parent string) ([]domain.Product, error) {
	return productsResult(m.Called(ctx, parent))
}

func (e *MockProductCatalog_Expecter) ListProducts(ctx, parent any) *mock.Call {
	return e.mock.On("ListProducts", ctx, parent)
}

// ListProductSets mocks ports.ProductSetReader.ListProductSets
func (m *MockProductCatalog) ListProductSets(ctx context.Context, parent string) ([]domain.ProductSet, error) {
	args := m.Called(ctx, parent)
	var sets []domain.ProductSet
	if v := args.Get(0); v != nil {
		sets = v.([]domain.ProductSet)
	}
	return sets, args.Error(1)
}

func (e *MockProductCatalog_Expecter) ListProductSets(ctx, parent any) *mock.Call {
	return e.mock.On("ListProductSets", ctx, parent)
}

// ListProductsInProductSet mocks ports.ProductSetReader.ListProductsInProductSet
func (m *MockProductCatalog) ListProductsInProductSet(ctx context.Context, name string) ([]domain.Product, error) {
	return productsResult(m.Called(ctx, name))
}

func (e *MockProductCatalog_Expecter) ListProductsInProductSet(ctx, name any) *mock.Call {
	return e.mock.On("ListProductsInProductSet", ctx, name)
}

// RemoveProductFromProductSet mocks ports.ProductSetWriter.RemoveProductFromProductSet
func (m *MockProductCatalog) RemoveProductFromProductSet(ctx context.Context, productSetName, productName string) error {
	return m.Called(ctx, productSetName, productName).Error(0)
}

func (e *MockProductCatalog_Expecter) RemoveProductFromProductSet(ctx, productSetName, productName any) *mock.Call {
	return e.mock.On("RemoveProductFromProductSet", ctx, productSetName, productName)
}

// UpdateProductLabels mocks ports.ProductWriter.UpdateProductLabels
func (m *MockProductCatalog) UpdateProductLabels(ctx context.Context, name string, labels []domain.KeyValue) (*domain.Product, error) {
	return productResult(m.Called(ctx, name, labels))
}

func (e *MockProductCatalog_Expecter) UpdateProductLabels(ctx, name, labels any) *mock.Call {
	return e.mock.On("UpdateProductLabels", ctx, name, labels)
}
