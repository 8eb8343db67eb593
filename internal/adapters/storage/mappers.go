package storage

import (
	"time"

	"github.com/renato0307/productsearch/internal/domain"
)

// productModelToDomain converts a product row and its labels to domain
func productModelToDomain(m ProductModel, labels []ProductLabelModel) domain.Product {
	result := domain.Product{
		Description:     m.Description,
		DisplayName:     m.DisplayName,
		Labels:          make([]domain.KeyValue, 0, len(labels)),
		Name:            m.Name,
		ProductCategory: m.ProductCategory,
	}
	for _, l := range labels {
		result.Labels = append(result.Labels, domain.KeyValue{Key: l.Key, Value: l.Value})
	}
	return result
}

// domainToProductModel converts a domain product to its row
func domainToProductModel(p domain.Product, parent string) ProductModel {
	return ProductModel{
		Description:     p.Description,
		DisplayName:     p.DisplayName,
		Name:            p.Name,
		Parent:          parent,
		ProductCategory: p.ProductCategory,
	}
}

// labelsToModels converts domain labels to rows in their original order
func labelsToModels(productName string, labels []domain.KeyValue) []ProductLabelModel {
	models := make([]ProductLabelModel, len(labels))
	for i, l := range labels {
		models[i] = ProductLabelModel{
			Key:         l.Key,
			Position:    i,
			ProductName: productName,
			Value:       l.Value,
		}
	}
	return models
}

// productSetModelToDomain converts a product set row to domain.
// A set that was never indexed reports the Unix epoch, like the managed service.
func productSetModelToDomain(m ProductSetModel) domain.ProductSet {
	indexTime := time.Unix(0, 0).UTC()
	if m.IndexTime != nil {
		indexTime = m.IndexTime.UTC()
	}
	return domain.ProductSet{
		DisplayName: m.DisplayName,
		IndexTime:   indexTime,
		Name:        m.Name,
	}
}
