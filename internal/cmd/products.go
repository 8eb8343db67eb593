package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/productsearch/internal/services"
)

// CreateProductCmd creates a product
type CreateProductCmd struct {
	ProjectID   string `arg:"" help:"Project id"`
	Location    string `arg:"" help:"Location (e.g. us-west1)"`
	ProductID   string `arg:"" help:"Product id (empty lets the service choose)"`
	DisplayName string `arg:"" help:"Product display name"`
	Category    string `arg:"" help:"Product category (homegoods-v2, apparel-v2, toys-v2, packagedgoods-v1, general-v1)"`

	Description string `help:"Product description"`
}

// Run executes the createProduct command
func (c *CreateProductCmd) Run(cli *CLI) error {
	product, err := cli.Container.ProductService.CreateProduct(context.Background(), services.CreateProductParams{
		Category:    c.Category,
		Description: c.Description,
		DisplayName: c.DisplayName,
		Location:    c.Location,
		ProductID:   c.ProductID,
		Project:     c.ProjectID,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.Out(), "Product name: %s\n", product.Name)
	return nil
}

// GetProductCmd shows a product
type GetProductCmd struct {
	ProjectID string `arg:"" help:"Project id"`
	Location  string `arg:"" help:"Location (e.g. us-west1)"`
	ProductID string `arg:"" help:"Product id"`
}

// Run executes the getProduct command
func (c *GetProductCmd) Run(cli *CLI) error {
	product, err := cli.Container.ProductService.GetProduct(context.Background(), c.ProjectID, c.Location, c.ProductID)
	if err != nil {
		return err
	}

	printProduct(cli.Out(), *product)
	return nil
}

// ListProductsCmd lists the products in a location
type ListProductsCmd struct {
	ProjectID string `arg:"" help:"Project id"`
	Location  string `arg:"" help:"Location (e.g. us-west1)"`

	Format string `help:"Output format (text, json or table)" default:"text" enum:"text,json,table"`
}

// Run executes the listProducts command
func (c *ListProductsCmd) Run(cli *CLI) error {
	products, err := cli.Container.ProductService.ListProducts(context.Background(), c.ProjectID, c.Location)
	if err != nil {
		return err
	}

	return writeProducts(cli.Out(), c.Format, products)
}

// DeleteProductCmd deletes a product
type DeleteProductCmd struct {
	ProjectID string `arg:"" help:"Project id"`
	Location  string `arg:"" help:"Location (e.g. us-west1)"`
	ProductID string `arg:"" help:"Product id"`
}

// Run executes the deleteProduct command
func (c *DeleteProductCmd) Run(cli *CLI) error {
	if err := cli.Container.ProductService.DeleteProduct(context.Background(), c.ProjectID, c.Location, c.ProductID); err != nil {
		return err
	}

	fmt.Fprintln(cli.Out(), "Product deleted.")
	return nil
}

// UpdateProductLabelsCmd replaces the labels of a product with one key/value pair
type UpdateProductLabelsCmd struct {
	ProjectID string `arg:"" help:"Project id"`
	Location  string `arg:"" help:"Location (e.g. us-west1)"`
	ProductID string `arg:"" help:"Product id"`
	Key       string `arg:"" help:"Label key"`
	Value     string `arg:"" help:"Label value"`
}

// Run executes the updateProductLabels command
func (c *UpdateProductLabelsCmd) Run(cli *CLI) error {
	product, err := cli.Container.ProductService.UpdateProductLabels(context.Background(),
		c.ProjectID, c.Location, c.ProductID, c.Key, c.Value)
	if err != nil {
		return err
	}

	printUpdatedProduct(cli.Out(), *product)
	return nil
}
