package cmd

import (
	"context"
	"fmt"
)

// CreateProductSetCmd creates a product set
type CreateProductSetCmd struct {
	ProjectID    string `arg:"" help:"Project id"`
	Location     string `arg:"" help:"Location (e.g. us-west1)"`
	ProductSetID string `arg:"" help:"Product set id (empty lets the service choose)"`
	DisplayName  string `arg:"" help:"Product set display name"`
}

// Run executes the createProductSet command
func (c *CreateProductSetCmd) Run(cli *CLI) error {
	productSet, err := cli.Container.ProductSetService.CreateProductSet(context.Background(),
		c.ProjectID, c.Location, c.ProductSetID, c.DisplayName)
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.Out(), "Product Set name: %s\n", productSet.Name)
	return nil
}

// GetProductSetCmd shows a product set
type GetProductSetCmd struct {
	ProjectID    string `arg:"" help:"Project id"`
	Location     string `arg:"" help:"Location (e.g. us-west1)"`
	ProductSetID string `arg:"" help:"Product set id"`
}

// Run executes the getProductSet command
func (c *GetProductSetCmd) Run(cli *CLI) error {
	productSet, err := cli.Container.ProductSetService.GetProductSet(context.Background(),
		c.ProjectID, c.Location, c.ProductSetID)
	if err != nil {
		return err
	}

	printProductSet(cli.Out(), *productSet)
	return nil
}

// ListProductSetsCmd lists the product sets in a location
type ListProductSetsCmd struct {
	ProjectID string `arg:"" help:"Project id"`
	Location  string `arg:"" help:"Location (e.g. us-west1)"`

	Format string `help:"Output format (text, json or table)" default:"text" enum:"text,json,table"`
}

// Run executes the listProductSets command
func (c *ListProductSetsCmd) Run(cli *CLI) error {
	sets, err := cli.Container.ProductSetService.ListProductSets(context.Background(), c.ProjectID, c.Location)
	if err != nil {
		return err
	}

	return writeProductSets(cli.Out(), c.Format, sets)
}

// DeleteProductSetCmd deletes a product set
type DeleteProductSetCmd struct {
	ProjectID    string `arg:"" help:"Project id"`
	Location     string `arg:"" help:"Location (e.g. us-west1)"`
	ProductSetID string `arg:"" help:"Product set id"`
}

// Run executes the deleteProductSet command
func (c *DeleteProductSetCmd) Run(cli *CLI) error {
	if err := cli.Container.ProductSetService.DeleteProductSet(context.Background(),
		c.ProjectID, c.Location, c.ProductSetID); err != nil {
		return err
	}

	fmt.Fprintln(cli.Out(), "Product set deleted.")
	return nil
}

// AddProductToProductSetCmd adds a product to a product set
type AddProductToProductSetCmd struct {
	ProjectID    string `arg:"" help:"Project id"`
	Location     string `arg:"" help:"Location (e.g. us-west1)"`
	ProductID    string `arg:"" help:"Product id"`
	ProductSetID string `arg:"" help:"Product set id"`
}

// Run executes the addProductToProductSet command
func (c *AddProductToProductSetCmd) Run(cli *CLI) error {
	if err := cli.Container.ProductSetService.AddProduct(context.Background(),
		c.ProjectID, c.Location, c.ProductID, c.ProductSetID); err != nil {
		return err
	}

	fmt.Fprintln(cli.Out(), "Product added to product set.")
	return nil
}

// RemoveProductFromProductSetCmd removes a product from a product set
type RemoveProductFromProductSetCmd struct {
	ProjectID    string `arg:"" help:"Project id"`
	Location     string `arg:"" help:"Location (e.g. us-west1)"`
	ProductID    string `arg:"" help:"Product id"`
	ProductSetID string `arg:"" help:"Product set id"`
}

// Run executes the removeProductFromProductSet command
func (c *RemoveProductFromProductSetCmd) Run(cli *CLI) error {
	if err := cli.Container.ProductSetService.RemoveProduct(context.Background(),
		c.ProjectID, c.Location, c.ProductID, c.ProductSetID); err != nil {
		return err
	}

	fmt.Fprintln(cli.Out(), "Product removed from product set.")
	return nil
}

// ListProductsInProductSetCmd lists the members of a product set
type ListProductsInProductSetCmd struct {
	ProjectID    string `arg:"" help:"Project id"`
	Location     string `arg:"" help:"Location (e.g. us-west1)"`
	ProductSetID string `arg:"" help:"Product set id"`

	Format string `help:"Output format (text, json or table)" default:"text" enum:"text,json,table"`
}

// Run executes the listProductsInProductSet command
func (c *ListProductsInProductSetCmd) Run(cli *CLI) error {
	products, err := cli.Container.ProductSetService.ListProducts(context.Background(),
		c.ProjectID, c.Location, c.ProductSetID)
	if err != nil {
		return err
	}

	return writeProducts(cli.Out(), c.Format, products)
}
