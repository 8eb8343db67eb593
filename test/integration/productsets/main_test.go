// Package productsets_test runs the product set commands of the productsearch
// CLI end to end against one baseline product and one baseline product set.
package productsets_test

import (
	"context"
	"os"
	"testing"

	"github.com/renato0307/productsearch/internal/domain"
	"github.com/renato0307/productsearch/test/integration/harness"
)

// Shared fixture data for product set tests
const (
	productCategory       = domain.CategoryHomegoods
	productDisplayName    = "test_product_display_name_1"
	productSetDisplayName = "test_product_set_display_name_1"
)

var suite = &harness.Suite{
	Checks: []harness.Check{harness.BinaryCheck, harness.CredentialsCheck},
	Name:   "productsets",
	Setup:  setup,
}

// setup creates the baseline product and product set every test works with
func setup(ctx context.Context, sc *harness.SuiteContext) error {
	product := sc.Fixtures.NewProduct("test_product_id", productDisplayName, productCategory)
	if err := sc.CreateProduct(ctx, product); err != nil {
		return &harness.FixtureSetupError{Err: err, Resource: product.Path}
	}
	sc.Share("product", product)

	productSet := sc.Fixtures.NewProductSet("test_product_set_id", productSetDisplayName)
	if err := sc.CreateProductSet(ctx, productSet); err != nil {
		return &harness.FixtureSetupError{Err: err, Resource: productSet.Path}
	}
	sc.Share("productSet", productSet)

	return nil
}

func TestMain(m *testing.M) {
	os.Exit(suite.Main(m))
}
