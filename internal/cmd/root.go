package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/renato0307/productsearch/internal/config"
	"github.com/renato0307/productsearch/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Backend     string           `help:"Catalog backend (local or vision); overrides $PRODUCTSEARCH_BACKEND"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	CreateProduct               CreateProductCmd               `cmd:"" name:"createProduct" help:"Create a product"`
	GetProduct                  GetProductCmd                  `cmd:"" name:"getProduct" help:"Show a product"`
	ListProducts                ListProductsCmd                `cmd:"" name:"listProducts" help:"List products in a location"`
	DeleteProduct               DeleteProductCmd               `cmd:"" name:"deleteProduct" help:"Delete a product"`
	UpdateProductLabels         UpdateProductLabelsCmd         `cmd:"" name:"updateProductLabels" help:"Replace the labels of a product with a single key/value"`
	CreateProductSet            CreateProductSetCmd            `cmd:"" name:"createProductSet" help:"Create a product set"`
	GetProductSet               GetProductSetCmd               `cmd:"" name:"getProductSet" help:"Show a product set"`
	ListProductSets             ListProductSetsCmd             `cmd:"" name:"listProductSets" help:"List product sets in a location"`
	DeleteProductSet            DeleteProductSetCmd            `cmd:"" name:"deleteProductSet" help:"Delete a product set (member products are kept)"`
	AddProductToProductSet      AddProductToProductSetCmd      `cmd:"" name:"addProductToProductSet" help:"Add a product to a product set"`
	RemoveProductFromProductSet RemoveProductFromProductSetCmd `cmd:"" name:"removeProductFromProductSet" help:"Remove a product from a product set"`
	ListProductsInProductSet    ListProductsInProductSetCmd    `cmd:"" name:"listProductsInProductSet" help:"List the products in a product set"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	out       io.Writer        `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// SetOutput redirects command output (stdout by default)
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// Out returns the writer commands print to
func (c *CLI) Out() io.Writer {
	if c.out == nil {
		return os.Stdout
	}
	return c.out
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Precedence: CLI flags > env vars > settings.json > defaults
	if c.settings != nil {
		if c.MaxLogFiles == 1000 {
			if _, hasEnv := os.LookupEnv(logging.EnvMaxLogFiles); !hasEnv && c.settings.MaxLogFiles != nil {
				c.MaxLogFiles = *c.settings.MaxLogFiles
			}
		}
		if !c.Debug {
			if _, hasEnv := os.LookupEnv(logging.EnvDebug); !hasEnv && c.settings.Debug != nil && *c.settings.Debug {
				c.Debug = true
			}
		}
	}

	logFilePath, err := logging.Initialize(logging.Options{
		Debug:    c.Debug,
		Dir:      config.GetLogDir(),
		File:     c.DebugFile,
		MaxFiles: c.MaxLogFiles,
	})
	if err != nil {
		return err
	}

	// Child processes append to the same log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv(logging.EnvDebug, "1")
		if logFilePath != "" {
			os.Setenv(logging.EnvDebugFile, logFilePath)
		}
	}

	resolved, err := c.resolve()
	if err != nil {
		return err
	}

	// Container is created after logging so the gorm logger has a target
	if c.Container == nil {
		catalog, err := NewCatalog(context.Background(), resolved)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		c.Container = NewContainer(catalog)
	}

	return nil
}

// resolve applies the --backend flag on top of env and settings
func (c *CLI) resolve() (config.Resolved, error) {
	resolved := config.Resolve(c.settings)
	if c.Backend != "" {
		resolved.Backend = c.Backend
	}
	if !slices.Contains(config.ValidBackends, resolved.Backend) {
		return resolved, fmt.Errorf("unknown backend %q (valid: %s)",
			resolved.Backend, strings.Join(config.ValidBackends, ", "))
	}
	logging.Logger.Debug("Configuration resolved",
		"backend", resolved.Backend,
		"project", resolved.Project,
		"endpoint", resolved.Endpoint)
	return resolved, nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
