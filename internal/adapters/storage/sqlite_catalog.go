package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/renato0307/productsearch/internal/domain"
	"github.com/renato0307/productsearch/internal/logging"
	"github.com/renato0307/productsearch/internal/ports"
)

// SQLiteCatalog implements ports.ProductCatalog on a local SQLite database.
// It emulates the catalog half of the managed service: products, product
// sets and membership. There is no image indexing.
type SQLiteCatalog struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.ProductCatalog = (*SQLiteCatalog)(nil)

// localCategories are the product categories the emulator accepts,
// the same set the managed service takes on create
var localCategories = []string{
	domain.CategoryApparel,
	domain.CategoryApparelV2,
	domain.CategoryGeneralV1,
	domain.CategoryHomegoods,
	domain.CategoryHomegoodsV2,
	domain.CategoryPackagedgoodsV1,
	domain.CategoryToys,
	domain.CategoryToysV2,
}

// gormLogger wraps the application logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("PRODUCTSEARCH_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteCatalog opens (and migrates) the catalog database at dbPath
func NewSQLiteCatalog(dbPath string) (*SQLiteCatalog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode so the CLI and a test process can share the file
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(
		&ProductModel{},
		&ProductLabelModel{},
		&ProductSetModel{},
		&ProductSetMemberModel{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	logging.Logger.Debug("Local catalog opened", "path", dbPath)
	return &SQLiteCatalog{db: db}, nil
}

// NewSQLiteCatalogForHome opens the catalog stored under a PRODUCTSEARCH_HOME directory
func NewSQLiteCatalogForHome(home string) (*SQLiteCatalog, error) {
	return NewSQLiteCatalog(filepath.Join(home, "catalog.db"))
}

// Close closes the database connection
func (c *SQLiteCatalog) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateProduct implements ProductWriter.CreateProduct
func (c *SQLiteCatalog) CreateProduct(ctx context.Context, parent, productID string, product domain.Product) (*domain.Product, error) {
	if err := domain.ValidateLocationPath(parent); err != nil {
		return nil, err
	}
	if err := domain.ValidateResourceID(productID); err != nil {
		return nil, err
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if !slices.Contains(localCategories, product.ProductCategory) {
		return nil, fmt.Errorf("%w: unknown product category %q", domain.ErrInvalidArgument, product.ProductCategory)
	}
	if productID == "" {
		productID = uuid.New().String()
	}
	product.Name = parent + "/products/" + productID

	err := withRetry(func() error {
		return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&ProductModel{}).Where("name = ?", product.Name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%w: product %s", domain.ErrAlreadyExists, product.Name)
			}

			model := domainToProductModel(product, parent)
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("failed to create product: %w", err)
			}

			if labels := labelsToModels(product.Name, product.Labels); len(labels) > 0 {
				if err := tx.Create(&labels).Error; err != nil {
					return fmt.Errorf("failed to create product labels: %w", err)
				}
			}
			return nil
		})
	}, 3)
	if err != nil {
		return nil, err
	}

	return c.GetProduct(ctx, product.Name)
}

// GetProduct implements ProductReader.GetProduct
func (c *SQLiteCatalog) GetProduct(ctx context.Context, name string) (*domain.Product, error) {
	var product ProductModel
	var labels []ProductLabelModel

	err := withRetry(func() error {
		return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("name = ?", name).First(&product).Error; err != nil {
				return err
			}
			return tx.Where("product_name = ?", name).Order("position").Find(&labels).Error
		})
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, name)
		}
		return nil, err
	}

	result := productModelToDomain(product, labels)
	return &result, nil
}

// ListProducts implements ProductReader.ListProducts
func (c *SQLiteCatalog) ListProducts(ctx context.Context, parent string) ([]domain.Product, error) {
	if err := domain.ValidateLocationPath(parent); err != nil {
		return nil, err
	}

	var products []ProductModel
	err := withRetry(func() error {
		return c.db.WithContext(ctx).Where("parent = ?", parent).Order("name").Find(&products).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	return c.withLabels(ctx, products)
}

// UpdateProductLabels implements ProductWriter.UpdateProductLabels.
// The given labels replace the existing ones.
func (c *SQLiteCatalog) UpdateProductLabels(ctx context.Context, name string, labels []domain.KeyValue) (*domain.Product, error) {
	if err := domain.ValidateLabels(labels); err != nil {
		return nil, err
	}

	err := withRetry(func() error {
		return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&ProductModel{}).Where("name = ?", name).Update("updated_at", time.Now().UTC())
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: product %s", domain.ErrNotFound, name)
			}

			if err := tx.Where("product_name = ?", name).Delete(&ProductLabelModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear product labels: %w", err)
			}
			if models := labelsToModels(name, labels); len(models) > 0 {
				if err := tx.Create(&models).Error; err != nil {
					return fmt.Errorf("failed to write product labels: %w", err)
				}
			}
			return nil
		})
	}, 3)
	if err != nil {
		return nil, err
	}

	return c.GetProduct(ctx, name)
}

// DeleteProduct implements ProductWriter.DeleteProduct.
// Memberships of the product are removed with it.
func (c *SQLiteCatalog) DeleteProduct(ctx context.Context, name string) error {
	return withRetry(func() error {
		return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Where("name = ?", name).Delete(&ProductModel{})
			if res.Error != nil {
				return fmt.Errorf("failed to delete product %s: %w", name, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: product %s", domain.ErrNotFound, name)
			}

			if err := tx.Where("product_name = ?", name).Delete(&ProductLabelModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete product labels: %w", err)
			}
			if err := tx.Where("product_name = ?", name).Delete(&ProductSetMemberModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete product memberships: %w", err)
			}
			return nil
		})
	}, 3)
}

// CreateProductSet implements ProductSetWriter.CreateProductSet
func (c *SQLiteCatalog) CreateProductSet(ctx context.Context, parent, productSetID string, productSet domain.ProductSet) (*domain.ProductSet, error) {
	if err := domain.ValidateLocationPath(parent); err != nil {
		return nil, err
	}
	if err := domain.ValidateResourceID(productSetID); err != nil {
		return nil, err
	}
	if err := productSet.Validate(); err != nil {
		return nil, err
	}
	if productSetID == "" {
		productSetID = uuid.New().String()
	}
	name := parent + "/productSets/" + productSetID

	err := withRetry(func() error {
		return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&ProductSetModel{}).Where("name = ?", name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%w: product set %s", domain.ErrAlreadyExists, name)
			}

			model := ProductSetModel{
				DisplayName: productSet.DisplayName,
				Name:        name,
				Parent:      parent,
			}
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("failed to create product set: %w", err)
			}
			return nil
		})
	}, 3)
	if err != nil {
		return nil, err
	}

	return c.GetProductSet(ctx, name)
}

// GetProductSet implements ProductSetReader.GetProductSet
func (c *SQLiteCatalog) GetProductSet(ctx context.Context, name string) (*domain.ProductSet, error) {
	var model ProductSetModel
	err := withRetry(func() error {
		return c.db.WithContext(ctx).Where("name = ?", name).First(&model).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product set %s", domain.ErrNotFound, name)
		}
		return nil, err
	}

	result := productSetModelToDomain(model)
	return &result, nil
}

// ListProductSets implements ProductSetReader.ListProductSets
func (c *SQLiteCatalog) ListProductSets(ctx context.Context, parent string) ([]domain.ProductSet, error) {
	if err := domain.ValidateLocationPath(parent); err != nil {
		return nil, err
	}

	var models []ProductSetModel
	err := withRetry(func() error {
		return c.db.WithContext(ctx).Where("parent = ?", parent).Order("name").Find(&models).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ProductSet, len(models))
	for i, m := range models {
		result[i] = productSetModelToDomain(m)
	}
	return result, nil
}

// DeleteProductSet implements ProductSetWriter.DeleteProductSet.
// Member products are kept; only the membership rows go.
func (c *SQLiteCatalog) DeleteProductSet(ctx context.Context, name string) error {
	return withRetry(func() error {
		return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Where("name = ?", name).Delete(&ProductSetModel{})
			if res.Error != nil {
				return fmt.Errorf("failed to delete product set %s: %w", name, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: product set %s", domain.ErrNotFound, name)
			}

			if err := tx.Where("product_set_name = ?", name).Delete(&ProductSetMemberModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete product set memberships: %w", err)
			}
			return nil
		})
	}, 3)
}

// AddProductToProductSet implements ProductSetWriter.AddProductToProductSet.
// Adding a product that is already a member is a no-op.
func (c *SQLiteCatalog) AddProductToProductSet(ctx context.Context, productSetName, productName string) error {
	setParent, err := domain.ParentOf(productSetName)
	if err != nil {
		return err
	}
	productParent, err := domain.ParentOf(productName)
	if err != nil {
		return err
	}
	if setParent != productParent {
		return fmt.Errorf("%w: product %s and product set %s are in different locations",
			domain.ErrInvalidArgument, productName, productSetName)
	}

	return withRetry(func() error {
		return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := requireRow(tx, &ProductSetModel{}, productSetName, "product set"); err != nil {
				return err
			}
			if err := requireRow(tx, &ProductModel{}, productName, "product"); err != nil {
				return err
			}

			member := ProductSetMemberModel{ProductName: productName, ProductSetName: productSetName}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
				return fmt.Errorf("failed to add product to product set: %w", err)
			}
			return nil
		})
	}, 3)
}

// RemoveProductFromProductSet implements ProductSetWriter.RemoveProductFromProductSet.
// Removing a product that is not a member is a no-op.
func (c *SQLiteCatalog) RemoveProductFromProductSet(ctx context.Context, productSetName, productName string) error {
	return withRetry(func() error {
		return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := requireRow(tx, &ProductSetModel{}, productSetName, "product set"); err != nil {
				return err
			}

			err := tx.Where("product_set_name = ? AND product_name = ?", productSetName, productName).
				Delete(&ProductSetMemberModel{}).Error
			if err != nil {
				return fmt.Errorf("failed to remove product from product set: %w", err)
			}
			return nil
		})
	}, 3)
}

// ListProductsInProductSet implements ProductSetReader.ListProductsInProductSet
func (c *SQLiteCatalog) ListProductsInProductSet(ctx context.Context, name string) ([]domain.Product, error) {
	var products []ProductModel

	err := withRetry(func() error {
		return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := requireRow(tx, &ProductSetModel{}, name, "product set"); err != nil {
				return err
			}

			var members []ProductSetMemberModel
			if err := tx.Where("product_set_name = ?", name).Find(&members).Error; err != nil {
				return err
			}
			if len(members) == 0 {
				return nil
			}

			names := make([]string, len(members))
			for i, m := range members {
				names[i] = m.ProductName
			}
			return tx.Where("name IN ?", names).Order("name").Find(&products).Error
		})
	}, 3)
	if err != nil {
		return nil, err
	}

	return c.withLabels(ctx, products)
}

// withLabels loads labels for a batch of products in one query
func (c *SQLiteCatalog) withLabels(ctx context.Context, products []ProductModel) ([]domain.Product, error) {
	result := make([]domain.Product, 0, len(products))
	if len(products) == 0 {
		return result, nil
	}

	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}

	var labels []ProductLabelModel
	err := withRetry(func() error {
		return c.db.WithContext(ctx).Where("product_name IN ?", names).Order("product_name, position").Find(&labels).Error
	}, 3)
	if err != nil {
		return nil, err
	}

	labelMap := make(map[string][]ProductLabelModel)
	for _, l := range labels {
		labelMap[l.ProductName] = append(labelMap[l.ProductName], l)
	}

	for _, p := range products {
		result = append(result, productModelToDomain(p, labelMap[p.Name]))
	}
	return result, nil
}

// requireRow returns domain.ErrNotFound when no row of model has the given name
func requireRow(tx *gorm.DB, model any, name, kind string) error {
	var count int64
	if err := tx.Model(model).Where("name = ?", name).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind, name)
	}
	return nil
}

// withRetry retries operations on SQLITE_BUSY with linear backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			logging.Logger.Debug("Catalog database busy, retrying", "attempt", i+1)
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
