package storage

import "time"

// ProductModel is the GORM model for products table
type ProductModel struct {
	CreatedAt       time.Time
	Description     string `gorm:"not null;default:''"`
	DisplayName     string `gorm:"not null"`
	Name            string `gorm:"primaryKey"`
	Parent          string `gorm:"not null;index:idx_products_parent"`
	ProductCategory string `gorm:"not null"`
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (ProductModel) TableName() string { return "products" }

// ProductLabelModel is the GORM model for product labels
type ProductLabelModel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Key         string `gorm:"column:label_key;not null"`
	Position    int    `gorm:"not null;default:0"`
	ProductName string `gorm:"not null;index:idx_product_labels_product"`
	Value       string `gorm:"column:label_value;not null"`
}

// TableName specifies the table name for GORM
func (ProductLabelModel) TableName() string { return "product_labels" }

// ProductSetModel is the GORM model for product sets
type ProductSetModel struct {
	CreatedAt   time.Time
	DisplayName string     `gorm:"not null"`
	IndexTime   *time.Time `gorm:"default:null"`
	Name        string     `gorm:"primaryKey"`
	Parent      string     `gorm:"not null;index:idx_product_sets_parent"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (ProductSetModel) TableName() string { return "product_sets" }

// ProductSetMemberModel is the GORM model for product set membership
type ProductSetMemberModel struct {
	CreatedAt      time.Time
	ProductName    string `gorm:"primaryKey;index:idx_members_product"`
	ProductSetName string `gorm:"primaryKey"`
}

// TableName specifies the table name for GORM
func (ProductSetMemberModel) TableName() string { return "product_set_members" }
