package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog listing managed through the admin panel.
// The inventory subsystem reads LowStockThreshold and CostPriceCents as
// foreign data; everything else is display material.
type Product struct {
	ID                uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	SKU               string           `gorm:"column:sku;not null;uniqueIndex"`
	Name              string           `gorm:"column:name;not null"`
	Description       *string          `gorm:"column:description"`
	CategoryID        *uuid.UUID       `gorm:"column:category_id;type:uuid"`
	BrandID           *uuid.UUID       `gorm:"column:brand_id;type:uuid"`
	SupplierID        *uuid.UUID       `gorm:"column:supplier_id;type:uuid"`
	PriceCents        int              `gorm:"column:price_cents;not null"`
	CostPriceCents    *int             `gorm:"column:cost_price_cents"`
	LowStockThreshold int              `gorm:"column:low_stock_threshold;not null;default:5"`
	IsActive          bool             `gorm:"column:is_active;not null;default:true"`
	Category          *Category        `gorm:"foreignKey:CategoryID"`
	Brand             *Brand           `gorm:"foreignKey:BrandID"`
	Variants          []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
