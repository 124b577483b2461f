package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryRecord is the current stock snapshot for one product or one
// product variant (VariantID nil means the base product). QuantityAvailable
// and LowStockAlert are stored for query performance but are recomputed
// exclusively inside the ledger mutation path; no other code writes them.
type InventoryRecord struct {
	ID                uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	ProductID         uuid.UUID  `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_inventory_product_variant"`
	VariantID         *uuid.UUID `gorm:"column:variant_id;type:uuid;uniqueIndex:idx_inventory_product_variant"`
	QuantityOnHand    int        `gorm:"column:quantity_on_hand;not null;default:0"`
	QuantityReserved  int        `gorm:"column:quantity_reserved;not null;default:0"`
	QuantityAvailable int        `gorm:"column:quantity_available;not null;default:0"`
	LowStockAlert     bool       `gorm:"column:low_stock_alert;not null;default:false"`
	Product           *Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
