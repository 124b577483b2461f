package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/enums"
)

// StockTransaction records one immutable stock change. Rows are only ever
// inserted; nothing in the codebase updates or deletes them. ActorID is nil
// for system-initiated mutations.
type StockTransaction struct {
	ID               uuid.UUID                  `gorm:"column:id;type:uuid;primaryKey"`
	InventoryID      uuid.UUID                  `gorm:"column:inventory_id;type:uuid;not null;index"`
	ActorID          *uuid.UUID                 `gorm:"column:actor_id;type:uuid"`
	Type             enums.StockTransactionType `gorm:"column:type;not null"`
	PreviousQuantity int                        `gorm:"column:previous_quantity;not null"`
	NewQuantity      int                        `gorm:"column:new_quantity;not null"`
	QuantityDelta    int                        `gorm:"column:quantity_delta;not null"`
	Reason           *string                    `gorm:"column:reason"`
	Inventory        *InventoryRecord           `gorm:"foreignKey:InventoryID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time                  `gorm:"column:created_at;autoCreateTime"`
}
