package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/db/models"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/enums"
)

// RecordDTO is the inventory payload returned to admin clients, carrying the
// joined catalog display data alongside the quantities.
type RecordDTO struct {
	ID                uuid.UUID        `json:"id"`
	ProductID         uuid.UUID        `json:"product_id"`
	VariantID         *uuid.UUID       `json:"variant_id,omitempty"`
	ProductName       string           `json:"product_name"`
	ProductSKU        string           `json:"product_sku"`
	VariantName       *string          `json:"variant_name,omitempty"`
	VariantSKU        *string          `json:"variant_sku,omitempty"`
	CategoryID        *uuid.UUID       `json:"category_id,omitempty"`
	CategoryName      *string          `json:"category_name,omitempty"`
	BrandID           *uuid.UUID       `json:"brand_id,omitempty"`
	BrandName         *string          `json:"brand_name,omitempty"`
	QuantityOnHand    int              `json:"quantity_on_hand"`
	QuantityReserved  int              `json:"quantity_reserved"`
	QuantityAvailable int              `json:"quantity_available"`
	LowStockAlert     bool             `json:"low_stock_alert"`
	StockState        enums.StockState `json:"stock_state"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TransactionDTO exposes one ledger entry.
type TransactionDTO struct {
	ID               uuid.UUID                  `json:"id"`
	InventoryID      uuid.UUID                  `json:"inventory_id"`
	ActorID          *uuid.UUID                 `json:"actor_id,omitempty"`
	Type             enums.StockTransactionType `json:"type"`
	PreviousQuantity int                        `json:"previous_quantity"`
	NewQuantity      int                        `json:"new_quantity"`
	QuantityDelta    int                        `json:"quantity_delta"`
	Reason           *string                    `json:"reason,omitempty"`
	CreatedAt        time.Time                  `json:"created_at"`
}

// StatisticsDTO is the admin dashboard aggregate.
type StatisticsDTO struct {
	TotalActiveProducts      int64 `json:"total_active_products"`
	TotalOutOfStock          int64 `json:"total_out_of_stock"`
	TotalLowStock            int64 `json:"total_low_stock"`
	TotalInventoryValueCents int64 `json:"total_inventory_value_cents"`
}

// NewRecordDTO builds a DTO from the bare model, without catalog joins.
// Mutation responses use it; list reads carry joined display columns instead.
func NewRecordDTO(record *models.InventoryRecord) *RecordDTO {
	dto := &RecordDTO{
		ID:                record.ID,
		ProductID:         record.ProductID,
		VariantID:         record.VariantID,
		QuantityOnHand:    record.QuantityOnHand,
		QuantityReserved:  record.QuantityReserved,
		QuantityAvailable: record.QuantityAvailable,
		LowStockAlert:     record.LowStockAlert,
		StockState:        enums.ClassifyStock(record.QuantityAvailable, record.LowStockAlert),
		UpdatedAt:         record.UpdatedAt,
	}
	if record.Product != nil {
		dto.ProductName = record.Product.Name
		dto.ProductSKU = record.Product.SKU
		dto.CategoryID = record.Product.CategoryID
		dto.BrandID = record.Product.BrandID
	}
	return dto
}

// NewTransactionDTO builds a DTO from the persisted ledger row.
func NewTransactionDTO(txn *models.StockTransaction) *TransactionDTO {
	return &TransactionDTO{
		ID:               txn.ID,
		InventoryID:      txn.InventoryID,
		ActorID:          txn.ActorID,
		Type:             txn.Type,
		PreviousQuantity: txn.PreviousQuantity,
		NewQuantity:      txn.NewQuantity,
		QuantityDelta:    txn.QuantityDelta,
		Reason:           txn.Reason,
		CreatedAt:        txn.CreatedAt,
	}
}
