package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/db/models"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/enums"
	pkgerrors "github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/errors"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/pagination"
)

// MutationTarget selects which counter a ledger mutation writes.
type MutationTarget string

const (
	TargetOnHand   MutationTarget = "on_hand"
	TargetReserved MutationTarget = "reserved"
)

// ApplyMutationInput describes one atomic stock change. Exactly one of
// Absolute or Delta must be set; Target defaults to the on-hand counter.
// Reserved-target mutations may leave Type empty, in which case the
// reserved/released label is derived from the direction of the change.
type ApplyMutationInput struct {
	InventoryID uuid.UUID
	Target      MutationTarget
	Absolute    *int
	Delta       *int
	Type        enums.StockTransactionType
	Reason      *string
	ActorID     *uuid.UUID
}

// ListFilters are the read-side criteria, AND-combined.
type ListFilters struct {
	Search         string
	CategoryID     *uuid.UUID
	BrandID        *uuid.UUID
	LowStockOnly   bool
	OutOfStockOnly bool
}

// Stats is the raw aggregate row computed by the store.
type Stats struct {
	TotalActiveProducts      int64
	TotalOutOfStock          int64
	TotalLowStock            int64
	TotalInventoryValueCents int64
}

// Repository is the stock ledger store: the durable record of inventory
// levels plus the append-only transaction log. ApplyMutation is the only
// write path that touches quantities; the derived columns are recomputed
// nowhere else.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads the inventory record without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateRecord inserts a new inventory row. The catalog lifecycle calls it
// exactly once per (product, variant) with zeroed quantities.
func (r *Repository) CreateRecord(ctx context.Context, record *models.InventoryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

const mutationAttempts = 2

// ApplyMutation performs the read-modify-write plus ledger insert. Callers
// run it on a tx-bound repository so the whole unit commits or rolls back
// together. Lost updates are prevented by a compare-and-swap on both
// counters; a conflicting concurrent write is retried once against fresh
// state and then surfaced as a conflict instead of silently overwriting.
func (r *Repository) ApplyMutation(ctx context.Context, input ApplyMutationInput) (*models.InventoryRecord, *models.StockTransaction, error) {
	if (input.Absolute == nil) == (input.Delta == nil) {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "exactly one of absolute quantity or delta is required")
	}
	if input.Type == "" {
		if input.Target != TargetReserved {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "stock transaction type is required")
		}
	} else if !input.Type.IsValid() {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid stock transaction type %q", input.Type))
	}

	var lastErr error
	for attempt := 0; attempt < mutationAttempts; attempt++ {
		record, txn, err := r.tryMutation(ctx, input)
		if err == nil {
			return record, txn, nil
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeConflict {
			return nil, nil, err
		}
		lastErr = err
	}
	return nil, nil, lastErr
}

func (r *Repository) tryMutation(ctx context.Context, input ApplyMutationInput) (*models.InventoryRecord, *models.StockTransaction, error) {
	record, err := r.FindByID(ctx, input.InventoryID)
	if err != nil {
		return nil, nil, err
	}

	threshold, err := r.lowStockThreshold(ctx, record.ProductID)
	if err != nil {
		return nil, nil, err
	}

	prevOnHand := record.QuantityOnHand
	prevReserved := record.QuantityReserved

	newOnHand := prevOnHand
	newReserved := prevReserved
	var prevSnapshot, newSnapshot int

	txType := input.Type
	switch input.Target {
	case TargetReserved:
		target := resolveTarget(prevReserved, input)
		if target < 0 {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "reserved quantity cannot be negative")
		}
		newReserved = target
		prevSnapshot, newSnapshot = prevReserved, newReserved
		// The direction label must come from the same previous value the
		// compare-and-swap guards on, or a concurrent change could flip it.
		if txType == "" {
			if newReserved < prevReserved {
				txType = enums.StockTransactionTypeReleased
			} else {
				txType = enums.StockTransactionTypeReserved
			}
		}
	default:
		target := resolveTarget(prevOnHand, input)
		if target < 0 {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "on-hand quantity cannot be negative")
		}
		newOnHand = target
		prevSnapshot, newSnapshot = prevOnHand, newOnHand
	}

	newAvailable := newOnHand - newReserved
	lowAlert := newAvailable <= threshold
	now := time.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&models.InventoryRecord{}).
		Where("id = ? AND quantity_on_hand = ? AND quantity_reserved = ?", record.ID, prevOnHand, prevReserved).
		Updates(map[string]any{
			"quantity_on_hand":   newOnHand,
			"quantity_reserved":  newReserved,
			"quantity_available": newAvailable,
			"low_stock_alert":    lowAlert,
			"updated_at":         now,
		})
	if res.Error != nil {
		return nil, nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeConflict, "inventory record changed concurrently")
	}

	txn := &models.StockTransaction{
		InventoryID:      record.ID,
		ActorID:          input.ActorID,
		Type:             txType,
		PreviousQuantity: prevSnapshot,
		NewQuantity:      newSnapshot,
		QuantityDelta:    newSnapshot - prevSnapshot,
		Reason:           input.Reason,
	}
	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, nil, err
	}

	record.QuantityOnHand = newOnHand
	record.QuantityReserved = newReserved
	record.QuantityAvailable = newAvailable
	record.LowStockAlert = lowAlert
	record.UpdatedAt = now
	return record, txn, nil
}

func resolveTarget(current int, input ApplyMutationInput) int {
	if input.Absolute != nil {
		return *input.Absolute
	}
	return current + *input.Delta
}

func (r *Repository) lowStockThreshold(ctx context.Context, productID uuid.UUID) (int, error) {
	var threshold int
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("low_stock_threshold").
		Where("id = ?", productID).
		Scan(&threshold).Error
	if err != nil {
		return 0, err
	}
	return threshold, nil
}

// ListTransactions returns the ledger entries for one record, most recent
// first. Each call re-reads current state; it is not a subscription.
func (r *Repository) ListTransactions(ctx context.Context, inventoryID uuid.UUID, limit int) ([]models.StockTransaction, error) {
	var rows []models.StockTransaction
	err := r.db.WithContext(ctx).
		Where("inventory_id = ?", inventoryID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(pagination.NormalizeLimit(limit, pagination.DefaultHistoryLimit, pagination.MaxHistoryLimit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type recordRow struct {
	ID                uuid.UUID
	ProductID         uuid.UUID
	VariantID         *uuid.UUID
	ProductName       string
	ProductSKU        string
	VariantName       sql.NullString
	VariantSKU        sql.NullString
	CategoryID        *uuid.UUID
	CategoryName      sql.NullString
	BrandID           *uuid.UUID
	BrandName         sql.NullString
	QuantityOnHand    int
	QuantityReserved  int
	QuantityAvailable int
	LowStockAlert     bool
	UpdatedAt         time.Time
}

// List projects inventory records with their catalog display columns.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]RecordDTO, error) {
	qb := r.db.WithContext(ctx).
		Table("inventory_records i").
		Select(strings.Join([]string{
			"i.id",
			"i.product_id",
			"i.variant_id",
			"p.name AS product_name",
			"p.sku AS product_sku",
			"v.name AS variant_name",
			"v.sku AS variant_sku",
			"p.category_id",
			"c.name AS category_name",
			"p.brand_id",
			"b.name AS brand_name",
			"i.quantity_on_hand",
			"i.quantity_reserved",
			"i.quantity_available",
			"i.low_stock_alert",
			"i.updated_at",
		}, ", ")).
		Joins("JOIN products p ON p.id = i.product_id").
		Joins("LEFT JOIN product_variants v ON v.id = i.variant_id").
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Joins("LEFT JOIN brands b ON b.id = p.brand_id")

	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where(
			"(LOWER(p.name) LIKE ? OR LOWER(p.sku) LIKE ? OR LOWER(v.name) LIKE ? OR LOWER(v.sku) LIKE ?)",
			pattern, pattern, pattern, pattern,
		)
	}
	if filters.CategoryID != nil {
		qb = qb.Where("p.category_id = ?", *filters.CategoryID)
	}
	if filters.BrandID != nil {
		qb = qb.Where("p.brand_id = ?", *filters.BrandID)
	}
	if filters.LowStockOnly {
		qb = qb.Where("i.low_stock_alert = ? AND i.quantity_available > 0", true)
	}
	if filters.OutOfStockOnly {
		qb = qb.Where("i.quantity_available <= 0")
	}

	qb = qb.Order("i.updated_at DESC").Order("i.id DESC")

	var rows []recordRow
	if err := qb.Scan(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]RecordDTO, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toDTO())
	}
	return records, nil
}

func (row recordRow) toDTO() RecordDTO {
	return RecordDTO{
		ID:                row.ID,
		ProductID:         row.ProductID,
		VariantID:         row.VariantID,
		ProductName:       row.ProductName,
		ProductSKU:        row.ProductSKU,
		VariantName:       nullStringPtr(row.VariantName),
		VariantSKU:        nullStringPtr(row.VariantSKU),
		CategoryID:        row.CategoryID,
		CategoryName:      nullStringPtr(row.CategoryName),
		BrandID:           row.BrandID,
		BrandName:         nullStringPtr(row.BrandName),
		QuantityOnHand:    row.QuantityOnHand,
		QuantityReserved:  row.QuantityReserved,
		QuantityAvailable: row.QuantityAvailable,
		LowStockAlert:     row.LowStockAlert,
		StockState:        enums.ClassifyStock(row.QuantityAvailable, row.LowStockAlert),
		UpdatedAt:         row.UpdatedAt,
	}
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}

const statsQuery = `
SELECT
  (SELECT COUNT(*) FROM products p WHERE p.is_active = ?) AS total_active_products,
  (SELECT COUNT(*) FROM inventory_records i JOIN products p ON p.id = i.product_id
     WHERE p.is_active = ? AND i.quantity_available <= 0) AS total_out_of_stock,
  (SELECT COUNT(*) FROM inventory_records i JOIN products p ON p.id = i.product_id
     WHERE p.is_active = ? AND i.low_stock_alert = ? AND i.quantity_available > 0) AS total_low_stock,
  (SELECT COALESCE(SUM(i.quantity_available * COALESCE(p.cost_price_cents, 0)), 0)
     FROM inventory_records i JOIN products p ON p.id = i.product_id
     WHERE p.is_active = ?) AS total_inventory_value_cents
`

// ComputeStats runs the dashboard aggregate in one round trip. Missing cost
// prices count as zero in the valuation.
func (r *Repository) ComputeStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := r.db.WithContext(ctx).
		Raw(statsQuery, true, true, true, true, true).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
