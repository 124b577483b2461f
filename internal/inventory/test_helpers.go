package inventory

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/db/models"
)

type testProductOpts struct {
	name           string
	threshold      int
	costPriceCents *int
	isActive       bool
	categoryID     *uuid.UUID
	brandID        *uuid.UUID
}

func defaultProductOpts() testProductOpts {
	return testProductOpts{
		name:      "Test Product",
		threshold: 5,
		isActive:  true,
	}
}

func mustCreateTestProduct(t *testing.T, conn *gorm.DB, opts testProductOpts) *models.Product {
	t.Helper()
	product := &models.Product{
		SKU:               fmt.Sprintf("SKU-%s", uuid.NewString()),
		Name:              opts.name,
		CategoryID:        opts.categoryID,
		BrandID:           opts.brandID,
		PriceCents:        1000,
		CostPriceCents:    opts.costPriceCents,
		LowStockThreshold: opts.threshold,
		IsActive:          opts.isActive,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustCreateTestCategory(t *testing.T, conn *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	if err := conn.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateTestBrand(t *testing.T, conn *gorm.DB, name string) *models.Brand {
	t.Helper()
	brand := &models.Brand{Name: name}
	if err := conn.Create(brand).Error; err != nil {
		t.Fatalf("create brand: %v", err)
	}
	return brand
}

// mustSeedRecord inserts an inventory row with pre-set counters and the
// derived columns already consistent, as the mutation path would leave them.
func mustSeedRecord(t *testing.T, conn *gorm.DB, product *models.Product, onHand, reserved int) *models.InventoryRecord {
	t.Helper()
	available := onHand - reserved
	record := &models.InventoryRecord{
		ProductID:         product.ID,
		QuantityOnHand:    onHand,
		QuantityReserved:  reserved,
		QuantityAvailable: available,
		LowStockAlert:     available <= product.LowStockThreshold,
	}
	if err := conn.Create(record).Error; err != nil {
		t.Fatalf("seed inventory record: %v", err)
	}
	return record
}

func countTransactions(t *testing.T, conn *gorm.DB, inventoryID uuid.UUID) int64 {
	t.Helper()
	var count int64
	if err := conn.Model(&models.StockTransaction{}).Where("inventory_id = ?", inventoryID).Count(&count).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	return count
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
