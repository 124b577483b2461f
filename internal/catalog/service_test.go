package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/Marlon-urtecho/TecnoAdmin-sub000/internal/inventory"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/config"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/db"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/db/models"
	pkgerrors "github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/errors"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/migrate"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()

	cfg := config.DBConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	if err := migrate.Run(context.Background(), client.DB()); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	svc, err := NewService(NewRepository(client.DB()), inventory.NewRepository(client.DB()), client)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, client
}

func TestCreateProductSeedsBaseInventoryRecord(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, CreateProductInput{
		SKU:        "LAPTOP-001",
		Name:       "Workstation",
		PriceCents: 150000,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	var record models.InventoryRecord
	err = client.DB().
		Where("product_id = ? AND variant_id IS NULL", product.ID).
		First(&record).Error
	if err != nil {
		t.Fatalf("load seeded record: %v", err)
	}
	if record.QuantityOnHand != 0 || record.QuantityReserved != 0 || record.QuantityAvailable != 0 {
		t.Fatalf("seeded record not zeroed: %+v", record)
	}
	if record.LowStockAlert {
		t.Fatal("seeded record should not start with the alert set")
	}
}

func TestCreateProductWithVariantsSeedsPerVariantRecords(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, CreateProductInput{
		SKU:        "SHIRT-001",
		Name:       "Polo",
		PriceCents: 2500,
		IsActive:   true,
		Variants: []CreateVariantInput{
			{SKU: "SHIRT-001-S", Name: "Small", IsActive: true},
			{SKU: "SHIRT-001-M", Name: "Medium", IsActive: true},
		},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if len(product.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(product.Variants))
	}

	var perVariant int64
	if err := client.DB().Model(&models.InventoryRecord{}).
		Where("product_id = ? AND variant_id IS NOT NULL", product.ID).
		Count(&perVariant).Error; err != nil {
		t.Fatalf("count variant records: %v", err)
	}
	if perVariant != 2 {
		t.Fatalf("expected 2 variant records, got %d", perVariant)
	}

	var base int64
	if err := client.DB().Model(&models.InventoryRecord{}).
		Where("product_id = ? AND variant_id IS NULL", product.ID).
		Count(&base).Error; err != nil {
		t.Fatalf("count base records: %v", err)
	}
	if base != 0 {
		t.Fatal("product with variants should not get a base record")
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := map[string]CreateProductInput{
		"missing sku":           {Name: "X", PriceCents: 100},
		"missing name":          {SKU: "X-1", PriceCents: 100},
		"negative price":        {SKU: "X-1", Name: "X", PriceCents: -1},
		"duplicate variant sku": {SKU: "X-1", Name: "X", PriceCents: 100, Variants: []CreateVariantInput{{SKU: "V", Name: "A"}, {SKU: "V", Name: "B"}}},
	}
	for name, input := range cases {
		_, err := svc.CreateProduct(ctx, input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestAddVariantSeedsRecordAndRequiresProduct(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, CreateProductInput{
		SKU: "CAM-001", Name: "Camera", PriceCents: 40000, IsActive: true,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	variant, err := svc.AddVariant(ctx, product.ID, CreateVariantInput{
		SKU: "CAM-001-B", Name: "Black", IsActive: true,
	})
	if err != nil {
		t.Fatalf("add variant: %v", err)
	}

	var record models.InventoryRecord
	if err := client.DB().Where("variant_id = ?", variant.ID).First(&record).Error; err != nil {
		t.Fatalf("load variant record: %v", err)
	}

	_, err = svc.AddVariant(ctx, uuid.New(), CreateVariantInput{SKU: "X", Name: "X"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}
}

func TestCreateNamedEntities(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, "  "); pkgerrors.As(err) == nil {
		t.Fatal("expected validation error for blank category")
	}
	category, err := svc.CreateCategory(ctx, "Peripherals")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if category.Name != "Peripherals" {
		t.Fatalf("unexpected category name %q", category.Name)
	}

	if _, err := svc.CreateBrand(ctx, "Acme"); err != nil {
		t.Fatalf("create brand: %v", err)
	}
	brands, err := svc.ListBrands(ctx)
	if err != nil {
		t.Fatalf("list brands: %v", err)
	}
	if len(brands) != 1 {
		t.Fatalf("expected 1 brand, got %d", len(brands))
	}

	if _, err := svc.CreateSupplier(ctx, "Global Parts", strPtr("sales@globalparts.test")); err != nil {
		t.Fatalf("create supplier: %v", err)
	}
}

func strPtr(v string) *string { return &v }
