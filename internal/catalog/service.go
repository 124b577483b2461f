package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Marlon-urtecho/TecnoAdmin-sub000/internal/inventory"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/db"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/db/models"
	pkgerrors "github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/errors"
)

// Service exposes the catalog management operations. Every create that adds
// a sellable unit also seeds its zeroed inventory record in the same
// transaction, so the inventory subsystem never sees a product it cannot
// track.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	AddVariant(ctx context.Context, productID uuid.UUID, input CreateVariantInput) (*VariantDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	CreateBrand(ctx context.Context, name string) (*models.Brand, error)
	CreateSupplier(ctx context.Context, name string, contactEmail *string) (*models.Supplier, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	SKU               string
	Name              string
	Description       *string
	CategoryID        *uuid.UUID
	BrandID           *uuid.UUID
	SupplierID        *uuid.UUID
	PriceCents        int
	CostPriceCents    *int
	LowStockThreshold *int
	IsActive          bool
	Variants          []CreateVariantInput
}

// CreateVariantInput describes one variation created with or after the product.
type CreateVariantInput struct {
	SKU        string
	Name       string
	PriceCents *int
	IsActive   bool
}

const defaultLowStockThreshold = 5

type service struct {
	repo      *Repository
	inventory *inventory.Repository
	dbClient  *db.Client
}

// NewService constructs a catalog service instance. Inventory rows are
// written through the ledger store only; the catalog never touches the
// inventory tables directly.
func NewService(repo *Repository, inventoryRepo *inventory.Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if inventoryRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, inventory: inventoryRepo, dbClient: dbClient}, nil
}

// CreateProduct inserts the product, its variants, and the zeroed inventory
// records as one unit. Without variants the product gets a single base
// record; with variants each variant gets its own and no base record exists.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	threshold := defaultLowStockThreshold
	if input.LowStockThreshold != nil {
		if *input.LowStockThreshold < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "low_stock_threshold cannot be negative")
		}
		threshold = *input.LowStockThreshold
	}

	var createdID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product := &models.Product{
			SKU:               strings.TrimSpace(input.SKU),
			Name:              strings.TrimSpace(input.Name),
			Description:       input.Description,
			CategoryID:        input.CategoryID,
			BrandID:           input.BrandID,
			SupplierID:        input.SupplierID,
			PriceCents:        input.PriceCents,
			CostPriceCents:    input.CostPriceCents,
			LowStockThreshold: threshold,
			IsActive:          input.IsActive,
		}
		if err := txRepo.CreateProduct(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdID = product.ID

		txInventory := s.inventory.WithTx(tx)

		if len(input.Variants) == 0 {
			record := &models.InventoryRecord{ProductID: product.ID}
			if err := txInventory.CreateRecord(ctx, record); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: seed inventory record")
			}
			return nil
		}

		for _, v := range input.Variants {
			variant := &models.ProductVariant{
				ProductID:  product.ID,
				SKU:        strings.TrimSpace(v.SKU),
				Name:       strings.TrimSpace(v.Name),
				PriceCents: v.PriceCents,
				IsActive:   v.IsActive,
			}
			if err := txRepo.CreateVariant(ctx, variant); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product variant")
			}
			record := &models.InventoryRecord{
				ProductID: product.ID,
				VariantID: &variant.ID,
			}
			if err := txInventory.CreateRecord(ctx, record); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: seed inventory record")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return s.GetProduct(ctx, createdID)
}

// AddVariant attaches a new variation to an existing product and seeds its
// inventory record in the same transaction.
func (s *service) AddVariant(ctx context.Context, productID uuid.UUID, input CreateVariantInput) (*VariantDTO, error) {
	if strings.TrimSpace(input.SKU) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant sku is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant name is required")
	}

	if _, err := s.repo.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	variant := &models.ProductVariant{
		ProductID:  productID,
		SKU:        strings.TrimSpace(input.SKU),
		Name:       strings.TrimSpace(input.Name),
		PriceCents: input.PriceCents,
		IsActive:   input.IsActive,
	}
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).CreateVariant(ctx, variant); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product variant")
		}
		record := &models.InventoryRecord{
			ProductID: productID,
			VariantID: &variant.ID,
		}
		if err := s.inventory.WithTx(tx).CreateRecord(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: seed inventory record")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add variant")
	}

	dto := NewVariantDTO(variant)
	return &dto, nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

func (s *service) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	category := &models.Category{Name: name}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}
	return category, nil
}

func (s *service) CreateBrand(ctx context.Context, name string) (*models.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand name is required")
	}
	brand := &models.Brand{Name: name}
	if err := s.repo.CreateBrand(ctx, brand); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert brand")
	}
	return brand, nil
}

func (s *service) CreateSupplier(ctx context.Context, name string, contactEmail *string) (*models.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}
	supplier := &models.Supplier{Name: name, ContactEmail: contactEmail}
	if err := s.repo.CreateSupplier(ctx, supplier); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert supplier")
	}
	return supplier, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	return categories, nil
}

func (s *service) ListBrands(ctx context.Context) ([]models.Brand, error) {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list brands")
	}
	return brands, nil
}

func validateProductInput(input CreateProductInput) error {
	if strings.TrimSpace(input.SKU) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.PriceCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price_cents cannot be negative")
	}
	seen := make(map[string]struct{}, len(input.Variants))
	for _, v := range input.Variants {
		sku := strings.TrimSpace(v.SKU)
		if sku == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant sku is required")
		}
		if strings.TrimSpace(v.Name) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant name is required")
		}
		if _, dup := seen[sku]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate variant sku %q", sku))
		}
		seen[sku] = struct{}{}
	}
	return nil
}
