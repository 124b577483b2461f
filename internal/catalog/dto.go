package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/db/models"
)

// ProductDTO is the catalog payload returned to admin clients.
type ProductDTO struct {
	ID                uuid.UUID    `json:"id"`
	SKU               string       `json:"sku"`
	Name              string       `json:"name"`
	Description       *string      `json:"description,omitempty"`
	CategoryID        *uuid.UUID   `json:"category_id,omitempty"`
	CategoryName      *string      `json:"category_name,omitempty"`
	BrandID           *uuid.UUID   `json:"brand_id,omitempty"`
	BrandName         *string      `json:"brand_name,omitempty"`
	SupplierID        *uuid.UUID   `json:"supplier_id,omitempty"`
	PriceCents        int          `json:"price_cents"`
	CostPriceCents    *int         `json:"cost_price_cents,omitempty"`
	LowStockThreshold int          `json:"low_stock_threshold"`
	IsActive          bool         `json:"is_active"`
	Variants          []VariantDTO `json:"variants"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// VariantDTO exposes one sellable variation.
type VariantDTO struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	PriceCents *int      `json:"price_cents,omitempty"`
	IsActive   bool      `json:"is_active"`
}

func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:                product.ID,
		SKU:               product.SKU,
		Name:              product.Name,
		Description:       product.Description,
		CategoryID:        product.CategoryID,
		BrandID:           product.BrandID,
		SupplierID:        product.SupplierID,
		PriceCents:        product.PriceCents,
		CostPriceCents:    product.CostPriceCents,
		LowStockThreshold: product.LowStockThreshold,
		IsActive:          product.IsActive,
		Variants:          make([]VariantDTO, 0, len(product.Variants)),
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
	if product.Category != nil {
		dto.CategoryName = &product.Category.Name
	}
	if product.Brand != nil {
		dto.BrandName = &product.Brand.Name
	}
	for i := range product.Variants {
		dto.Variants = append(dto.Variants, NewVariantDTO(&product.Variants[i]))
	}
	return dto
}

func NewVariantDTO(variant *models.ProductVariant) VariantDTO {
	return VariantDTO{
		ID:         variant.ID,
		ProductID:  variant.ProductID,
		SKU:        variant.SKU,
		Name:       variant.Name,
		PriceCents: variant.PriceCents,
		IsActive:   variant.IsActive,
	}
}
