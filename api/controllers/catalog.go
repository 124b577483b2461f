package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Marlon-urtecho/TecnoAdmin-sub000/api/responses"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/api/validators"
	catalogsvc "github.com/Marlon-urtecho/TecnoAdmin-sub000/internal/catalog"
	pkgerrors "github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/errors"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/logger"
)

type createProductRequest struct {
	SKU               string                 `json:"sku" validate:"required"`
	Name              string                 `json:"name" validate:"required"`
	Description       *string                `json:"description,omitempty"`
	CategoryID        *string                `json:"category_id,omitempty" validate:"omitempty,uuid"`
	BrandID           *string                `json:"brand_id,omitempty" validate:"omitempty,uuid"`
	SupplierID        *string                `json:"supplier_id,omitempty" validate:"omitempty,uuid"`
	PriceCents        int                    `json:"price_cents" validate:"min=0"`
	CostPriceCents    *int                   `json:"cost_price_cents,omitempty" validate:"omitempty,min=0"`
	LowStockThreshold *int                   `json:"low_stock_threshold,omitempty" validate:"omitempty,min=0"`
	IsActive          *bool                  `json:"is_active,omitempty"`
	Variants          []createVariantRequest `json:"variants,omitempty" validate:"omitempty,dive"`
}

type createVariantRequest struct {
	SKU        string `json:"sku" validate:"required"`
	Name       string `json:"name" validate:"required"`
	PriceCents *int   `json:"price_cents,omitempty" validate:"omitempty,min=0"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

// CatalogCreateProduct creates a product along with its variants and seeded
// inventory records.
func CatalogCreateProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// CatalogAddVariant attaches a variant to an existing product.
func CatalogAddVariant(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload createVariantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.AddVariant(r.Context(), productID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, variant)
	}
}

// CatalogGetProduct returns one product with variants and display data.
func CatalogGetProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type createNamedRequest struct {
	Name         string  `json:"name" validate:"required"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
}

// CatalogCreateCategory creates a category.
func CatalogCreateCategory(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		var payload createNamedRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.CreateCategory(r.Context(), payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// CatalogCreateBrand creates a brand.
func CatalogCreateBrand(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		var payload createNamedRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		brand, err := svc.CreateBrand(r.Context(), payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, brand)
	}
}

// CatalogCreateSupplier creates a supplier.
func CatalogCreateSupplier(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		var payload createNamedRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		supplier, err := svc.CreateSupplier(r.Context(), payload.Name, payload.ContactEmail)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, supplier)
	}
}

// CatalogListCategories lists every category ordered by name.
func CatalogListCategories(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// CatalogListBrands lists every brand ordered by name.
func CatalogListBrands(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		brands, err := svc.ListBrands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brands)
	}
}

func (p createProductRequest) toCreateInput() (catalogsvc.CreateProductInput, error) {
	input := catalogsvc.CreateProductInput{
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		PriceCents:        p.PriceCents,
		CostPriceCents:    p.CostPriceCents,
		LowStockThreshold: p.LowStockThreshold,
		IsActive:          true,
	}
	if p.IsActive != nil {
		input.IsActive = *p.IsActive
	}

	var err error
	if input.CategoryID, err = parseOptionalUUID(p.CategoryID, "category_id"); err != nil {
		return catalogsvc.CreateProductInput{}, err
	}
	if input.BrandID, err = parseOptionalUUID(p.BrandID, "brand_id"); err != nil {
		return catalogsvc.CreateProductInput{}, err
	}
	if input.SupplierID, err = parseOptionalUUID(p.SupplierID, "supplier_id"); err != nil {
		return catalogsvc.CreateProductInput{}, err
	}

	input.Variants = make([]catalogsvc.CreateVariantInput, 0, len(p.Variants))
	for _, v := range p.Variants {
		input.Variants = append(input.Variants, v.toInput())
	}
	return input, nil
}

func (v createVariantRequest) toInput() catalogsvc.CreateVariantInput {
	input := catalogsvc.CreateVariantInput{
		SKU:        v.SKU,
		Name:       v.Name,
		PriceCents: v.PriceCents,
		IsActive:   true,
	}
	if v.IsActive != nil {
		input.IsActive = *v.IsActive
	}
	return input
}

func parseOptionalUUID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "must be a valid uuid").WithDetails(map[string]any{"field": field})
	}
	return &id, nil
}
