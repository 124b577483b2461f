package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Marlon-urtecho/TecnoAdmin-sub000/api/middleware"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/api/responses"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/api/validators"
	inventorysvc "github.com/Marlon-urtecho/TecnoAdmin-sub000/internal/inventory"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/enums"
	pkgerrors "github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/errors"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/logger"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/pagination"
)

// InventoryList returns the filtered inventory listing. The low-stock and
// out-of-stock flags accept both the English and Spanish query spellings the
// admin frontend emits.
func InventoryList(svc inventorysvc.QueryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory query service unavailable"))
			return
		}

		filters, err := listFiltersFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.FilterInventory(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

func listFiltersFromQuery(r *http.Request) (inventorysvc.ListFilters, error) {
	categoryID, err := validators.ParseQueryUUID(r, "categoryId")
	if err != nil {
		return inventorysvc.ListFilters{}, err
	}
	brandID, err := validators.ParseQueryUUID(r, "brandId")
	if err != nil {
		return inventorysvc.ListFilters{}, err
	}
	lowStock, err := validators.ParseQueryBool(r, "lowStock", "stockBajo")
	if err != nil {
		return inventorysvc.ListFilters{}, err
	}
	outOfStock, err := validators.ParseQueryBool(r, "outOfStock", "sinStock")
	if err != nil {
		return inventorysvc.ListFilters{}, err
	}

	return inventorysvc.ListFilters{
		Search:         strings.TrimSpace(r.URL.Query().Get("search")),
		CategoryID:     categoryID,
		BrandID:        brandID,
		LowStockOnly:   lowStock,
		OutOfStockOnly: outOfStock,
	}, nil
}

// InventoryStats serves the dashboard aggregate.
func InventoryStats(svc inventorysvc.QueryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory query service unavailable"))
			return
		}

		stats, err := svc.Statistics(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// InventoryTransactions lists the ledger entries for one record.
func InventoryTransactions(svc inventorysvc.QueryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory query service unavailable"))
			return
		}

		inventoryID, err := inventoryIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultHistoryLimit, 1, pagination.MaxHistoryLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history, err := svc.TransactionHistory(r.Context(), inventoryID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}

type adjustStockRequest struct {
	Quantity        int     `json:"quantity" validate:"min=0"`
	TransactionType *string `json:"transaction_type,omitempty"`
	Reason          *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// InventoryAdjustStock sets the on-hand counter to an absolute total.
func InventoryAdjustStock(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		inventoryID, err := inventoryIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adjustStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txType, err := parseOptionalTransactionType(payload.TransactionType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AdjustStock(r.Context(), inventorysvc.AdjustStockInput{
			InventoryID: inventoryID,
			Quantity:    payload.Quantity,
			Type:        txType,
			Reason:      payload.Reason,
			ActorID:     actorIDFromContext(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type applyDeltaRequest struct {
	Delta           int     `json:"delta"`
	TransactionType *string `json:"transaction_type,omitempty"`
	Reason          *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// InventoryApplyDelta applies a signed change to the on-hand counter.
func InventoryApplyDelta(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		inventoryID, err := inventoryIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload applyDeltaRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Delta == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "delta cannot be zero"))
			return
		}

		txType, err := parseOptionalTransactionType(payload.TransactionType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ApplyDelta(r.Context(), inventorysvc.ApplyDeltaInput{
			InventoryID: inventoryID,
			Delta:       payload.Delta,
			Type:        txType,
			Reason:      payload.Reason,
			ActorID:     actorIDFromContext(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type adjustReservedRequest struct {
	Quantity int     `json:"quantity" validate:"min=0"`
	Reason   *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// InventoryAdjustReserved sets the reserved counter to an absolute total.
func InventoryAdjustReserved(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		inventoryID, err := inventoryIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adjustReservedRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AdjustReserved(r.Context(), inventorysvc.AdjustReservedInput{
			InventoryID: inventoryID,
			Quantity:    payload.Quantity,
			Reason:      payload.Reason,
			ActorID:     actorIDFromContext(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// InventoryGet returns a single record by id.
func InventoryGet(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		inventoryID, err := inventoryIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.GetRecord(r.Context(), inventoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

func inventoryIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "inventoryId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inventory id")
	}
	return id, nil
}

func parseOptionalTransactionType(raw *string) (enums.StockTransactionType, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return "", nil
	}
	txType, err := enums.ParseStockTransactionType(strings.TrimSpace(*raw))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transaction type")
	}
	return txType, nil
}

func actorIDFromContext(r *http.Request) *uuid.UUID {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
