package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	inventorysvc "github.com/Marlon-urtecho/TecnoAdmin-sub000/internal/inventory"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/enums"
	pkgerrors "github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/errors"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/logger"
)

type stubInventoryService struct {
	adjustInput   *inventorysvc.AdjustStockInput
	deltaInput    *inventorysvc.ApplyDeltaInput
	reservedInput *inventorysvc.AdjustReservedInput
	err           error
}

func (s *stubInventoryService) AdjustStock(_ context.Context, input inventorysvc.AdjustStockInput) (*inventorysvc.MutationResult, error) {
	s.adjustInput = &input
	if s.err != nil {
		return nil, s.err
	}
	return stubResult(input.InventoryID), nil
}

func (s *stubInventoryService) ApplyDelta(_ context.Context, input inventorysvc.ApplyDeltaInput) (*inventorysvc.MutationResult, error) {
	s.deltaInput = &input
	if s.err != nil {
		return nil, s.err
	}
	return stubResult(input.InventoryID), nil
}

func (s *stubInventoryService) AdjustReserved(_ context.Context, input inventorysvc.AdjustReservedInput) (*inventorysvc.MutationResult, error) {
	s.reservedInput = &input
	if s.err != nil {
		return nil, s.err
	}
	return stubResult(input.InventoryID), nil
}

func (s *stubInventoryService) GetRecord(_ context.Context, id uuid.UUID) (*inventorysvc.RecordDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &inventorysvc.RecordDTO{ID: id}, nil
}

func stubResult(id uuid.UUID) *inventorysvc.MutationResult {
	return &inventorysvc.MutationResult{
		Record:      &inventorysvc.RecordDTO{ID: id},
		Transaction: &inventorysvc.TransactionDTO{InventoryID: id},
	}
}

type stubQueryService struct {
	filters inventorysvc.ListFilters
	err     error
}

func (s *stubQueryService) FilterInventory(_ context.Context, filters inventorysvc.ListFilters) ([]inventorysvc.RecordDTO, error) {
	s.filters = filters
	if s.err != nil {
		return nil, s.err
	}
	return []inventorysvc.RecordDTO{}, nil
}

func (s *stubQueryService) Statistics(context.Context) (*inventorysvc.StatisticsDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &inventorysvc.StatisticsDTO{TotalActiveProducts: 7}, nil
}

func (s *stubQueryService) TransactionHistory(context.Context, uuid.UUID, int) ([]inventorysvc.TransactionDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []inventorysvc.TransactionDTO{}, nil
}

func (s *stubQueryService) InvalidateStats(context.Context) {}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func withInventoryParam(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("inventoryId", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestInventoryAdjustStock(t *testing.T) {
	logg := testLogger()
	inventoryID := uuid.New()

	t.Run("success", func(t *testing.T) {
		stub := &stubInventoryService{}
		body := `{"quantity": 12, "transaction_type": "received", "reason": "delivery"}`
		req := withInventoryParam(httptest.NewRequest(http.MethodPut, "/api/v1/inventory/"+inventoryID.String()+"/stock", strings.NewReader(body)), inventoryID.String())
		rec := httptest.NewRecorder()

		InventoryAdjustStock(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.adjustInput == nil {
			t.Fatal("service was not called")
		}
		if stub.adjustInput.Quantity != 12 || stub.adjustInput.Type != enums.StockTransactionTypeReceived {
			t.Fatalf("unexpected input: %+v", stub.adjustInput)
		}
	})

	t.Run("invalid inventory id", func(t *testing.T) {
		req := withInventoryParam(httptest.NewRequest(http.MethodPut, "/api/v1/inventory/nope/stock", strings.NewReader(`{"quantity": 1}`)), "nope")
		rec := httptest.NewRecorder()

		InventoryAdjustStock(&stubInventoryService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("negative quantity", func(t *testing.T) {
		body := `{"quantity": -3}`
		req := withInventoryParam(httptest.NewRequest(http.MethodPut, "/api/v1/inventory/"+inventoryID.String()+"/stock", strings.NewReader(body)), inventoryID.String())
		rec := httptest.NewRecorder()

		InventoryAdjustStock(&stubInventoryService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown transaction type", func(t *testing.T) {
		body := `{"quantity": 3, "transaction_type": "restocked"}`
		req := withInventoryParam(httptest.NewRequest(http.MethodPut, "/api/v1/inventory/"+inventoryID.String()+"/stock", strings.NewReader(body)), inventoryID.String())
		rec := httptest.NewRecorder()

		InventoryAdjustStock(&stubInventoryService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown body field rejected", func(t *testing.T) {
		body := `{"quantity": 3, "qty": 4}`
		req := withInventoryParam(httptest.NewRequest(http.MethodPut, "/api/v1/inventory/"+inventoryID.String()+"/stock", strings.NewReader(body)), inventoryID.String())
		rec := httptest.NewRecorder()

		InventoryAdjustStock(&stubInventoryService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		stub := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeConflict, "inventory record changed concurrently")}
		body := `{"quantity": 3}`
		req := withInventoryParam(httptest.NewRequest(http.MethodPut, "/api/v1/inventory/"+inventoryID.String()+"/stock", strings.NewReader(body)), inventoryID.String())
		rec := httptest.NewRecorder()

		InventoryAdjustStock(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		var envelope struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if envelope.Error.Code != "CONFLICT" {
			t.Fatalf("expected CONFLICT code, got %q", envelope.Error.Code)
		}
	})
}

func TestInventoryApplyDelta(t *testing.T) {
	logg := testLogger()
	inventoryID := uuid.New()

	t.Run("success", func(t *testing.T) {
		stub := &stubInventoryService{}
		body := `{"delta": -4, "transaction_type": "damaged"}`
		req := withInventoryParam(httptest.NewRequest(http.MethodPatch, "/api/v1/inventory/"+inventoryID.String()+"/stock", strings.NewReader(body)), inventoryID.String())
		rec := httptest.NewRecorder()

		InventoryApplyDelta(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.deltaInput == nil || stub.deltaInput.Delta != -4 {
			t.Fatalf("unexpected input: %+v", stub.deltaInput)
		}
	})

	t.Run("zero delta rejected", func(t *testing.T) {
		body := `{"delta": 0}`
		req := withInventoryParam(httptest.NewRequest(http.MethodPatch, "/api/v1/inventory/"+inventoryID.String()+"/stock", strings.NewReader(body)), inventoryID.String())
		rec := httptest.NewRecorder()

		InventoryApplyDelta(&stubInventoryService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestInventoryAdjustReserved(t *testing.T) {
	logg := testLogger()
	inventoryID := uuid.New()

	stub := &stubInventoryService{}
	body := `{"quantity": 6}`
	req := withInventoryParam(httptest.NewRequest(http.MethodPut, "/api/v1/inventory/"+inventoryID.String()+"/reserved", strings.NewReader(body)), inventoryID.String())
	rec := httptest.NewRecorder()

	InventoryAdjustReserved(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.reservedInput == nil || stub.reservedInput.Quantity != 6 {
		t.Fatalf("unexpected input: %+v", stub.reservedInput)
	}
}

func TestInventoryListFilterParsing(t *testing.T) {
	logg := testLogger()

	t.Run("spanish aliases", func(t *testing.T) {
		stub := &stubQueryService{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory?stockBajo=true&search=%20mouse%20", nil)
		rec := httptest.NewRecorder()

		InventoryList(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !stub.filters.LowStockOnly {
			t.Fatal("stockBajo alias not honored")
		}
		if stub.filters.Search != "mouse" {
			t.Fatalf("search not trimmed: %q", stub.filters.Search)
		}
	})

	t.Run("english spellings", func(t *testing.T) {
		stub := &stubQueryService{}
		categoryID := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory?outOfStock=true&categoryId="+categoryID.String(), nil)
		rec := httptest.NewRecorder()

		InventoryList(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !stub.filters.OutOfStockOnly {
			t.Fatal("outOfStock flag not honored")
		}
		if stub.filters.CategoryID == nil || *stub.filters.CategoryID != categoryID {
			t.Fatalf("categoryId not parsed: %+v", stub.filters.CategoryID)
		}
	})

	t.Run("bad category id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory?categoryId=nope", nil)
		rec := httptest.NewRecorder()

		InventoryList(&stubQueryService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestInventoryStatsEnvelope(t *testing.T) {
	logg := testLogger()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/stats", nil)
	rec := httptest.NewRecorder()

	InventoryStats(&stubQueryService{}, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data struct {
			TotalActiveProducts int64 `json:"total_active_products"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Data.TotalActiveProducts != 7 {
		t.Fatalf("expected 7 active products, got %d", envelope.Data.TotalActiveProducts)
	}
}

func TestInventoryTransactionsValidatesLimit(t *testing.T) {
	logg := testLogger()
	inventoryID := uuid.New()

	req := withInventoryParam(httptest.NewRequest(http.MethodGet, "/api/v1/inventory/"+inventoryID.String()+"/transactions?limit=abc", nil), inventoryID.String())
	rec := httptest.NewRecorder()

	InventoryTransactions(&stubQueryService{}, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
