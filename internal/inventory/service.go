package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/db"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/db/models"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/enums"
	pkgerrors "github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/errors"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/metrics"
)

// Service is the stock mutation entry point: the only path administrative
// callers use to change quantities. It validates the request, runs the
// atomic store mutation inside one transaction, and returns the updated
// record. Authorization happened before we are called.
type Service interface {
	AdjustStock(ctx context.Context, input AdjustStockInput) (*MutationResult, error)
	ApplyDelta(ctx context.Context, input ApplyDeltaInput) (*MutationResult, error)
	AdjustReserved(ctx context.Context, input AdjustReservedInput) (*MutationResult, error)
	GetRecord(ctx context.Context, inventoryID uuid.UUID) (*RecordDTO, error)
}

// AdjustStockInput sets the on-hand counter to an absolute new total. The
// caller computes "current + received" itself; this mirrors the admin UI's
// "enter the new total" form and stays that way for compatibility.
type AdjustStockInput struct {
	InventoryID uuid.UUID
	Quantity    int
	Type        enums.StockTransactionType
	Reason      *string
	ActorID     *uuid.UUID
}

// ApplyDeltaInput applies a signed change to the on-hand counter. Preferred
// for new integrations since it is race-free for the caller.
type ApplyDeltaInput struct {
	InventoryID uuid.UUID
	Delta       int
	Type        enums.StockTransactionType
	Reason      *string
	ActorID     *uuid.UUID
}

// AdjustReservedInput sets the reserved counter to an absolute new total.
// The transaction type is derived from the direction of the change,
// against the same previous value the concurrency guard checks.
type AdjustReservedInput struct {
	InventoryID uuid.UUID
	Quantity    int
	Reason      *string
	ActorID     *uuid.UUID
}

// MutationResult pairs the updated record with the ledger entry it produced.
type MutationResult struct {
	Record      *RecordDTO      `json:"record"`
	Transaction *TransactionDTO `json:"transaction"`
}

type statsInvalidator interface {
	InvalidateStats(ctx context.Context)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	cache    statsInvalidator
	metrics  *metrics.StockMutationMetrics
}

// NewService constructs the mutation service. cache and mm may be nil; the
// statistics cache is TTL-bounded and invalidation is best effort, and the
// metrics collector no-ops when absent.
func NewService(repo *Repository, dbClient *db.Client, cache statsInvalidator, mm *metrics.StockMutationMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, cache: cache, metrics: mm}, nil
}

func (s *service) AdjustStock(ctx context.Context, input AdjustStockInput) (*MutationResult, error) {
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	txType := input.Type
	if txType == "" {
		txType = enums.StockTransactionTypeAdjustment
	}
	if !txType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid stock transaction type %q", txType))
	}

	return s.mutate(ctx, ApplyMutationInput{
		InventoryID: input.InventoryID,
		Target:      TargetOnHand,
		Absolute:    &input.Quantity,
		Type:        txType,
		Reason:      input.Reason,
		ActorID:     input.ActorID,
	})
}

func (s *service) ApplyDelta(ctx context.Context, input ApplyDeltaInput) (*MutationResult, error) {
	txType := input.Type
	if txType == "" {
		txType = enums.StockTransactionTypeAdjustment
	}
	if !txType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid stock transaction type %q", txType))
	}

	return s.mutate(ctx, ApplyMutationInput{
		InventoryID: input.InventoryID,
		Target:      TargetOnHand,
		Delta:       &input.Delta,
		Type:        txType,
		Reason:      input.Reason,
		ActorID:     input.ActorID,
	})
}

func (s *service) AdjustReserved(ctx context.Context, input AdjustReservedInput) (*MutationResult, error) {
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	return s.mutate(ctx, ApplyMutationInput{
		InventoryID: input.InventoryID,
		Target:      TargetReserved,
		Absolute:    &input.Quantity,
		Reason:      input.Reason,
		ActorID:     input.ActorID,
	})
}

func (s *service) mutate(ctx context.Context, input ApplyMutationInput) (*MutationResult, error) {
	start := time.Now()
	var (
		record *models.InventoryRecord
		txn    *models.StockTransaction
	)
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		record, txn, err = s.repo.WithTx(tx).ApplyMutation(ctx, input)
		return err
	})
	if err != nil {
		mapped := mapStoreError(err, "apply stock mutation")
		if typed := pkgerrors.As(mapped); typed != nil && typed.Code() == pkgerrors.CodeConflict {
			s.metrics.IncConflict(string(input.Target))
		}
		return nil, mapped
	}

	s.metrics.ObserveApplied(string(txn.Type), string(input.Target), time.Since(start))
	if s.cache != nil {
		s.cache.InvalidateStats(ctx)
	}

	return &MutationResult{
		Record:      NewRecordDTO(record),
		Transaction: NewTransactionDTO(txn),
	}, nil
}

func (s *service) GetRecord(ctx context.Context, inventoryID uuid.UUID) (*RecordDTO, error) {
	record, err := s.repo.FindByID(ctx, inventoryID)
	if err != nil {
		return nil, mapStoreError(err, "load inventory record")
	}
	return NewRecordDTO(record), nil
}

// mapStoreError translates storage failures into the shared taxonomy without
// swallowing anything: typed errors pass through, missing rows become
// NOT_FOUND, everything else is a dependency failure and the mutation must
// be assumed not applied.
func mapStoreError(err error, action string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "inventory record not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
