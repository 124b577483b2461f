package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/config"
	pkgerrors "github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/errors"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/logger"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/pagination"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/redis"
)

// QueryService serves the read side: filtered listings, the dashboard
// statistics, and per-record transaction history. All reads reflect
// committed state at query time.
type QueryService interface {
	FilterInventory(ctx context.Context, filters ListFilters) ([]RecordDTO, error)
	Statistics(ctx context.Context) (*StatisticsDTO, error)
	TransactionHistory(ctx context.Context, inventoryID uuid.UUID, limit int) ([]TransactionDTO, error)
	InvalidateStats(ctx context.Context)
}

type queryService struct {
	repo         *Repository
	cache        *redis.Client
	cacheTTL     time.Duration
	historyLimit int
	historyMax   int
	logg         *logger.Logger
}

// NewQueryService constructs the read service. cache may be nil, in which
// case statistics are computed on every call.
func NewQueryService(repo *Repository, cache *redis.Client, cfg config.InventoryConfig, logg *logger.Logger) (QueryService, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &queryService{
		repo:         repo,
		cache:        cache,
		cacheTTL:     cfg.StatsCacheTTL,
		historyLimit: cfg.HistoryDefaultLimit,
		historyMax:   cfg.HistoryMaxLimit,
		logg:         logg,
	}, nil
}

func (s *queryService) FilterInventory(ctx context.Context, filters ListFilters) ([]RecordDTO, error) {
	records, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, mapStoreError(err, "list inventory records")
	}
	return records, nil
}

const statsCacheKey = "inventory:stats"

func (s *queryService) Statistics(ctx context.Context) (*StatisticsDTO, error) {
	if cached := s.cachedStats(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.repo.ComputeStats(ctx)
	if err != nil {
		return nil, mapStoreError(err, "compute inventory statistics")
	}
	dto := &StatisticsDTO{
		TotalActiveProducts:      stats.TotalActiveProducts,
		TotalOutOfStock:          stats.TotalOutOfStock,
		TotalLowStock:            stats.TotalLowStock,
		TotalInventoryValueCents: stats.TotalInventoryValueCents,
	}

	s.storeStats(ctx, dto)
	return dto, nil
}

// cachedStats returns the cached aggregate when present. Cache failures are
// logged and treated as a miss; the database remains the source of truth.
func (s *queryService) cachedStats(ctx context.Context) *StatisticsDTO {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.CacheKey(statsCacheKey))
	if err != nil {
		if !errors.Is(err, redis.Nil) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "reading stats cache")
		}
		return nil
	}
	var dto StatisticsDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "decoding stats cache")
		}
		return nil
	}
	return &dto
}

func (s *queryService) storeStats(ctx context.Context, dto *StatisticsDTO) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(dto)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.CacheKey(statsCacheKey), payload, s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "writing stats cache")
	}
}

// InvalidateStats drops the cached aggregate after a mutation so dashboards
// converge faster than the TTL. Best effort; the TTL bounds staleness anyway.
func (s *queryService) InvalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.CacheKey(statsCacheKey)); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "invalidating stats cache")
	}
}

func (s *queryService) TransactionHistory(ctx context.Context, inventoryID uuid.UUID, limit int) ([]TransactionDTO, error) {
	if _, err := s.repo.FindByID(ctx, inventoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory record not found")
		}
		return nil, mapStoreError(err, "load inventory record")
	}

	rows, err := s.repo.ListTransactions(ctx, inventoryID,
		pagination.NormalizeLimit(limit, s.historyLimit, s.historyMax))
	if err != nil {
		return nil, mapStoreError(err, "list stock transactions")
	}

	history := make([]TransactionDTO, 0, len(rows))
	for i := range rows {
		history = append(history, *NewTransactionDTO(&rows[i]))
	}
	return history, nil
}
