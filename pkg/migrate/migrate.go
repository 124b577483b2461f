package migrate

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/config"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/db/models"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/logger"
)

// Tables lists every model in dependency order for schema migration.
func Tables() []any {
	return []any{
		&models.Category{},
		&models.Brand{},
		&models.Supplier{},
		&models.Product{},
		&models.ProductVariant{},
		&models.InventoryRecord{},
		&models.StockTransaction{},
	}
}

// Run applies AutoMigrate over the full schema.
func Run(ctx context.Context, conn *gorm.DB) error {
	if err := conn.WithContext(ctx).AutoMigrate(Tables()...); err != nil {
		return fmt.Errorf("auto-migrating schema: %w", err)
	}
	return nil
}

// MaybeRunDev migrates automatically when the feature flag is set. Intended
// for dev environments; production uses cmd/migrate explicitly.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, conn *gorm.DB) error {
	if cfg == nil || !cfg.Features.AutoMigrate {
		return nil
	}
	if logg != nil {
		logg.Info(ctx, "running dev auto-migration")
	}
	return Run(ctx, conn)
}
