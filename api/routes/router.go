package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Marlon-urtecho/TecnoAdmin-sub000/api/controllers"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/api/middleware"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/internal/catalog"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/internal/inventory"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/config"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/db"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/enums"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/logger"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/redis"
)

// NewRouter wires the HTTP surface. Mutations require manager or admin;
// reads are open to any authenticated staff member.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	inventoryService inventory.Service,
	inventoryQueries inventory.QueryService,
	catalogService catalog.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	anyStaff := middleware.RequireRole(logg,
		enums.ActorRoleAdmin.String(),
		enums.ActorRoleManager.String(),
		enums.ActorRoleStaff.String(),
	)
	managers := middleware.RequireRole(logg,
		enums.ActorRoleAdmin.String(),
		enums.ActorRoleManager.String(),
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/inventory", func(r chi.Router) {
			r.With(anyStaff).Get("/", controllers.InventoryList(inventoryQueries, logg))
			r.With(anyStaff).Get("/stats", controllers.InventoryStats(inventoryQueries, logg))

			r.Route("/{inventoryId}", func(r chi.Router) {
				r.With(anyStaff).Get("/", controllers.InventoryGet(inventoryService, logg))
				r.With(anyStaff).Get("/transactions", controllers.InventoryTransactions(inventoryQueries, logg))
				r.With(managers).Put("/stock", controllers.InventoryAdjustStock(inventoryService, logg))
				r.With(managers).Patch("/stock", controllers.InventoryApplyDelta(inventoryService, logg))
				r.With(managers).Put("/reserved", controllers.InventoryAdjustReserved(inventoryService, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.With(managers).Post("/", controllers.CatalogCreateProduct(catalogService, logg))
			r.With(anyStaff).Get("/{productId}", controllers.CatalogGetProduct(catalogService, logg))
			r.With(managers).Post("/{productId}/variants", controllers.CatalogAddVariant(catalogService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.With(anyStaff).Get("/", controllers.CatalogListCategories(catalogService, logg))
			r.With(managers).Post("/", controllers.CatalogCreateCategory(catalogService, logg))
		})
		r.Route("/brands", func(r chi.Router) {
			r.With(anyStaff).Get("/", controllers.CatalogListBrands(catalogService, logg))
			r.With(managers).Post("/", controllers.CatalogCreateBrand(catalogService, logg))
		})
		r.With(managers).Post("/suppliers", controllers.CatalogCreateSupplier(catalogService, logg))
	})

	return r
}
