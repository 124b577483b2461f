package controllers

import (
	"net/http"

	"github.com/Marlon-urtecho/TecnoAdmin-sub000/api/responses"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/config"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/db"
	pkgerrors "github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/errors"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/logger"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TecnoAdmin-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the database and, when configured, Redis. A nil client
// means the dependency is not part of this deployment and is skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TecnoAdmin-Env", cfg.App.Env)

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
