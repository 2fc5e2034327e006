package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/shopcart/api/responses"
	"github.com/angelmondragon/shopcart/pkg/config"
	pkgerrors "github.com/angelmondragon/shopcart/pkg/errors"
	"github.com/angelmondragon/shopcart/pkg/logger"
)

const readyTimeout = 2 * time.Second

// Pinger is the readiness check surface of the slot backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Shopcart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once the slot backend answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, slot Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Shopcart-Env", cfg.App.Env)
		driver := cfg.Storage.NormalizedDriver()

		if slot != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
			defer cancel()
			if err := slot.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "slot backend unavailable").
						WithDetails(map[string]any{"storage": driver}))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready", "storage": driver})
	}
}
