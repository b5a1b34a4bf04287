package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/ogdeig/diamond-ave-storefront/api/responses"
	"github.com/ogdeig/diamond-ave-storefront/pkg/config"
	pkgerrors "github.com/ogdeig/diamond-ave-storefront/pkg/errors"
	"github.com/ogdeig/diamond-ave-storefront/pkg/logger"
)

// Pinger reports reachability of an external collaborator.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-DiamondAve-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, pingers ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-DiamondAve-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var combined error
		for _, p := range pingers {
			if p == nil {
				continue
			}
			combined = multierr.Append(combined, p.Ping(ctx))
		}
		if combined != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "dependencies not ready"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
