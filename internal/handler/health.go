package handler

import (
	"context"
	"net/http"
	"time"

	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/utils"

	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// HealthCheck checks one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

func Welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Welcome to the store admin API"))
}

// Health answers 503 when any check fails.
func Health(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				logger.FromCtx(ctx).Warn("health check failed", zap.String("check", c.Name), zap.Error(err))
				results[c.Name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[c.Name] = "ok"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		utils.WriteJSON(w, status, map[string]any{"status": state, "checks": results})
	}
}
