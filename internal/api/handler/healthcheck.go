package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const healthcheckTimeout = 2 * time.Second

// Pinger verifica a disponibilidade do banco de dados
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthcheckHandler responde 503 quando o banco não responde ao ping
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				logrus.WithError(err).Warn("error responding to healthcheck")
				status["status"] = "degraded"
				status["database"] = "unavailable"
				writeJSON(w, http.StatusServiceUnavailable, status)
				return
			}
			status["database"] = "ok"
		}

		writeJSON(w, http.StatusOK, status)
	})
}
