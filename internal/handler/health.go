package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/GuildPoints_Go/internal/logger"
)

const readinessTimeout = 2 * time.Second

// HealthResponse is the body of /healthz and /readyz
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Pinger reports store connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandleHealthz is the liveness probe. It never touches the store.
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK})
	}
}

// HandleReadyz is the readiness probe. It fails while the account store is unreachable.
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		err := store.Ping(ctx)
		if err == nil {
			respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK})
			return
		}

		logger.FromContext(ctx).Error(LogMsgReadinessFailed, "error", err)
		respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:  HealthStatusUnavailable,
			Message: ErrMsgStoreUnreachable,
		})
	}
}
