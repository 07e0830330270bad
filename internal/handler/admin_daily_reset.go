package handler

import (
	"context"
	"net/http"

	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/logger"
)

// DailyResetter runs the daily attendance reset once
type DailyResetter interface {
	RunOnce(ctx context.Context) (*domain.DailyResetResult, error)
}

// DailyResetResponse reports a manual reset run
type DailyResetResponse struct {
	Message string                   `json:"message"`
	Result  *domain.DailyResetResult `json:"result"`
}

// AdminDailyResetHandler handles the manual daily reset endpoint
type AdminDailyResetHandler struct {
	resetter DailyResetter
}

// NewAdminDailyResetHandler creates a new AdminDailyResetHandler
func NewAdminDailyResetHandler(resetter DailyResetter) *AdminDailyResetHandler {
	return &AdminDailyResetHandler{resetter: resetter}
}

// HandleManualReset triggers the daily attendance reset immediately
// @Summary Manually trigger the daily reset
// @Description Clears every account's attended flag and breaks streaks of users who missed yesterday
// @Tags admin
// @Produce json
// @Success 200 {object} DailyResetResponse
// @Failure 409 {object} ErrorResponse "A reset is already running"
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/admin/daily-reset [post]
func (h *AdminDailyResetHandler) HandleManualReset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Info("Manual daily reset triggered")

	result, err := h.resetter.RunOnce(r.Context())
	if err != nil {
		respondServiceError(w, r, "Daily reset", err)
		return
	}

	respondJSON(w, http.StatusOK, DailyResetResponse{
		Message: MsgDailyResetCompleted,
		Result:  result,
	})
}
