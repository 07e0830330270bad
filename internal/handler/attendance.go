package handler

import (
	"context"
	"net/http"

	"github.com/osse101/GuildPoints_Go/internal/attendance"
	"github.com/osse101/GuildPoints_Go/internal/domain"
)

// CheckInRequest is the body of a daily check-in
type CheckInRequest struct {
	UserID string `json:"user_id" validate:"required,userid"`
}

func (req CheckInRequest) accountKey() string { return req.UserID }

// HandleCheckIn records today's attendance and credits the streak reward
// @Summary Daily check-in
// @Description Credits the base reward plus any streak bonus once per day (UTC+9)
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body CheckInRequest true "Check-in request"
// @Success 200 {object} domain.CheckInResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already checked in today"
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/attendance/check-in [post]
func HandleCheckIn(svc attendance.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleAction(w, r, "Check in", func(ctx context.Context, req CheckInRequest) (*domain.CheckInResult, error) {
			return svc.CheckIn(ctx, req.UserID)
		})
	}
}
