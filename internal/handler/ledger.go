package handler

import (
	"net/http"

	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/ledger"
)

// LeaderboardResponse wraps the ranking rows
type LeaderboardResponse struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// HandleGetBalance returns a user's balance summary
// @Summary Get balance
// @Description Returns points, streak, and today's earnings against the daily cap. Unknown users read as zero.
// @Tags account
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.BalanceSummary
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/account/balance [get]
func HandleGetBalance(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		summary, err := svc.Balance(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get balance", err)
			return
		}

		respondJSON(w, http.StatusOK, summary)
	}
}

// HandleGetLeaderboard returns the top accounts by points
// @Summary Points leaderboard
// @Tags account
// @Produce json
// @Param limit query int false "Number of entries (default 10, max 100)"
// @Success 200 {object} LeaderboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/leaderboard [get]
func HandleGetLeaderboard(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetLimitParam(r, w)
		if !ok {
			return
		}

		entries, err := svc.Leaderboard(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "Get leaderboard", err)
			return
		}
		if entries == nil {
			entries = []domain.LeaderboardEntry{}
		}

		respondJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
	}
}
