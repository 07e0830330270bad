package handler

import (
	"context"
	"net/http"

	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/ledger"
)

// AdjustPointsRequest is the body of an admin grant or revoke.
// CallerID and CallerIsAdmin come from the chat dispatcher's role check.
type AdjustPointsRequest struct {
	CallerID      string `json:"caller_id" validate:"required,userid"`
	CallerIsAdmin bool   `json:"caller_is_admin"`
	UserID        string `json:"user_id" validate:"required,userid"`
	Amount        int64  `json:"amount" validate:"gt=0"`
}

func (req AdjustPointsRequest) accountKey() string { return req.UserID }

func (req AdjustPointsRequest) caller() domain.Caller {
	return domain.Caller{UserID: req.CallerID, IsAdmin: req.CallerIsAdmin}
}

// GrantBonusRequest is the body of a scheduled bonus credit
type GrantBonusRequest struct {
	UserID string `json:"user_id" validate:"required,userid"`
	Amount int64  `json:"amount" validate:"gt=0"`
}

func (req GrantBonusRequest) accountKey() string { return req.UserID }

// AdminPointsHandler serves admin point adjustments
type AdminPointsHandler struct {
	ledger ledger.Service
}

// NewAdminPointsHandler creates a new AdminPointsHandler
func NewAdminPointsHandler(svc ledger.Service) *AdminPointsHandler {
	return &AdminPointsHandler{ledger: svc}
}

// HandleGrant credits points to a user
// @Summary Grant points
// @Description Admin-only credit. Not counted toward the target's daily earnings.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdjustPointsRequest true "Grant request"
// @Success 200 {object} domain.AdjustmentResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/admin/grant [post]
func (h *AdminPointsHandler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Grant points", func(ctx context.Context, req AdjustPointsRequest) (*domain.AdjustmentResult, error) {
		return h.ledger.Grant(ctx, req.caller(), req.UserID, req.Amount)
	})
}

// HandleRevoke debits points from a user
// @Summary Revoke points
// @Description Admin-only debit. Fails with 400 if the balance would go negative.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdjustPointsRequest true "Revoke request"
// @Success 200 {object} domain.AdjustmentResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/admin/revoke [post]
func (h *AdminPointsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Revoke points", func(ctx context.Context, req AdjustPointsRequest) (*domain.AdjustmentResult, error) {
		return h.ledger.Revoke(ctx, req.caller(), req.UserID, req.Amount)
	})
}

// HandleGrantBonus credits a scheduled bonus such as the weekly role bonus
// @Summary Grant scheduled bonus
// @Tags admin
// @Accept json
// @Produce json
// @Param request body GrantBonusRequest true "Bonus request"
// @Success 200 {object} domain.AdjustmentResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/bonus [post]
func (h *AdminPointsHandler) HandleGrantBonus(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Grant bonus", func(ctx context.Context, req GrantBonusRequest) (*domain.AdjustmentResult, error) {
		return h.ledger.GrantBonus(ctx, req.UserID, req.Amount)
	})
}
