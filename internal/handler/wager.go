package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/wager"
)

// WagerRequest is the body of a wager on the game named in the path.
// Bet limits are checked by the resolver so every game reports them the same way.
type WagerRequest struct {
	UserID    string `json:"user_id" validate:"required,userid"`
	Choice    string `json:"choice" validate:"max=16"`
	BetAmount int64  `json:"bet_amount"`
}

func (req WagerRequest) accountKey() string { return req.UserID }

// GamesResponse lists the configured games
type GamesResponse struct {
	Games []domain.GameInfo `json:"games"`
}

// HandleWager resolves a single bet
// @Summary Place a wager
// @Description Debits the bet, draws the outcome, and credits bet x multiple on a win
// @Tags wager
// @Accept json
// @Produce json
// @Param game path string true "Game key (oddeven, dice, horse, slots)"
// @Param request body WagerRequest true "Wager request"
// @Success 200 {object} domain.WagerOutcome
// @Failure 400 {object} ErrorResponse "Invalid bet, invalid choice, not enough points, or daily cap reached"
// @Failure 404 {object} ErrorResponse "Unknown game"
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/wager/{game} [post]
func HandleWager(resolver wager.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game := chi.URLParam(r, "game")

		var req WagerRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Wager"); err != nil {
			return
		}

		r = r.WithContext(withAccount(r.Context(), req))
		outcome, err := resolver.Resolve(r.Context(), req.UserID, game, req.Choice, req.BetAmount)
		if err != nil {
			respondServiceError(w, r, "Wager", err)
			return
		}

		respondJSON(w, http.StatusOK, outcome)
	}
}

// HandleListGames returns the game table with fair and effective win probabilities
// @Summary List games
// @Tags wager
// @Produce json
// @Success 200 {object} GamesResponse
// @Router /api/v1/wager/games [get]
func HandleListGames(resolver wager.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, GamesResponse{Games: resolver.Games()})
	}
}
