package domain

// WagerOutcome is the result of a resolved wager.
type WagerOutcome struct {
	UserID         string   `json:"user_id"`
	Game           string   `json:"game"`
	Choice         string   `json:"choice,omitempty"`
	Result         string   `json:"result"`          // Displayed outcome: coin face, die face, winning horse
	Reels          []string `json:"reels,omitempty"` // Slots only
	BetAmount      int64    `json:"bet_amount"`
	Won            bool     `json:"won"`
	Payout         int64    `json:"payout"`       // Gross credit on win, 0 on loss
	NetChange      int64    `json:"net_change"`   // Payout - BetAmount
	Balance        int64    `json:"balance"`      // Balance after the wager
	EarnedToday    int64    `json:"earned_today"` // Daily earnings after the wager
	PayoutMultiple int64    `json:"payout_multiple"`
}

// GameInfo describes one configured game for listing.
type GameInfo struct {
	Key                     string   `json:"key"`
	Name                    string   `json:"name"`
	Choices                 []string `json:"choices,omitempty"`
	FairWinProbability      float64  `json:"fair_win_probability"`
	EffectiveWinProbability float64  `json:"effective_win_probability"`
	PayoutMultiple          int64    `json:"payout_multiple"`
	MinBet                  int64    `json:"min_bet"`
	MaxBet                  int64    `json:"max_bet"`
	BetUnit                 int64    `json:"bet_unit"`
}
