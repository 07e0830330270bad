package domain

// CheckInResult is returned by a successful check-in.
type CheckInResult struct {
	UserID      string `json:"user_id"`
	Date        string `json:"date"`
	StreakCount int    `json:"streak_count"`
	BasePoints  int64  `json:"base_points"`
	BonusPoints int64  `json:"bonus_points"`
	Credited    int64  `json:"credited"`
	Balance     int64  `json:"balance"`
}

// DailyResetResult summarizes one batch reset run.
type DailyResetResult struct {
	Date          string `json:"date"`
	AccountsReset int    `json:"accounts_reset"`
	Failed        int    `json:"failed"`
}

// BonusRunResult summarizes one weekly bonus run.
type BonusRunResult struct {
	Amount     int64 `json:"amount"`
	Recipients int   `json:"recipients"`
	Granted    int   `json:"granted"`
	Failed     int   `json:"failed"`
}
