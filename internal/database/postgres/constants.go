package postgres

// Error messages
const (
	ErrMsgFailedToGetAccount      = "failed to get account"
	ErrMsgFailedToSaveAccount     = "failed to save account"
	ErrMsgFailedToListAccounts    = "failed to list accounts"
	ErrMsgFailedToLoadLeaderboard = "failed to load leaderboard"
)
