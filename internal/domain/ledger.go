package domain

// Caller identifies who issued a command, as resolved by the dispatcher.
type Caller struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

// AdjustmentResult is returned by admin grant/revoke and bonus grants.
type AdjustmentResult struct {
	UserID  string `json:"user_id"`
	Delta   int64  `json:"delta"`
	Balance int64  `json:"balance"`
	Source  string `json:"source"`
}
