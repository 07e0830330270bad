package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Wager errors
	ErrMsgInvalidBetAmount = "invalid bet amount"
	ErrMsgUnknownGame      = "unknown game"
	ErrMsgInvalidChoice    = "invalid choice"

	// Ledger errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgDailyCapExceeded  = "daily earnings cap exceeded"
	ErrMsgInvalidAmount     = "amount must be positive"

	// Attendance errors
	ErrMsgAlreadyAttended = "already attended today"

	// Redemption errors
	ErrMsgUnknownCode     = "unknown coupon code"
	ErrMsgAlreadyRedeemed = "coupon already redeemed"
	ErrMsgUnknownItem     = "unknown item"

	// Access errors
	ErrMsgUnauthorized = "unauthorized"

	// User errors
	ErrMsgUserNotFound = "user not found"

	// Store errors
	ErrMsgStoreUnavailable = "store unavailable"
	ErrMsgVersionConflict  = "account was modified concurrently"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidBetAmount = errors.New(ErrMsgInvalidBetAmount)
	ErrUnknownGame      = errors.New(ErrMsgUnknownGame)
	ErrInvalidChoice    = errors.New(ErrMsgInvalidChoice)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrDailyCapExceeded  = errors.New(ErrMsgDailyCapExceeded)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)

	ErrAlreadyAttended = errors.New(ErrMsgAlreadyAttended)

	ErrUnknownCode     = errors.New(ErrMsgUnknownCode)
	ErrAlreadyRedeemed = errors.New(ErrMsgAlreadyRedeemed)
	ErrUnknownItem     = errors.New(ErrMsgUnknownItem)

	ErrUnauthorized = errors.New(ErrMsgUnauthorized)

	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	ErrStoreUnavailable = errors.New(ErrMsgStoreUnavailable)
	ErrVersionConflict  = errors.New(ErrMsgVersionConflict)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// IsTransient reports whether err is an infrastructure failure the caller may retry.
func IsTransient(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrVersionConflict)
}
