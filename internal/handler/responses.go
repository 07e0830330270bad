package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/GuildPoints_Go/internal/domain"
	"github.com/osse101/GuildPoints_Go/internal/logger"
	"github.com/osse101/GuildPoints_Go/internal/metrics"
	"github.com/osse101/GuildPoints_Go/internal/worker"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Headers are written only after a successful encode
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors.
// The Discord client matches on these strings to pick a friendly reply.
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnavailableError   = "Server is temporarily unavailable. Please try again later."
	ErrMsgBusyError          = "Your account is busy. Please try again."

	ErrMsgInvalidBetError      = "Invalid bet amount"
	ErrMsgUnknownGameError     = "Unknown game"
	ErrMsgInvalidChoiceError   = "Invalid choice for this game"
	ErrMsgNotEnoughPointsError = "Not enough points"
	ErrMsgDailyCapError        = "Daily earnings limit reached"
	ErrMsgInvalidAmountError   = "Amount must be positive"
	ErrMsgAlreadyAttendedError = "Already checked in today"
	ErrMsgUnknownCodeError     = "Unknown coupon code"
	ErrMsgAlreadyRedeemedError = "Coupon already redeemed"
	ErrMsgUnknownItemError     = "Item not found"
	ErrMsgUnauthorizedError    = "Admin permission required"
	ErrMsgUserNotFoundError    = "User not found"
	ErrMsgInvalidInputError    = "Invalid request. Please check your inputs."
	ErrMsgResetInProgressError = "A daily reset is already running"
)

// serviceErrorMapping ties a domain error to its HTTP status, user message and metric reason
type serviceErrorMapping struct {
	target  error
	status  int
	message string
	reason  string
}

// serviceErrors is the single error to response table for every handler.
// Order matters only when one error wraps another.
var serviceErrors = []serviceErrorMapping{
	{domain.ErrInvalidBetAmount, http.StatusBadRequest, ErrMsgInvalidBetError, "invalid_bet"},
	{domain.ErrUnknownGame, http.StatusNotFound, ErrMsgUnknownGameError, "unknown_game"},
	{domain.ErrInvalidChoice, http.StatusBadRequest, ErrMsgInvalidChoiceError, "invalid_choice"},
	{domain.ErrInsufficientFunds, http.StatusBadRequest, ErrMsgNotEnoughPointsError, "insufficient_funds"},
	{domain.ErrDailyCapExceeded, http.StatusBadRequest, ErrMsgDailyCapError, "daily_cap"},
	{domain.ErrInvalidAmount, http.StatusBadRequest, ErrMsgInvalidAmountError, "invalid_amount"},
	{domain.ErrAlreadyAttended, http.StatusConflict, ErrMsgAlreadyAttendedError, "already_attended"},
	{domain.ErrUnknownCode, http.StatusNotFound, ErrMsgUnknownCodeError, "unknown_code"},
	{domain.ErrAlreadyRedeemed, http.StatusConflict, ErrMsgAlreadyRedeemedError, "already_redeemed"},
	{domain.ErrUnknownItem, http.StatusNotFound, ErrMsgUnknownItemError, "unknown_item"},
	{domain.ErrUnauthorized, http.StatusForbidden, ErrMsgUnauthorizedError, "unauthorized"},
	{domain.ErrUserNotFound, http.StatusNotFound, ErrMsgUserNotFoundError, "user_not_found"},
	{domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidInputError, "invalid_input"},
	{worker.ErrResetInProgress, http.StatusConflict, ErrMsgResetInProgressError, "reset_in_progress"},
	{domain.ErrVersionConflict, http.StatusServiceUnavailable, ErrMsgBusyError, ""},
	{domain.ErrStoreUnavailable, http.StatusServiceUnavailable, ErrMsgUnavailableError, ""},
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Unknown errors become a generic 500 so internal details never reach the client.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if m, ok := lookupServiceError(err); ok {
		return m.status, m.message
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

func lookupServiceError(err error) (serviceErrorMapping, bool) {
	if err == nil {
		return serviceErrorMapping{}, false
	}
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			return m, true
		}
	}
	return serviceErrorMapping{}, false
}

// respondServiceError logs err, records rejected business commands, and writes the mapped response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())

	m, known := lookupServiceError(err)
	switch {
	case known && m.reason != "":
		log.Info(LogMsgServiceRejected, "operation", opName, "reason", m.reason, "error", err)
		metrics.RejectedCommands.WithLabelValues(m.reason).Inc()
	default:
		log.Error(LogMsgServiceFailed, "operation", opName, "error", err)
	}

	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}
