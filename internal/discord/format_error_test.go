package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/GuildPoints_Go/internal/handler"
)

func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Insufficient Points", "API error: " + handler.ErrMsgNotEnoughPointsError, MsgInsufficientFunds},
		{"Daily Cap", "API error: " + handler.ErrMsgDailyCapError, MsgDailyCapReached},
		{"Already Attended", "API error: " + handler.ErrMsgAlreadyAttendedError, MsgAlreadyAttended},
		{"Coupon Reused", "API error: " + handler.ErrMsgAlreadyRedeemedError, MsgAlreadyRedeemed},
		{"Unknown Item", "API error: " + handler.ErrMsgUnknownItemError, MsgItemNotFound},
		{"Not Admin", "API error: " + handler.ErrMsgUnauthorizedError, MsgNotAdmin},
		{"Unavailable After Retries", "max retries exceeded: API error: " + handler.ErrMsgUnavailableError, MsgUnavailable},
		{"Generic Error", "some random error", "❌ some random error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFriendlyError(tt.input))
		})
	}
}

func TestFormatPoints(t *testing.T) {
	assert.Equal(t, "0P", formatPoints(0))
	assert.Equal(t, "12,345P", formatPoints(12345))
	assert.Equal(t, "+1,000P", formatSignedPoints(1000))
	assert.Equal(t, "-100P", formatSignedPoints(-100))
}
