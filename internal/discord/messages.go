package discord

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Friendly message constants for Discord responses
const (
	// Points
	MsgInsufficientFunds = "⚠️ **포인트가 부족합니다!**\nNot enough points for this."
	MsgDailyCapReached   = "🛑 **오늘 획득 한도 도달**\nYou hit today's earnings limit. Try again after midnight (KST)."
	MsgInvalidAmount     = "⚠️ **잘못된 금액**\nThe amount must be a positive number."

	// Wagers
	MsgInvalidBet    = "🎲 **잘못된 배팅 금액**\nCheck the game's minimum, maximum and bet unit."
	MsgUnknownGame   = "❓ **Unknown Game**\nUse /games to see what you can play."
	MsgInvalidChoice = "❓ **Invalid Choice**\nThat pick isn't valid for this game."

	// Attendance
	MsgAlreadyAttended = "📅 **이미 출석했습니다**\nCome back tomorrow!"

	// Coupons and shop
	MsgUnknownCoupon   = "🎟️ **Unknown Coupon**\nMaybe check the spelling?"
	MsgAlreadyRedeemed = "🎟️ **Coupon Already Used**\nEach coupon works once per member."
	MsgItemNotFound    = "❓ **Item Not Found**\nUse /shop to see the catalog."

	// Access and availability
	MsgNotAdmin        = "🔒 **Admins only**"
	MsgUserNotFound    = "👤 **User Not Found**"
	MsgBusy            = "⏳ **Whoa there!**\nYour last command is still being processed."
	MsgUnavailable     = "🔧 **Points server unavailable**\nPlease try again in a moment."
	MsgResetInProgress = "⏳ **A daily reset is already running**"

	MsgGenericError = "❌ Something went wrong."
)

// pointsPrinter formats numbers with locale digit grouping
var pointsPrinter = message.NewPrinter(language.Korean)

// formatPoints renders an amount like "12,345P"
func formatPoints(n int64) string {
	return pointsPrinter.Sprintf("%dP", n)
}

// formatSignedPoints renders a delta with an explicit sign
func formatSignedPoints(n int64) string {
	if n > 0 {
		return "+" + formatPoints(n)
	}
	return formatPoints(n)
}
