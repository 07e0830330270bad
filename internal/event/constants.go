package event

// SchemaVersion is stamped on every event; bump it when a payload changes shape
const SchemaVersion = "1.0"

// Economy event types
const (
	PointsMoved         Type = "points.moved"
	WagerResolved       Type = "wager.resolved"
	CheckInCompleted    Type = "attendance.checked_in"
	CouponRedeemed      Type = "coupon.redeemed"
	ItemPurchased       Type = "catalog.purchased"
	DailyResetCompleted Type = "attendance.daily_reset"
)

// Types lists every economy event type
var Types = []Type{
	PointsMoved,
	WagerResolved,
	CheckInCompleted,
	CouponRedeemed,
	ItemPurchased,
	DailyResetCompleted,
}

// PointsMovedPayloadV1.Direction values
const (
	DirectionCredit = "credit"
	DirectionDebit  = "debit"
)

const (
	LogMsgPublishFailed   = "Event publish failed"
	errFmtHandlerFailures = "%d handler(s) failed for %s: %w"
)
