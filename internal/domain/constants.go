package domain

// Platform identifiers
const (
	PlatformDiscord = "discord"
)

// Economy defaults
const (
	DefaultDailyEarnLimit    = 10000
	DefaultLeaderboardLimit  = 10
	MaxLeaderboardLimit      = 100
	DefaultWeeklyBonusAmount = 1000
	DefaultAttendanceBase    = 100
)

// Point movement sources, used for metrics and logs
const (
	SourceAttendance = "attendance"
	SourceWager      = "wager"
	SourceCoupon     = "coupon"
	SourcePurchase   = "purchase"
	SourceAdmin      = "admin"
	SourceBonus      = "weekly_bonus"
)

// Game keys
const (
	GameOddEven = "oddeven"
	GameDice    = "dice"
	GameHorse   = "horse"
	GameSlots   = "slots"
)
