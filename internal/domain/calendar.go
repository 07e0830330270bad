package domain

import "time"

// DateLayout is the format of every persisted calendar day.
const DateLayout = "2006-01-02"

// EconomyLocation is the fixed UTC+9 zone all date-keyed rules use.
var EconomyLocation = time.FixedZone("UTC+9", 9*60*60)

// DayKey returns the economy calendar day containing t.
func DayKey(t time.Time) string {
	return t.In(EconomyLocation).Format(DateLayout)
}

// PreviousDayKey returns the economy calendar day before the one containing t.
func PreviousDayKey(t time.Time) string {
	local := t.In(EconomyLocation)
	y, m, d := local.Date()
	return time.Date(y, m, d-1, 12, 0, 0, 0, EconomyLocation).Format(DateLayout)
}

// NextMidnight returns the first local midnight strictly after t.
func NextMidnight(t time.Time) time.Time {
	local := t.In(EconomyLocation)
	y, m, d := local.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, EconomyLocation)
}
