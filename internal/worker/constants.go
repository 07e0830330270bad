package worker

// QueueSizePerWorker sizes a pool's queue relative to its worker count
const QueueSizePerWorker = 64

// DefaultResetPageSize is how many account ids one page of the reset loads
const DefaultResetPageSize = 500

const LogMsgWorkerJobFailed = "Worker job failed"

// Daily reset and weekly bonus
const (
	LogMsgDailyResetStarting        = "Daily reset starting"
	LogMsgDailyResetCompleted       = "Daily reset completed"
	LogMsgDailyResetFailed          = "Daily reset failed"
	LogMsgDailyResetAccountFailed   = "Daily reset failed for account"
	LogMsgDailyResetAlreadyRunning  = "Daily reset already running"
	LogMsgWeeklyBonusStarting       = "Weekly bonus starting"
	LogMsgWeeklyBonusCompleted      = "Weekly bonus completed"
	LogMsgWeeklyBonusRecipientError = "Weekly bonus failed for member"
)
