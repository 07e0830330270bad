package bootstrap

// Log files
const (
	DirPermission          = 0750
	LogFilePermission      = 0640
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "guildpoints_%s.log"
	LogFileExtension       = ".log"
	// LogFileRetentionCount older logs survive next to the new one
	LogFileRetentionCount = 9
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingGuildPoints = "Starting GuildPoints"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"

	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
)

const (
	LogMsgStoreOpened            = "Account store opened"
	LogMsgMemoryStore            = "Using in-memory account store; balances are lost on restart"
	LogMsgEventSystemInitialized = "Event system initialized"
	LogMsgPointsMoved            = "Points moved"

	ErrMsgFailedBuildGames   = "invalid game table"
	ErrMsgFailedBuildCoupons = "invalid coupon table"
	ErrMsgFailedBuildCatalog = "invalid catalog"
)

// Shutdown
const (
	LogMsgShuttingDown              = "Shutting down"
	LogMsgShutdownComplete          = "Shutdown complete"
	LogMsgServerForcedShutdown      = "Server forced to shutdown"
	LogMsgSchedulerShutdownFailed   = "Scheduler shutdown failed"
	LogMsgResetWorkerShutdownFailed = "Daily reset worker shutdown failed"
)
