package database

import "time"

// Pool sizing defaults
const (
	DefaultMinConnections    = 2
	DefaultMaxConnIdle       = 5 * time.Minute
	DefaultMaxConnLife       = 30 * time.Minute
	DefaultHealthCheckPeriod = time.Minute
)

const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
)

const (
	LogMsgConnected         = "Connected to PostgreSQL"
	LogMsgMigrationsApplied = "Database migration applied"
	LogMsgMigrationsCurrent = "Database schema is current"
)
