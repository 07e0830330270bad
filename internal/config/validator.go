package config

import (
	"fmt"
	"os"
	"strings"
)

// EnvSchemaVersion is the ENV_SCHEMA_VERSION this build reads
const EnvSchemaVersion = "1.0"

// Placeholder values shipped in example env files
const (
	placeholderDBPassword = "change_this_secure_password"
	placeholderAPIKey     = "generate_with_openssl_rand_hex_32"
)

var commonEnvVars = []string{"ENV_SCHEMA_VERSION", "API_KEY"}

var driverEnvVars = map[string][]string{
	StoreDriverPostgres: {"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME"},
	StoreDriverRedis:    {"REDIS_ADDR"},
	StoreDriverMemory:   nil,
}

// RequiredEnvVars returns the variables that must be set explicitly for the given store driver.
// Defaults baked into Config are not enough for a deployment.
func RequiredEnvVars(driver string) []string {
	vars := append([]string{}, commonEnvVars...)
	return append(vars, driverEnvVars[driver]...)
}

// ValidateEnv checks ENV_SCHEMA_VERSION and then every variable the driver requires
func ValidateEnv(driver string) error {
	version := os.Getenv("ENV_SCHEMA_VERSION")
	switch {
	case version == "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set (expected %s); add it to your .env", EnvSchemaVersion)
	case version != EnvSchemaVersion:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s", EnvSchemaVersion, version)
	}

	var missing []string
	for _, name := range RequiredEnvVars(driver) {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables for %s store: %s",
			driver, strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and reports settings that work but should not reach production
func ValidateEnvWithWarnings(driver string) ([]string, error) {
	if err := ValidateEnv(driver); err != nil {
		return nil, err
	}

	var warnings []string
	if os.Getenv("API_KEY") == placeholderAPIKey {
		warnings = append(warnings, "API_KEY is the example value; generate one with: openssl rand -hex 32")
	}

	switch driver {
	case StoreDriverPostgres:
		if os.Getenv("DB_PASSWORD") == placeholderDBPassword {
			warnings = append(warnings, "DB_PASSWORD is the example value")
		}
	case StoreDriverRedis:
		if os.Getenv("REDIS_PASSWORD") == "" {
			warnings = append(warnings, "REDIS_PASSWORD is empty; the account store is unauthenticated")
		}
	case StoreDriverMemory:
		warnings = append(warnings, "STORE_DRIVER=memory keeps balances in process memory; every point is lost on restart")
	}

	return warnings, nil
}
