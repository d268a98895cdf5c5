package config

import (
	"os"

	"github.com/akarstad/netpulse/internal/constants"
	"github.com/joho/godotenv"
)

// LoadEnvFiles loads a .env file from the working directory if present.
// Already-set environment variables win over file values.
func LoadEnvFiles() {
	if _, err := os.Stat(constants.ConfigEnvFileName); err != nil {
		return
	}
	// godotenv.Load never overrides existing env vars.
	_ = godotenv.Load(constants.ConfigEnvFileName)
}

// LoadAPIToken returns the token the CLI sends to the daemon. Empty is fine;
// it simply means the daemon is expected to run without auth.
func LoadAPIToken() string {
	return os.Getenv(constants.EnvVarAPIToken)
}

// ServerURL resolves the daemon URL for the CLI: explicit flag first, then
// NETPULSE_SERVER, then the default.
func ServerURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if url := os.Getenv(constants.EnvVarServer); url != "" {
		return url
	}
	return constants.DefaultServerURL
}
