package constants

import "os"

const (
	Version = "0.1.0"

	DefaultServerHost = "0.0.0.0"
	DefaultServerPort = 5000

	// DefaultServerURL is where the netpulse CLI looks for a running daemon.
	DefaultServerURL = "http://localhost:5000"

	// Environment variables
	EnvVarAPIToken = "NETPULSE_API_TOKEN"
	EnvVarConfig   = "NETPULSE_CONFIG"
	EnvVarServer   = "NETPULSE_SERVER"
	EnvVarDebug    = "NETPULSE_DEBUG"

	// File names
	EventLogFileName  = "internet_events.log"
	DBFileName        = "netpulse.db"
	ConfigEnvFileName = ".env"

	// TimestampFormat is the wall-clock format used in snapshots and the
	// event log. Kept stable because the dashboard and log consumers parse it.
	TimestampFormat = "2006-01-02 15:04:05"

	// LastDownNever is reported in snapshots while no outage has been seen.
	LastDownNever = "Never"

	DefaultImageName = "netpulse:latest"
)

// File and directory permissions
const (
	ModeFileSecret  os.FileMode = 0o600 // secrets: .env, tokens
	ModeFileDefault os.FileMode = 0o644 // non-secret configs, logs
	ModeDirPrivate  os.FileMode = 0o700 // private dirs
)
