package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type environment struct {
	ServerURL string
	LogLevel  string
}

// Env is a helper object for accessing environment variables.
var Env = &environment{
	ServerURL: "TABLE_SERVER_URL",
	LogLevel:  "LOG_LEVEL",
}

// GetServerURL returns the base URL of the game server. Both the WebSocket
// session and the roster REST calls are derived from this address.
func (e *environment) GetServerURL() string {
	v := os.Getenv(e.ServerURL)
	if v == "" {
		return "http://localhost:8080"
	}
	return strings.TrimRight(v, "/")
}

func (e *environment) GetLogLevel() string {
	v := os.Getenv(e.LogLevel)
	if v == "" {
		return "info"
	}
	return v
}

func (e *environment) GetZeroLogLogLevel() zerolog.Level {
	l := e.GetLogLevel()
	switch strings.ToLower(l) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		fallthrough
	case "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		panic(fmt.Sprintf("Unsupported %s: %s", e.LogLevel, l))
	}
}
