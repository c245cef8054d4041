package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultListenAddr = ":7117"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "auto"
)

// Settings holds the process configuration. Everything is read once at
// startup; there is no reload.
type Settings struct {
	// OCSBaseURL is the base URL of the downstream OCS provisioning API.
	OCSBaseURL string
	// OCSAPIKey is sent as X-API-Key on every downstream request.
	OCSAPIKey string
	// Timeout applies to every downstream HTTP call.
	Timeout time.Duration
	// ListenAddr is the address the MCP server binds to.
	ListenAddr string

	LogLevel  string
	LogFormat string
}

// Load reads settings from the environment. A .env file in the working
// directory is honored when present, matching local development setups.
func Load() (*Settings, error) {
	_ = godotenv.Load()

	s := &Settings{
		Timeout:    DefaultTimeout,
		ListenAddr: DefaultListenAddr,
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
	}

	s.OCSBaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("OCS_API_BASE_URL")), "/")
	if s.OCSBaseURL == "" {
		return nil, fmt.Errorf("OCS_API_BASE_URL is required")
	}

	s.OCSAPIKey = strings.TrimSpace(os.Getenv("OCS_API_KEY"))
	if s.OCSAPIKey == "" {
		return nil, fmt.Errorf("OCS_API_KEY is required")
	}

	if raw := strings.TrimSpace(os.Getenv("OCS_API_TIMEOUT")); raw != "" {
		seconds, err := strconv.ParseFloat(raw, 64)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid OCS_API_TIMEOUT %q: expected positive seconds", raw)
		}
		s.Timeout = time.Duration(seconds * float64(time.Second))
	}

	if addr := strings.TrimSpace(os.Getenv("MCP_LISTEN_ADDR")); addr != "" {
		s.ListenAddr = addr
	}
	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		s.LogLevel = strings.ToLower(level)
	}
	if format := strings.TrimSpace(os.Getenv("LOG_FORMAT")); format != "" {
		s.LogFormat = strings.ToLower(format)
	}

	return s, nil
}
