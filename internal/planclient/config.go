package planclient

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Operation identifies one backend endpoint.
type Operation string

const (
	OpGenerate Operation = "generate"
	OpDownload Operation = "download"
	OpModules  Operation = "modules"
)

// Config holds the backend connection settings.
type Config struct {
	Endpoint          string
	TimeoutMs         int
	DownloadTimeoutMs int
	LogCalls          bool
}

// DefaultConfig points at a backend on localhost:8080.
func DefaultConfig() Config {
	return Config{
		Endpoint:          "http://localhost:8080",
		TimeoutMs:         15000,
		DownloadTimeoutMs: 30000,
		LogCalls:          false,
	}
}

// LoadConfig reads STUDYPLAN_* environment variables over the defaults.
// Invalid numbers are ignored.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STUDYPLAN_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("STUDYPLAN_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("STUDYPLAN_DOWNLOAD_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DownloadTimeoutMs = n
		}
	}
	if v := os.Getenv("STUDYPLAN_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}

// Timeout returns the deadline applied to a call of op.
func (c Config) Timeout(op Operation) time.Duration {
	ms := c.TimeoutMs
	if op == OpDownload && c.DownloadTimeoutMs > 0 {
		ms = c.DownloadTimeoutMs
	}
	return time.Duration(ms) * time.Millisecond
}
