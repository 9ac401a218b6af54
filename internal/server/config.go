package server

import (
	"os"
	"strings"

	"github.com/alexanderramin/studyplan/internal/db"
)

// Config holds the reference backend settings.
type Config struct {
	Listen      string
	CatalogPath string // empty serves the built-in catalog
	DBPath      string
	LogMode     string
	CORSOrigins []string
}

// DefaultConfig listens on :8080 with an in-memory catalog store.
func DefaultConfig() Config {
	return Config{
		Listen:  ":8080",
		DBPath:  db.MemoryPath,
		LogMode: "dev",
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
	}
}

// LoadConfig reads the environment over the defaults. PORT is honoured
// for hosted deployments; STUDYPLAN_LISTEN wins when both are set.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Listen = ":" + v
	}
	if v := strings.TrimSpace(os.Getenv("STUDYPLAN_LISTEN")); v != "" {
		cfg.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDYPLAN_CATALOG")); v != "" {
		cfg.CatalogPath = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDYPLAN_DB")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDYPLAN_LOG_MODE")); v != "" {
		cfg.LogMode = v
	}
	if v := os.Getenv("STUDYPLAN_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
