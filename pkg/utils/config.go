package utils

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAddr         = ":8080"
	defaultTCPAddr      = ":7070"
	defaultFetchTimeout = 12 * time.Second
)

// ServerConfig is read from the environment. Every value has a dev default.
type ServerConfig struct {
	Addr         string
	TCPAddr      string
	Source       string
	DBPath       string
	FetchTimeout time.Duration
}

// LoadEnv reads .env files into the environment. A missing file is fine;
// variables that are already set win.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		_ = godotenv.Load(f)
	}
}

func LoadServerConfig() ServerConfig {
	cfg := ServerConfig{
		Addr:         getenv("HERODEX_ADDR", defaultAddr),
		TCPAddr:      getenv("HERODEX_TCP_ADDR", defaultTCPAddr),
		Source:       os.Getenv("HERODEX_SOURCE"),
		DBPath:       os.Getenv("HERODEX_DB_PATH"),
		FetchTimeout: defaultFetchTimeout,
	}

	// whole seconds; anything unparsable keeps the default
	if v := strings.TrimSpace(os.Getenv("HERODEX_FETCH_TIMEOUT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchTimeout = time.Duration(n) * time.Second
		}
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
