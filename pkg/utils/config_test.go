package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	for _, k := range []string{"HERODEX_ADDR", "HERODEX_TCP_ADDR", "HERODEX_SOURCE", "HERODEX_DB_PATH", "HERODEX_FETCH_TIMEOUT"} {
		t.Setenv(k, "")
	}
	cfg := LoadServerConfig()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, ":7070", cfg.TCPAddr)
	assert.Equal(t, "", cfg.Source)
	assert.Equal(t, "", cfg.DBPath)
	assert.Equal(t, 12*time.Second, cfg.FetchTimeout)
}

func TestLoadServerConfigEnv(t *testing.T) {
	t.Setenv("HERODEX_ADDR", ":9999")
	t.Setenv("HERODEX_SOURCE", "sqlite:/tmp/h.db")
	t.Setenv("HERODEX_FETCH_TIMEOUT", "3")
	t.Setenv("HERODEX_DB_PATH", "/tmp/snap.db")
	cfg := LoadServerConfig()
	assert.Equal(t, "/tmp/snap.db", cfg.DBPath)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "sqlite:/tmp/h.db", cfg.Source)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)

	t.Setenv("HERODEX_FETCH_TIMEOUT", "soon")
	assert.Equal(t, 12*time.Second, LoadServerConfig().FetchTimeout)
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	assert.NoError(t, os.WriteFile(path, []byte("HERODEX_TEST_DOTENV=from-file\n"), 0o644))
	t.Setenv("HERODEX_TEST_DOTENV", "")
	os.Unsetenv("HERODEX_TEST_DOTENV")

	LoadEnv(path, filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, "from-file", os.Getenv("HERODEX_TEST_DOTENV"))
}
