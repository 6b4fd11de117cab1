package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, 16*1024*1024, cfg.MaxUploadBytes)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("SESSION_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 1024, cfg.MaxUploadBytes)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "studyshare",
		DBPassword: "pass",
		DBName:     "studyshare",
	}
	assert.Equal(t,
		"host=localhost user=studyshare password=pass dbname=studyshare port=5432 sslmode=disable TimeZone=UTC",
		cfg.DSN())
}
