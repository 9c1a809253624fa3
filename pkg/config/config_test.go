package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("AI_TIMEOUT_SECONDS", "5")
	t.Setenv("FCM_ENABLED", "true")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, 5*time.Second, cfg.AITimeout)
	assert.True(t, cfg.FCMEnabled)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestAllowedOriginsList(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", " https://admin.example.com, ,https://shop.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://admin.example.com", "https://shop.example.com"}, cfg.AllowedOrigins)
}
