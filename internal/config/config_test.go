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

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "mongo", cfg.DurableStore)
	assert.Equal(t, "memory", cfg.SessionStore)
	assert.Equal(t, 20*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 3*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "app-capstone", cfg.S3Bucket)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_TTL", "600")
	t.Setenv("STORE_TIMEOUT", "750ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("DURABLE_STORE", "postgres")
	t.Setenv("OBJECT_STORE", "s3")
	t.Setenv("PUBLIC_BASE_URL", "https://survey.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 750*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "https://survey.example.com", cfg.PublicBaseURL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown store", "SESSION_STORE", "memcached"},
		{"bad duration", "SESSION_TTL", "soon"},
		{"negative duration", "SWEEP_INTERVAL", "-1m"},
		{"roster file missing", "ROSTER_SOURCE", "file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
