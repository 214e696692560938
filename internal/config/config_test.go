package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("POLKA_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "chirpy.db", cfg.DatabasePath)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "test-key", cfg.PolkaKey)
	assert.Equal(t, PlatformProd, cfg.Platform)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
}

func TestLoad_Platform(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		want     Platform
	}{
		{name: "dev", platform: "dev", want: PlatformDev},
		{name: "prod", platform: "prod", want: PlatformProd},
		{name: "unknown defaults to prod", platform: "staging", want: PlatformProd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "s")
			t.Setenv("POLKA_KEY", "k")
			t.Setenv("PLATFORM", tt.platform)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Platform)
		})
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("POLKA_KEY", "k")

	_, err := Load()
	assert.Error(t, err)
}
