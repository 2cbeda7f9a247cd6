package config

import (
	"coffeeshop_server/structs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	require.NotNil(t, cfg.Database)

	assert.Equal(t, structs.DriverPgx, cfg.Database.Driver)
	assert.Equal(t, structs.DeletePolicyReject, cfg.Policy.Delete)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "PG")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_QUERY_TIMEOUT", "2s")
	t.Setenv("CACHE_TTL", "30")
	t.Setenv("DELETE_POLICY", "Cascade")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("CACHE_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, structs.DriverPg, cfg.Database.Driver)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, structs.DeletePolicyCascade, cfg.Policy.Delete)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Cors.AllowedOrigins)
	assert.True(t, cfg.Cache.Enabled)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("DB_QUERY_TIMEOUT", "soon")
	t.Setenv("DELETE_POLICY", "sometimes")

	cfg := Load()

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, structs.DeletePolicyReject, cfg.Policy.Delete)
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name string
		env  string
		lvl  string
		want string
	}{
		{"development", "development", "", "debug"},
		{"production", "production", "", "info"},
		{"override", "production", "warn", "warn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &structs.Config{Server: &structs.ServerConfig{Environment: tt.env, LogLevel: tt.lvl}}
			assert.Equal(t, tt.want, LogLevel(cfg))
		})
	}
}
