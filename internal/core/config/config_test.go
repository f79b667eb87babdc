package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 120*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 3, cfg.Production.MaxSlots)
	assert.Equal(t, "gemini-2.5-flash", cfg.Assistant.Model)
	assert.Equal(t, 20*time.Second, cfg.Assistant.Timeout)
	assert.Equal(t, "Ledger!A1", cfg.Sheets.Range)
	assert.Empty(t, cfg.Audit.DatabaseURL)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1:9000")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("MAX_PRODUCTION_SLOTS", "5")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("ASSISTANT_TIMEOUT", "3s")
	t.Setenv("AUDIT_DATABASE_URL", "postgres://audit")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Host)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5, cfg.Production.MaxSlots)
	assert.Equal(t, "key", cfg.Assistant.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Assistant.Timeout)
	assert.Equal(t, "postgres://audit", cfg.Audit.DatabaseURL)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Auth:       AuthConfig{JWTSecret: "s", AdminPassword: "pw"},
		Production: ProductionConfig{MaxSlots: 3},
	}
	assert.NoError(t, valid.Validate())

	noSecret := valid
	noSecret.Auth.JWTSecret = ""
	assert.ErrorContains(t, noSecret.Validate(), "JWT_SECRET")

	noSlots := valid
	noSlots.Production.MaxSlots = 0
	assert.ErrorContains(t, noSlots.Validate(), "MAX_PRODUCTION_SLOTS")

	noUsers := valid
	noUsers.Auth.AdminPassword = ""
	assert.Error(t, noUsers.Validate())
}
