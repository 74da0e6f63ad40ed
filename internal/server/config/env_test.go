package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("ADDRESS", ":9090")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db:5432/x")
	t.Setenv("SECRET_KEY", "another")
	t.Setenv("SESSION_VALIDITY_MINUTES", "30")
	t.Setenv("SESSION_EARLY_EXPIRY_SEC", "15")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DatabaseDSN)
	assert.Equal(t, "another", cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.SessionValidityDuration)
	assert.Equal(t, 15*time.Second, cfg.SessionEarlyExpiryWindow)
}

func TestParseEnv_MalformedNumbersIgnored(t *testing.T) {
	t.Setenv("SESSION_VALIDITY_MINUTES", "lots")
	t.Setenv("SESSION_EARLY_EXPIRY_SEC", "")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 7*24*time.Hour, cfg.SessionValidityDuration)
	assert.Equal(t, 60*time.Second, cfg.SessionEarlyExpiryWindow)
}
