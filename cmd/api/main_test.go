package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "LIMITER_RPS", "LIMITER_BURST", "LIMITER_ENABLED", "CORS_TRUSTED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := parseConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)

	assert.Equal(t, 9000, cfg.port)
	assert.Equal(t, "development", cfg.environment)
	assert.Equal(t, 2.0, cfg.limiter.rps)
	assert.Equal(t, 4, cfg.limiter.burst)
	assert.False(t, cfg.limiter.enabled)
	assert.Equal(t, []string{"*"}, cfg.cors.trustedOrigins)
}

func TestParseConfig_EnvironmentAndFlags(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("APP_ENV", "staging")
	t.Setenv("LIMITER_ENABLED", "true")
	t.Setenv("CORS_TRUSTED_ORIGINS", "http://a.test http://b.test")

	cfg := parseConfig(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-port", "7000", "-limiter-burst", "8"})

	assert.Equal(t, 7000, cfg.port)
	assert.Equal(t, "staging", cfg.environment)
	assert.Equal(t, 8, cfg.limiter.burst)
	assert.True(t, cfg.limiter.enabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.cors.trustedOrigins)

	cfg = parseConfig(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-cors-trusted-origins", "http://c.test"})
	assert.Equal(t, []string{"http://c.test"}, cfg.cors.trustedOrigins)
}
