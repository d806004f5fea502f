package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTTL)
	assert.Equal(t, 8*time.Hour, cfg.Business.ShiftDuration)
	assert.Equal(t, 5, cfg.Business.LowStockThreshold)
	assert.Equal(t, 2, cfg.Business.MoneyDecimals)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SHIFT_DURATION_HOURS", "12")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 12*time.Hour, cfg.Business.ShiftDuration)
	assert.Equal(t, 3, cfg.Business.LowStockThreshold)
}

func TestShiftDurationSecondsOverridesHours(t *testing.T) {
	t.Setenv("SHIFT_DURATION_HOURS", "12")
	t.Setenv("SHIFT_DURATION_SECONDS", "90")

	cfg := Load()
	assert.Equal(t, 90*time.Second, cfg.Business.ShiftDuration)
}

func TestShiftDurationIgnoresBadSeconds(t *testing.T) {
	t.Setenv("SHIFT_DURATION_SECONDS", "-5")

	cfg := Load()
	assert.Equal(t, 8*time.Hour, cfg.Business.ShiftDuration)
}
