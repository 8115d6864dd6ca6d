package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "Lymhurst", cfg.BuyCity)
	assert.Equal(t, "Black Market", cfg.SellMarket)
	assert.Equal(t, []int{14, 30, 60}, cfg.HistoryWindows)
	assert.Equal(t, 90, cfg.FreshnessDays)
	assert.Equal(t, 2*time.Second, cfg.ThrottleDelay)
	assert.InDelta(t, 10.0, cfg.MinProfitPercent, 1e-9)
	assert.InDelta(t, 0.1, cfg.MinSoldPerDay, 1e-9)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HISTORY_WINDOWS", "7, 21")
	t.Setenv("MIN_TIER", "5")
	t.Setenv("THROTTLE_DELAY", "500ms")
	t.Setenv("MIN_PROFIT_PERCENT", "25.5")

	cfg := Load()
	assert.Equal(t, []int{7, 21}, cfg.HistoryWindows)
	assert.Equal(t, 5, cfg.MinTier)
	assert.Equal(t, 500*time.Millisecond, cfg.ThrottleDelay)
	assert.InDelta(t, 25.5, cfg.MinProfitPercent, 1e-9)
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("HISTORY_WINDOWS", "14,abc")
	t.Setenv("MIN_TIER", "five")

	cfg := Load()
	assert.Equal(t, []int{14, 30, 60}, cfg.HistoryWindows)
	assert.Equal(t, 4, cfg.MinTier)
}

func TestValidate(t *testing.T) {
	base := func() *Config { return Load() }

	cfg := base()
	cfg.MinTier = 9
	cfg.MaxTier = 4
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.HistoryWindows = nil
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.HistoryWindows = []int{30, 14}
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.BuyCity = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Workers = 0
	assert.Error(t, cfg.Validate())
}
