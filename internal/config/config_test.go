package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTT.Broker)
	assert.Equal(t, "elderguard/+/+", cfg.MQTT.Topic)
	assert.Equal(t, ":8000", cfg.HTTP.Addr)

	// 报警默认值
	assert.Equal(t, 30, cfg.Alert.CooldownMinutes)
	assert.Equal(t, 60, cfg.Alert.WindowMinutes)
	assert.Equal(t, 10, cfg.Alert.MaxPerHour)
	assert.Equal(t, 10, cfg.Alert.ChannelTimeout)

	// 缓存默认值
	assert.Equal(t, "elderguard:elder:", cfg.Cache.KeyPrefix)
	assert.Equal(t, 86400, cfg.Cache.SummaryTTL)
	assert.Equal(t, 30, cfg.Cache.AssessmentTTL)

	assert.Equal(t, 60, cfg.PollInterval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("ALERT_COOLDOWN_MINUTES", "15")
	t.Setenv("MODEL_PATH", "/models/risk.json")
	t.Setenv("POLL_INTERVAL", "120")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, 15, cfg.Alert.CooldownMinutes)
	assert.Equal(t, "/models/risk.json", cfg.Model.Path)
	assert.Equal(t, 120, cfg.PollInterval)
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
}
