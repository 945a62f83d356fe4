package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RESOURCES_PATH", "")
	t.Setenv("AUTO_CACHE", "")
	t.Setenv("ENERGYPLUS_READVARS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "resources", cfg.Resources.Path)
	assert.Equal(t, "cache", cfg.Resources.CacheDir)
	assert.True(t, cfg.Resources.AutoCache)
	assert.Equal(t, "weather/AUT_SZ_Salzburg.epw", cfg.EnergyPlus.WeatherFile)
	assert.True(t, cfg.EnergyPlus.ReadVars)
	assert.Equal(t, "0 0 0 * * *", cfg.Jobs.CacheRefreshCron)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RESOURCES_PATH", "/data/idf")
	t.Setenv("AUTO_CACHE", "false")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ENERGYPLUS_ROOT", "/opt/EnergyPlus-24-1-0")
	t.Setenv("EPLUS_ROOT", "")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/idf", cfg.Resources.Path)
	assert.False(t, cfg.Resources.AutoCache)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "/opt/EnergyPlus-24-1-0", cfg.EnergyPlus.Root)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("AUTO_CACHE", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Resources.AutoCache)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server:     ServerConfig{Port: "8080"},
		Resources:  ResourcesConfig{Path: "resources", CacheDir: "cache"},
		EnergyPlus: EnergyPlusConfig{Binary: "energyplus"},
		Jobs:       JobsConfig{SimRatePerMin: 1},
	}
	require.NoError(t, cfg.Validate())

	cfg.Jobs.SimRatePerMin = 0
	assert.Error(t, cfg.Validate())

	cfg.Jobs.SimRatePerMin = 1
	cfg.Resources.Path = ""
	assert.Error(t, cfg.Validate())
}
