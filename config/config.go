package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	App        AppConfig
	Resources  ResourcesConfig
	EnergyPlus EnergyPlusConfig
	Jobs       JobsConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	// DSN overrides the individual settings when set.
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

type ResourcesConfig struct {
	Path      string
	CacheDir  string
	AutoCache bool
	Projects  string
	Templates string
}

type EnergyPlusConfig struct {
	Binary        string
	Root          string
	WeatherFile   string
	OutputDir     string
	ExpandObjects bool
	ReadVars      bool
}

type JobsConfig struct {
	CacheRefreshCron string
	SimRatePerMin    int
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "eplus"),
			DSN:      getEnv("DB_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Resources: ResourcesConfig{
			Path:      getEnv("RESOURCES_PATH", "resources"),
			CacheDir:  getEnv("CACHE_DIR", "cache"),
			AutoCache: getEnvAsBool("AUTO_CACHE", true),
			Projects:  getEnv("PROJECTS_DIR", "projects"),
			Templates: getEnv("TEMPLATES_DIR", "templates"),
		},
		EnergyPlus: EnergyPlusConfig{
			Binary:        getEnv("ENERGYPLUS_BIN", "energyplus"),
			Root:          getEnv("EPLUS_ROOT", getEnv("ENERGYPLUS_ROOT", "")),
			WeatherFile:   getEnv("WEATHER_FILE", "weather/AUT_SZ_Salzburg.epw"),
			OutputDir:     getEnv("OUTPUT_DIR", "output"),
			ExpandObjects: getEnvAsBool("ENERGYPLUS_EXPAND_OBJECTS", false),
			ReadVars:      getEnvAsBool("ENERGYPLUS_READVARS", true),
		},
		Jobs: JobsConfig{
			CacheRefreshCron: getEnv("CACHE_REFRESH_CRON", "0 0 0 * * *"),
			SimRatePerMin:    getEnvAsInt("SIM_RATE_PER_MIN", 6),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Resources.Path == "" {
		return fmt.Errorf("RESOURCES_PATH is required")
	}

	if c.Resources.CacheDir == "" {
		return fmt.Errorf("CACHE_DIR is required")
	}

	if c.EnergyPlus.Binary == "" {
		return fmt.Errorf("ENERGYPLUS_BIN is required")
	}

	if c.Jobs.SimRatePerMin <= 0 {
		return fmt.Errorf("SIM_RATE_PER_MIN must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
