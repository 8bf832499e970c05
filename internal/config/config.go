package config

import (
	"os"
	"strconv"
	"time"
)

type KPIServiceConfig struct {
	Port          string
	MainMeterID   string
	EngineWorkers int
	QueryTimeout  time.Duration
	CacheTTL      time.Duration
	PostgresCfg   PostgresConfig
	RedisCfg      RedisConfig
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func New() *KPIServiceConfig {
	return &KPIServiceConfig{
		Port:          getEnvOrDefault("PORT", "8084"),
		MainMeterID:   getEnvOrDefault("MAIN_METER_ID", "EM-MAIN"),
		EngineWorkers: getEnvIntOrDefault("ENGINE_WORKERS", 4),
		QueryTimeout:  time.Duration(getEnvIntOrDefault("QUERY_TIMEOUT_MS", 5000)) * time.Millisecond,
		CacheTTL:      time.Duration(getEnvIntOrDefault("KPI_CACHE_TTL_S", 60)) * time.Second,
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "feedmill"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       0,
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
