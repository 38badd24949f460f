package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	HTTPAddr     string
	RedisAddr    string
	RedisPass    string
	KafkaBrokers []string

	// SettingsCacheTTL bounds how stale a cached platform setting may be.
	SettingsCacheTTL time.Duration

	// UnitOfWorkTimeout bounds how long a settlement or withdrawal may
	// hold its locks.
	UnitOfWorkTimeout time.Duration
}

func Load() AppConfig {
	return AppConfig{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8041"),
		RedisAddr:         getEnv("REDIS_ADDR", "redis:6379"),
		RedisPass:         getEnv("REDIS_PASS", ""),
		KafkaBrokers:      getEnvSlice("KAFKA_BROKERS", []string{"kafka:9092"}),
		SettingsCacheTTL:  getEnvDuration("SETTINGS_CACHE_TTL_SECONDS", 60*time.Second),
		UnitOfWorkTimeout: getEnvDuration("UOW_TIMEOUT_SECONDS", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}
