package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	JWTSecret       string
	JWTAlgorithm    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	RedisAddr       string
	KafkaBrokers    []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, using default values", "error", err)
	}

	cfg := &Config{
		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTAlgorithm:    os.Getenv("JWT_ALGORITHM"),
		AccessTokenTTL:  parseDuration("ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTokenTTL: parseDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
	}
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		cfg.KafkaBrokers = []string{broker}
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.JWTAlgorithm == "" {
		cfg.JWTAlgorithm = "HS256"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "supersecret"
		slog.Warn("JWT_SECRET not set, using insecure default")
	}

	slog.Info("config loaded",
		"http_addr", cfg.HTTPAddr,
		"jwt_algorithm", cfg.JWTAlgorithm,
		"access_token_ttl", cfg.AccessTokenTTL,
		"refresh_token_ttl", cfg.RefreshTokenTTL,
		"redis_addr", cfg.RedisAddr,
		"kafka_brokers", cfg.KafkaBrokers)
	return cfg
}

func parseDuration(key string, def time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", val, "default", def)
		return def
	}
	return d
}
