package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPPort             string
	MongoURI             string
	MongoDBName          string
	RedisAddr            string
	RedisPassword        string
	KafkaBrokers         []string
	StripeSecretKey      string
	StripePublishableKey string
	RequestTimeout       time.Duration
	ShutdownTimeout      time.Duration
	MaxRequestBodySize   int64
}

func Load() *Config {
	return &Config{
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		MongoURI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:          getEnv("MONGO_DB_NAME", "storefront"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:         splitList(getEnv("KAFKA_BROKERS", "")),
		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
		RequestTimeout:       parseDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout:      parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxRequestBodySize:   1 << 20, // 1MB
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key string, def time.Duration) time.Duration {
	if raw, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	return def
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
