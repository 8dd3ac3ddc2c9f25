package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServiceName string

	ServerPort int

	DataDir   string
	PublicDir string

	AdminJWTSecret []byte

	KafkaBrokers []string
	OrderTopic   string

	// Requests per second allowed per client IP on /api routes.
	RateLimit float64
	RateBurst int
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "storefront"),

		ServerPort: EnvIntDefault("SERVER_PORT", 3000),

		DataDir:   EnvDefault("DATA_DIR", "data"),
		PublicDir: EnvDefault("PUBLIC_DIR", "public"),

		AdminJWTSecret: []byte(os.Getenv("ADMIN_JWT_SECRET")),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		OrderTopic:   EnvDefault("KAFKA_ORDER_TOPIC", "order_events"),

		RateLimit: EnvFloatDefault("API_RATE_LIMIT", 20),
		RateBurst: EnvIntDefault("API_RATE_BURST", 40),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvFloatDefault(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
