package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"
)

const (
	defaultImagePath        = "./images"
	defaultOrderEventsTopic = "order-events"
	defaultCountCacheTTL    = 30 * time.Second
	defaultOrphanGrace      = 60 * time.Minute
)

// Config carries environment-driven settings shared by the API, the worker and the janitor.
type Config struct {
	Port              string
	PostgresDSN       string
	ImagePath         string
	RedisAddr         string
	CountCacheTTL     time.Duration
	KafkaBrokers      []string
	OrderEventsTopic  string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	SeedDemoData      bool
	ImageOrphanGrace  time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		ImagePath:         envDefault("IMAGE_PATH", defaultImagePath),
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		CountCacheTTL:     defaultCountCacheTTL,
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		OrderEventsTopic:  envDefault("ORDER_EVENTS_TOPIC", defaultOrderEventsTopic),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		SeedDemoData:      isTruthy(os.Getenv("SEED_DEMO_DATA")),
		ImageOrphanGrace:  defaultOrphanGrace,
	}
	seconds, err := positiveInt("COUNT_CACHE_TTL_SECONDS")
	if err != nil {
		return Config{}, err
	}
	if seconds > 0 {
		cfg.CountCacheTTL = time.Duration(seconds) * time.Second
	}
	minutes, err := positiveInt("IMAGE_ORPHAN_GRACE_MINUTES")
	if err != nil {
		return Config{}, err
	}
	if minutes > 0 {
		cfg.ImageOrphanGrace = time.Duration(minutes) * time.Minute
	}
	return cfg, nil
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// positiveInt returns 0 when key is unset.
func positiveInt(key string) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return value, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
