package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL      string
	PostgresHost     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PushgatewayURL   string
	TickInterval     time.Duration
	RecoveryInterval time.Duration
	BackfillHours    int
	FixturesPath     string
	RNGSeed          int64
	SeedSet          bool
}

func Load() Config {
	seed, seedSet := getenvInt64("APP_RNG_SEED")
	// Setting PROMETHEUS_PUSHGATEWAY to the empty string disables the
	// mirror, so unset and empty must stay distinguishable here.
	pushgateway := "http://localhost:9091"
	if v, ok := os.LookupEnv("PROMETHEUS_PUSHGATEWAY"); ok {
		pushgateway = v
	}
	return Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresUser:     getenv("POSTGRES_USER", "grafana"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "grafana"),
		PostgresDB:       getenv("POSTGRES_DB", "synthetic_data"),
		PushgatewayURL:   pushgateway,
		TickInterval:     getenvDuration("APP_TICK_INTERVAL", 15*time.Second),
		RecoveryInterval: getenvDuration("APP_RECOVERY_INTERVAL", 5*time.Second),
		BackfillHours:    getenvInt("APP_BACKFILL_HOURS", 24),
		FixturesPath:     os.Getenv("APP_FIXTURES_PATH"),
		RNGSeed:          seed,
		SeedSet:          seedSet,
	}
}

// DSN returns the connection string for the store. DATABASE_URL wins over
// the discrete POSTGRES_* fields when both are set.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB)
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return d
	}
	return n
}

func getenvInt64(k string) (int64, bool) {
	v := os.Getenv(k)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func getenvDuration(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		return d
	}
	return dur
}
