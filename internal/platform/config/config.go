package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "callsync/pkg/platform/strings"
)

// Config captures everything the server needs from its environment.
// Grouped by subsystem so main can hand each component only its slice.
type Config struct {
	Server   Server
	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
	Auth     Auth
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Postgres captures the relational store configuration.
type Postgres struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Redis captures the match-result cache configuration.
// An empty URL disables the cache; services fall back to computing
// matches on every request.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MatchTTL     time.Duration
}

// Kafka captures the activity event stream configuration.
// Empty brokers disable publishing; activity falls back to store-only.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Auth captures token validation configuration. Issuer and Audience are
// optional; when empty the corresponding claim is not enforced.
type Auth struct {
	JWTSigningKey string
	Issuer        string
	Audience      string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            envString("CALLSYNC_ADDR", ":8080"),
			ShutdownTimeout: envDuration("CALLSYNC_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: Postgres{
			DSN:             os.Getenv("CALLSYNC_POSTGRES_DSN"),
			MaxOpenConns:    envInt("CALLSYNC_POSTGRES_MAX_OPEN", 10),
			MaxIdleConns:    envInt("CALLSYNC_POSTGRES_MAX_IDLE", 5),
			ConnMaxLifetime: envDuration("CALLSYNC_POSTGRES_CONN_LIFETIME", 30*time.Minute),
		},
		Redis: Redis{
			URL:          os.Getenv("CALLSYNC_REDIS_URL"),
			PoolSize:     envInt("CALLSYNC_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("CALLSYNC_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("CALLSYNC_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("CALLSYNC_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("CALLSYNC_REDIS_WRITE_TIMEOUT", 3*time.Second),
			MatchTTL:     envDuration("CALLSYNC_MATCH_CACHE_TTL", 2*time.Minute),
		},
		Kafka: Kafka{
			Brokers: envList("CALLSYNC_KAFKA_BROKERS"),
			Topic:   envString("CALLSYNC_KAFKA_TOPIC", "callsync.activity"),
		},
		Auth: Auth{
			JWTSigningKey: envString("CALLSYNC_JWT_SIGNING_KEY",
				// Development default - must be overridden in production.
				"dev-secret-key-change-in-production"),
			Issuer:   os.Getenv("CALLSYNC_JWT_ISSUER"),
			Audience: os.Getenv("CALLSYNC_JWT_AUDIENCE"),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	out := platformstrings.DedupeAndTrim(strings.Split(v, ","))
	if len(out) == 0 {
		return nil
	}
	return out
}
