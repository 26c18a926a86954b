package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	env "github.com/joho/godotenv"
)

// History backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	HistoryBackend string        // Where history is persisted: memory, sqlite or redis
	DBPath         string        // Path to the sqlite database file
	RedisAddr      string        // Redis address, host:port
	RedisPassword  string        // Redis password
	RedisDB        int           // Redis database number
	RedisTTL       time.Duration // Expiration of saved histories in Redis, 0 keeps them forever
	HTTPAddr       string        // Listen address of the HTTP API
	GRPCAddr       string        // Listen address of the gRPC service
	JWTSecret      string        // Secret key for JWT
	TokenTTL       time.Duration // Lifetime of issued tokens
	LogLevel       string        // debug, info, warn or error
}

// LoadConfig reads the .env file at path, when it exists, and then the
// process environment. Variables already set in the environment win.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		if err := env.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", path, err)
		}
	}

	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	redisTTL, err := durationEnv("REDIS_TTL", 0)
	if err != nil {
		return nil, err
	}

	tokenTTL, err := durationEnv("TOKEN_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HistoryBackend: stringEnv("HISTORY_BACKEND", BackendSQLite),
		DBPath:         stringEnv("DB_PATH", "./calculator.db"),
		RedisAddr:      stringEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		RedisTTL:       redisTTL,
		HTTPAddr:       stringEnv("HTTP_ADDR", ":8080"),
		GRPCAddr:       stringEnv("GRPC_ADDR", "localhost:8081"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       tokenTTL,
		LogLevel:       stringEnv("LOG_LEVEL", "info"),
	}

	switch cfg.HistoryBackend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return nil, fmt.Errorf("invalid HISTORY_BACKEND %q", cfg.HistoryBackend)
	}

	slog.Debug("config loaded", "backend", cfg.HistoryBackend)
	return cfg, nil
}

// RequireSecret fails when no JWT secret is configured.
func (c *Config) RequireSecret() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	return nil
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
