package config

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	LogLevel        slog.Level

	// Question CSV files, one per category
	QuestionsDir string

	// Persistence: "sqlite" or "mongo"
	StoreDriver   string
	SQLitePath    string
	MongoURI      string
	MongoDatabase string

	// Generated test cache; empty address keeps it in memory
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TestSetTTL    time.Duration

	// Attempt events; empty URL disables publishing
	AMQPURL      string
	AMQPExchange string

	FreeTestLimit int
	WorkerCount   int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout: mustGetDuration("SHUTDOWN_TIMEOUT"),
		LogLevel:        logLevel(getenvDefault("LOG_LEVEL", "info")),
		QuestionsDir:    getenvDefault("QUESTIONS_DIR", "./questions"),
		StoreDriver:     getenvDefault("STORE_DRIVER", "sqlite"),
		SQLitePath:      getenvDefault("SQLITE_PATH", "practice.db"),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDatabase:   getenvDefault("MONGO_DATABASE", "practice"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getIntDefault("REDIS_DB", 0),
		TestSetTTL:      getDurationDefault("TESTSET_TTL", 24*time.Hour),
		AMQPURL:         os.Getenv("AMQP_URL"),
		AMQPExchange:    getenvDefault("AMQP_EXCHANGE", "practice_test.events"),
		FreeTestLimit:   getIntDefault("FREE_TEST_LIMIT", 5),
		WorkerCount:     getIntDefault("WORKER_COUNT", 3),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getIntDefault(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
