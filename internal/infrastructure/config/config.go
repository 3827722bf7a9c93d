package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Session snapshot drivers.
const (
	SessionDriverMemory = "memory"
	SessionDriverSQLite = "sqlite"
	SessionDriverRedis  = "redis"
)

// Config collects the process settings. Table names are read by each
// repository.
type Config struct {
	Port      string
	JWTSecret string

	Dynamo DynamoConfig

	SessionDriver string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	CacheSize int
	CacheTTL  time.Duration

	WebhookURL         string
	NotificationBuffer int
}

// DynamoConfig points the client at AWS or at a local DynamoDB.
type DynamoConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	CreateTables    bool
}

// Load reads the configuration from the environment. A .env file is loaded
// beforehand by godotenv/autoload in main.
func Load() Config {
	return Config{
		Port:      getEnv("PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		Dynamo: DynamoConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			Endpoint:        os.Getenv("DYNAMODB_ENDPOINT"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", "local"),
			CreateTables:    parseBool("DYNAMODB_CREATE_TABLES", false),
		},

		SessionDriver: strings.ToLower(getEnv("SESSION_STORE_DRIVER", SessionDriverMemory)),
		SQLitePath:    getEnv("SESSION_SQLITE_PATH", "data/sessions.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       parseInt("REDIS_DB", 0),
		SessionTTL:    parseDuration("SESSION_TTL", 0),

		CacheSize: parseInt("QUERY_CACHE_SIZE", 512),
		CacheTTL:  parseDuration("QUERY_CACHE_TTL", 30*time.Second),

		WebhookURL:         os.Getenv("NOTIFICATION_WEBHOOK_URL"),
		NotificationBuffer: parseInt("NOTIFICATION_BUFFER", 64),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] invalid integer for %s: %s", key, v)
		return def
	}
	return n
}

func parseBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[config] invalid boolean for %s: %s", key, v)
		return def
	}
	return b
}

func parseDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[config] invalid duration for %s: %s", key, v)
		return def
	}
	return d
}
