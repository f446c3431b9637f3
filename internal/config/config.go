package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported storage backends
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	defaultMongoURI      = "mongodb://localhost:27017/portfolio"
	defaultMongoDatabase = "portfolio"
	defaultServerPort    = "5000"
)

// DefaultAllowedOrigins are the local development origins allowed by CORS
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5500",
	"http://127.0.0.1:5500",
	"http://localhost:5000",
	"file://",
}

type Config struct {
	ServerHost  string
	ServerPort  string
	Environment string

	StorageDriver   string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	DatabaseURL     string

	RedisURL      string
	EventsChannel string

	AllowedOrigins []string

	ConnectTimeout  time.Duration
	HealthTimeout   time.Duration
	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	mongoURI := getEnv("MONGODB_URI", defaultMongoURI)

	cfg := &Config{
		ServerHost:  getEnv("HOST", "0.0.0.0"),
		ServerPort:  getEnv("PORT", defaultServerPort),
		Environment: getEnv("ENVIRONMENT", "development"),

		StorageDriver:   strings.ToLower(getEnv("STORAGE_DRIVER", DriverMongo)),
		MongoURI:        mongoURI,
		MongoDatabase:   getEnv("MONGODB_DATABASE", databaseFromURI(mongoURI)),
		MongoCollection: getEnv("MONGODB_COLLECTION", "messages"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),

		RedisURL:      os.Getenv("REDIS_URL"),
		EventsChannel: getEnv("EVENTS_CHANNEL", "contact:messages"),

		AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", DefaultAllowedOrigins),

		ConnectTimeout:  getEnvAsDuration("CONNECT_TIMEOUT", "10s"),
		HealthTimeout:   getEnvAsDuration("HEALTH_TIMEOUT", "2s"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", "10s"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for the %s driver", DriverMongo)
		}
	case DriverPostgres, DriverSQLite:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

// databaseFromURI returns the database named in the connection string path
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultMongoDatabase
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return defaultMongoDatabase
	}
	return name
}

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// getEnvAsList splits a comma separated variable, skipping blank entries
func getEnvAsList(key string, defaultVal []string) []string {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

// getEnvAsDuration retrieves environment variable as duration with default value
func getEnvAsDuration(key string, defaultVal string) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		valStr = defaultVal
	}
	duration, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %s", key, defaultVal)
		duration, _ = time.ParseDuration(defaultVal)
	}
	return duration
}
