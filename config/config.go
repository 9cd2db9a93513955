// Package config reads process configuration from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port           string
	MongoHost      string
	MongoPort      string
	MongoName      string
	MongoURI       string
	Store          string
	BaseURL        string
	RabbitMQURL    string
	LogLevel       string
	LogDevelopment bool
	CORSOrigins    string
}

func envOrDefaultString(env, def string) string {
	if val, ok := os.LookupEnv(env); ok && val != "" {
		return val
	}

	return def
}

func envOrDefaultBool(env string, def bool) bool {
	if val, ok := os.LookupEnv(env); ok {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}

	return def
}

// Load reads .env (when present) and then the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           envOrDefaultString("PORT", "8000"),
		MongoHost:      envOrDefaultString("MONGO_HOST", "localhost"),
		MongoPort:      envOrDefaultString("MONGO_PORT", "27017"),
		MongoName:      envOrDefaultString("MONGO_NAME", "octofit_db"),
		MongoURI:       envOrDefaultString("MONGO_URI", ""),
		Store:          envOrDefaultString("STORE", StoreMongo),
		BaseURL:        envOrDefaultString("BASE_URL", ""),
		RabbitMQURL:    envOrDefaultString("RABBITMQ_URL", ""),
		LogLevel:       envOrDefaultString("LOG_LEVEL", "info"),
		LogDevelopment: envOrDefaultBool("LOG_DEVELOPMENT", false),
		CORSOrigins:    envOrDefaultString("CORS_ORIGINS", "*"),
	}
}

// MongoConnString prefers MONGO_URI and falls back to host and port.
func (c Config) MongoConnString() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}

	return fmt.Sprintf("mongodb://%s:%s", c.MongoHost, c.MongoPort)
}

func (c Config) ListenAddr() string {
	return fmt.Sprintf("0.0.0.0:%s", c.Port)
}
