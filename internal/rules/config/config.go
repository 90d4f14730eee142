package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the rules engine.
type Config struct {
	// MongoDB Configuration
	MongoDBURI   string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"loyalty_rules_db"`

	// Redis Configuration (decision audit stream)
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	// DecisionStream is the Redis Stream every decision event is appended to.
	DecisionStream string `env:"DECISION_STREAM" envDefault:"loyalty:decisions"`

	// JWT Configuration
	JWTSecretKey string `env:"JWT_SECRET_KEY,required"`
	JWTIssuer    string `env:"JWT_ISSUER" envDefault:"loyalty-rules-service"`

	// HTTP Server Configuration
	ServerPort      string        `env:"SERVER_PORT" envDefault:"3030"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadConfig loads configuration from environment variables and applies
// defaults. Required variables missing from the environment fail the load.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load configuration from environment: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration for obviously unusable values.
func (c *Config) Validate() error {
	if c.MongoDBURI == "" {
		return errors.New("MongoDB URI cannot be empty")
	}
	if c.DatabaseName == "" {
		return errors.New("database name cannot be empty")
	}
	if c.JWTSecretKey == "" {
		return errors.New("JWT secret key cannot be empty")
	}
	if c.ServerPort == "" {
		return errors.New("server port cannot be empty")
	}
	return nil
}
