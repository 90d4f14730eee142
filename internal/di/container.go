package di

import (
	"context"
	"fmt"
	"sync"

	"loyalty-rules/internal/rules"
	"loyalty-rules/internal/rules/config"
	"loyalty-rules/internal/shared/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container wires the application's modules and owns their shared
// connections.
type Container struct {
	mu sync.RWMutex

	RulesModule *rules.RulesModule

	MongoClient *mongo.Client
	MongoDB     *mongo.Database
	RedisClient *redis.Client

	Config *config.Config
	Logger logger.Logger
}

// NewContainer creates an empty DI container
func NewContainer(log logger.Logger) *Container {
	return &Container{Logger: log}
}

// InitializeRules connects the shared infrastructure and builds the rules
// module on top of it.
func (c *Container) InitializeRules(mongoClient *mongo.Client, redisClient *redis.Client, cfg *config.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.MongoClient = mongoClient
	c.MongoDB = mongoClient.Database(cfg.DatabaseName)
	c.RedisClient = redisClient
	c.Config = cfg

	if c.Logger == nil {
		c.Logger = logger.NewLogger()
	}

	module, err := rules.NewRulesModule(c.MongoDB, redisClient, cfg, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create rules module: %w", err)
	}

	c.RulesModule = module
	return nil
}

// GetRulesModule returns the initialized rules module.
func (c *Container) GetRulesModule() *rules.RulesModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.RulesModule
}

// HealthCheck pings the container's backing services.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.MongoClient == nil {
		return fmt.Errorf("mongodb is not initialized")
	}
	if err := c.MongoClient.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
	}
	return nil
}

// Close releases the container's connections.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	if c.RulesModule != nil {
		if err := c.RulesModule.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.MongoClient != nil {
		if err := c.MongoClient.Disconnect(context.Background()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
