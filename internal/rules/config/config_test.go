package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDBURI)
	assert.Equal(t, "loyalty_rules_db", cfg.DatabaseName)
	assert.Equal(t, "loyalty:decisions", cfg.DecisionStream)
	assert.Equal(t, "loyalty-rules-service", cfg.JWTIssuer)
	assert.Equal(t, "3030", cfg.ServerPort)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("MONGODB_URI", "mongodb://mongo:27017")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SERVER_PORT", "8080")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://mongo:27017", cfg.MongoDBURI)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, "8080", cfg.ServerPort)
}
