package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"STACKFOOD_APP_NAME":                os.Getenv("STACKFOOD_APP_NAME"),
		"STACKFOOD_APP_ENV":                 os.Getenv("STACKFOOD_APP_ENV"),
		"STACKFOOD_APP_PORT":                os.Getenv("STACKFOOD_APP_PORT"),
		"STACKFOOD_DATABASE_HOST":           os.Getenv("STACKFOOD_DATABASE_HOST"),
		"STACKFOOD_DATABASE_PORT":           os.Getenv("STACKFOOD_DATABASE_PORT"),
		"STACKFOOD_DATABASE_USER":           os.Getenv("STACKFOOD_DATABASE_USER"),
		"STACKFOOD_DATABASE_PASSWORD":       os.Getenv("STACKFOOD_DATABASE_PASSWORD"),
		"STACKFOOD_DATABASE_DBNAME":         os.Getenv("STACKFOOD_DATABASE_DBNAME"),
		"STACKFOOD_DATABASE_SSLMODE":        os.Getenv("STACKFOOD_DATABASE_SSLMODE"),
		"STACKFOOD_DATABASE_MAX_OPEN_CONNS": os.Getenv("STACKFOOD_DATABASE_MAX_OPEN_CONNS"),
		"STACKFOOD_DATABASE_MAX_IDLE_CONNS": os.Getenv("STACKFOOD_DATABASE_MAX_IDLE_CONNS"),
		"STACKFOOD_AWS_REGION":              os.Getenv("STACKFOOD_AWS_REGION"),
		"STACKFOOD_COGNITO_USER_POOL_ID":    os.Getenv("STACKFOOD_COGNITO_USER_POOL_ID"),
		"STACKFOOD_COGNITO_CLIENT_ID":       os.Getenv("STACKFOOD_COGNITO_CLIENT_ID"),
		"STACKFOOD_EVENTS_ENABLED":          os.Getenv("STACKFOOD_EVENTS_ENABLED"),
		"STACKFOOD_EVENTS_TOPIC_ARN":        os.Getenv("STACKFOOD_EVENTS_TOPIC_ARN"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "stackfood-customers", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "customers", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "us-east-1", cfg.AWS.Region)
		assert.Equal(t, "convidado", cfg.Cognito.GuestUsername)
		assert.False(t, cfg.Events.Enabled)
	})

	t.Run("loads values from environment variables with STACKFOOD prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("STACKFOOD_APP_NAME", "test-app")
		os.Setenv("STACKFOOD_APP_PORT", "9000")
		os.Setenv("STACKFOOD_DATABASE_HOST", "testdb.local")
		os.Setenv("STACKFOOD_DATABASE_PORT", "5433")
		os.Setenv("STACKFOOD_DATABASE_USER", "testuser")
		os.Setenv("STACKFOOD_DATABASE_PASSWORD", "testpass")
		os.Setenv("STACKFOOD_AWS_REGION", "sa-east-1")
		os.Setenv("STACKFOOD_COGNITO_USER_POOL_ID", "sa-east-1_abc123")
		os.Setenv("STACKFOOD_COGNITO_CLIENT_ID", "client-xyz")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "sa-east-1", cfg.AWS.Region)
		assert.Equal(t, "sa-east-1_abc123", cfg.Cognito.UserPoolID)
		assert.Equal(t, "client-xyz", cfg.Cognito.ClientID)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("STACKFOOD_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("STACKFOOD_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("requires topic arn when events enabled", func(t *testing.T) {
		clearEnv()
		os.Setenv("STACKFOOD_EVENTS_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "topic_arn")
	})

	t.Run("enabled events with topic arn pass validation", func(t *testing.T) {
		clearEnv()
		os.Setenv("STACKFOOD_EVENTS_ENABLED", "true")
		os.Setenv("STACKFOOD_EVENTS_TOPIC_ARN", "arn:aws:sns:us-east-1:123456789012:customers")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Events.Enabled)
		assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:customers", cfg.Events.TopicARN)
	})

	t.Run("production requires credentials and ssl", func(t *testing.T) {
		clearEnv()
		os.Setenv("STACKFOOD_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "customers",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "customers")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
