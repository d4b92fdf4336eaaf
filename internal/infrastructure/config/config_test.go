package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"FAITH_APP_NAME":          os.Getenv("FAITH_APP_NAME"),
		"FAITH_APP_ENV":           os.Getenv("FAITH_APP_ENV"),
		"FAITH_APP_PORT":          os.Getenv("FAITH_APP_PORT"),
		"FAITH_DATABASE_HOST":     os.Getenv("FAITH_DATABASE_HOST"),
		"FAITH_DATABASE_PORT":     os.Getenv("FAITH_DATABASE_PORT"),
		"FAITH_DATABASE_USER":     os.Getenv("FAITH_DATABASE_USER"),
		"FAITH_DATABASE_PASSWORD": os.Getenv("FAITH_DATABASE_PASSWORD"),
		"FAITH_DATABASE_DBNAME":   os.Getenv("FAITH_DATABASE_DBNAME"),
		"FAITH_DATABASE_SSLMODE":  os.Getenv("FAITH_DATABASE_SSLMODE"),
		"FAITH_JWT_SECRET":        os.Getenv("FAITH_JWT_SECRET"),
		"FAITH_COOKIE_SECURE":     os.Getenv("FAITH_COOKIE_SECURE"),
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

		assert.Equal(t, "faithconnect-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "faithconnect", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiration)
		assert.Equal(t, 10, cfg.JWT.MaxRefreshCount)
		assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
		assert.Equal(t, 15*time.Minute, cfg.Auth.LockDuration)
		assert.Equal(t, 10*time.Second, cfg.Auth.SessionResolveTimeout)
		assert.Equal(t, time.Hour, cfg.Storage.PresignExpiry)
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	})

	t.Run("loads values from environment variables with FAITH prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("FAITH_APP_NAME", "test-app")
		os.Setenv("FAITH_APP_PORT", "9000")
		os.Setenv("FAITH_DATABASE_HOST", "testdb.local")
		os.Setenv("FAITH_DATABASE_PORT", "5433")
		os.Setenv("FAITH_DATABASE_USER", "testuser")
		os.Setenv("FAITH_DATABASE_PASSWORD", "testpass")
		os.Setenv("FAITH_DATABASE_DBNAME", "testdb")
		os.Setenv("FAITH_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("FAITH_APP_ENV", "production")
		os.Setenv("FAITH_DATABASE_PASSWORD", "secret")
		os.Setenv("FAITH_DATABASE_SSLMODE", "require")
		os.Setenv("FAITH_COOKIE_SECURE", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production rejects short jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("FAITH_APP_ENV", "production")
		os.Setenv("FAITH_JWT_SECRET", "tooshort")
		os.Setenv("FAITH_DATABASE_PASSWORD", "secret")
		os.Setenv("FAITH_DATABASE_SSLMODE", "require")
		os.Setenv("FAITH_COOKIE_SECURE", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32 characters")
	})

	t.Run("production rejects sslmode disable", func(t *testing.T) {
		clearEnv()
		os.Setenv("FAITH_APP_ENV", "production")
		os.Setenv("FAITH_JWT_SECRET", "a-very-long-secret-key-at-least-32-chars")
		os.Setenv("FAITH_DATABASE_PASSWORD", "secret")
		os.Setenv("FAITH_COOKIE_SECURE", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("production accepts complete configuration", func(t *testing.T) {
		clearEnv()
		os.Setenv("FAITH_APP_ENV", "production")
		os.Setenv("FAITH_JWT_SECRET", "a-very-long-secret-key-at-least-32-chars")
		os.Setenv("FAITH_DATABASE_PASSWORD", "secret")
		os.Setenv("FAITH_DATABASE_SSLMODE", "require")
		os.Setenv("FAITH_COOKIE_SECURE", "true")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.example.org",
		Port:     5432,
		User:     "faith",
		Password: "p@ss/word",
		DBName:   "faithconnect",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.example.org:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", r.Addr())
}
