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
		"ORDERDESK_APP_NAME":                  os.Getenv("ORDERDESK_APP_NAME"),
		"ORDERDESK_APP_ENV":                   os.Getenv("ORDERDESK_APP_ENV"),
		"ORDERDESK_APP_PORT":                  os.Getenv("ORDERDESK_APP_PORT"),
		"ORDERDESK_DATABASE_HOST":             os.Getenv("ORDERDESK_DATABASE_HOST"),
		"ORDERDESK_DATABASE_PORT":             os.Getenv("ORDERDESK_DATABASE_PORT"),
		"ORDERDESK_DATABASE_USER":             os.Getenv("ORDERDESK_DATABASE_USER"),
		"ORDERDESK_DATABASE_PASSWORD":         os.Getenv("ORDERDESK_DATABASE_PASSWORD"),
		"ORDERDESK_DATABASE_DBNAME":           os.Getenv("ORDERDESK_DATABASE_DBNAME"),
		"ORDERDESK_DATABASE_SSLMODE":          os.Getenv("ORDERDESK_DATABASE_SSLMODE"),
		"ORDERDESK_DATABASE_MAX_OPEN_CONNS":   os.Getenv("ORDERDESK_DATABASE_MAX_OPEN_CONNS"),
		"ORDERDESK_DATABASE_MAX_IDLE_CONNS":   os.Getenv("ORDERDESK_DATABASE_MAX_IDLE_CONNS"),
		"ORDERDESK_JWT_SECRET":                os.Getenv("ORDERDESK_JWT_SECRET"),
		"ORDERDESK_REPORT_DEFAULT_RANGE_DAYS": os.Getenv("ORDERDESK_REPORT_DEFAULT_RANGE_DAYS"),
		"ORDERDESK_REPORT_PAGE_SIZE":          os.Getenv("ORDERDESK_REPORT_PAGE_SIZE"),
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

		assert.Equal(t, "orderdesk-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "orderdesk", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 30, cfg.Report.DefaultRangeDays)
		assert.Equal(t, 10, cfg.Report.PageSize)
		assert.Equal(t, 100, cfg.Report.MaxPageSize)
		assert.Equal(t, "order_report.xlsx", cfg.Report.ExportFilename)
	})

	t.Run("loads values from environment variables with ORDERDESK prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("ORDERDESK_APP_NAME", "test-app")
		os.Setenv("ORDERDESK_APP_ENV", "testing")
		os.Setenv("ORDERDESK_APP_PORT", "9000")
		os.Setenv("ORDERDESK_DATABASE_HOST", "testdb.local")
		os.Setenv("ORDERDESK_DATABASE_PORT", "5433")
		os.Setenv("ORDERDESK_DATABASE_USER", "testuser")
		os.Setenv("ORDERDESK_DATABASE_PASSWORD", "testpass")
		os.Setenv("ORDERDESK_DATABASE_DBNAME", "testdb")
		os.Setenv("ORDERDESK_DATABASE_SSLMODE", "require")
		os.Setenv("ORDERDESK_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("ORDERDESK_DATABASE_MAX_IDLE_CONNS", "10")
		os.Setenv("ORDERDESK_REPORT_DEFAULT_RANGE_DAYS", "7")
		os.Setenv("ORDERDESK_REPORT_PAGE_SIZE", "25")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, 7, cfg.Report.DefaultRangeDays)
		assert.Equal(t, 25, cfg.Report.PageSize)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("ORDERDESK_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("ORDERDESK_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("ORDERDESK_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv()
		os.Setenv("ORDERDESK_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})

	t.Run("validates page size against max", func(t *testing.T) {
		clearEnv()
		os.Setenv("ORDERDESK_REPORT_PAGE_SIZE", "500")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "report.page_size")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"ORDERDESK_APP_ENV":           os.Getenv("ORDERDESK_APP_ENV"),
		"ORDERDESK_JWT_SECRET":        os.Getenv("ORDERDESK_JWT_SECRET"),
		"ORDERDESK_DATABASE_PASSWORD": os.Getenv("ORDERDESK_DATABASE_PASSWORD"),
		"ORDERDESK_DATABASE_SSLMODE":  os.Getenv("ORDERDESK_DATABASE_SSLMODE"),
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

	setValidProductionBase := func() {
		os.Setenv("ORDERDESK_APP_ENV", "production")
		os.Setenv("ORDERDESK_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("ORDERDESK_DATABASE_PASSWORD", "secure-password")
		os.Setenv("ORDERDESK_DATABASE_SSLMODE", "require")
	}

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("ORDERDESK_JWT_SECRET")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires jwt.secret at least 32 characters in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("ORDERDESK_JWT_SECRET", "short-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("ORDERDESK_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("ORDERDESK_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		// URL-encoded password should be in the DSN
		assert.Contains(t, dsn, "pass%40word%23123")
	})

	t.Run("handles empty password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.NotEmpty(t, dsn)
	})
}
