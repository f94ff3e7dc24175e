package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const memoryYAML = `
server:
  host: 127.0.0.1
  port: 8080
database:
  driver: memory
lending:
  loan_duration_days: 21
  max_borrowing_limit: 5
  fine_per_day: "0.50"
`

func TestParse(t *testing.T) {
	t.Run("Memory driver with lending section", func(t *testing.T) {
		cfg, err := Parse([]byte(memoryYAML))
		require.NoError(t, err)

		assert.Equal(t, DriverMemory, cfg.Database.Driver)
		assert.Equal(t, "127.0.0.1:8080", cfg.GetServerAddress())
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "text", cfg.Log.Format)
		assert.Equal(t, "0 0 2 * * *", cfg.Scheduler.ReportOverdueLoans)

		rules, err := cfg.InitialRules()
		require.NoError(t, err)
		assert.Equal(t, 21, rules.LoanDurationDays)
		assert.Equal(t, 5, rules.MaxBorrowingLimit)
		assert.Equal(t, "0.5", rules.FinePerDay.String())
	})

	t.Run("Lending defaults", func(t *testing.T) {
		cfg, err := Parse([]byte("server:\n  port: 9000\ndatabase:\n  driver: memory\n"))
		require.NoError(t, err)
		rules, err := cfg.InitialRules()
		require.NoError(t, err)
		assert.Equal(t, 14, rules.LoanDurationDays)
		assert.Equal(t, 3, rules.MaxBorrowingLimit)
		assert.Equal(t, "1", rules.FinePerDay.String())
	})

	t.Run("Postgres requires host", func(t *testing.T) {
		_, err := Parse([]byte("server:\n  port: 9000\ndatabase:\n  driver: postgres\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database host is required")
	})

	t.Run("Postgres defaults", func(t *testing.T) {
		cfg, err := Parse([]byte("server:\n  port: 9000\ndatabase:\n  host: db\n  user: lib\n  password: pw\n  database: lending\n"))
		require.NoError(t, err)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "postgres://lib:pw@db:5432/lending?sslmode=disable", cfg.GetDatabaseConnectionString())
	})

	t.Run("Invalid port", func(t *testing.T) {
		_, err := Parse([]byte("server:\n  port: 0\ndatabase:\n  driver: memory\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid server port")
	})

	t.Run("Invalid fine", func(t *testing.T) {
		_, err := Parse([]byte("server:\n  port: 9000\ndatabase:\n  driver: memory\nlending:\n  fine_per_day: abc\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid fine_per_day")
	})

	t.Run("Negative limit rejected by rules validation", func(t *testing.T) {
		_, err := Parse([]byte("server:\n  port: 9000\ndatabase:\n  driver: memory\nlending:\n  max_borrowing_limit: -1\n"))
		assert.Error(t, err)
	})

	t.Run("Invalid schedule", func(t *testing.T) {
		_, err := Parse([]byte("server:\n  port: 9000\ndatabase:\n  driver: memory\nscheduler:\n  report_overdue_loans: \"not a cron\"\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid report_overdue_loans schedule")
	})
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORE_DRIVER", "MEMORY")

	cfg, err := Parse([]byte("server:\n  port: 8080\ndatabase:\n  driver: postgres\n"))
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(memoryYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
