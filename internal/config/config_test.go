package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-leave/internal/config"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults and env overrides", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_NAME", "leave")
		t.Setenv("REDIS_ADDR", "cache:6379")

		cfg, err := config.Load(writeConfig(t, "logger:\n  level: debug\n"))

		assert.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "leave", cfg.Database.Name)
		assert.Equal(t, "cache:6379", cfg.Redis.Addr)
		assert.Equal(t, "debug", cfg.Logger.Level)
		assert.Equal(t, 6, cfg.Accrual.EligibilityMonths)
		assert.Equal(t, config.DefaultSchedule(), cfg.Accrual.Schedule)
		assert.Equal(t, "ONE_TIME", cfg.Classification["matrimonio"])
		assert.Equal(t, []time.Weekday{time.Sunday}, cfg.Workday.RestWeekdays())
		assert.Equal(t, time.Hour, cfg.Sweep.Interval)
	})

	t.Run("schedule from file", func(t *testing.T) {
		path := writeConfig(t, `
accrual:
  schedule:
    - from_year: 0
      days: 10
    - from_year: 3
      days: 15
workday:
  rest_days: [saturday, sunday]
`)

		cfg, err := config.Load(path)

		assert.NoError(t, err)
		assert.Equal(t, []config.SeniorityStep{{FromYear: 0, Days: 10}, {FromYear: 3, Days: 15}}, cfg.Accrual.Schedule)
		assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, cfg.Workday.RestWeekdays())
	})

	t.Run("negative decreasing schedule", func(t *testing.T) {
		path := writeConfig(t, `
accrual:
  schedule:
    - from_year: 0
      days: 12
    - from_year: 1
      days: 8
`)

		_, err := config.Load(path)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "days must not decrease")
	})

	t.Run("negative unknown classification", func(t *testing.T) {
		path := writeConfig(t, "classification:\n  sabbatical: SOMETIMES\n")

		_, err := config.Load(path)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown classification")
	})

	t.Run("negative missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Error(t, err)
	})
}
