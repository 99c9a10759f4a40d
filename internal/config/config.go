package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-leave/internal/accrual"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server         ServerConfig      `mapstructure:"server"`
	Database       DatabaseConfig    `mapstructure:"database"`
	Redis          RedisConfig       `mapstructure:"redis"`
	Kafka          KafkaConfig       `mapstructure:"kafka"`
	Accrual        AccrualConfig     `mapstructure:"accrual"`
	Workday        WorkdayConfig     `mapstructure:"workday"`
	Sweep          SweepConfig       `mapstructure:"sweep"`
	Outbox         OutboxConfig      `mapstructure:"outbox"`
	Classification map[string]string `mapstructure:"classification"`
	Logger         LoggerConfig      `mapstructure:"logger"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimit       float64       `mapstructure:"rate_limit"`
	RateBurst       int           `mapstructure:"rate_burst"`
}

type DatabaseConfig struct {
	Host       string `mapstructure:"host"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	Port       string `mapstructure:"port"`
	SSLMode    string `mapstructure:"sslmode"`
	MaxRetries int    `mapstructure:"max_retries"`
}

type RedisConfig struct {
	Addr       string        `mapstructure:"addr"`
	MaxRetries int           `mapstructure:"max_retries"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

type KafkaConfig struct {
	Broker     string `mapstructure:"broker"`
	GroupID    string `mapstructure:"group_id"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// SeniorityStep grants Days from FromYear of completed service onward,
// until the next step takes over.
type SeniorityStep struct {
	FromYear int `mapstructure:"from_year"`
	Days     int `mapstructure:"days"`
}

type AccrualConfig struct {
	EligibilityMonths int             `mapstructure:"eligibility_months"`
	Schedule          []SeniorityStep `mapstructure:"schedule"`
}

type WorkdayConfig struct {
	RestDays []string `mapstructure:"rest_days"`
}

type SweepConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Interval    time.Duration `mapstructure:"interval"`
	LockTTL     time.Duration `mapstructure:"lock_ttl"`
	Concurrency int           `mapstructure:"concurrency"`
}

type OutboxConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	BatchSize    int           `mapstructure:"batch_size"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultSchedule is the statutory vacation table applied when the config
// file does not carry one.
func DefaultSchedule() []SeniorityStep {
	return []SeniorityStep{
		{FromYear: 0, Days: 12},
		{FromYear: 1, Days: 14},
		{FromYear: 2, Days: 16},
		{FromYear: 3, Days: 18},
		{FromYear: 4, Days: 20},
		{FromYear: 5, Days: 22},
		{FromYear: 10, Days: 24},
		{FromYear: 15, Days: 26},
		{FromYear: 20, Days: 28},
	}
}

// DefaultClassification maps leave-type names to their accrual behaviour.
// Names missing from the table are ANNUAL.
func DefaultClassification() map[string]string {
	return map[string]string{
		"matrimonio": "ONE_TIME",
		"maternidad": "EVENT_REPEATABLE",
		"paternidad": "EVENT_REPEATABLE",
	}
}

// Load reads configuration from an optional YAML file and the environment.
// An empty path looks for config.yaml in the working directory and tolerates
// its absence.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(cfg.Accrual.Schedule) == 0 {
		cfg.Accrual.Schedule = DefaultSchedule()
	}
	if len(cfg.Classification) == 0 {
		cfg.Classification = DefaultClassification()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_retries", 5)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.max_retries", 5)
	v.SetDefault("redis.cache_ttl", 10*time.Minute)

	v.SetDefault("kafka.group_id", "go-leave-employee-lifecycle")
	v.SetDefault("kafka.max_retries", 5)

	v.SetDefault("accrual.eligibility_months", 6)

	v.SetDefault("workday.rest_days", []string{"sunday"})

	v.SetDefault("sweep.enabled", true)
	v.SetDefault("sweep.interval", time.Hour)
	v.SetDefault("sweep.lock_ttl", 10*time.Minute)
	v.SetDefault("sweep.concurrency", 4)

	v.SetDefault("outbox.poll_interval", 3*time.Second)
	v.SetDefault("outbox.batch_size", 50)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
}

// bindEnvVars keeps the flat variable names used by the compose files.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("database.host", "DB_HOST")
	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASSWORD")
	_ = v.BindEnv("database.name", "DB_NAME")
	_ = v.BindEnv("database.port", "DB_PORT")
	_ = v.BindEnv("database.sslmode", "DB_SSLMODE")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("kafka.broker", "KAFKA_BROKER")
	_ = v.BindEnv("logger.level", "LOG_LEVEL")
}

var validClassifications = map[string]bool{
	"ANNUAL":           true,
	"ONE_TIME":         true,
	"EVENT_REPEATABLE": true,
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// RestWeekdays converts the configured rest-day names.
func (c WorkdayConfig) RestWeekdays() []time.Weekday {
	out := make([]time.Weekday, 0, len(c.RestDays))
	for _, name := range c.RestDays {
		if d, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Calculator builds the accrual calculator for the configured schedule.
func (c AccrualConfig) Calculator() *accrual.Calculator {
	steps := make([]accrual.Step, len(c.Schedule))
	for i, st := range c.Schedule {
		steps[i] = accrual.Step{FromYear: st.FromYear, Days: st.Days}
	}
	return accrual.NewCalculator(accrual.NewSchedule(steps), c.EligibilityMonths)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Accrual.EligibilityMonths < 0 {
		return fmt.Errorf("accrual.eligibility_months must not be negative")
	}
	if err := validateSchedule(c.Accrual.Schedule); err != nil {
		return err
	}
	for name, class := range c.Classification {
		if !validClassifications[strings.ToUpper(class)] {
			return fmt.Errorf("classification.%s: unknown classification %q", name, class)
		}
	}
	for _, name := range c.Workday.RestDays {
		if _, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]; !ok {
			return fmt.Errorf("workday.rest_days: unknown weekday %q", name)
		}
	}
	if c.Sweep.Enabled && c.Sweep.Interval <= 0 {
		return fmt.Errorf("sweep.interval must be positive when the sweep is enabled")
	}
	if c.Outbox.BatchSize <= 0 {
		return fmt.Errorf("outbox.batch_size must be positive")
	}
	return nil
}

// validateSchedule requires the table to start at year 0 and to be
// monotonic in both columns.
func validateSchedule(steps []SeniorityStep) error {
	if len(steps) == 0 {
		return fmt.Errorf("accrual.schedule must not be empty")
	}
	if steps[0].FromYear != 0 {
		return fmt.Errorf("accrual.schedule must start at year 0")
	}
	for i, s := range steps {
		if s.Days < 0 {
			return fmt.Errorf("accrual.schedule[%d]: days must not be negative", i)
		}
		if i == 0 {
			continue
		}
		prev := steps[i-1]
		if s.FromYear <= prev.FromYear {
			return fmt.Errorf("accrual.schedule[%d]: from_year must increase", i)
		}
		if s.Days < prev.Days {
			return fmt.Errorf("accrual.schedule[%d]: days must not decrease", i)
		}
	}
	return nil
}
