package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the complete application configuration
type Config struct {
	DataDir    string        `mapstructure:"data_dir"`
	ReportsDir string        `mapstructure:"reports_dir"`
	Storage    StorageConfig `mapstructure:"storage"`
	Logging    LoggingConfig `mapstructure:"logging"`
	Alarm      AlarmConfig   `mapstructure:"alarm"`
	Sound      SoundConfig   `mapstructure:"sound"`
	Notify     NotifyConfig  `mapstructure:"notify"`
	Metrics    MetricsConfig `mapstructure:"metrics"`
}

// StorageConfig selects the snapshot backend
type StorageConfig struct {
	Type  string      `mapstructure:"type"`
	Path  string      `mapstructure:"path"`
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig defines the redis backend connection
type RedisConfig struct {
	Addr        string `mapstructure:"addr"`
	Password    string `mapstructure:"password"`
	DB          int    `mapstructure:"db"`
	DialTimeout string `mapstructure:"dial_timeout"`
}

// LoggingConfig defines logging behavior
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// AlarmConfig tunes the timer engine thresholds
type AlarmConfig struct {
	Interval        string `mapstructure:"interval"`
	FilterGrace     string `mapstructure:"filter_grace"`
	FilterThreshold int    `mapstructure:"filter_threshold"`
}

// SoundConfig tunes the terminal bell loop
type SoundConfig struct {
	BellInterval string `mapstructure:"bell_interval"`
	Muted        bool   `mapstructure:"muted"`
}

// NotifyConfig enables remote alert delivery
type NotifyConfig struct {
	SlackWebhookURL string `mapstructure:"slack_webhook_url"`
	WebhookURL      string `mapstructure:"webhook_url"`
	WebhookTemplate string `mapstructure:"webhook_template"`
}

// MetricsConfig enables the Prometheus endpoint
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration from an optional YAML file, a local .env file and
// KAMREEN_* environment variables. Environment wins over the file.
func Load(configPath string) (*Config, error) {
	if err := loadDotEnvIfPresent(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(v.GetString("data_dir"), "config.yaml")
	}
	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if explicit {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDerivedDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	applyDerivedDefaults(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("reports_dir", DefaultReportsDir())

	v.SetDefault("storage.type", StorageSQLite)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.dial_timeout", "5s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")

	v.SetDefault("alarm.interval", AlarmInterval.String())
	v.SetDefault("alarm.filter_grace", FilterResumeGrace.String())
	v.SetDefault("alarm.filter_threshold", FilterAlertAfter)

	v.SetDefault("sound.bell_interval", BellInterval.String())
	v.SetDefault("sound.muted", false)

	v.SetDefault("notify.slack_webhook_url", "")
	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.webhook_template", "")

	v.SetDefault("metrics.addr", "")
}

func applyDerivedDefaults(cfg *Config) {
	if cfg.Storage.Path == "" {
		switch cfg.Storage.Type {
		case StorageFile:
			cfg.Storage.Path = filepath.Join(cfg.DataDir, JSONFileName)
		case StorageBolt:
			cfg.Storage.Path = filepath.Join(cfg.DataDir, BoltFileName)
		default:
			cfg.Storage.Path = filepath.Join(cfg.DataDir, DBFileName)
		}
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = filepath.Join(cfg.DataDir, LogFileName)
	}
}

func validate(cfg *Config) error {
	switch cfg.Storage.Type {
	case StorageSQLite, StorageFile, StorageBolt, StorageRedis:
	default:
		return fmt.Errorf("unknown storage type: %q", cfg.Storage.Type)
	}
	if cfg.Storage.Type == StorageRedis && cfg.Storage.Redis.Addr == "" {
		return errors.New("storage.redis.addr is required for redis storage")
	}
	if _, err := positiveDuration("storage.redis.dial_timeout", cfg.Storage.Redis.DialTimeout); err != nil {
		return err
	}
	if _, err := positiveDuration("alarm.interval", cfg.Alarm.Interval); err != nil {
		return err
	}
	if _, err := positiveDuration("alarm.filter_grace", cfg.Alarm.FilterGrace); err != nil {
		return err
	}
	if cfg.Alarm.FilterThreshold < 1 {
		return fmt.Errorf("alarm.filter_threshold must be at least 1, got %d", cfg.Alarm.FilterThreshold)
	}
	if _, err := positiveDuration("sound.bell_interval", cfg.Sound.BellInterval); err != nil {
		return err
	}
	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown logging.format: %q", cfg.Logging.Format)
	}
	return nil
}

func positiveDuration(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be greater than zero", name)
	}
	return d, nil
}

// AlarmInterval returns the parsed alarm interval.
func (c *Config) AlarmInterval() time.Duration {
	return parseDuration(c.Alarm.Interval, AlarmInterval)
}

// FilterGrace returns the parsed resume grace window.
func (c *Config) FilterGrace() time.Duration {
	return parseDuration(c.Alarm.FilterGrace, FilterResumeGrace)
}

// BellInterval returns the parsed bell repeat interval.
func (c *Config) BellInterval() time.Duration {
	return parseDuration(c.Sound.BellInterval, BellInterval)
}

// RedisDialTimeout returns the parsed redis dial timeout.
func (c *Config) RedisDialTimeout() time.Duration {
	return parseDuration(c.Storage.Redis.DialTimeout, 5*time.Second)
}

// parseDuration parses a duration string with a fallback
func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func loadDotEnvIfPresent(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, os.ErrNotExist) {
		return nil
	}

	return err
}
