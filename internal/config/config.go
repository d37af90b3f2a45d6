package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Refresh  RefreshConfig  `mapstructure:"refresh"`
	Budget   BudgetConfig   `mapstructure:"budget"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// UpstreamConfig points at the tool-catalog REST API.
type UpstreamConfig struct {
	URL      string        `mapstructure:"url"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type RefreshConfig struct {
	Interval      time.Duration `mapstructure:"interval"`
	RetentionDays int           `mapstructure:"retention_days"`
}

type BudgetConfig struct {
	MonthlyLimit float64 `mapstructure:"monthly_limit"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TOOLSPEND")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("upstream.url", "https://tt-jsonserver-01.alt-tools.tech")
	v.SetDefault("upstream.timeout", "15s")
	v.SetDefault("refresh.interval", "1h")
	v.SetDefault("refresh.retention_days", 90)
	v.SetDefault("budget.monthly_limit", 30000)
	v.SetDefault("storage.path", "toolspend.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("log.level", "info")
}

func defaultConfig() *Config {
	return &Config{
		Upstream: UpstreamConfig{
			URL:     "https://tt-jsonserver-01.alt-tools.tech",
			Timeout: 15 * time.Second,
		},
		Refresh: RefreshConfig{
			Interval:      time.Hour,
			RetentionDays: 90,
		},
		Budget: BudgetConfig{
			MonthlyLimit: 30000,
		},
		Storage: StorageConfig{
			Path: "toolspend.db",
		},
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func (c *Config) Validate() error {
	if c.Upstream.URL == "" {
		return fmt.Errorf("upstream.url is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Refresh.RetentionDays < 1 {
		return fmt.Errorf("refresh.retention_days must be at least 1")
	}
	if c.Budget.MonthlyLimit < 0 {
		return fmt.Errorf("budget.monthly_limit must not be negative")
	}
	return nil
}

func (c *Config) RetentionDuration() time.Duration {
	return time.Duration(c.Refresh.RetentionDays) * 24 * time.Hour
}

func (c *Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ConfigFileExists(path string) bool {
	if path == "" {
		path = "config.yaml"
	}
	_, err := os.Stat(path)
	return err == nil
}
