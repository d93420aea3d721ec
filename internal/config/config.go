// Package config merges command-line flags, SLEEPCALC_* environment variables
// and an optional sleepcalc.yaml into one Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"sleepcalc/internal/form"
)

const envPrefix = "SLEEPCALC"

// Theme persistence backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

type Config struct {
	Mode        string `mapstructure:"mode"`
	Time        string `mapstructure:"time"`
	FallAsleep  int    `mapstructure:"fall-asleep"`
	SleepCycles int    `mapstructure:"sleep-cycles"`
	JSON        bool   `mapstructure:"json"`

	Port      int `mapstructure:"port"`
	RateLimit int `mapstructure:"rate-limit"` // requests per minute per client IP

	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`

	ThemeBackend  string        `mapstructure:"theme-backend"`
	ThemeFile     string        `mapstructure:"theme-file"`
	ThemeCacheTTL time.Duration `mapstructure:"theme-cache-ttl"`

	RedisAddr     string `mapstructure:"redis-addr"`
	RedisPassword string `mapstructure:"redis-password"`
	RedisDB       int    `mapstructure:"redis-db"`
}

// SetDefaults registers the keys whose default is the same for every command.
// port and log-level are left to the flags, which differ between the
// one-shot calculation and serve.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mode", string(form.DefaultMode))
	v.SetDefault("time", form.DefaultTime.String())
	v.SetDefault("fall-asleep", form.DefaultFallAsleep)
	v.SetDefault("sleep-cycles", form.DefaultSleepCycles)
	v.SetDefault("json", false)
	v.SetDefault("rate-limit", 120)
	v.SetDefault("log-format", "console")
	v.SetDefault("theme-backend", BackendFile)
	v.SetDefault("theme-file", "")
	v.SetDefault("theme-cache-ttl", 5*time.Second)
	v.SetDefault("redis-addr", "localhost:6379")
	v.SetDefault("redis-password", "")
	v.SetDefault("redis-db", 0)
}

// New returns a viper instance wired to the environment and the optional
// config file search path.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("sleepcalc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "sleepcalc"))
	}
	return v
}

// Load binds flags (which win over env and file) and decodes the result.
// A missing config file is not an error.
func Load(v *viper.Viper, flags *pflag.FlagSet) (Config, error) {
	var cfg Config
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return cfg, fmt.Errorf("binding flags: %w", err)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.ThemeBackend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return fmt.Errorf("theme-backend must be one of %s, %s, %s (got %q)", BackendFile, BackendRedis, BackendNone, c.ThemeBackend)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535 (got %d)", c.Port)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate-limit must be >= 0 (got %d)", c.RateLimit)
	}
	return nil
}
