package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"github.com/argus-labs/godesc/pkg/resource"
	"github.com/argus-labs/godesc/pkg/validate"
)

const (
	configName = "godesc"
	envPrefix  = "GODESC"
)

// Config is the project configuration, read from godesc.yaml with GODESC_* environment and flag
// overrides.
type Config struct {
	// Root is the project directory resource paths are resolved against. Defaults to the directory
	// holding the config file, or the working directory.
	Root        string          `mapstructure:"root"`
	Concurrency int             `mapstructure:"concurrency"`
	CacheSizeKB int             `mapstructure:"cache_size_kb"`
	CacheTTL    time.Duration   `mapstructure:"cache_ttl"`
	Rules       []validate.Rule `mapstructure:"rules"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Statsd      StatsdConfig    `mapstructure:"statsd"`
	Port        string          `mapstructure:"port"`
}

type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type StatsdConfig struct {
	Address string   `mapstructure:"address"`
	Tags    []string `mapstructure:"tags"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root", "")
	v.SetDefault("concurrency", 8)
	v.SetDefault("cache_size_kb", resource.DefaultCacheSizeKB)
	v.SetDefault("cache_ttl", time.Duration(0))
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.ttl", 24*time.Hour)
	v.SetDefault("statsd.address", "")
	v.SetDefault("port", "")
}

// loadConfig reads configFile, or godesc.yaml from the working directory when configFile is empty.
// A missing default config file is not an error.
func loadConfig(v *viper.Viper, configFile string) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, eris.Wrap(err, "failed to read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "failed to decode config")
	}

	if cfg.Root == "" {
		cfg.Root = "."
		if used := v.ConfigFileUsed(); used != "" {
			cfg.Root = filepath.Dir(used)
		}
	}
	if err := cfg.validate(); err != nil {
		return Config{}, eris.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Concurrency <= 0 {
		return eris.New("concurrency must be positive")
	}
	if cfg.CacheSizeKB <= 0 {
		return eris.New("cache_size_kb must be positive")
	}
	for _, r := range cfg.Rules {
		if r.Severity != "" && !r.Severity.IsValid() {
			return eris.Errorf("rule %q: severity must be 'error' or 'warning'", r.Name)
		}
	}
	return nil
}
