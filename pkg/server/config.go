package server

import (
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
)

const (
	defaultPort        = "4040"
	defaultBodyLimitKB = 1024
	bytesPerKb         = 1024
)

type Config struct {
	// Port the HTTP server listens on.
	Port string `env:"GODESC_PORT" envDefault:"4040"`

	// BodyLimitKB caps the size of descriptor uploads.
	BodyLimitKB int `env:"GODESC_BODY_LIMIT_KB" envDefault:"1024"`

	// CORS enables permissive CORS headers for browser tooling.
	CORS bool `env:"GODESC_CORS" envDefault:"true"`
}

func loadConfig() (Config, error) {
	cfg := Config{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse server config")
	}

	if err := cfg.validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate server config")
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Port == "" {
		return eris.New("port cannot be empty")
	}
	if cfg.BodyLimitKB <= 0 {
		return eris.New("body limit must be positive")
	}
	return nil
}

func (cfg *Config) applyToOptions(opt *Options) {
	opt.Port = cfg.Port
	opt.BodyLimitKB = cfg.BodyLimitKB
	cors := cfg.CORS
	opt.CORS = &cors
}

type Options struct {
	Port        string
	BodyLimitKB int
	// CORS is nil to keep the GODESC_CORS setting.
	CORS *bool
}

func newDefaultOptions() Options {
	return Options{
		Port:        defaultPort,
		BodyLimitKB: defaultBodyLimitKB,
		CORS:        boolPtr(true),
	}
}

// apply merges the given options into the current options, overriding non-zero values.
func (opt *Options) apply(newOpt Options) {
	if newOpt.Port != "" {
		opt.Port = newOpt.Port
	}
	if newOpt.BodyLimitKB != 0 {
		opt.BodyLimitKB = newOpt.BodyLimitKB
	}
	if newOpt.CORS != nil {
		opt.CORS = newOpt.CORS
	}
}

func boolPtr(b bool) *bool {
	return &b
}
