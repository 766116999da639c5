// Package cmd implements the godesc command line.
package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/argus-labs/godesc/pkg/reportcache"
	"github.com/argus-labs/godesc/pkg/resource"
	"github.com/argus-labs/godesc/pkg/statsd"
	"github.com/argus-labs/godesc/pkg/telemetry"
	"github.com/argus-labs/godesc/pkg/validate"
)

// ErrIssuesFound is returned by validate when any descriptor has errors. The reports have already
// been printed, so callers only need to set the exit status.
var ErrIssuesFound = errors.New("validation found errors")

const (
	serviceName = "godesc"

	// shutdownTimeout bounds flushing spans and closing connections after a command.
	shutdownTimeout = 5 * time.Second
)

// app is the state shared by all subcommands, filled in by the root command's pre-run.
type app struct {
	v      *viper.Viper
	cfg    Config
	tel    telemetry.Telemetry
	logger zerolog.Logger

	// closers run in reverse order once the command returns.
	closers []func(ctx context.Context) error
}

// NewRootCmd builds the godesc command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{v: viper.New()})
}

func newRootCmd(a *app) *cobra.Command {
	var configFile string
	rootCmd := &cobra.Command{
		Use:           "godesc",
		Short:         "Inspect, format and validate game object descriptors",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.v, configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg

			a.tel, err = telemetry.New(telemetry.Options{ServiceName: serviceName, Output: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			a.logger = a.tel.GetLogger(cmd.Name())
			a.closers = append(a.closers, a.tel.Shutdown)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ./godesc.yaml)")
	flags.String("root", "", "project root resource paths are resolved against")
	flags.Int("concurrency", 0, "number of descriptors validated at once")
	_ = a.v.BindPFlag("root", flags.Lookup("root"))
	_ = a.v.BindPFlag("concurrency", flags.Lookup("concurrency"))

	rootCmd.AddCommand(
		newValidateCmd(a),
		newDumpCmd(a),
		newFmtCmd(a),
		newRefsCmd(a),
		newDiffCmd(a),
		newSchemaCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

// newValidator wires the resolver, report cache and metrics from the config.
func (a *app) newValidator(ctx context.Context) (*validate.Validator, error) {
	resolver, err := resource.New(a.cfg.Root,
		resource.WithCacheSize(a.cfg.CacheSizeKB),
		resource.WithCacheTTL(a.cfg.CacheTTL))
	if err != nil {
		return nil, err
	}

	opts := []validate.Option{
		validate.WithRules(a.cfg.Rules...),
		validate.WithConcurrency(a.cfg.Concurrency),
		validate.WithLogger(a.tel.GetLogger("validate")),
	}

	if a.cfg.Redis.Address != "" {
		cache, err := reportcache.Dial(ctx, a.cfg.Redis.Address, a.cfg.Redis.Password,
			reportcache.WithTTL(a.cfg.Redis.TTL))
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return cache.Close() })
		opts = append(opts, validate.WithCache(cache))
	}

	if a.cfg.Statsd.Address != "" {
		if err := statsd.Init(a.cfg.Statsd.Address, a.cfg.Statsd.Tags); err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return statsd.Close() })
	}

	return validate.New(resolver, opts...)
}

// run wraps a command body so that telemetry and anything newValidator opened are released when
// it returns, whether or not it failed. The release gets its own deadline since the command's
// context may already be canceled by a signal.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if cerr := a.close(ctx); err == nil {
				err = cerr
			}
		}()
		return fn(cmd, args)
	}
}

// close releases what newValidator opened and flushes telemetry.
func (a *app) close(ctx context.Context) error {
	var errs error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = errors.Join(errs, a.closers[i](ctx))
	}
	a.closers = nil
	return eris.Wrap(errs, "failed to shut down")
}
