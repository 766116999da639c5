// Package statsd wraps the few statsd calls godesc makes. The client is a no-op until Init is
// called, so library users that never configure metrics pay nothing.
package statsd

import (
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

var client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}

func Client() ddstatsd.ClientInterface {
	return client
}

// EmitDuration reports the time elapsed since start as a timing metric.
func EmitDuration(metric string, start time.Time, tags ...string) {
	if err := Client().Timing(metric, time.Since(start), tags, 1); err != nil {
		log.Logger.Warn().Err(err).Str("metric", metric).Msg("failed to emit timing")
	}
}

// Count increments a counter metric by n.
func Count(metric string, n int64, tags ...string) {
	if err := Client().Count(metric, n, tags, 1); err != nil {
		log.Logger.Warn().Err(err).Str("metric", metric).Msg("failed to emit count")
	}
}

// Init replaces the no-op client with one sending to address, e.g. "localhost:8125".
func Init(address string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		// The statsd namespace is the prefix of all metrics
		ddstatsd.WithNamespace("godesc."),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return eris.Wrapf(err, "failed to create statsd client for %s", address)
	}
	client = newClient
	return nil
}

// Close flushes and closes the client and falls back to the no-op client.
func Close() error {
	c := client
	client = &ddstatsd.NoOpClient{}
	return c.Close()
}
