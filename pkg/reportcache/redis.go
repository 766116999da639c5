// Package reportcache shares validation reports between godesc processes through Redis.
package reportcache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"github.com/argus-labs/godesc/pkg/codec"
	"github.com/argus-labs/godesc/pkg/validate"
)

const (
	DefaultPrefix = "godesc:report:"
	DefaultTTL    = 24 * time.Hour
)

var _ validate.Cache = (*Redis)(nil)

// Redis is a validate.Cache backed by a Redis server.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Redis)

func WithPrefix(prefix string) Option {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithTTL sets how long reports are kept. Zero keeps them until Redis evicts them.
func WithTTL(ttl time.Duration) Option {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

func New(client *redis.Client, opts ...Option) *Redis {
	r := &Redis{client: client, prefix: DefaultPrefix, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dial connects to the Redis server at addr and checks that it answers.
func Dial(ctx context.Context, addr, password string, opts ...Option) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, eris.Wrapf(err, "failed to reach redis at %s", addr)
	}
	return New(client, opts...), nil
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

func (r *Redis) Get(ctx context.Context, key string) (*validate.Report, bool, error) {
	bz, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, eris.Wrap(err, "failed to read report")
	}
	report, err := codec.Decode[validate.Report](bz)
	if err != nil {
		return nil, false, err
	}
	return &report, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, report *validate.Report) error {
	bz, err := codec.Encode(report)
	if err != nil {
		return err
	}
	return eris.Wrap(r.client.Set(ctx, r.key(key), bz, r.ttl).Err(), "failed to store report")
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return eris.Wrap(r.client.Close(), "")
}
