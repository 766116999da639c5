// Package validate checks game object descriptors for problems the engine would only report at
// build or run time: broken references, missing animations, malformed values, and project rules.
package validate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/argus-labs/godesc/pkg/descriptor"
	"github.com/argus-labs/godesc/pkg/statsd"
)

// DescriptorExt is the file extension of game object descriptors.
const DescriptorExt = ".go"

const (
	defaultConcurrency = 8

	// checksVersion is part of the cache fingerprint. Bump it when a check changes behavior.
	checksVersion = "2"
)

// Resolver answers questions about project resources. *resource.Resolver implements it.
type Resolver interface {
	// Root identifies the project. It is part of the cache fingerprint.
	Root() string
	Exists(path string) error
	Animations(path string) ([]string, error)
}

type Validator struct {
	resolver    Resolver
	rules       []compiledRule
	concurrency int
	cache       Cache
	logger      zerolog.Logger
	tracer      trace.Tracer
	fingerprint string

	pendingRules []Rule
}

type Option func(*Validator)

// WithRules adds custom rules. They are compiled by New.
func WithRules(rules ...Rule) Option {
	return func(v *Validator) {
		v.pendingRules = append(v.pendingRules, rules...)
	}
}

// WithConcurrency bounds the number of files ValidateFiles checks at once.
func WithConcurrency(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.concurrency = n
		}
	}
}

func WithCache(c Cache) Option {
	return func(v *Validator) {
		v.cache = c
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(v *Validator) {
		v.logger = l
	}
}

// New builds a validator. A nil resolver disables every check that needs project files.
func New(resolver Resolver, opts ...Option) (*Validator, error) {
	v := &Validator{
		resolver:    resolver,
		concurrency: defaultConcurrency,
		logger:      zerolog.Nop(),
		tracer:      otel.Tracer("github.com/argus-labs/godesc/pkg/validate"),
	}
	for _, opt := range opts {
		opt(v)
	}

	h := sha256.New()
	h.Write([]byte(checksVersion))
	h.Write([]byte{0})
	if resolver != nil {
		h.Write([]byte("resolver:" + resolver.Root()))
	}
	h.Write([]byte{0})
	seen := make(map[string]struct{})
	for _, r := range v.pendingRules {
		if _, dup := seen[r.Name]; dup {
			return nil, eris.Errorf("duplicate rule name %q", r.Name)
		}
		seen[r.Name] = struct{}{}

		c, err := compileRule(r)
		if err != nil {
			return nil, err
		}
		v.rules = append(v.rules, c)
		for _, s := range []string{c.Name, c.When, c.Expr, c.Message, string(c.Severity)} {
			h.Write([]byte(s))
			h.Write([]byte{0})
		}
	}
	v.pendingRules = nil
	v.fingerprint = hex.EncodeToString(h.Sum(nil))
	return v, nil
}

// Fingerprint identifies the checks this validator runs. Reports are cached under it.
func (v *Validator) Fingerprint() string {
	return v.fingerprint
}

// Validate checks one descriptor. name is used in positions and as Report.File.
func (v *Validator) Validate(ctx context.Context, name string, src []byte) *Report {
	ctx, span := v.tracer.Start(ctx, "validate.file", trace.WithAttributes(attribute.String("file", name)))
	defer span.End()
	start := time.Now()

	var key string
	if v.cache != nil {
		key = cacheKey(v.fingerprint, name, src)
		cached, found, err := v.cache.Get(ctx, key)
		if err != nil {
			v.logger.Warn().Err(err).Str("file", name).Msg("report cache read failed")
		} else if found {
			cached.Cached = true
			statsd.Count("validate.cache_hits", 1)
			return cached
		}
	}

	report := v.check(name, src)

	if v.cache != nil {
		if err := v.cache.Set(ctx, key, report); err != nil {
			v.logger.Warn().Err(err).Str("file", name).Msg("report cache write failed")
		}
	}

	errCount, warnCount := report.Count(SeverityError), report.Count(SeverityWarning)
	span.SetAttributes(attribute.Int("errors", errCount), attribute.Int("warnings", warnCount))
	statsd.Count("validate.files", 1)
	statsd.Count("validate.issues", int64(errCount), "severity:error")
	statsd.Count("validate.issues", int64(warnCount), "severity:warning")
	statsd.EmitDuration("validate.duration", start)
	v.logger.Debug().
		Str("file", name).
		Int("errors", errCount).
		Int("warnings", warnCount).
		Dur("took", time.Since(start)).
		Msg("validated descriptor")
	return report
}

func (v *Validator) check(name string, src []byte) *Report {
	report := &Report{File: name, Issues: []Issue{}}

	g, err := descriptor.ParseBytes(name, src)
	if err != nil {
		report.add(decodeIssue(err))
		return report
	}

	checkRotations(report, g)
	checkProperties(report, g)
	v.checkReferences(report, g)
	v.checkRules(report, g)
	report.sort()
	return report
}

// ValidateFile reads and checks the descriptor at path.
func (v *Validator) ValidateFile(ctx context.Context, path string) (*Report, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read %s", path)
	}
	return v.Validate(ctx, path, src), nil
}

// ValidateFiles checks paths concurrently. Reports are returned in the order of paths. The first
// read error cancels the remaining work.
func (v *Validator) ValidateFiles(ctx context.Context, paths []string) ([]*Report, error) {
	reports := make([]*Report, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := v.ValidateFile(ctx, p)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Walk returns every descriptor under root in lexical order. Hidden directories and the engine's
// build output directory are skipped.
func Walk(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "build") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(p) == DescriptorExt {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, eris.Wrapf(err, "failed to walk %s", root)
	}
	return paths, nil
}
