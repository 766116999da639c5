// Package resource resolves project paths such as "/game/hero.atlas" against a project
// directory and reads the animation names that atlases and tile sources provide.
package resource

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/coocood/freecache"
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"github.com/argus-labs/godesc/pkg/ddf"
)

const (
	bytesPerKb = 1024

	// BuiltinsPrefix marks resources shipped with the engine. They are never looked up on disk.
	BuiltinsPrefix = "/builtins/"

	DefaultCacheSizeKB = 512
)

var (
	ErrNotFound    = eris.New("resource not found")
	ErrOutsideRoot = eris.New("resource path escapes the project root")
	ErrNotAbsolute = eris.New("resource path must start with /")
	ErrNoAnimation = eris.New("resource does not provide animations")
)

// Resolver maps project paths onto a directory. It is safe for concurrent use.
type Resolver struct {
	root     string
	cache    *freecache.Cache
	cacheTTL time.Duration
}

type Option func(*Resolver)

// WithCacheSize sets the size of the animation cache. freecache enforces a 512KB minimum.
func WithCacheSize(kb int) Option {
	return func(r *Resolver) {
		r.cache = freecache.NewCache(kb * bytesPerKb)
	}
}

// WithCacheTTL expires cached animation lists after d. Zero keeps them until evicted.
func WithCacheTTL(d time.Duration) Option {
	return func(r *Resolver) {
		r.cacheTTL = d
	}
}

func New(root string, opts ...Option) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to resolve project root %s", root)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open project root %s", root)
	}
	if !info.IsDir() {
		return nil, eris.Errorf("project root %s is not a directory", root)
	}

	r := &Resolver{root: abs}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = freecache.NewCache(DefaultCacheSizeKB * bytesPerKb)
	}
	return r, nil
}

func (r *Resolver) Root() string {
	return r.root
}

// IsBuiltin reports whether p names an engine-provided resource.
func IsBuiltin(p string) bool {
	return strings.HasPrefix(p, BuiltinsPrefix)
}

// Local returns the filesystem path of the project path p.
func (r *Resolver) Local(p string) (string, error) {
	if !strings.HasPrefix(p, "/") {
		return "", eris.Wrapf(ErrNotAbsolute, "%q", p)
	}
	depth := 0
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			depth--
			if depth < 0 {
				return "", eris.Wrapf(ErrOutsideRoot, "%q", p)
			}
		default:
			depth++
		}
	}
	return filepath.Join(r.root, filepath.FromSlash(path.Clean(p))), nil
}

// Exists returns nil when p names a file in the project or a builtin resource.
func (r *Resolver) Exists(p string) error {
	if IsBuiltin(p) {
		return nil
	}
	local, err := r.Local(p)
	if err != nil {
		return err
	}
	info, err := os.Stat(local)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
		return eris.Wrapf(ErrNotFound, "%s", p)
	}
	if err != nil {
		return eris.Wrapf(err, "failed to stat %s", p)
	}
	return nil
}

// Animations returns the animation names that can be played from the atlas or tile source at p.
// For atlases every image can be played on its own, so image base names are included after the
// animation ids. Builtin resources return a nil slice.
func (r *Resolver) Animations(p string) ([]string, error) {
	if IsBuiltin(p) {
		return nil, nil
	}

	key := []byte(p)
	if cached, err := r.cache.Get(key); err == nil {
		var names []string
		if err := json.Unmarshal(cached, &names); err == nil {
			return names, nil
		}
	} else if !errors.Is(err, freecache.ErrNotFound) {
		return nil, eris.Wrap(err, "animation cache read failed")
	}

	names, err := r.readAnimations(p)
	if err != nil {
		return nil, err
	}

	buf, err := json.Marshal(names)
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode animation names")
	}
	// A full cache only costs a re-read next time.
	_ = r.cache.Set(key, buf, int(r.cacheTTL/time.Second))
	return names, nil
}

func (r *Resolver) readAnimations(p string) ([]string, error) {
	ext := path.Ext(p)
	switch ext {
	case ".atlas", ".tilesource", ".tileset":
	default:
		return nil, eris.Wrapf(ErrNoAnimation, "%s", p)
	}

	if err := r.Exists(p); err != nil {
		return nil, err
	}
	local, err := r.Local(p)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(local)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open %s", p)
	}
	defer f.Close()

	msg, err := ddf.Parse(p, f)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	names := make([]string, 0)
	add := func(name string) {
		if _, ok := seen[name]; ok || name == "" {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	for _, anim := range msg.All("animations") {
		m, err := anim.AsMessage()
		if err != nil {
			return nil, err
		}
		if id := m.Get("id"); id != nil {
			name, err := id.AsString()
			if err != nil {
				return nil, err
			}
			add(name)
		}
	}
	if ext == ".atlas" {
		for _, img := range msg.All("images") {
			m, err := img.AsMessage()
			if err != nil {
				return nil, err
			}
			if f := m.Get("image"); f != nil {
				image, err := f.AsString()
				if err != nil {
					return nil, err
				}
				add(strings.TrimSuffix(path.Base(image), path.Ext(image)))
			}
		}
	}
	return names, nil
}
