// Package config loads the flowdiagram configuration file.
//
// The file is TOML with three optional tables:
//
//	[geometry]
//	node_width = 180
//	column_gap = 40
//
//	[render]
//	style = "dark"
//	formats = ["svg", "html"]
//	viz = "flow"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	namespace = "docs"
//	ttl = "72h"
//
// Missing keys keep their defaults. Command-line flags override the file.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowdiagram/pkg/cache"
	"github.com/matzehuels/flowdiagram/pkg/errors"
	"github.com/matzehuels/flowdiagram/pkg/flow/layout"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "FLOWDIAGRAM_CONFIG"

// DefaultTTL is how long cached layouts and artifacts live.
const DefaultTTL = 7 * 24 * time.Hour

// Config is the decoded configuration file.
type Config struct {
	Geometry layout.Geometry `toml:"geometry"`
	Render   Render          `toml:"render"`
	Cache    Cache           `toml:"cache"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

// Render holds the default render options.
type Render struct {
	Style   string   `toml:"style"`
	Formats []string `toml:"formats"`
	Viz     string   `toml:"viz"`
	Frames  bool     `toml:"frames"`
}

// Cache selects the cache backend.
type Cache struct {
	Backend       string   `toml:"backend"`
	Namespace     string   `toml:"namespace"` // key prefix on shared backends
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           Duration `toml:"ttl"`
}

// Duration is a time.Duration written as a string such as "36h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Geometry: layout.DefaultGeometry(),
		Render: Render{
			Style:   "simple",
			Formats: []string{"svg"},
			Viz:     "flow",
		},
		Cache: Cache{
			Backend: string(cache.BackendFile),
			TTL:     Duration{DefaultTTL},
		},
	}
}

// DefaultPath returns $FLOWDIAGRAM_CONFIG, or config.toml under the user
// config directory (~/.config/flowdiagram on Linux).
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "flowdiagram", "config.toml"), nil
}

// Load reads the config at path on top of [Default]. A missing file is not
// an error: the defaults are returned with an empty Path.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	cfg.Path = path
	cfg.Geometry = cfg.Geometry.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks the values that can be checked without opening anything.
// Style, format and viz names are checked by the pipeline.
func (c *Config) Validate() error {
	if err := c.Geometry.Validate(); err != nil {
		return err
	}
	if _, err := cache.ParseBackend(c.Cache.Backend); err != nil {
		return err
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if c.Cache.Namespace != "" {
		if err := errors.ValidateNamespace(c.Cache.Namespace); err != nil {
			return err
		}
	}
	if c.Cache.Backend == string(cache.BackendRedis) {
		if err := errors.ValidateAddr(c.Cache.RedisAddr); err != nil {
			return err
		}
	}
	return nil
}

// Keyer returns the cache keyer, scoped to the namespace when one is set.
func (c *Config) Keyer() cache.Keyer {
	if c.Cache.Namespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.Namespace+":")
}

// CacheOptions converts the [cache] table for [cache.Open].
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: cache.Backend(c.Cache.Backend),
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
	}
}
