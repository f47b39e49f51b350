package cache

import (
	"context"
	"slices"

	"github.com/matzehuels/flowdiagram/pkg/errors"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend Backend
	Dir     string      // file backend; DefaultDir() when empty
	Redis   RedisConfig // redis backend
}

// Open creates the configured backend. An empty backend selects the file
// cache.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendMemory:
		return NewMemoryCache(), nil
	case "", BackendFile:
		dir := opts.Dir
		if dir == "" {
			var err error
			if dir, err = DefaultDir(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeCacheUnavailable, err, "file cache")
			}
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCacheUnavailable, err, "file cache")
		}
		return c, nil
	case BackendRedis:
		if err := errors.ValidateAddr(opts.Redis.Addr); err != nil {
			return nil, err
		}
		c, err := NewRedisCache(ctx, opts.Redis)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCacheUnavailable, err, "redis cache")
		}
		return c, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want one of %v)", opts.Backend, Backends)
}

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	b := Backend(s)
	if !slices.Contains(Backends, b) {
		return "", errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want one of %v)", s, Backends)
	}
	return b, nil
}
