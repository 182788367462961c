package cli

import (
	"fmt"

	"github.com/aretw0/valence/internal/adapters/file"
	"github.com/aretw0/valence/internal/adapters/redis"
	"github.com/aretw0/valence/internal/config"
	"github.com/aretw0/valence/pkg/adapters/memory"
	"github.com/aretw0/valence/pkg/persistence/middleware"
	"github.com/aretw0/valence/pkg/ports"
)

// openStore creates the document store selected by cfg, wrapped with the
// masking and encryption middleware it enables. The returned close function
// is never nil.
func openStore(cfg config.StoreConfig) (ports.DocumentStore, func() error, error) {
	store, closeFn, err := openBackend(cfg)
	if err != nil {
		return nil, closeFn, err
	}

	var mws []middleware.Middleware
	if len(cfg.MaskKeys) > 0 {
		mws = append(mws, middleware.NewMaskMiddleware(cfg.MaskKeys))
	}
	active, fallback, err := cfg.Keys()
	if err != nil {
		return nil, closeFn, err
	}
	if active != nil {
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		}))
	}
	return middleware.Wrap(store, mws...), closeFn, nil
}

func openBackend(cfg config.StoreConfig) (ports.DocumentStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		return memory.NewStore(), noop, nil
	case config.BackendFile:
		return file.New(cfg.Path), noop, nil
	case config.BackendRedis:
		var opts []redis.Option
		if cfg.RedisPrefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.RedisPrefix))
		}
		if cfg.RedisTTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.RedisTTL))
		}
		s := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, opts...)
		return s, s.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
