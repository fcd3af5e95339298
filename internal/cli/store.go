package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/gambit/pkg/adapters/file"
	"github.com/aretw0/gambit/pkg/adapters/memory"
	"github.com/aretw0/gambit/pkg/adapters/redis"
	"github.com/aretw0/gambit/pkg/persistence/middleware"
	"github.com/aretw0/gambit/pkg/ports"
	"github.com/aretw0/gambit/pkg/session"
)

// openStore returns the Redis store when an address is configured, the file
// store when a directory is, and the in-memory store otherwise. With a key,
// snapshots are encrypted. closeFn releases the connection.
func openStore(cfg Config, logger *slog.Logger) (store ports.SnapshotStore, locker ports.DistributedLocker, closeFn func() error, err error) {
	closeFn = func() error { return nil }
	switch {
	case cfg.RedisAddr != "":
		logger.Debug("using redis store", "addr", cfg.RedisAddr)
		rs := redis.New(cfg.RedisAddr, "", 0)
		store, locker, closeFn = rs, redis.NewLocker(rs.Client(), redis.DefaultPrefix), rs.Close
	case cfg.StoreDir != "":
		logger.Debug("using file store", "dir", cfg.StoreDir)
		store = file.New(cfg.StoreDir)
	default:
		logger.Debug("using in-memory store")
		store = memory.NewStore()
	}

	if cfg.StoreKey != "" {
		key, err := middleware.ParseKey(cfg.StoreKey)
		if err != nil {
			closeFn()
			return nil, nil, nil, fmt.Errorf("%s: %w", EnvStoreKey, err)
		}
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			closeFn()
			return nil, nil, nil, err
		}
		store = middleware.Chain(store, mw)
		logger.Debug("snapshots are encrypted at rest")
	}
	return store, locker, closeFn, nil
}

// openSessions wraps the configured store in a session manager. The Redis
// locker serializes sessions across server replicas.
func openSessions(cfg Config, logger *slog.Logger) (*session.Manager, func() error, error) {
	store, locker, closeFn, err := openStore(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	opts := []session.Option{session.WithLogger(logger)}
	if locker != nil {
		opts = append(opts, session.WithLocker(locker))
	}
	return session.NewManager(store, opts...), closeFn, nil
}
