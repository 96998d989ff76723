// Package cli wires engines for the command-line binaries: host, store,
// logger and hooks assembled from configuration with standard conventions.
package cli

import (
	"fmt"
	"log/slog"

	iprescue "github.com/Ernest-Sab/IPR-Tool"
	"github.com/Ernest-Sab/IPR-Tool/internal/config"
	"github.com/Ernest-Sab/IPR-Tool/internal/logging"
	"github.com/Ernest-Sab/IPR-Tool/pkg/adapters/memory"
	redisAdapter "github.com/Ernest-Sab/IPR-Tool/pkg/adapters/redis"
	"github.com/Ernest-Sab/IPR-Tool/pkg/persistence/middleware"
	"github.com/Ernest-Sab/IPR-Tool/pkg/ports"
)

// Runtime bundles everything a command needs to serve the engine.
type Runtime struct {
	Engine *iprescue.Engine
	Host   *memory.Host
	Store  ports.OperationStore

	closers []func() error
}

// Close releases store connections.
func (r *Runtime) Close() error {
	var firstErr error
	for _, c := range r.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SceneOptions describe the sandbox scene the server binaries operate on.
// Without a live DCC session the commands run against the in-memory host, so
// API consumers can exercise the full workflow end to end.
type SceneOptions struct {
	Mesh string
	Rows int
	Cols int
}

// BuildRuntime creates an engine from configuration with standard CLI
// conventions: the in-memory sandbox host, a redis store when configured,
// and the caller's lifecycle hooks.
func BuildRuntime(cfg config.Config, logger *slog.Logger, scene SceneOptions, opts ...iprescue.Option) (*Runtime, error) {
	rt := &Runtime{}

	rt.Host = memory.NewHost()
	if scene.Mesh != "" {
		if scene.Rows < 2 || scene.Cols < 2 {
			return nil, fmt.Errorf("scene mesh needs at least a 2x2 grid, got %dx%d", scene.Rows, scene.Cols)
		}
		rt.Host.AddGridMesh(scene.Mesh, scene.Rows, scene.Cols)
		rt.Host.SelectObject(scene.Mesh)
	}

	if cfg.Redis.Addr != "" {
		store := redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redisAdapter.WithPrefix(cfg.Redis.KeyPrefix+":operation:"),
			redisAdapter.WithTTL(cfg.Redis.TTL.Std()),
		)
		rt.Store = store
		rt.closers = append(rt.closers, store.Close)
		logger.Info("using redis operation store", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.KeyPrefix)
	} else {
		rt.Store = memory.NewStore()
	}

	store, err := wrapStore(rt.Store, cfg.Privacy)
	if err != nil {
		return nil, err
	}
	rt.Store = store

	engineOpts := []iprescue.Option{
		iprescue.WithLogger(logger),
		iprescue.WithOperationStore(rt.Store),
	}
	engineOpts = append(engineOpts, opts...)

	rt.Engine = iprescue.New(rt.Host, engineOpts...)
	return rt, nil
}

// wrapStore applies the configured privacy middlewares. Redaction runs before
// encryption so masked names are what get sealed.
func wrapStore(store ports.OperationStore, privacy config.PrivacyConfig) (ports.OperationStore, error) {
	var mws []middleware.Middleware
	if len(privacy.RedactionPatterns) > 0 {
		mws = append(mws, middleware.NewRedactionMiddleware(privacy.RedactionPatterns))
	}
	if privacy.EncryptionKey != "" {
		active, err := privacy.DecodeKey(privacy.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("privacy.encryption_key: %w", err)
		}
		fallbacks := make([][]byte, 0, len(privacy.FallbackKeys))
		for i, k := range privacy.FallbackKeys {
			key, err := privacy.DecodeKey(k)
			if err != nil {
				return nil, fmt.Errorf("privacy.fallback_keys[%d]: %w", i, err)
			}
			fallbacks = append(fallbacks, key)
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallbacks,
		}))
	}
	if len(mws) == 0 {
		return store, nil
	}
	return middleware.Chain(store, mws...), nil
}

// NewLogger configures the application logger from config.
func NewLogger(cfg config.Config, debug bool) (*slog.Logger, error) {
	if debug {
		return logging.New(slog.LevelDebug, cfg.LogFormat), nil
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level, cfg.LogFormat), nil
}
