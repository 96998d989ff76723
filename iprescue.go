package iprescue

import (
	"context"
	"log/slog"

	"github.com/Ernest-Sab/IPR-Tool/internal/logging"
	"github.com/Ernest-Sab/IPR-Tool/internal/runtime"
	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
	"github.com/Ernest-Sab/IPR-Tool/pkg/ports"
)

// Version is the library version, overridable at build time via ldflags.
var Version = "0.1.0"

// SmoothingParams are the knobs of a smoothing operation.
type SmoothingParams = runtime.SmoothingParams

// OffsetParams are the knobs of a surface-offset operation.
type OffsetParams = runtime.OffsetParams

// Engine is the high-level entry point for the library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	host    ports.Host
	logger  *slog.Logger
	store   ports.OperationStore
	hooks   domain.LifecycleHooks
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithOperationStore sets the store for operation audit records. Without one,
// operations run but are not recorded.
func WithOperationStore(store ports.OperationStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// New initializes an Engine bound to the given host. The host is typically a
// live DCC session; tests use the in-memory fake.
func New(host ports.Host, opts ...Option) *Engine {
	eng := &Engine{host: host}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	}
	if eng.store != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithStore(eng.store))
	}
	eng.runtime = runtime.NewEngine(host, runtimeOpts...)
	return eng
}

// CreateSmoothingDeformer builds a smoothing deformer on the current host
// selection and paints its influence from the selected components. The whole
// workflow runs inside one undo chunk; a selection failure aborts before any
// scene mutation.
func (e *Engine) CreateSmoothingDeformer(ctx context.Context, params SmoothingParams) error {
	return e.runtime.CreateSmoothing(ctx, params)
}

// CreateOffsetDeformer builds a surface-offset deformer on the current host
// selection. DirectionPull inflates the surface along its normals,
// DirectionPush deflates it.
func (e *Engine) CreateOffsetDeformer(ctx context.Context, params OffsetParams) error {
	return e.runtime.CreateOffset(ctx, params)
}

// ListOperations returns the recorded operations, most recent first.
func (e *Engine) ListOperations(ctx context.Context) ([]*domain.OperationRecord, error) {
	return e.runtime.ListOperations(ctx)
}
