package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
	"github.com/Ernest-Sab/IPR-Tool/pkg/ports"
)

// SmoothingParams are the UI-supplied knobs of a smoothing operation.
type SmoothingParams struct {
	Iterations   int `json:"iterations" yaml:"iterations" mapstructure:"iterations"`
	SmoothRadius int `json:"smooth_radius" yaml:"smooth_radius" mapstructure:"smooth_radius"`
}

// OffsetParams are the UI-supplied knobs of a surface-offset operation.
type OffsetParams struct {
	Direction    domain.Direction `json:"direction" yaml:"direction" mapstructure:"direction"`
	Strength     float64          `json:"strength" yaml:"strength" mapstructure:"strength"`
	SmoothRadius int              `json:"smooth_radius" yaml:"smooth_radius" mapstructure:"smooth_radius"`
}

// Engine orchestrates the full deformer workflow: resolve the selection,
// create the deformer, seed its influence map, all inside the transaction
// guard. Operations are synchronous and not reentrant.
type Engine struct {
	host   ports.Host
	store  ports.OperationStore
	logger *slog.Logger
	hooks  domain.LifecycleHooks

	resolver *Resolver
	factory  *Factory
	painter  *Painter
	guard    *Guard

	inFlight atomic.Bool
	now      func() time.Time
}

// EngineOption configures the runtime engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithStore sets the operation record store. Without one, operations are not
// recorded.
func WithStore(store ports.OperationStore) EngineOption {
	return func(e *Engine) { e.store = store }
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) { e.hooks = hooks }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine bound to the given host.
func NewEngine(host ports.Host, opts ...EngineOption) *Engine {
	e := &Engine{
		host: host,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e.resolver = NewResolver(host, host, e.logger)
	e.factory = NewFactory(host, host, e.logger)
	e.painter = NewPainter(host, host, host, host, e.logger, e.hooks)
	e.guard = NewGuard(host, host, host, host, e.logger)
	return e
}

// CreateSmoothing runs the full smoothing-deformer workflow. A selection
// failure aborts before any scene mutation; later failures are handled by
// the guard, which restores global state and leaves partial scene mutations
// for the artist.
func (e *Engine) CreateSmoothing(ctx context.Context, p SmoothingParams) error {
	return e.run(ctx, domain.KindSmoothing, "createSmoothingDeformer", true, p.SmoothRadius,
		func(ctx context.Context, sel domain.Selection) (domain.DeformerSpec, domain.DeformerHandle, error) {
			return e.factory.CreateSmoothing(ctx, sel, p.Iterations)
		})
}

// CreateOffset runs the full surface-offset workflow for either direction.
func (e *Engine) CreateOffset(ctx context.Context, p OffsetParams) error {
	return e.run(ctx, domain.KindSurfaceOffset, "createOffsetDeformer", false, p.SmoothRadius,
		func(ctx context.Context, sel domain.Selection) (domain.DeformerSpec, domain.DeformerHandle, error) {
			return e.factory.CreateOffset(ctx, sel, p.Direction, p.Strength)
		})
}

// ListOperations returns the recorded operations, most recent first.
func (e *Engine) ListOperations(ctx context.Context) ([]*domain.OperationRecord, error) {
	if e.store == nil {
		return nil, nil
	}
	return e.store.List(ctx)
}

type createFunc func(ctx context.Context, sel domain.Selection) (domain.DeformerSpec, domain.DeformerHandle, error)

func (e *Engine) run(ctx context.Context, kind domain.DeformerKind, chunk string, resetFrame bool, smoothRadius int, create createFunc) error {
	// Operations are single-flight: a re-entrant trigger while one is
	// mid-flight fails fast instead of corrupting the undo chunk pairing.
	if !e.inFlight.CompareAndSwap(false, true) {
		return domain.ErrOperationInFlight
	}
	defer e.inFlight.Store(false)

	sel, err := e.resolver.Resolve(ctx)
	if err != nil {
		// Nothing was mutated: no transaction was opened, nothing to roll
		// back. Still user-facing, so notify.
		e.host.Error(ctx, "Selection", err.Error())
		e.logger.Warn("selection resolution failed", "err", err)
		return err
	}

	started := e.now()
	rec := &domain.OperationRecord{
		ID:           fmt.Sprintf("op-%d", started.UnixNano()),
		Kind:         kind,
		BaseObject:   sel.BaseObject,
		Mode:         sel.Mode,
		Components:   len(sel.Components),
		SmoothRadius: smoothRadius,
		Status:       domain.StatusSucceeded,
		StartedAt:    started,
	}

	event := &domain.OperationEvent{Kind: kind, BaseObject: sel.BaseObject}
	if e.hooks.OnOperationStart != nil {
		e.hooks.OnOperationStart(ctx, event)
	}

	err = e.guard.Run(ctx, chunk, resetFrame, func(ctx context.Context) error {
		spec, handle, cerr := create(ctx, sel)
		if cerr != nil {
			return cerr
		}
		rec.DeformerName = handle.Node
		event.Deformer = handle.Node

		if perr := e.painter.Paint(ctx, sel, spec.Kind, handle, smoothRadius); perr != nil {
			// The painter already logged and warned; the created deformer
			// and its zeroed weights persist. Not fatal to the operation.
			rec.Status = domain.StatusPartial
			rec.Error = perr.Error()
		}
		return nil
	})
	if err != nil {
		rec.Status = domain.StatusFailed
		rec.Error = err.Error()
	}
	rec.FinishedAt = e.now()

	e.saveRecord(ctx, rec)

	event.Status = rec.Status
	event.Err = err
	if e.hooks.OnOperationEnd != nil {
		e.hooks.OnOperationEnd(ctx, event)
	}
	return err
}

func (e *Engine) saveRecord(ctx context.Context, rec *domain.OperationRecord) {
	if e.store == nil {
		return
	}
	if err := e.store.Save(ctx, rec); err != nil {
		e.logger.Error("failed to persist operation record", "id", rec.ID, "err", err)
		return
	}
	e.logger.Debug("operation recorded", "id", rec.ID, "status", rec.Status)
}
