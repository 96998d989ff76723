package domain

import "context"

// OperationEvent carries the payload for operation lifecycle hooks.
type OperationEvent struct {
	Kind       DeformerKind
	BaseObject string
	Deformer   string
	Status     OperationStatus
	Err        error
}

// LifecycleHooks are optional observability callbacks fired by the engine.
// Nil callbacks are skipped. Hooks run synchronously on the operation
// goroutine and must not block.
type LifecycleHooks struct {
	// OnOperationStart fires after the selection is resolved, before the
	// transaction opens.
	OnOperationStart func(ctx context.Context, e *OperationEvent)

	// OnOperationEnd fires after the transaction closed and global state was
	// restored, with the terminal status.
	OnOperationEnd func(ctx context.Context, e *OperationEvent)

	// OnBrushCommand fires before each painting command is applied.
	OnBrushCommand func(ctx context.Context, cmd *BrushCommand)
}
