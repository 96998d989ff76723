package ports

import (
	"context"

	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
)

// SelectionQuery reads the host's ambient selection. It is consulted exactly
// once per operation, by the resolver; every later step receives the resolved
// selection as an explicit value.
type SelectionQuery interface {
	// ActiveObjects returns the currently selected base objects.
	ActiveObjects(ctx context.Context) ([]string, error)

	// ActiveComponents returns the flattened component-level selection.
	// An empty slice means the selection is in object mode.
	ActiveComponents(ctx context.Context) ([]domain.ComponentRef, error)
}

// Selector mutates the host's ambient selection on behalf of the painting
// sequence.
type Selector interface {
	// Select replaces the current selection with the given components.
	Select(ctx context.Context, components []domain.ComponentRef) error

	// SelectAll selects the full component set of the given object.
	SelectAll(ctx context.Context, object string) error
}

// Topology performs component conversion against the mesh topology.
type Topology interface {
	// EdgesToVertices returns the vertices incident to the given edges.
	EdgesToVertices(ctx context.Context, refs []domain.ComponentRef) ([]domain.ComponentRef, error)

	// FacesToVertices returns the vertices incident to the given faces.
	FacesToVertices(ctx context.Context, refs []domain.ComponentRef) ([]domain.ComponentRef, error)
}

// DeformerBackend creates deformer nodes in the host scene graph.
// Creation mutates the scene and is not idempotent: calling twice creates two
// nodes.
type DeformerBackend interface {
	// NodeType returns the host node type of the given node (e.g. "mesh").
	NodeType(ctx context.Context, node string) (string, error)

	// ParentTransform returns the parent transform of a shape node.
	ParentTransform(ctx context.Context, node string) (string, error)

	// CreateSmoothing creates a smoothing deformer on target and returns the
	// created node name.
	CreateSmoothing(ctx context.Context, target, name string, iterations int) (string, error)

	// CreateSurfaceOffset creates a UV point-space surface-offset deformer on
	// target. offset and strength are already signed by direction. Returns
	// the deformer node and its auxiliary manipulator handle node.
	CreateSurfaceOffset(ctx context.Context, target, name string, offset, strength float64) (node, manipulator string, err error)

	// FloodWeights sets the deformer's influence weight uniformly across the
	// current selection.
	FloodWeights(ctx context.Context, deformer string, value float64) error
}

// AttributeWriter sets attributes on named scene nodes.
type AttributeWriter interface {
	SetAttr(ctx context.Context, node, attr string, value float64) error
	SetBoolAttr(ctx context.Context, node, attr string, value bool) error
	SetVec3Attr(ctx context.Context, node, attr string, x, y, z float64) error
}

// PaintTool drives the host's interactive weight-painting context. Strokes
// and selection commands apply to the host's current selection.
type PaintTool interface {
	// EnterWeightContext enters paint mode scoped to the given weight
	// attribute path. The context is deliberately left open when the
	// operation finishes so the artist can keep painting.
	EnterWeightContext(ctx context.Context, attr string) error

	// Stroke applies a brush stroke of the given operation and value to the
	// current selection.
	Stroke(ctx context.Context, op domain.BrushOperation, value float64) error

	// InvertSelection inverts the current component selection.
	InvertSelection(ctx context.Context) error

	// GrowSelection expands the current selection by one topological ring.
	GrowSelection(ctx context.Context) error
}

// UndoStack groups host mutations into named undoable transactions.
// Chunks must be closed exactly once per open.
type UndoStack interface {
	OpenChunk(ctx context.Context, name string) error
	CloseChunk(ctx context.Context) error
}

// Viewport toggles the host viewport's redraw/manage state.
type Viewport interface {
	Managed(ctx context.Context) (bool, error)
	SetManaged(ctx context.Context, managed bool) error
}

// Playback reads and writes the host's playback time state.
type Playback interface {
	CurrentTime(ctx context.Context) (float64, error)
	SetCurrentTime(ctx context.Context, t float64) error

	// StartTime returns the first frame of the playback range.
	StartTime(ctx context.Context) (float64, error)
}

// Notifier surfaces user-facing messages through the host UI layer.
// Implementations must not block.
type Notifier interface {
	// Error reports a failed operation with the underlying cause string.
	Error(ctx context.Context, title, message string)

	// Warn reports a non-fatal problem, e.g. a painting step that did not
	// complete.
	Warn(ctx context.Context, title, message string)
}

// Host is the composite capability surface the engine consumes from the 3D
// application. A live DCC bridge implements this against the real host; the
// memory adapter implements it in-process for tests and dry runs.
type Host interface {
	SelectionQuery
	Selector
	Topology
	DeformerBackend
	AttributeWriter
	PaintTool
	UndoStack
	Viewport
	Playback
	Notifier
}
