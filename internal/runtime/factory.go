package runtime

import (
	"context"
	"log/slog"

	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
	"github.com/Ernest-Sab/IPR-Tool/pkg/ports"
)

// Factory creates deformer nodes on a resolved target with kind-specific
// construction parameters. Creation mutates the host scene graph and is not
// idempotent: calling twice creates two nodes.
type Factory struct {
	backend ports.DeformerBackend
	attrs   ports.AttributeWriter
	logger  *slog.Logger
}

// NewFactory creates a factory over the given host capabilities.
func NewFactory(backend ports.DeformerBackend, attrs ports.AttributeWriter, logger *slog.Logger) *Factory {
	return &Factory{backend: backend, attrs: attrs, logger: logger}
}

// CreateSmoothing creates a smoothing deformer for the selection. When the
// base object is a polygonal mesh, the deformer attaches to its parent
// transform rather than the shape node, and the displacement attribute is
// zeroed after creation: only the smoothing relaxation is wanted, not a
// positional offset. The returned spec carries the final derived name.
func (f *Factory) CreateSmoothing(ctx context.Context, sel domain.Selection, iterations int) (domain.DeformerSpec, domain.DeformerHandle, error) {
	target := sel.BaseObject
	isMesh := false

	nodeType, err := f.backend.NodeType(ctx, target)
	if err != nil {
		return domain.DeformerSpec{}, domain.DeformerHandle{}, &domain.SelectionError{Cause: err}
	}
	if nodeType == "mesh" {
		parent, err := f.backend.ParentTransform(ctx, target)
		if err != nil {
			return domain.DeformerSpec{}, domain.DeformerHandle{}, &domain.SelectionError{Cause: err}
		}
		target = parent
		isMesh = true
	}

	spec := domain.SmoothingSpec(target, iterations)
	node, err := f.backend.CreateSmoothing(ctx, target, spec.Name, iterations)
	if err != nil {
		return spec, domain.DeformerHandle{}, &domain.DeformerCreationError{Spec: spec, Cause: err}
	}
	handle := domain.DeformerHandle{Node: node}

	if isMesh {
		if err := f.attrs.SetAttr(ctx, node, "displacement", 0); err != nil {
			return spec, handle, &domain.DeformerCreationError{Spec: spec, Cause: err}
		}
	}

	f.logger.Info("created smoothing deformer", "node", node, "target", target, "iterations", iterations)
	return spec, handle, nil
}

// CreateOffset creates a surface-offset deformer for the selection: UV point
// space, direction and magnitude from the signed strength, envelope forced
// on, texture color pinned to neutral white, and the manipulator handle
// hidden from the outliner (it is an implementation artifact, not
// user-facing).
func (f *Factory) CreateOffset(ctx context.Context, sel domain.Selection, direction domain.Direction, strength float64) (domain.DeformerSpec, domain.DeformerHandle, error) {
	spec := domain.OffsetSpec(sel.BaseObject, direction, strength)

	node, manip, err := f.backend.CreateSurfaceOffset(ctx, sel.BaseObject, spec.Name, direction.Sign(), spec.EffectiveStrength())
	if err != nil {
		return spec, domain.DeformerHandle{}, &domain.DeformerCreationError{Spec: spec, Cause: err}
	}
	handle := domain.DeformerHandle{Node: node, Manipulator: manip}

	if err := f.attrs.SetAttr(ctx, node, "envelope", 1); err != nil {
		return spec, handle, &domain.DeformerCreationError{Spec: spec, Cause: err}
	}
	if err := f.attrs.SetVec3Attr(ctx, node, "texture", 1, 1, 1); err != nil {
		return spec, handle, &domain.DeformerCreationError{Spec: spec, Cause: err}
	}
	if err := f.attrs.SetBoolAttr(ctx, manip, "hiddenInOutliner", true); err != nil {
		return spec, handle, &domain.DeformerCreationError{Spec: spec, Cause: err}
	}

	f.logger.Info("created surface-offset deformer",
		"node", node, "target", sel.BaseObject, "direction", direction, "strength", spec.EffectiveStrength())
	return spec, handle, nil
}
