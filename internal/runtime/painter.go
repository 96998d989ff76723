package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
	"github.com/Ernest-Sab/IPR-Tool/pkg/ports"
)

// BuildPaintPlan builds the ordered brush-command sequence that seeds a
// freshly created deformer's influence map. The plan is pure data: it can be
// inspected and tested without a live host.
//
// The baseline always zeroes the weight across the whole mesh and enters the
// paint context. For a component-mode selection it then paints full influence
// on the chosen region, inverts, grows the boundary by smoothRadius rings,
// smooths once per ring, and restores the original selection. For an
// object-mode selection the plan stops after the baseline: influence stays
// zero everywhere and the artist paints manually in the already-open context.
func BuildPaintPlan(sel domain.Selection, kind domain.DeformerKind, handle domain.DeformerHandle, smoothRadius int) []domain.BrushCommand {
	plan := []domain.BrushCommand{
		{Type: domain.BrushSelectAll, Object: sel.BaseObject},
		{Type: domain.BrushZeroWeights, Deformer: handle.Node},
		{Type: domain.BrushEnterContext, Attr: handle.WeightsAttr(kind)},
	}
	if sel.IsObjectMode() {
		return plan
	}

	plan = append(plan,
		domain.BrushCommand{Type: domain.BrushSelect, Components: sel.Components},
		domain.BrushCommand{Type: domain.BrushStroke, Operation: domain.OpReplace, Value: 1},
		domain.BrushCommand{Type: domain.BrushInvert},
	)
	for i := 0; i < smoothRadius; i++ {
		plan = append(plan, domain.BrushCommand{Type: domain.BrushGrow})
	}
	for i := 0; i < smoothRadius; i++ {
		plan = append(plan, domain.BrushCommand{Type: domain.BrushStroke, Operation: domain.OpSmooth, Value: 1})
	}
	plan = append(plan, domain.BrushCommand{Type: domain.BrushSelect, Components: sel.Components})
	return plan
}

// Painter interprets a paint plan against the host. A host-command failure
// stops the remaining plan but keeps the effects of the commands already
// applied; it surfaces as one consolidated warning through the Notifier.
type Painter struct {
	selector ports.Selector
	paint    ports.PaintTool
	backend  ports.DeformerBackend
	notifier ports.Notifier
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// NewPainter creates a painter over the given host capabilities.
func NewPainter(selector ports.Selector, paint ports.PaintTool, backend ports.DeformerBackend, notifier ports.Notifier, logger *slog.Logger, hooks domain.LifecycleHooks) *Painter {
	return &Painter{selector: selector, paint: paint, backend: backend, notifier: notifier, logger: logger, hooks: hooks}
}

// Paint builds and applies the painting plan for the deformer. The returned
// error, if any, is a *domain.PaintContextError describing the first failed
// command; the warning has already been reported to the Notifier by then.
func (p *Painter) Paint(ctx context.Context, sel domain.Selection, kind domain.DeformerKind, handle domain.DeformerHandle, smoothRadius int) error {
	plan := BuildPaintPlan(sel, kind, handle, smoothRadius)
	for i := range plan {
		cmd := &plan[i]
		if p.hooks.OnBrushCommand != nil {
			p.hooks.OnBrushCommand(ctx, cmd)
		}
		if err := p.apply(ctx, cmd); err != nil {
			perr := &domain.PaintContextError{Command: cmd.Type, Cause: err}
			p.logger.Warn("paint sequence aborted", "command", cmd.Type, "step", i, "err", err)
			p.notifier.Warn(ctx, "Paint mode",
				fmt.Sprintf("Influence painting did not complete (%s failed: %v). The deformer %s was created with its weights zeroed; paint the remaining influence manually.", cmd.Type, err, handle.Node))
			return perr
		}
	}
	p.logger.Debug("paint plan applied", "deformer", handle.Node, "commands", len(plan))
	return nil
}

func (p *Painter) apply(ctx context.Context, cmd *domain.BrushCommand) error {
	switch cmd.Type {
	case domain.BrushSelectAll:
		return p.selector.SelectAll(ctx, cmd.Object)
	case domain.BrushZeroWeights:
		return p.backend.FloodWeights(ctx, cmd.Deformer, 0)
	case domain.BrushEnterContext:
		return p.paint.EnterWeightContext(ctx, cmd.Attr)
	case domain.BrushSelect:
		return p.selector.Select(ctx, cmd.Components)
	case domain.BrushStroke:
		return p.paint.Stroke(ctx, cmd.Operation, cmd.Value)
	case domain.BrushInvert:
		return p.paint.InvertSelection(ctx)
	case domain.BrushGrow:
		return p.paint.GrowSelection(ctx)
	default:
		return fmt.Errorf("unknown brush command %q", cmd.Type)
	}
}
