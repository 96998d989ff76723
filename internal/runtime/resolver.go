package runtime

import (
	"context"
	"log/slog"

	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
	"github.com/Ernest-Sab/IPR-Tool/pkg/ports"
)

// Resolver normalizes the host's raw viewport selection into a canonical
// vertex-only Selection. It is the only component that ever reads the host's
// ambient selection; everything downstream receives the resolved value.
type Resolver struct {
	sel    ports.SelectionQuery
	topo   ports.Topology
	logger *slog.Logger
}

// NewResolver creates a resolver over the given host capabilities.
func NewResolver(sel ports.SelectionQuery, topo ports.Topology, logger *slog.Logger) *Resolver {
	return &Resolver{sel: sel, topo: topo, logger: logger}
}

// Resolve reads the active selection once and converts every edge and face
// element to its incident vertices. Encounter order is preserved; duplicates
// are allowed (downstream painting is idempotent to repeats).
func (r *Resolver) Resolve(ctx context.Context) (domain.Selection, error) {
	objects, err := r.sel.ActiveObjects(ctx)
	if err != nil {
		return domain.Selection{}, &domain.SelectionError{Cause: err}
	}
	if len(objects) == 0 {
		return domain.Selection{}, &domain.SelectionError{Cause: domain.ErrEmptySelection}
	}
	base := objects[0]

	raw, err := r.sel.ActiveComponents(ctx)
	if err != nil {
		return domain.Selection{}, &domain.SelectionError{Cause: err}
	}
	if len(raw) == 0 {
		r.logger.Debug("resolved object-mode selection", "object", base)
		return domain.Selection{BaseObject: base, Mode: domain.ModeObject}, nil
	}

	var verts []domain.ComponentRef
	for _, ref := range raw {
		switch ref.Kind {
		case domain.KindVertex:
			verts = append(verts, ref)
		case domain.KindEdge:
			conv, err := r.topo.EdgesToVertices(ctx, []domain.ComponentRef{ref})
			if err != nil {
				return domain.Selection{}, &domain.SelectionError{Cause: err}
			}
			verts = append(verts, conv...)
		case domain.KindFace:
			conv, err := r.topo.FacesToVertices(ctx, []domain.ComponentRef{ref})
			if err != nil {
				return domain.Selection{}, &domain.SelectionError{Cause: err}
			}
			verts = append(verts, conv...)
		}
	}
	r.logger.Debug("resolved component-mode selection", "object", base, "vertices", len(verts))
	return domain.Selection{BaseObject: base, Mode: domain.ModeComponent, Components: verts}, nil
}
