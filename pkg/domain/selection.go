package domain

import "fmt"

// ComponentKind classifies a mesh component reference.
type ComponentKind string

const (
	KindVertex ComponentKind = "vertex"
	KindEdge   ComponentKind = "edge"
	KindFace   ComponentKind = "face"
)

// SelectionMode indicates whether the artist selected a whole object or a
// component subset.
type SelectionMode string

const (
	// ModeObject means the whole object was selected with no flattened
	// component selection. Influence must be initialized to zero across the
	// entire mesh in this mode, never a partial region.
	ModeObject SelectionMode = "object"

	// ModeComponent means individual vertices/edges/faces were selected.
	ModeComponent SelectionMode = "component"
)

// ComponentRef identifies a single component on a base object.
// Everything downstream of the resolver is vertex-only; edge and face refs
// exist only as raw resolver input.
type ComponentRef struct {
	Object string        `json:"object"`
	Kind   ComponentKind `json:"kind"`
	Index  int           `json:"index"`
}

// String renders the ref in the host's dotted component notation,
// e.g. "body.vtx[12]".
func (c ComponentRef) String() string {
	switch c.Kind {
	case KindEdge:
		return fmt.Sprintf("%s.e[%d]", c.Object, c.Index)
	case KindFace:
		return fmt.Sprintf("%s.f[%d]", c.Object, c.Index)
	default:
		return fmt.Sprintf("%s.vtx[%d]", c.Object, c.Index)
	}
}

// Vertex is a convenience constructor for a vertex ref.
func Vertex(object string, index int) ComponentRef {
	return ComponentRef{Object: object, Kind: KindVertex, Index: index}
}

// Edge is a convenience constructor for an edge ref.
func Edge(object string, index int) ComponentRef {
	return ComponentRef{Object: object, Kind: KindEdge, Index: index}
}

// Face is a convenience constructor for a face ref.
func Face(object string, index int) ComponentRef {
	return ComponentRef{Object: object, Kind: KindFace, Index: index}
}

// Selection is the canonical resolved selection: one base object plus an
// ordered, vertex-only component subset. It is captured once at operation
// start and never mutated afterwards.
//
// Invariant: Mode == ModeObject implies len(Components) == 0. Duplicates in
// Components are allowed; downstream painting is idempotent to repeats.
type Selection struct {
	BaseObject string         `json:"base_object"`
	Mode       SelectionMode  `json:"mode"`
	Components []ComponentRef `json:"components,omitempty"`
}

// IsObjectMode reports whether the selection carries no component subset.
func (s Selection) IsObjectMode() bool {
	return s.Mode == ModeObject || len(s.Components) == 0
}
