package memory

import (
	"context"
	"fmt"

	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
	"github.com/Ernest-Sab/IPR-Tool/pkg/ports"
)

var _ ports.Host = (*Host)(nil)

// --- SelectionQuery ---

// ActiveObjects returns the currently selected base objects.
func (h *Host) ActiveObjects(ctx context.Context) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.selObjects...), nil
}

// ActiveComponents returns the flattened component selection as made by the
// artist, edges and faces included.
func (h *Host) ActiveComponents(ctx context.Context) ([]domain.ComponentRef, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]domain.ComponentRef(nil), h.selComponents...), nil
}

// --- Selector ---

// Select replaces the paint selection with the given vertex refs.
func (h *Host) Select(ctx context.Context, components []domain.ComponentRef) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selVerts = make(map[int]bool)
	for _, r := range components {
		if r.Kind != domain.KindVertex {
			return fmt.Errorf("select: non-vertex component %s", r)
		}
		if h.selMesh == nil {
			h.selMesh = h.meshes[r.Object]
		}
		h.selVerts[r.Index] = true
	}
	return nil
}

// SelectAll selects every vertex of the object's mesh.
func (h *Host) SelectAll(ctx context.Context, object string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	m, ok := h.meshes[object]
	if !ok {
		return fmt.Errorf("select all: unknown object %q", object)
	}
	h.selMesh = m
	h.selVerts = make(map[int]bool, m.VertexCount())
	for v := 0; v < m.VertexCount(); v++ {
		h.selVerts[v] = true
	}
	return nil
}

// --- Topology ---

// EdgesToVertices returns the vertices incident to the given edges.
func (h *Host) EdgesToVertices(ctx context.Context, refs []domain.ComponentRef) ([]domain.ComponentRef, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []domain.ComponentRef
	for _, r := range refs {
		m, ok := h.meshes[r.Object]
		if !ok {
			return nil, fmt.Errorf("unknown object %q", r.Object)
		}
		a, b, err := m.EdgeVertices(r.Index)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Vertex(r.Object, a), domain.Vertex(r.Object, b))
	}
	return out, nil
}

// FacesToVertices returns the vertices incident to the given faces.
func (h *Host) FacesToVertices(ctx context.Context, refs []domain.ComponentRef) ([]domain.ComponentRef, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []domain.ComponentRef
	for _, r := range refs {
		m, ok := h.meshes[r.Object]
		if !ok {
			return nil, fmt.Errorf("unknown object %q", r.Object)
		}
		verts, err := m.FaceVertices(r.Index)
		if err != nil {
			return nil, err
		}
		for _, v := range verts {
			out = append(out, domain.Vertex(r.Object, v))
		}
	}
	return out, nil
}

// --- DeformerBackend ---

// NodeType classifies a node name: shape nodes are "mesh", transforms are
// "transform", deformers report their own type.
func (h *Host) NodeType(ctx context.Context, node string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if d, ok := h.deformers[node]; ok {
		return d.nodeType, nil
	}
	m, ok := h.meshes[node]
	if !ok {
		return "", fmt.Errorf("unknown node %q", node)
	}
	if node == m.Shape {
		return "mesh", nil
	}
	return "transform", nil
}

// ParentTransform returns the transform above a shape node.
func (h *Host) ParentTransform(ctx context.Context, node string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	m, ok := h.meshes[node]
	if !ok {
		return "", fmt.Errorf("unknown node %q", node)
	}
	return m.Transform, nil
}

// CreateSmoothing creates a smoothing deformer node on target. New deformers
// start with full influence everywhere, as in the host.
func (h *Host) CreateSmoothing(ctx context.Context, target, name string, iterations int) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailCreate != nil {
		return "", h.FailCreate
	}
	m, ok := h.meshes[target]
	if !ok {
		return "", fmt.Errorf("create smoothing: unknown target %q", target)
	}
	node := h.newDeformer(name, "deltaMush", target, m)
	node.iterations = iterations
	node.attrs["displacement"] = 1 // host default, factory zeroes it
	return node.name, nil
}

// CreateSurfaceOffset creates a surface-offset deformer plus its manipulator
// handle node.
func (h *Host) CreateSurfaceOffset(ctx context.Context, target, name string, offset, strength float64) (string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailCreate != nil {
		return "", "", h.FailCreate
	}
	m, ok := h.meshes[target]
	if !ok {
		return "", "", fmt.Errorf("create surface offset: unknown target %q", target)
	}
	node := h.newDeformer(name, "textureDeformer", target, m)
	node.offset = offset
	node.strength = strength
	node.attrs["strength"] = strength
	node.attrs["offset"] = offset
	manip := node.name + "Handle"
	h.manips[manip] = make(map[string]bool)
	return node.name, manip, nil
}

func (h *Host) newDeformer(name, nodeType, target string, m *Mesh) *deformerNode {
	d := &deformerNode{
		name:      h.uniqueName(name),
		nodeType:  nodeType,
		target:    target,
		mesh:      m,
		attrs:     make(map[string]float64),
		boolAttrs: make(map[string]bool),
		vec3Attrs: make(map[string][3]float64),
		weights:   make([]float64, m.VertexCount()),
	}
	for i := range d.weights {
		d.weights[i] = 1
	}
	h.deformers[d.name] = d
	return d
}

// FloodWeights sets the deformer's weight uniformly across the currently
// selected vertices.
func (h *Host) FloodWeights(ctx context.Context, deformer string, value float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailFlood != nil {
		return h.FailFlood
	}
	d, ok := h.deformers[deformer]
	if !ok {
		return fmt.Errorf("flood: unknown deformer %q", deformer)
	}
	for v := range h.selVerts {
		if v >= 0 && v < len(d.weights) {
			d.weights[v] = value
		}
	}
	return nil
}

// --- AttributeWriter ---

// SetAttr sets a scalar attribute on a deformer node.
func (h *Host) SetAttr(ctx context.Context, node, attr string, value float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	d, ok := h.deformers[node]
	if !ok {
		return fmt.Errorf("setAttr: unknown node %q", node)
	}
	d.attrs[attr] = value
	return nil
}

// SetBoolAttr sets a boolean attribute on a deformer or manipulator node.
func (h *Host) SetBoolAttr(ctx context.Context, node, attr string, value bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if d, ok := h.deformers[node]; ok {
		d.boolAttrs[attr] = value
		return nil
	}
	if attrs, ok := h.manips[node]; ok {
		attrs[attr] = value
		return nil
	}
	return fmt.Errorf("setAttr: unknown node %q", node)
}

// SetVec3Attr sets a vector attribute on a deformer node.
func (h *Host) SetVec3Attr(ctx context.Context, node, attr string, x, y, z float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	d, ok := h.deformers[node]
	if !ok {
		return fmt.Errorf("setAttr: unknown node %q", node)
	}
	d.vec3Attrs[attr] = [3]float64{x, y, z}
	return nil
}

// --- PaintTool ---

// EnterWeightContext records the weight channel the paint tool is scoped to.
func (h *Host) EnterWeightContext(ctx context.Context, attr string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailEnterContext != nil {
		return h.FailEnterContext
	}
	h.paintAttr = attr
	return nil
}

// Stroke applies a brush stroke to the current selection of the deformer the
// paint context is scoped to.
func (h *Host) Stroke(ctx context.Context, op domain.BrushOperation, value float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailStroke != nil {
		return h.FailStroke
	}
	if h.paintAttr == "" {
		return fmt.Errorf("stroke: no paint context open")
	}
	d := h.paintedDeformer()
	if d == nil {
		return fmt.Errorf("stroke: paint context %q targets no deformer", h.paintAttr)
	}
	switch op {
	case domain.OpReplace:
		for v := range h.selVerts {
			if v >= 0 && v < len(d.weights) {
				d.weights[v] = value
			}
		}
	case domain.OpSmooth:
		// One relaxation pass: every selected vertex moves to the average of
		// itself and its ring neighbors.
		next := append([]float64(nil), d.weights...)
		for v := range h.selVerts {
			if v < 0 || v >= len(d.weights) {
				continue
			}
			sum := d.weights[v]
			n := 1.0
			for _, nb := range d.mesh.Neighbors(v) {
				sum += d.weights[nb]
				n++
			}
			next[v] = sum / n
		}
		d.weights = next
	default:
		return fmt.Errorf("stroke: unsupported operation %q", op)
	}
	return nil
}

// paintedDeformer resolves the deformer named in the paint context attr path
// ("{type}.{name}.weights"). Must be called under lock.
func (h *Host) paintedDeformer() *deformerNode {
	for _, d := range h.deformers {
		if h.paintAttr == fmt.Sprintf("%s.%s.weights", d.nodeType, d.name) {
			return d
		}
	}
	return nil
}

// InvertSelection selects every mesh vertex not currently selected.
func (h *Host) InvertSelection(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailInvert != nil {
		return h.FailInvert
	}
	if h.selMesh == nil {
		return fmt.Errorf("invert: no active mesh")
	}
	inverted := make(map[int]bool, h.selMesh.VertexCount())
	for v := 0; v < h.selMesh.VertexCount(); v++ {
		if !h.selVerts[v] {
			inverted[v] = true
		}
	}
	h.selVerts = inverted
	return nil
}

// GrowSelection expands the selection by one ring of adjacent vertices.
func (h *Host) GrowSelection(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailGrow != nil {
		return h.FailGrow
	}
	if h.selMesh == nil {
		return fmt.Errorf("grow: no active mesh")
	}
	grown := make(map[int]bool, len(h.selVerts))
	for v := range h.selVerts {
		grown[v] = true
		for _, nb := range h.selMesh.Neighbors(v) {
			grown[nb] = true
		}
	}
	h.selVerts = grown
	return nil
}

// --- UndoStack ---

// OpenChunk opens a named grouped-undo boundary.
func (h *Host) OpenChunk(ctx context.Context, name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.chunkDepth++
	h.ChunkOpens++
	h.ChunkNames = append(h.ChunkNames, name)
	return nil
}

// CloseChunk closes the innermost open undo chunk.
func (h *Host) CloseChunk(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.chunkDepth == 0 {
		return fmt.Errorf("close chunk: no chunk open")
	}
	h.chunkDepth--
	h.ChunkCloses++
	return nil
}

// --- Viewport ---

// Managed reports the viewport manage flag.
func (h *Host) Managed(ctx context.Context) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewportManaged, nil
}

// SetManaged toggles the viewport manage flag.
func (h *Host) SetManaged(ctx context.Context, managed bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewportManaged = managed
	return nil
}

// --- Playback ---

// CurrentTime returns the current playback time.
func (h *Host) CurrentTime(ctx context.Context) (float64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.currentTime, nil
}

// SetCurrentTime jumps the playback time.
func (h *Host) SetCurrentTime(ctx context.Context, t float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.currentTime = t
	return nil
}

// StartTime returns the first frame of the playback range.
func (h *Host) StartTime(ctx context.Context) (float64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.startTime, nil
}

// --- Notifier ---

// Error captures an error notification.
func (h *Host) Error(ctx context.Context, title, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notifications = append(h.notifications, Notification{Level: "error", Title: title, Message: message})
}

// Warn captures a warning notification.
func (h *Host) Warn(ctx context.Context, title, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notifications = append(h.notifications, Notification{Level: "warn", Title: title, Message: message})
}
