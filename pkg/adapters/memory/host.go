package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
)

// Mesh is a rectangular vertex grid with quad faces. It is topology only;
// positions are irrelevant to the weight-painting workflow.
//
// Vertex (r,c) has index r*Cols+c. Horizontal edge (r,c) connects (r,c) and
// (r,c+1); vertical edges are numbered after all horizontal ones. Face (r,c)
// is the quad with corners (r,c), (r,c+1), (r+1,c), (r+1,c+1).
type Mesh struct {
	Transform string
	Shape     string
	Rows      int
	Cols      int
}

// VertexCount returns the number of vertices in the grid.
func (m *Mesh) VertexCount() int { return m.Rows * m.Cols }

func (m *Mesh) horizontalEdges() int { return m.Rows * (m.Cols - 1) }

// EdgeVertices returns the two vertex indices of edge e.
func (m *Mesh) EdgeVertices(e int) (int, int, error) {
	if e < 0 {
		return 0, 0, fmt.Errorf("edge index %d out of range", e)
	}
	if e < m.horizontalEdges() {
		r := e / (m.Cols - 1)
		c := e % (m.Cols - 1)
		v := r*m.Cols + c
		return v, v + 1, nil
	}
	rest := e - m.horizontalEdges()
	if rest >= (m.Rows-1)*m.Cols {
		return 0, 0, fmt.Errorf("edge index %d out of range", e)
	}
	r := rest / m.Cols
	c := rest % m.Cols
	return r*m.Cols + c, (r+1)*m.Cols + c, nil
}

// FaceVertices returns the four corner vertex indices of face f.
func (m *Mesh) FaceVertices(f int) ([]int, error) {
	if f < 0 || f >= (m.Rows-1)*(m.Cols-1) {
		return nil, fmt.Errorf("face index %d out of range", f)
	}
	r := f / (m.Cols - 1)
	c := f % (m.Cols - 1)
	v := r*m.Cols + c
	return []int{v, v + 1, v + m.Cols, v + m.Cols + 1}, nil
}

// Neighbors returns the edge-adjacent vertex indices of v.
func (m *Mesh) Neighbors(v int) []int {
	r := v / m.Cols
	c := v % m.Cols
	var out []int
	if c > 0 {
		out = append(out, v-1)
	}
	if c < m.Cols-1 {
		out = append(out, v+1)
	}
	if r > 0 {
		out = append(out, v-m.Cols)
	}
	if r < m.Rows-1 {
		out = append(out, v+m.Cols)
	}
	return out
}

// deformerNode is a deformer created in the fake scene.
type deformerNode struct {
	name     string
	nodeType string
	target   string
	mesh     *Mesh

	iterations int
	offset     float64
	strength   float64

	attrs     map[string]float64
	boolAttrs map[string]bool
	vec3Attrs map[string][3]float64

	// weights holds per-vertex influence, full influence on creation.
	weights []float64
}

// Notification is a captured Notifier message.
type Notification struct {
	Level   string
	Title   string
	Message string
}

// Host is an in-process implementation of ports.Host backed by grid meshes.
// It emulates just enough of a DCC application for the deformer workflow:
// ambient selection, topology conversion, deformer nodes with weight maps,
// the paint tool, undo chunk bookkeeping, viewport and playback state.
//
// The zero value is not usable; construct with NewHost.
type Host struct {
	mu sync.Mutex

	meshes    map[string]*Mesh // keyed by both transform and shape name
	deformers map[string]*deformerNode
	manips    map[string]map[string]bool // manipulator node -> bool attrs
	nameSeq   map[string]int

	// Ambient selection. selComponents is the raw flattened component
	// selection as the artist made it (may contain edges/faces); selVerts is
	// the live vertex set the paint-tool commands operate on.
	selObjects    []string
	selComponents []domain.ComponentRef
	selVerts      map[int]bool
	selMesh       *Mesh

	chunkDepth  int
	ChunkOpens  int
	ChunkCloses int
	ChunkNames  []string

	viewportManaged bool
	currentTime     float64
	startTime       float64

	paintAttr     string
	notifications []Notification

	// Error injection points for tests. When non-nil, the corresponding
	// host command fails with the given error.
	FailCreate       error
	FailEnterContext error
	FailStroke       error
	FailFlood        error
	FailInvert       error
	FailGrow         error
}

// NewHost creates an empty fake host with the viewport managed and playback
// at frame 1.
func NewHost() *Host {
	return &Host{
		meshes:          make(map[string]*Mesh),
		deformers:       make(map[string]*deformerNode),
		manips:          make(map[string]map[string]bool),
		nameSeq:         make(map[string]int),
		selVerts:        make(map[int]bool),
		viewportManaged: true,
		currentTime:     1,
		startTime:       1,
	}
}

// AddGridMesh registers a rows x cols grid mesh under the given transform
// name. The shape node is named {transform}Shape, matching host convention.
func (h *Host) AddGridMesh(transform string, rows, cols int) *Mesh {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := &Mesh{Transform: transform, Shape: transform + "Shape", Rows: rows, Cols: cols}
	h.meshes[m.Transform] = m
	h.meshes[m.Shape] = m
	return m
}

// SelectObject puts the host into object-mode selection on the transform.
func (h *Host) SelectObject(transform string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selObjects = []string{transform}
	h.selComponents = nil
	h.selVerts = make(map[int]bool)
	h.selMesh = h.meshes[transform]
}

// SelectComponents puts the host into component-mode selection. The shape
// node becomes the active object, matching how hosts report component
// selections.
func (h *Host) SelectComponents(refs ...domain.ComponentRef) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selObjects = nil
	h.selComponents = append([]domain.ComponentRef(nil), refs...)
	h.selVerts = make(map[int]bool)
	h.selMesh = nil
	if len(refs) == 0 {
		return
	}
	m := h.meshes[refs[0].Object]
	h.selMesh = m
	if m != nil {
		h.selObjects = []string{m.Shape}
	}
	for _, r := range refs {
		if r.Kind == domain.KindVertex {
			h.selVerts[r.Index] = true
		}
	}
}

// ClearSelection empties the ambient selection.
func (h *Host) ClearSelection() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selObjects = nil
	h.selComponents = nil
	h.selVerts = make(map[int]bool)
	h.selMesh = nil
}

// SetPlayback sets the playback range start and the current time.
func (h *Host) SetPlayback(start, current float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.startTime = start
	h.currentTime = current
}

// --- Test inspection helpers ---

// Notifications returns the captured Notifier messages.
func (h *Host) Notifications() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Notification(nil), h.notifications...)
}

// ViewportManaged reports the current viewport manage flag.
func (h *Host) ViewportManaged() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewportManaged
}

// Time reports the current playback time.
func (h *Host) Time() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.currentTime
}

// OpenChunkDepth reports how many undo chunks are currently open.
func (h *Host) OpenChunkDepth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.chunkDepth
}

// PaintAttr reports the weight attribute the paint context is scoped to,
// empty if paint mode was never entered.
func (h *Host) PaintAttr() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.paintAttr
}

// DeformerNames returns the names of all created deformer nodes, sorted.
func (h *Host) DeformerNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.deformers))
	for n := range h.deformers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Weights returns a copy of the deformer's per-vertex influence weights.
func (h *Host) Weights(deformer string) ([]float64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	d, ok := h.deformers[deformer]
	if !ok {
		return nil, fmt.Errorf("unknown deformer %q", deformer)
	}
	return append([]float64(nil), d.weights...), nil
}

// DeformerAttr returns a scalar attribute of a deformer node.
func (h *Host) DeformerAttr(deformer, attr string) (float64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	d, ok := h.deformers[deformer]
	if !ok {
		return 0, fmt.Errorf("unknown deformer %q", deformer)
	}
	v, ok := d.attrs[attr]
	if !ok {
		return 0, fmt.Errorf("deformer %q has no attribute %q", deformer, attr)
	}
	return v, nil
}

// DeformerVec3Attr returns a vector attribute of a deformer node.
func (h *Host) DeformerVec3Attr(deformer, attr string) ([3]float64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	d, ok := h.deformers[deformer]
	if !ok {
		return [3]float64{}, fmt.Errorf("unknown deformer %q", deformer)
	}
	v, ok := d.vec3Attrs[attr]
	if !ok {
		return [3]float64{}, fmt.Errorf("deformer %q has no attribute %q", deformer, attr)
	}
	return v, nil
}

// ManipulatorAttr returns a bool attribute of a manipulator handle node.
func (h *Host) ManipulatorAttr(node, attr string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	attrs, ok := h.manips[node]
	if !ok {
		return false, fmt.Errorf("unknown manipulator %q", node)
	}
	return attrs[attr], nil
}

// SelectedVertices returns the paint tool's current vertex selection, sorted.
func (h *Host) SelectedVertices() []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return sortedKeys(h.selVerts)
}

// uniqueName reserves a node name, suffixing a counter on collision the way
// hosts do.
func (h *Host) uniqueName(base string) string {
	if _, taken := h.deformers[base]; !taken {
		return base
	}
	for n := h.nameSeq[base] + 1; ; n++ {
		candidate := fmt.Sprintf("%s%d", base, n)
		if _, taken := h.deformers[candidate]; !taken {
			h.nameSeq[base] = n
			return candidate
		}
	}
}

func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
