package memory_test

import (
	"context"
	"testing"

	"github.com/Ernest-Sab/IPR-Tool/pkg/adapters/memory"
	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMesh_Topology(t *testing.T) {
	m := &memory.Mesh{Transform: "grid", Shape: "gridShape", Rows: 3, Cols: 4}

	assert.Equal(t, 12, m.VertexCount())

	// First horizontal edge connects vertices 0 and 1.
	a, b, err := m.EdgeVertices(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, []int{a, b})

	// First vertical edge comes after the 3*3 horizontal ones: (0,0)-(1,0).
	a, b, err = m.EdgeVertices(9)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4}, []int{a, b})

	// Face 0 is the quad at the origin.
	verts, err := m.FaceVertices(0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 4, 5}, verts)

	_, err = m.FaceVertices(99)
	assert.Error(t, err)

	// Corner vertex has two neighbors, interior vertex four.
	assert.Len(t, m.Neighbors(0), 2)
	assert.Len(t, m.Neighbors(5), 4)
}

func TestHost_SelectionModes(t *testing.T) {
	ctx := context.Background()
	h := memory.NewHost()
	h.AddGridMesh("body", 3, 3)

	t.Run("object mode", func(t *testing.T) {
		h.SelectObject("body")
		objs, err := h.ActiveObjects(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"body"}, objs)

		comps, err := h.ActiveComponents(ctx)
		require.NoError(t, err)
		assert.Empty(t, comps)
	})

	t.Run("component mode reports shape node", func(t *testing.T) {
		h.SelectComponents(domain.Vertex("body", 4))
		objs, err := h.ActiveObjects(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"bodyShape"}, objs)

		comps, err := h.ActiveComponents(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.ComponentRef{domain.Vertex("body", 4)}, comps)
	})

	t.Run("empty scene", func(t *testing.T) {
		h.ClearSelection()
		objs, err := h.ActiveObjects(ctx)
		require.NoError(t, err)
		assert.Empty(t, objs)
	})
}

func TestHost_PaintSelectionCommands(t *testing.T) {
	ctx := context.Background()
	h := memory.NewHost()
	h.AddGridMesh("body", 3, 3)

	require.NoError(t, h.SelectAll(ctx, "body"))
	assert.Len(t, h.SelectedVertices(), 9)

	require.NoError(t, h.Select(ctx, []domain.ComponentRef{domain.Vertex("body", 4)}))
	assert.Equal(t, []int{4}, h.SelectedVertices())

	// Growing from the center of a 3x3 grid adds its four neighbors.
	require.NoError(t, h.GrowSelection(ctx))
	assert.Equal(t, []int{1, 3, 4, 5, 7}, h.SelectedVertices())

	// Inverting leaves the four corners.
	require.NoError(t, h.InvertSelection(ctx))
	assert.Equal(t, []int{0, 2, 6, 8}, h.SelectedVertices())
}

func TestHost_DeformerLifecycle(t *testing.T) {
	ctx := context.Background()
	h := memory.NewHost()
	h.AddGridMesh("body", 3, 3)

	nt, err := h.NodeType(ctx, "bodyShape")
	require.NoError(t, err)
	assert.Equal(t, "mesh", nt)

	parent, err := h.ParentTransform(ctx, "bodyShape")
	require.NoError(t, err)
	assert.Equal(t, "body", parent)

	node, err := h.CreateSmoothing(ctx, "body", "body_superDelta", 3)
	require.NoError(t, err)
	assert.Equal(t, "body_superDelta", node)

	// New deformers carry full influence until flooded.
	weights, err := h.Weights(node)
	require.NoError(t, err)
	for _, w := range weights {
		assert.Equal(t, 1.0, w)
	}

	require.NoError(t, h.SelectAll(ctx, "body"))
	require.NoError(t, h.FloodWeights(ctx, node, 0))
	weights, err = h.Weights(node)
	require.NoError(t, err)
	for _, w := range weights {
		assert.Zero(t, w)
	}

	// A second creation under the same name gets a fresh node.
	node2, err := h.CreateSmoothing(ctx, "body", "body_superDelta", 3)
	require.NoError(t, err)
	assert.NotEqual(t, node, node2)
	assert.Equal(t, "body_superDelta1", node2)
}

func TestHost_StrokesRequireContext(t *testing.T) {
	ctx := context.Background()
	h := memory.NewHost()
	h.AddGridMesh("body", 3, 3)

	err := h.Stroke(ctx, domain.OpReplace, 1)
	assert.Error(t, err)

	node, err := h.CreateSmoothing(ctx, "body", "body_superDelta", 2)
	require.NoError(t, err)

	require.NoError(t, h.EnterWeightContext(ctx, "deltaMush."+node+".weights"))
	require.NoError(t, h.SelectAll(ctx, "body"))
	require.NoError(t, h.FloodWeights(ctx, node, 0))

	require.NoError(t, h.Select(ctx, []domain.ComponentRef{domain.Vertex("body", 4)}))
	require.NoError(t, h.Stroke(ctx, domain.OpReplace, 1))

	weights, err := h.Weights(node)
	require.NoError(t, err)
	assert.Equal(t, 1.0, weights[4])
	assert.Zero(t, weights[0])
}

func TestHost_SmoothStrokeAverages(t *testing.T) {
	ctx := context.Background()
	h := memory.NewHost()
	h.AddGridMesh("body", 3, 3)

	node, err := h.CreateSmoothing(ctx, "body", "body_superDelta", 2)
	require.NoError(t, err)
	require.NoError(t, h.EnterWeightContext(ctx, "deltaMush."+node+".weights"))
	require.NoError(t, h.SelectAll(ctx, "body"))
	require.NoError(t, h.FloodWeights(ctx, node, 0))

	// Paint the center at 1, then smooth its right neighbor.
	require.NoError(t, h.Select(ctx, []domain.ComponentRef{domain.Vertex("body", 4)}))
	require.NoError(t, h.Stroke(ctx, domain.OpReplace, 1))
	require.NoError(t, h.Select(ctx, []domain.ComponentRef{domain.Vertex("body", 5)}))
	require.NoError(t, h.Stroke(ctx, domain.OpSmooth, 1))

	weights, err := h.Weights(node)
	require.NoError(t, err)
	// Vertex 5 has neighbors 2, 4, 8; only 4 carries weight 1, so the
	// average over {self, 2, 4, 8} is 0.25.
	assert.InDelta(t, 0.25, weights[5], 1e-9)
	assert.Equal(t, 1.0, weights[4])
}

func TestHost_UndoViewportPlayback(t *testing.T) {
	ctx := context.Background()
	h := memory.NewHost()

	require.NoError(t, h.OpenChunk(ctx, "createSmoothingDeformer"))
	assert.Equal(t, 1, h.OpenChunkDepth())
	require.NoError(t, h.CloseChunk(ctx))
	assert.Equal(t, 0, h.OpenChunkDepth())
	assert.Error(t, h.CloseChunk(ctx), "closing with no open chunk should fail")

	require.NoError(t, h.SetManaged(ctx, false))
	managed, err := h.Managed(ctx)
	require.NoError(t, err)
	assert.False(t, managed)

	h.SetPlayback(1, 42)
	cur, err := h.CurrentTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42.0, cur)
	start, err := h.StartTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.0, start)
}
