package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Ernest-Sab/IPR-Tool/internal/logging"
	"github.com/Ernest-Sab/IPR-Tool/internal/runtime"
	"github.com/Ernest-Sab/IPR-Tool/pkg/adapters/memory"
	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPainter(h *memory.Host) *runtime.Painter {
	return runtime.NewPainter(h, h, h, h, logging.NewNop(), domain.LifecycleHooks{})
}

func componentSelection(indices ...int) domain.Selection {
	sel := domain.Selection{BaseObject: "bodyShape", Mode: domain.ModeComponent}
	for _, i := range indices {
		sel.Components = append(sel.Components, domain.Vertex("body", i))
	}
	return sel
}

func TestBuildPaintPlan_ObjectModeIsBaselineOnly(t *testing.T) {
	sel := domain.Selection{BaseObject: "body", Mode: domain.ModeObject}
	handle := domain.DeformerHandle{Node: "body_superDelta"}

	plan := runtime.BuildPaintPlan(sel, domain.KindSmoothing, handle, 3)

	var types []domain.BrushCommandType
	for _, cmd := range plan {
		types = append(types, cmd.Type)
	}
	assert.Equal(t, []domain.BrushCommandType{
		domain.BrushSelectAll,
		domain.BrushZeroWeights,
		domain.BrushEnterContext,
	}, types, "object mode must skip all painting steps")
	assert.Equal(t, "deltaMush.body_superDelta.weights", plan[2].Attr)
}

func TestBuildPaintPlan_ComponentModeSequence(t *testing.T) {
	sel := componentSelection(4)
	handle := domain.DeformerHandle{Node: "body_superDelta"}

	plan := runtime.BuildPaintPlan(sel, domain.KindSmoothing, handle, 2)

	var types []domain.BrushCommandType
	for _, cmd := range plan {
		types = append(types, cmd.Type)
	}
	assert.Equal(t, []domain.BrushCommandType{
		domain.BrushSelectAll,
		domain.BrushZeroWeights,
		domain.BrushEnterContext,
		domain.BrushSelect,
		domain.BrushStroke, // replace @1
		domain.BrushInvert,
		domain.BrushGrow,
		domain.BrushGrow,
		domain.BrushStroke, // smooth, once per ring
		domain.BrushStroke,
		domain.BrushSelect, // restore original selection
	}, types)

	assert.Equal(t, domain.OpReplace, plan[4].Operation)
	assert.Equal(t, 1.0, plan[4].Value)
	assert.Equal(t, domain.OpSmooth, plan[8].Operation)
	assert.Equal(t, sel.Components, plan[10].Components)
}

func TestBuildPaintPlan_ZeroRadiusHasNoSmoothing(t *testing.T) {
	plan := runtime.BuildPaintPlan(componentSelection(4), domain.KindSmoothing,
		domain.DeformerHandle{Node: "d"}, 0)

	for _, cmd := range plan {
		assert.NotEqual(t, domain.BrushGrow, cmd.Type)
		if cmd.Type == domain.BrushStroke {
			assert.Equal(t, domain.OpReplace, cmd.Operation)
		}
	}
}

func TestPainter_ObjectModeZeroesWholeMesh(t *testing.T) {
	ctx := context.Background()
	h := memory.NewHost()
	h.AddGridMesh("body", 3, 3)
	node, err := h.CreateSmoothing(ctx, "body", "body_superDelta", 2)
	require.NoError(t, err)

	sel := domain.Selection{BaseObject: "body", Mode: domain.ModeObject}
	err = newPainter(h).Paint(ctx, sel, domain.KindSmoothing, domain.DeformerHandle{Node: node}, 2)
	require.NoError(t, err)

	weights, err := h.Weights(node)
	require.NoError(t, err)
	for v, w := range weights {
		assert.Zerof(t, w, "vertex %d must have zero influence", v)
	}
	assert.Equal(t, "deltaMush.body_superDelta.weights", h.PaintAttr(),
		"paint context stays open for manual painting")
}

func TestPainter_ZeroRadiusLeavesHardEdge(t *testing.T) {
	ctx := context.Background()
	h := memory.NewHost()
	h.AddGridMesh("body", 3, 3)
	node, err := h.CreateSmoothing(ctx, "body", "body_superDelta", 2)
	require.NoError(t, err)

	err = newPainter(h).Paint(ctx, componentSelection(4), domain.KindSmoothing,
		domain.DeformerHandle{Node: node}, 0)
	require.NoError(t, err)

	weights, err := h.Weights(node)
	require.NoError(t, err)
	for v, w := range weights {
		if v == 4 {
			assert.Equal(t, 1.0, w)
		} else {
			assert.Zerof(t, w, "vertex %d must stay at zero with no smoothing", v)
		}
	}
}

func TestPainter_RestoresOriginalSelection(t *testing.T) {
	ctx := context.Background()
	h := memory.NewHost()
	h.AddGridMesh("body", 5, 5)
	node, err := h.CreateSmoothing(ctx, "body", "body_superDelta", 2)
	require.NoError(t, err)

	err = newPainter(h).Paint(ctx, componentSelection(12), domain.KindSmoothing,
		domain.DeformerHandle{Node: node}, 1)
	require.NoError(t, err)

	assert.Equal(t, []int{12}, h.SelectedVertices())
}

func TestPainter_CollarGrowthIsMonotonic(t *testing.T) {
	// The smoothed collar at radius k+1 must contain every vertex touched at
	// radius k: growing never removes vertices.
	touched := func(radius int) map[int]bool {
		ctx := context.Background()
		h := memory.NewHost()
		h.AddGridMesh("body", 10, 10)
		node, err := h.CreateSmoothing(ctx, "body", "body_superDelta", 2)
		require.NoError(t, err)

		err = newPainter(h).Paint(ctx, componentSelection(44), domain.KindSmoothing,
			domain.DeformerHandle{Node: node}, radius)
		require.NoError(t, err)

		weights, err := h.Weights(node)
		require.NoError(t, err)
		set := make(map[int]bool)
		for v, w := range weights {
			if w > 0 {
				set[v] = true
			}
		}
		return set
	}

	prev := touched(0)
	for k := 1; k <= 3; k++ {
		cur := touched(k)
		for v := range prev {
			assert.Truef(t, cur[v], "vertex %d touched at radius %d missing at radius %d", v, k-1, k)
		}
		prev = cur
	}
}

func TestPainter_HostFailureWarnsOnceAndKeepsPriorSteps(t *testing.T) {
	ctx := context.Background()
	h := memory.NewHost()
	h.AddGridMesh("body", 3, 3)
	node, err := h.CreateSmoothing(ctx, "body", "body_superDelta", 2)
	require.NoError(t, err)
	h.FailInvert = errors.New("paint tool unavailable")

	err = newPainter(h).Paint(ctx, componentSelection(4), domain.KindSmoothing,
		domain.DeformerHandle{Node: node}, 2)

	var paintErr *domain.PaintContextError
	require.ErrorAs(t, err, &paintErr)
	assert.Equal(t, domain.BrushInvert, paintErr.Command)

	// Exactly one consolidated warning.
	notes := h.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "warn", notes[0].Level)

	// Steps before the failure persist: weights zeroed, region painted.
	weights, err := h.Weights(node)
	require.NoError(t, err)
	assert.Equal(t, 1.0, weights[4])
	assert.Zero(t, weights[0])
}
