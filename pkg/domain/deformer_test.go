package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
)

func TestDeformerNaming(t *testing.T) {
	smooth := domain.SmoothingSpec("body", 3)
	assert.Equal(t, "body_superDelta", smooth.Name)
	assert.Equal(t, 3, smooth.Iterations)

	pull := domain.OffsetSpec("sleeve", domain.DirectionPull, 2)
	assert.Equal(t, "sleeve_Pull_texDef", pull.Name)

	push := domain.OffsetSpec("sleeve", domain.DirectionPush, 2)
	assert.Equal(t, "sleeve_Push_texDef", push.Name)
}

func TestEffectiveStrengthFollowsDirection(t *testing.T) {
	pull := domain.OffsetSpec("a", domain.DirectionPull, 5)
	push := domain.OffsetSpec("a", domain.DirectionPush, 5)

	assert.Equal(t, 5.0, pull.EffectiveStrength())
	assert.Equal(t, -5.0, push.EffectiveStrength())
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"pull", "Pull", " PULL "} {
		d, err := domain.ParseDirection(s)
		require.NoError(t, err, s)
		assert.Equal(t, domain.DirectionPull, d)
	}

	d, err := domain.ParseDirection("Push")
	require.NoError(t, err)
	assert.Equal(t, domain.DirectionPush, d)

	_, err = domain.ParseDirection("sideways")
	assert.Error(t, err)
	_, err = domain.ParseDirection("")
	assert.Error(t, err)
}

func TestComponentRefNotation(t *testing.T) {
	assert.Equal(t, "body.vtx[12]", domain.Vertex("body", 12).String())
	assert.Equal(t, "body.e[3]", domain.Edge("body", 3).String())
	assert.Equal(t, "body.f[0]", domain.Face("body", 0).String())
}

func TestWeightsAttr(t *testing.T) {
	h := domain.DeformerHandle{Node: "body_superDelta"}
	assert.Equal(t, "deltaMush.body_superDelta.weights", h.WeightsAttr(domain.KindSmoothing))

	h = domain.DeformerHandle{Node: "body_Pull_texDef", Manipulator: "body_Pull_texDefHandle"}
	assert.Equal(t, "textureDeformer.body_Pull_texDef.weights", h.WeightsAttr(domain.KindSurfaceOffset))
}
