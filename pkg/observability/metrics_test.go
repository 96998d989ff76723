package observability_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ernest-Sab/IPR-Tool/internal/runtime"
	"github.com/Ernest-Sab/IPR-Tool/pkg/adapters/memory"
	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
	"github.com/Ernest-Sab/IPR-Tool/pkg/observability"
)

func TestMetrics_CountsOperationsAndBrushCommands(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	h := memory.NewHost()
	h.AddGridMesh("body", 3, 3)
	h.SelectObject("body")

	eng := runtime.NewEngine(h, runtime.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, eng.CreateSmoothing(ctx, runtime.SmoothingParams{Iterations: 2, SmoothRadius: 2}))

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.OperationsCounter(domain.KindSmoothing, domain.StatusSucceeded)))

	// Object mode paints SELECT_ALL, ZERO_WEIGHTS, ENTER_CONTEXT and stops.
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BrushCounter(domain.BrushSelectAll)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BrushCounter(domain.BrushEnterContext)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BrushCounter(domain.BrushGrow)))
}

func TestMetrics_LabelsFailures(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	h := memory.NewHost()
	h.AddGridMesh("body", 3, 3)
	h.SelectObject("body")
	h.FailCreate = assert.AnError

	eng := runtime.NewEngine(h, runtime.WithLifecycleHooks(m.Hooks()))
	require.Error(t, eng.CreateSmoothing(ctx, runtime.SmoothingParams{Iterations: 2}))

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.OperationsCounter(domain.KindSmoothing, domain.StatusFailed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(
		m.OperationsCounter(domain.KindSmoothing, domain.StatusSucceeded)))
}
