// Package observability exposes prometheus collectors for the deformer
// engine, wired in through domain.LifecycleHooks.
package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
)

// Metrics holds the engine collectors. Create one per registry; Hooks returns
// the lifecycle callbacks that feed it.
type Metrics struct {
	operations    *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	brushCommands *prometheus.CounterVec

	now func() time.Time
	// Operations are single-flight, so one start timestamp suffices.
	started time.Time
}

// NewMetrics creates and registers the collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iprescue_operations_total",
				Help: "Total number of deformer operations by kind and terminal status",
			},
			[]string{"kind", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "iprescue_operation_duration_seconds",
				Help: "Duration of deformer operations",
			},
			[]string{"kind"},
		),
		brushCommands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "iprescue_brush_commands_total",
				Help: "Total number of painting commands issued",
			},
			[]string{"type"},
		),
		now: time.Now,
	}
	reg.MustRegister(m.operations, m.duration, m.brushCommands)
	return m
}

// OperationsCounter returns the counter for one kind/status pair, for tests
// and dashboards that read single series.
func (m *Metrics) OperationsCounter(kind domain.DeformerKind, status domain.OperationStatus) prometheus.Counter {
	return m.operations.WithLabelValues(string(kind), string(status))
}

// BrushCounter returns the counter for one brush command type.
func (m *Metrics) BrushCounter(t domain.BrushCommandType) prometheus.Counter {
	return m.brushCommands.WithLabelValues(string(t))
}

// Hooks returns lifecycle callbacks feeding the collectors. Merge them with
// your own hooks before handing them to the engine if you need both.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnOperationStart: func(ctx context.Context, e *domain.OperationEvent) {
			m.started = m.now()
		},
		OnOperationEnd: func(ctx context.Context, e *domain.OperationEvent) {
			m.operations.WithLabelValues(string(e.Kind), string(e.Status)).Inc()
			m.duration.WithLabelValues(string(e.Kind)).Observe(m.now().Sub(m.started).Seconds())
		},
		OnBrushCommand: func(ctx context.Context, cmd *domain.BrushCommand) {
			m.brushCommands.WithLabelValues(string(cmd.Type)).Inc()
		},
	}
}
