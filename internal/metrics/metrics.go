// Package metrics exposes prometheus collectors for tool sessions, gizmo
// instances and undo transactions.
package metrics

import (
	"sync/atomic"

	"toolsframework/internal/interactive"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gizmoview"

type Metrics struct {
	toolSessions *prometheus.CounterVec
	toolActive   *prometheus.GaugeVec
	undoCommits  prometheus.Counter
	gizmosActive prometheus.GaugeFunc

	// gizmoCount is written on the frame loop and read by scrapes.
	gizmoCount atomic.Int64
}

// New registers the collectors on reg. The gizmo gauge reads zero until
// ObserveGizmoManager is called.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		toolSessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_sessions_total",
			Help:      "Tool sessions ended, by tool type and shutdown type.",
		}, []string{"tool", "shutdown"}),
		toolActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tool_active",
			Help:      "1 while a tool is active on the side.",
		}, []string{"side"}),
		undoCommits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "undo_transactions_total",
			Help:      "Undo transactions committed to the history.",
		}),
	}
	m.gizmosActive = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "gizmos_active",
		Help:      "Gizmo instances owned by the gizmo manager.",
	}, func() float64 { return float64(m.gizmoCount.Load()) })
	for _, c := range []prometheus.Collector{m.toolSessions, m.toolActive, m.undoCommits, m.gizmosActive} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveToolManager follows the manager's start and end broadcasts.
func (m *Metrics) ObserveToolManager(tm *interactive.ToolManager) {
	tm.OnToolStarted.AddListener(m.ToolStarted)
	tm.OnToolEnded.AddListener(m.ToolEnded)
}

// ObserveGizmoManager tracks the manager's live gizmo count through its
// create and destroy broadcasts. Call it on the goroutine that drives gm.
func (m *Metrics) ObserveGizmoManager(gm *interactive.GizmoManager) {
	m.gizmoCount.Store(int64(gm.ActiveGizmoCount()))
	gm.OnGizmoCreated.AddListener(func(interactive.Gizmo) { m.gizmoCount.Add(1) })
	gm.OnGizmoDestroyed.AddListener(func(interactive.Gizmo) { m.gizmoCount.Add(-1) })
}

func (m *Metrics) ToolStarted(e interactive.ToolEvent) {
	m.toolActive.WithLabelValues(e.Side.String()).Set(1)
}

func (m *Metrics) ToolEnded(e interactive.ToolEvent) {
	m.toolActive.WithLabelValues(e.Side.String()).Set(0)
	m.toolSessions.WithLabelValues(e.Name, e.ShutdownType.String()).Inc()
}

// TransactionCommitted has the shape of the undo history's commit hook.
func (m *Metrics) TransactionCommitted(string) {
	m.undoCommits.Inc()
}
