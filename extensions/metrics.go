package extensions

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/corvid-labs/stategraph"
)

// Metrics counts firing outcomes and observes transition durations. All
// vectors are labelled by machine name and event. A single Metrics value
// may be shared across machines.
type Metrics[TState, TEvent comparable] struct {
	stategraph.ExtensionBase[TState, TEvent]

	fired    *prometheus.CounterVec
	declined *prometheus.CounterVec
	failed   *prometheus.CounterVec
	duration *prometheus.HistogramVec

	// fireStarts times the in-flight fire per machine instance. Each
	// machine allows one in-flight fire, so one entry per instance
	// suffices.
	mu         sync.Mutex
	fireStarts map[string]time.Time
}

// NewMetrics creates a metrics extension registered against reg (use
// prometheus.DefaultRegisterer for the default registry).
func NewMetrics[TState, TEvent comparable](reg prometheus.Registerer) *Metrics[TState, TEvent] {
	factory := promauto.With(reg)
	return &Metrics[TState, TEvent]{
		fireStarts: make(map[string]time.Time),
		fired: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stategraph_transitions_fired_total",
			Help: "Completed transitions.",
		}, []string{"machine", "event"}),
		declined: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stategraph_transitions_declined_total",
			Help: "Fired events that matched no transition.",
		}, []string{"machine", "event"}),
		failed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stategraph_transition_errors_total",
			Help: "Guard or action errors routed to exception listeners.",
		}, []string{"machine"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stategraph_transition_duration_seconds",
			Help:    "Time from firing an event to committing the result.",
			Buckets: prometheus.DefBuckets,
		}, []string{"machine", "event"}),
	}
}

func (x *Metrics[TState, TEvent]) FiringEvent(m *stategraph.StateMachine[TState, TEvent], eventID *TEvent, argument *any) {
	x.mu.Lock()
	x.fireStarts[m.InstanceID()] = time.Now()
	x.mu.Unlock()
}

func (x *Metrics[TState, TEvent]) TransitionCompleted(m *stategraph.StateMachine[TState, TEvent], tc *stategraph.TransitionContext[TState, TEvent], newState TState) {
	x.mu.Lock()
	start, ok := x.fireStarts[m.InstanceID()]
	delete(x.fireStarts, m.InstanceID())
	x.mu.Unlock()

	event := eventLabel(tc)
	x.fired.WithLabelValues(m.Name(), event).Inc()
	if ok {
		x.duration.WithLabelValues(m.Name(), event).Observe(time.Since(start).Seconds())
	}
}

func (x *Metrics[TState, TEvent]) TransitionDeclined(m *stategraph.StateMachine[TState, TEvent], tc *stategraph.TransitionContext[TState, TEvent]) {
	x.declined.WithLabelValues(m.Name(), eventLabel(tc)).Inc()
}

func (x *Metrics[TState, TEvent]) TransitionExceptionThrown(m *stategraph.StateMachine[TState, TEvent], tc *stategraph.TransitionContext[TState, TEvent], err error) {
	x.failed.WithLabelValues(m.Name()).Inc()
}

func eventLabel[TState, TEvent comparable](tc *stategraph.TransitionContext[TState, TEvent]) string {
	if ev, ok := tc.EventID(); ok {
		return fmt.Sprintf("%v", ev)
	}
	return "initial"
}
