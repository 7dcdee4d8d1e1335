// Package extensions provides ready-made machine extensions: structured
// logging, Prometheus metrics and channel-based notification forwarding.
package extensions

import (
	"github.com/sirupsen/logrus"

	"github.com/corvid-labs/stategraph"
)

// Logging logs every machine lifecycle hook through a logrus FieldLogger.
type Logging[TState, TEvent comparable] struct {
	stategraph.ExtensionBase[TState, TEvent]
	log logrus.FieldLogger
}

// NewLogging creates a logging extension. A nil logger falls back to the
// logrus standard logger.
func NewLogging[TState, TEvent comparable](log logrus.FieldLogger) *Logging[TState, TEvent] {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Logging[TState, TEvent]{log: log}
}

func (l *Logging[TState, TEvent]) fields(m *stategraph.StateMachine[TState, TEvent]) logrus.FieldLogger {
	return l.log.WithFields(logrus.Fields{
		"machine":  m.Name(),
		"instance": m.InstanceID(),
	})
}

func (l *Logging[TState, TEvent]) InitializedStateMachine(m *stategraph.StateMachine[TState, TEvent], initialState TState) {
	l.fields(m).WithField("initial", initialState).Info("machine initialized")
}

func (l *Logging[TState, TEvent]) EnteredInitialState(m *stategraph.StateMachine[TState, TEvent], state TState) {
	l.fields(m).WithField("state", state).Info("entered initial state")
}

func (l *Logging[TState, TEvent]) FiringEvent(m *stategraph.StateMachine[TState, TEvent], eventID *TEvent, argument *any) {
	l.fields(m).WithField("event", *eventID).Debug("firing event")
}

func (l *Logging[TState, TEvent]) SwitchedState(m *stategraph.StateMachine[TState, TEvent], oldState, newState TState) {
	l.fields(m).WithFields(logrus.Fields{
		"from": oldState,
		"to":   newState,
	}).Info("switched state")
}

func (l *Logging[TState, TEvent]) TransitionDeclined(m *stategraph.StateMachine[TState, TEvent], tc *stategraph.TransitionContext[TState, TEvent]) {
	entry := l.fields(m)
	if ev, ok := tc.EventID(); ok {
		entry = entry.WithField("event", ev)
	}
	if src := tc.Source(); src != nil {
		entry = entry.WithField("state", src.ID())
	}
	entry.Info("transition declined")
}

func (l *Logging[TState, TEvent]) TransitionCompleted(m *stategraph.StateMachine[TState, TEvent], tc *stategraph.TransitionContext[TState, TEvent], newState TState) {
	entry := l.fields(m).WithField("to", newState)
	if ev, ok := tc.EventID(); ok {
		entry = entry.WithField("event", ev)
	}
	entry.Debug("transition completed")
}

func (l *Logging[TState, TEvent]) TransitionExceptionThrown(m *stategraph.StateMachine[TState, TEvent], tc *stategraph.TransitionContext[TState, TEvent], err error) {
	l.fields(m).WithError(err).Error("transition error")
}

func (l *Logging[TState, TEvent]) Loaded(m *stategraph.StateMachine[TState, TEvent], currentState TState, hasCurrent bool, history map[TState]TState) {
	entry := l.fields(m).WithField("historyStates", len(history))
	if hasCurrent {
		entry = entry.WithField("current", currentState)
	}
	entry.Info("snapshot loaded")
}
