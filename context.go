package stategraph

// TransitionContext is the ephemeral per-fire record handed to guards,
// actions and notification hooks. A fresh context is built for every Fire
// and EnterInitialState call and discarded afterwards.
type TransitionContext[TState, TEvent comparable] struct {
	source   *State[TState, TEvent]
	eventID  TEvent
	hasEvent bool
	argument any
	machine  *StateMachine[TState, TEvent]
}

func newTransitionContext[TState, TEvent comparable](source *State[TState, TEvent], eventID TEvent, hasEvent bool, argument any, machine *StateMachine[TState, TEvent]) *TransitionContext[TState, TEvent] {
	return &TransitionContext[TState, TEvent]{
		source:   source,
		eventID:  eventID,
		hasEvent: hasEvent,
		argument: argument,
		machine:  machine,
	}
}

// Source returns the state that was current when firing began, or nil for
// the synthetic initial-entry context.
func (tc *TransitionContext[TState, TEvent]) Source() *State[TState, TEvent] { return tc.source }

// EventID returns the firing event. ok is false for the synthetic
// initial-entry pseudo-event.
func (tc *TransitionContext[TState, TEvent]) EventID() (TEvent, bool) {
	return tc.eventID, tc.hasEvent
}

// Argument returns the opaque payload passed to Fire.
func (tc *TransitionContext[TState, TEvent]) Argument() any { return tc.argument }

// Machine returns the owning machine, allowing actions to issue re-entrant
// fires or inspect configuration.
func (tc *TransitionContext[TState, TEvent]) Machine() *StateMachine[TState, TEvent] {
	return tc.machine
}
