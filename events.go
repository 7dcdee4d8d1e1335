package stategraph

import "sync"

// TransitionEventArgs describes one firing attempt for the external
// notification surface.
type TransitionEventArgs[TState, TEvent comparable] struct {
	// StateID is the state that was current when firing began.
	StateID TState

	// EventID is the firing event; HasEvent is false for errors raised
	// during initial entry, which has no event.
	EventID  TEvent
	HasEvent bool

	// Argument is the opaque payload passed to Fire.
	Argument any

	// NewStateID is set for completed transitions.
	NewStateID  TState
	HasNewState bool

	// Err is set for exception notifications.
	Err error
}

// TransitionHandler consumes notification surface events.
type TransitionHandler[TState, TEvent comparable] func(TransitionEventArgs[TState, TEvent])

// handlerList is an ordered, concurrency-safe handler registry. Handlers
// run in registration order.
type handlerList[TState, TEvent comparable] struct {
	mu       sync.RWMutex
	handlers []TransitionHandler[TState, TEvent]
}

func (l *handlerList[TState, TEvent]) register(h TransitionHandler[TState, TEvent]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers = append(l.handlers, h)
}

func (l *handlerList[TState, TEvent]) invoke(args TransitionEventArgs[TState, TEvent]) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, h := range l.handlers {
		h(args)
	}
}

func (l *handlerList[TState, TEvent]) empty() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.handlers) == 0
}

// OnTransitionBegin subscribes to the start of each firing attempt, after
// extensions had their chance to rewrite the event.
func (sm *StateMachine[TState, TEvent]) OnTransitionBegin(h TransitionHandler[TState, TEvent]) {
	sm.transitionBegin.register(h)
}

// OnTransitionDeclined subscribes to fires that matched no transition on the
// current state or any ancestor. Declines are a normal outcome, not errors.
func (sm *StateMachine[TState, TEvent]) OnTransitionDeclined(h TransitionHandler[TState, TEvent]) {
	sm.transitionDeclined.register(h)
}

// OnTransitionCompleted subscribes to successfully committed transitions.
func (sm *StateMachine[TState, TEvent]) OnTransitionCompleted(h TransitionHandler[TState, TEvent]) {
	sm.transitionCompleted.register(h)
}

// OnTransitionException subscribes to guard/action errors. Registering a
// handler marks the machine as having an exception listener, which stops
// Fire from returning UnhandledTransitionError.
func (sm *StateMachine[TState, TEvent]) OnTransitionException(h TransitionHandler[TState, TEvent]) {
	sm.transitionException.register(h)
}
