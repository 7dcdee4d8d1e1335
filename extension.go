package stategraph

// Extension observes and intercepts the machine's lifecycle. Extensions run
// in registration order at every hook, and the full list is always invoked.
// The firing and initializing hooks receive pointers and may rewrite the
// value before the machine commits to it.
//
// Extensions are trusted not to fail during notification hooks; the one
// hook expected to consume errors is TransitionExceptionThrown.
type Extension[TState, TEvent comparable] interface {
	// InitializingStateMachine runs before the initial state id is
	// committed; the extension may rewrite it.
	InitializingStateMachine(m *StateMachine[TState, TEvent], initialState *TState)
	InitializedStateMachine(m *StateMachine[TState, TEvent], initialState TState)

	EnteringInitialState(m *StateMachine[TState, TEvent], state TState)
	EnteredInitialState(m *StateMachine[TState, TEvent], state TState)

	// FiringEvent runs before guard evaluation; the extension may rewrite
	// the event id and argument.
	FiringEvent(m *StateMachine[TState, TEvent], eventID *TEvent, argument *any)
	FiredEvent(m *StateMachine[TState, TEvent], tc *TransitionContext[TState, TEvent])

	SwitchedState(m *StateMachine[TState, TEvent], oldState, newState TState)
	TransitionDeclined(m *StateMachine[TState, TEvent], tc *TransitionContext[TState, TEvent])
	TransitionCompleted(m *StateMachine[TState, TEvent], tc *TransitionContext[TState, TEvent], newState TState)

	// TransitionExceptionThrown receives guard and action errors raised
	// during a fire. Registering any extension marks the machine as having
	// an exception listener.
	TransitionExceptionThrown(m *StateMachine[TState, TEvent], tc *TransitionContext[TState, TEvent], err error)

	// Loaded runs after a snapshot was restored. hasCurrent is false when
	// the snapshot carried no current state.
	Loaded(m *StateMachine[TState, TEvent], currentState TState, hasCurrent bool, history map[TState]TState)
}

// ExtensionBase is a no-op Extension for embedding, so implementations only
// override the hooks they care about.
type ExtensionBase[TState, TEvent comparable] struct{}

func (ExtensionBase[TState, TEvent]) InitializingStateMachine(*StateMachine[TState, TEvent], *TState) {
}
func (ExtensionBase[TState, TEvent]) InitializedStateMachine(*StateMachine[TState, TEvent], TState) {}
func (ExtensionBase[TState, TEvent]) EnteringInitialState(*StateMachine[TState, TEvent], TState)   {}
func (ExtensionBase[TState, TEvent]) EnteredInitialState(*StateMachine[TState, TEvent], TState)    {}
func (ExtensionBase[TState, TEvent]) FiringEvent(*StateMachine[TState, TEvent], *TEvent, *any)     {}
func (ExtensionBase[TState, TEvent]) FiredEvent(*StateMachine[TState, TEvent], *TransitionContext[TState, TEvent]) {
}
func (ExtensionBase[TState, TEvent]) SwitchedState(*StateMachine[TState, TEvent], TState, TState) {}
func (ExtensionBase[TState, TEvent]) TransitionDeclined(*StateMachine[TState, TEvent], *TransitionContext[TState, TEvent]) {
}
func (ExtensionBase[TState, TEvent]) TransitionCompleted(*StateMachine[TState, TEvent], *TransitionContext[TState, TEvent], TState) {
}
func (ExtensionBase[TState, TEvent]) TransitionExceptionThrown(*StateMachine[TState, TEvent], *TransitionContext[TState, TEvent], error) {
}
func (ExtensionBase[TState, TEvent]) Loaded(*StateMachine[TState, TEvent], TState, bool, map[TState]TState) {
}
