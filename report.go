package stategraph

// ReportGenerator consumes a read-only dump of the machine's graph for
// human or documentation output.
type ReportGenerator[TState, TEvent comparable] interface {
	// Report receives the machine name, every state node in declaration
	// order, and the configured initial state id (hasInitial false when
	// Initialize has not been called).
	Report(name string, states []*State[TState, TEvent], initialStateID TState, hasInitial bool) error
}

// Report hands the full state set and initial id to the generator. Pure
// read, no mutation.
func (sm *StateMachine[TState, TEvent]) Report(gen ReportGenerator[TState, TEvent]) error {
	states := make([]*State[TState, TEvent], len(sm.ordered))
	copy(states, sm.ordered)
	return gen.Report(sm.name, states, sm.initialStateID, sm.hasInitialState)
}
