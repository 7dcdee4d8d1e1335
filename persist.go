package stategraph

import "context"

// Saver receives the machine's persistable state. The engine computes what
// to save; medium and format are entirely the saver's concern.
type Saver[TState comparable] interface {
	// SaveCurrentState receives the current leaf id. present is false when
	// the machine has not been entered yet.
	SaveCurrentState(ctx context.Context, id TState, present bool) error

	// SaveHistoryStates receives one composite→last-active-child entry for
	// every composite with recorded history.
	SaveHistoryStates(ctx context.Context, history map[TState]TState) error
}

// Loader supplies a previously saved snapshot.
type Loader[TState comparable] interface {
	// LoadCurrentState returns the saved leaf id; ok is false when none was
	// saved.
	LoadCurrentState(ctx context.Context) (id TState, ok bool, err error)

	// LoadHistoryStates returns the saved composite→child history map.
	LoadHistoryStates(ctx context.Context) (map[TState]TState, error)
}

// Save emits the current state id and the history map to the saver.
func (sm *StateMachine[TState, TEvent]) Save(ctx context.Context, saver Saver[TState]) error {
	var current TState
	present := sm.current != nil
	if present {
		current = sm.current.id
	}
	if err := saver.SaveCurrentState(ctx, current, present); err != nil {
		return err
	}

	history := make(map[TState]TState)
	for _, s := range sm.ordered {
		if s.lastActiveState != nil {
			history[s.id] = s.lastActiveState.id
		}
	}
	return saver.SaveHistoryStates(ctx, history)
}

// Load restores a snapshot into a machine that has not yet been initialized
// or entered. The saved state is installed cold: no entry actions run. Each
// history entry is validated against the graph; a recorded child that is not
// a sub-state of its composite fails with InvalidHistoryStateError, and a
// saved current state naming a composite fails with NonLeafStateError.
func (sm *StateMachine[TState, TEvent]) Load(ctx context.Context, loader Loader[TState]) error {
	if sm.hasInitialState || sm.current != nil {
		return ErrAlreadyInitialized
	}

	current, hasCurrent, err := loader.LoadCurrentState(ctx)
	if err != nil {
		return err
	}
	history, err := loader.LoadHistoryStates(ctx)
	if err != nil {
		return err
	}

	for composite, child := range history {
		cs := sm.lookup(composite)
		if cs == nil {
			return &UnknownStateError{State: composite}
		}
		ch := cs.subState(child)
		if ch == nil {
			return &InvalidHistoryStateError{Composite: composite, Recorded: child}
		}
		cs.lastActiveState = ch
	}

	if hasCurrent {
		st := sm.lookup(current)
		if st == nil {
			return &UnknownStateError{State: current}
		}
		if st.IsComposite() {
			return &NonLeafStateError{State: current}
		}
		sm.current = st
	}

	for _, ext := range sm.extensions {
		ext.Loaded(sm, current, hasCurrent, history)
	}
	sm.log.WithField("hasCurrent", hasCurrent).Debug("snapshot loaded")
	return nil
}
