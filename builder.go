package stategraph

import "fmt"

// In begins fluent definition of a state. States are created on first
// reference, so transitions may target states declared later.
func (sm *StateMachine[TState, TEvent]) In(stateID TState) *StateDefinition[TState, TEvent] {
	return &StateDefinition[TState, TEvent]{sm: sm, state: sm.stateFor(stateID)}
}

// DefineHierarchyOn declares superStateID as a composite with the given
// children and default initial child. The initial child is always a child;
// listing it again in childIDs is allowed but not required. No child may
// already belong to another composite.
func (sm *StateMachine[TState, TEvent]) DefineHierarchyOn(superStateID, initialChildID TState, childIDs ...TState) error {
	super := sm.stateFor(superStateID)
	initialListed := false
	for _, childID := range childIDs {
		if childID == initialChildID {
			initialListed = true
		}
	}
	if !initialListed {
		childIDs = append([]TState{initialChildID}, childIDs...)
	}
	for _, childID := range childIDs {
		if childID == superStateID {
			return fmt.Errorf("state '%v' cannot be its own sub-state", childID)
		}
		child := sm.stateFor(childID)
		if child.superState != nil && child.superState != super {
			return fmt.Errorf("state '%v' already belongs to composite '%v'", childID, child.superState.id)
		}
		if child.superState == nil {
			super.addSubState(child)
		}
	}
	super.initialSubStateID = initialChildID
	super.hasInitial = true
	return nil
}

// StateDefinition configures one state fluently.
type StateDefinition[TState, TEvent comparable] struct {
	sm    *StateMachine[TState, TEvent]
	state *State[TState, TEvent]
}

// OnEntry appends entry actions, executed in declaration order.
func (d *StateDefinition[TState, TEvent]) OnEntry(actions ...Action[TState, TEvent]) *StateDefinition[TState, TEvent] {
	d.state.entryActions = append(d.state.entryActions, actions...)
	return d
}

// OnExit appends exit actions, executed in declaration order.
func (d *StateDefinition[TState, TEvent]) OnExit(actions ...Action[TState, TEvent]) *StateDefinition[TState, TEvent] {
	d.state.exitActions = append(d.state.exitActions, actions...)
	return d
}

// On starts a new transition for the given event. Without a Goto the
// transition is internal; without an If it is unconditional and should be
// declared last to act as the else branch.
func (d *StateDefinition[TState, TEvent]) On(eventID TEvent) *TransitionDefinition[TState, TEvent] {
	t := &Transition[TState, TEvent]{source: d.state}
	d.state.addTransition(eventID, t)
	return &TransitionDefinition[TState, TEvent]{state: d, event: eventID, t: t}
}

// TransitionDefinition configures the most recently declared transition.
type TransitionDefinition[TState, TEvent comparable] struct {
	state *StateDefinition[TState, TEvent]
	event TEvent
	t     *Transition[TState, TEvent]
}

// If sets the transition's guard.
func (d *TransitionDefinition[TState, TEvent]) If(guard Guard[TState, TEvent]) *TransitionDefinition[TState, TEvent] {
	d.t.guard = guard
	return d
}

// Goto sets the transition's target state.
func (d *TransitionDefinition[TState, TEvent]) Goto(targetID TState) *TransitionDefinition[TState, TEvent] {
	d.t.target = d.state.sm.stateFor(targetID)
	return d
}

// Execute appends transition actions, run between the exit and entry paths.
func (d *TransitionDefinition[TState, TEvent]) Execute(actions ...Action[TState, TEvent]) *TransitionDefinition[TState, TEvent] {
	d.t.actions = append(d.t.actions, actions...)
	return d
}

// Otherwise declares an unguarded transition for the same event, the else
// branch evaluated after the guarded ones.
func (d *TransitionDefinition[TState, TEvent]) Otherwise() *TransitionDefinition[TState, TEvent] {
	return d.state.On(d.event)
}

// On starts a sibling transition on the same state for another event.
func (d *TransitionDefinition[TState, TEvent]) On(eventID TEvent) *TransitionDefinition[TState, TEvent] {
	return d.state.On(eventID)
}
