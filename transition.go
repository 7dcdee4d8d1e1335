package stategraph

import "context"

// Transition is one guarded outgoing edge of a state, attached under a
// single event key. A nil target marks an internal transition: the actions
// run but the current state is unchanged.
type Transition[TState, TEvent comparable] struct {
	source  *State[TState, TEvent]
	target  *State[TState, TEvent]
	guard   Guard[TState, TEvent]
	actions []Action[TState, TEvent]
}

// TransitionResult reports the outcome of a resolution attempt. NewState is
// meaningful only when Fired is true.
type TransitionResult[TState, TEvent comparable] struct {
	Fired    bool
	NewState *State[TState, TEvent]
}

func (t *Transition[TState, TEvent]) evaluateGuard(ctx context.Context, tc *TransitionContext[TState, TEvent]) (bool, error) {
	if t.guard == nil {
		return true, nil
	}
	return t.guard(ctx, tc)
}

func (t *Transition[TState, TEvent]) runActions(ctx context.Context, tc *TransitionContext[TState, TEvent]) error {
	for _, a := range t.actions {
		if err := a(ctx, tc); err != nil {
			return err
		}
	}
	return nil
}

// fire executes the transition against the context's source leaf.
//
// For a targeted transition the order is: exit actions from the active leaf
// up to (excluding) the least common ancestor, innermost first; then the
// transition's own actions; then entry actions from below the LCA down to
// the target, outermost first; then descent into the target's history or
// declared initial chain until a leaf. History is recorded as states are
// exited and entered, so a persisted snapshot always reflects the active
// child of every occupied composite.
func (t *Transition[TState, TEvent]) fire(ctx context.Context, tc *TransitionContext[TState, TEvent]) (TransitionResult[TState, TEvent], error) {
	if t.target == nil {
		// Internal transition: actions only, state unchanged, still fired.
		if err := t.runActions(ctx, tc); err != nil {
			return TransitionResult[TState, TEvent]{}, err
		}
		return TransitionResult[TState, TEvent]{Fired: true, NewState: tc.Source()}, nil
	}

	leaf := tc.Source()
	lca := leastCommonAncestor(leaf, t.target)

	for node := leaf; node != nil && node != lca; node = node.superState {
		if err := node.exit(ctx, tc); err != nil {
			return TransitionResult[TState, TEvent]{}, err
		}
	}

	if err := t.runActions(ctx, tc); err != nil {
		return TransitionResult[TState, TEvent]{}, err
	}

	for _, node := range ancestorsBelow(lca, t.target) {
		if err := node.enter(ctx, tc); err != nil {
			return TransitionResult[TState, TEvent]{}, err
		}
	}

	final, err := descendToLeaf(ctx, t.target, tc)
	if err != nil {
		return TransitionResult[TState, TEvent]{}, err
	}
	return TransitionResult[TState, TEvent]{Fired: true, NewState: final}, nil
}
