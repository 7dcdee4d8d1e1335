package stategraph

import "context"

// descendToLeaf drives entry into a possibly-composite state down to the
// leaf actually installed as the current state. At each level the recorded
// history child wins over the declared initial sub-state; a composite with
// neither is a configuration error surfaced at entry time.
func descendToLeaf[TState, TEvent comparable](ctx context.Context, node *State[TState, TEvent], tc *TransitionContext[TState, TEvent]) (*State[TState, TEvent], error) {
	for node.IsComposite() {
		child := node.lastActiveState
		if child == nil && node.hasInitial {
			child = node.subState(node.initialSubStateID)
		}
		if child == nil {
			return nil, &MissingInitialStateError{State: node.id}
		}
		if err := child.enter(ctx, tc); err != nil {
			return nil, err
		}
		node = child
	}
	return node, nil
}

// enterInitial performs the full initial entry: entry actions of the
// configured initial state's ancestor chain, outermost first, then the
// history/initial descent to a leaf. The context carries no event.
func enterInitial[TState, TEvent comparable](ctx context.Context, initial *State[TState, TEvent], tc *TransitionContext[TState, TEvent]) (*State[TState, TEvent], error) {
	for _, node := range ancestorsBelow[TState, TEvent](nil, initial) {
		if err := node.enter(ctx, tc); err != nil {
			return nil, err
		}
	}
	return descendToLeaf(ctx, initial, tc)
}
