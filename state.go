package stategraph

import "context"

// State is a vertex in the hierarchy graph. Nodes are created by the machine
// registry on first reference and configured through the fluent definition
// API; after the graph is in use only lastActiveState mutates.
type State[TState, TEvent comparable] struct {
	id TState

	// superState is the parent node; nil for top-level states. The link is
	// non-owning: children are owned downward via subStates.
	superState *State[TState, TEvent]
	subStates  []*State[TState, TEvent]

	entryActions []Action[TState, TEvent]
	exitActions  []Action[TState, TEvent]

	// transitions holds the outgoing transitions per event in declaration
	// order. eventOrder remembers first-declaration order of the keys so
	// reports stay deterministic.
	transitions map[TEvent][]*Transition[TState, TEvent]
	eventOrder  []TEvent

	initialSubStateID TState
	hasInitial        bool

	// lastActiveState is the history link: the child that was active when
	// this composite was last occupied. Mutated only by the fire and
	// initializer algorithms.
	lastActiveState *State[TState, TEvent]
}

func newState[TState, TEvent comparable](id TState) *State[TState, TEvent] {
	return &State[TState, TEvent]{
		id:          id,
		transitions: make(map[TEvent][]*Transition[TState, TEvent]),
	}
}

// ID returns the state's identifier.
func (s *State[TState, TEvent]) ID() TState { return s.id }

// SuperState returns the parent node, or nil for a top-level state.
func (s *State[TState, TEvent]) SuperState() *State[TState, TEvent] { return s.superState }

// SubStates returns the declared children in declaration order.
func (s *State[TState, TEvent]) SubStates() []*State[TState, TEvent] { return s.subStates }

// IsComposite reports whether the state has declared sub-states.
func (s *State[TState, TEvent]) IsComposite() bool { return len(s.subStates) > 0 }

// InitialSubState returns the declared default child id, if any.
func (s *State[TState, TEvent]) InitialSubState() (TState, bool) {
	return s.initialSubStateID, s.hasInitial
}

// LastActiveState returns the recorded history child id, if any.
func (s *State[TState, TEvent]) LastActiveState() (TState, bool) {
	var zero TState
	if s.lastActiveState == nil {
		return zero, false
	}
	return s.lastActiveState.id, true
}

// TransitionInfo is a read-only view of one declared transition, used by
// report generators.
type TransitionInfo[TState, TEvent comparable] struct {
	Event       TEvent
	Target      TState
	HasTarget   bool // false for internal transitions
	Guarded     bool
	ActionCount int
}

// TransitionInfos returns the state's outgoing transitions in declaration
// order.
func (s *State[TState, TEvent]) TransitionInfos() []TransitionInfo[TState, TEvent] {
	var infos []TransitionInfo[TState, TEvent]
	for _, ev := range s.eventOrder {
		for _, t := range s.transitions[ev] {
			info := TransitionInfo[TState, TEvent]{
				Event:       ev,
				Guarded:     t.guard != nil,
				ActionCount: len(t.actions),
			}
			if t.target != nil {
				info.Target = t.target.id
				info.HasTarget = true
			}
			infos = append(infos, info)
		}
	}
	return infos
}

func (s *State[TState, TEvent]) addTransition(event TEvent, t *Transition[TState, TEvent]) {
	if _, ok := s.transitions[event]; !ok {
		s.eventOrder = append(s.eventOrder, event)
	}
	s.transitions[event] = append(s.transitions[event], t)
}

func (s *State[TState, TEvent]) addSubState(child *State[TState, TEvent]) {
	child.superState = s
	s.subStates = append(s.subStates, child)
}

func (s *State[TState, TEvent]) subState(id TState) *State[TState, TEvent] {
	for _, c := range s.subStates {
		if c.id == id {
			return c
		}
	}
	return nil
}

// resolveTransition evaluates the state's transitions for the context's
// event in declaration order; the first transition whose guard passes wins.
// An unguarded transition always matches, so it acts as an else branch when
// declared last. Events with no transitions on a state bubble to the
// super-state, which is what gives composites inherited event handling. A
// state that declares the event but denies every candidate through guards
// consumes it: the event declines rather than bubbling further.
func (s *State[TState, TEvent]) resolveTransition(ctx context.Context, tc *TransitionContext[TState, TEvent]) (TransitionResult[TState, TEvent], error) {
	event, _ := tc.EventID()
	for node := s; node != nil; node = node.superState {
		candidates := node.transitions[event]
		if len(candidates) == 0 {
			continue
		}
		for _, t := range candidates {
			pass, err := t.evaluateGuard(ctx, tc)
			if err != nil {
				return TransitionResult[TState, TEvent]{}, err
			}
			if !pass {
				continue
			}
			return t.fire(ctx, tc)
		}
		break
	}
	return TransitionResult[TState, TEvent]{}, nil
}

// enter runs the state's entry actions in declaration order and records this
// state as its parent's last active child, keeping history current while the
// composite is occupied.
func (s *State[TState, TEvent]) enter(ctx context.Context, tc *TransitionContext[TState, TEvent]) error {
	if s.superState != nil {
		s.superState.lastActiveState = s
	}
	for _, a := range s.entryActions {
		if err := a(ctx, tc); err != nil {
			return err
		}
	}
	return nil
}

// exit runs the state's exit actions in declaration order and records this
// state into its parent's history so a later re-entry can resume here.
func (s *State[TState, TEvent]) exit(ctx context.Context, tc *TransitionContext[TState, TEvent]) error {
	for _, a := range s.exitActions {
		if err := a(ctx, tc); err != nil {
			return err
		}
	}
	if s.superState != nil {
		s.superState.lastActiveState = s
	}
	return nil
}

// leastCommonAncestor returns the deepest proper ancestor shared by a and b,
// or nil when the two chains only meet above the top level. For a
// self-transition this is the node's parent, so the node itself both exits
// and re-enters.
func leastCommonAncestor[TState, TEvent comparable](a, b *State[TState, TEvent]) *State[TState, TEvent] {
	seen := make(map[*State[TState, TEvent]]bool)
	for n := a.superState; n != nil; n = n.superState {
		seen[n] = true
	}
	for n := b.superState; n != nil; n = n.superState {
		if seen[n] {
			return n
		}
	}
	return nil
}

// ancestorsBelow returns the chain from just below the ancestor down to the
// node, outermost first. A nil ancestor means the whole chain from the top.
func ancestorsBelow[TState, TEvent comparable](ancestor, node *State[TState, TEvent]) []*State[TState, TEvent] {
	var chain []*State[TState, TEvent]
	for n := node; n != nil && n != ancestor; n = n.superState {
		chain = append(chain, n)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
