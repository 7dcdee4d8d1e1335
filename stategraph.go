// Package stategraph implements a hierarchical state machine engine.
//
// A machine owns a graph of states (possibly nested, with per-composite
// history) and event-triggered transitions carrying guards and actions.
// Firing an event resolves a transition on the current state (bubbling to
// super-states when unmatched), computes the exit/entry path via the least
// common ancestor of source and target, executes the actions in UML
// statechart order, and commits the new current state exactly once.
//
// The engine performs no internal locking: callers run at most one
// Initialize/EnterInitialState/Fire/Load at a time per machine, serializing
// externally if needed. A Fire issued from within a transition's own action
// is queued and processed after the in-flight transition commits.
package stategraph

import "context"

// Guard decides whether a transition may fire. A nil guard always passes.
// Guards on the initial-entry path see a context without an event and must
// tolerate absence.
type Guard[TState, TEvent comparable] func(ctx context.Context, tc *TransitionContext[TState, TEvent]) (bool, error)

// Action is a procedure executed on state entry, state exit, or along a
// firing transition. Actions may block; cancellation is the caller's concern
// via ctx.
type Action[TState, TEvent comparable] func(ctx context.Context, tc *TransitionContext[TState, TEvent]) error
