package stategraph

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StateMachine is the transition engine orchestrator. It owns the state
// registry, the write-once initial state id and the current-state pointer,
// and drives the fire algorithm and the notification protocol.
//
// The zero value is not usable; construct with New.
type StateMachine[TState, TEvent comparable] struct {
	name       string
	instanceID string

	states  map[TState]*State[TState, TEvent]
	ordered []*State[TState, TEvent] // first-reference order, for reports

	initialStateID  TState
	hasInitialState bool

	// current is nil until EnterInitialState or Load installs a leaf; it
	// then mutates exactly once per successful Fire.
	current *State[TState, TEvent]

	extensions []Extension[TState, TEvent]

	transitionBegin     handlerList[TState, TEvent]
	transitionDeclined  handlerList[TState, TEvent]
	transitionCompleted handlerList[TState, TEvent]
	transitionException handlerList[TState, TEvent]

	// firing marks an in-flight Fire; events fired from within actions are
	// appended to queued and processed after the current transition commits.
	firing bool
	queued []queuedEvent[TEvent]

	log logrus.FieldLogger
}

type queuedEvent[TEvent comparable] struct {
	eventID  TEvent
	argument any
}

// Option applies configuration to a StateMachine via functional options.
type Option[TState, TEvent comparable] func(*StateMachine[TState, TEvent])

// WithLogger replaces the machine's logger.
func WithLogger[TState, TEvent comparable](log logrus.FieldLogger) Option[TState, TEvent] {
	return func(sm *StateMachine[TState, TEvent]) {
		sm.log = log
	}
}

// New creates an empty machine. States come into existence on first
// reference through the definition API, so declaration order is free.
func New[TState, TEvent comparable](name string, opts ...Option[TState, TEvent]) *StateMachine[TState, TEvent] {
	sm := &StateMachine[TState, TEvent]{
		name:       name,
		instanceID: uuid.NewString(),
		states:     make(map[TState]*State[TState, TEvent]),
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(sm)
	}
	sm.log = sm.log.WithFields(logrus.Fields{
		"machine":  sm.name,
		"instance": sm.instanceID,
	})
	return sm
}

// Name returns the machine's human-readable name.
func (sm *StateMachine[TState, TEvent]) Name() string { return sm.name }

// InstanceID returns the generated per-instance identifier used in logs,
// metrics labels and snapshots.
func (sm *StateMachine[TState, TEvent]) InstanceID() string { return sm.instanceID }

// AddExtension appends an extension. Call before concurrent firing begins.
func (sm *StateMachine[TState, TEvent]) AddExtension(ext Extension[TState, TEvent]) {
	sm.extensions = append(sm.extensions, ext)
}

// ClearExtensions removes all registered extensions.
func (sm *StateMachine[TState, TEvent]) ClearExtensions() {
	sm.extensions = nil
}

// CurrentState returns the current leaf state id. ok is false before the
// machine has been entered.
func (sm *StateMachine[TState, TEvent]) CurrentState() (TState, bool) {
	var zero TState
	if sm.current == nil {
		return zero, false
	}
	return sm.current.id, true
}

// IsInState reports whether the current leaf is the given state or nested
// anywhere below it.
func (sm *StateMachine[TState, TEvent]) IsInState(id TState) bool {
	for n := sm.current; n != nil; n = n.superState {
		if n.id == id {
			return true
		}
	}
	return false
}

// stateFor returns the node for id, creating it on first reference.
func (sm *StateMachine[TState, TEvent]) stateFor(id TState) *State[TState, TEvent] {
	if s, ok := sm.states[id]; ok {
		return s
	}
	s := newState[TState, TEvent](id)
	sm.states[id] = s
	sm.ordered = append(sm.ordered, s)
	return s
}

// lookup returns the node for id without creating it.
func (sm *StateMachine[TState, TEvent]) lookup(id TState) *State[TState, TEvent] {
	return sm.states[id]
}

// Initialize sets the write-once initial state identity. Extensions are
// notified before commit and may rewrite the chosen id.
func (sm *StateMachine[TState, TEvent]) Initialize(initialStateID TState) error {
	if sm.hasInitialState || sm.current != nil {
		return ErrAlreadyInitialized
	}
	for _, ext := range sm.extensions {
		ext.InitializingStateMachine(sm, &initialStateID)
	}
	sm.initialStateID = initialStateID
	sm.hasInitialState = true
	sm.stateFor(initialStateID)
	for _, ext := range sm.extensions {
		ext.InitializedStateMachine(sm, initialStateID)
	}
	sm.log.WithField("initial", initialStateID).Debug("state machine initialized")
	return nil
}

// EnterInitialState descends from the configured initial state to a leaf,
// executing entry actions along the way, and commits the result as the
// current state. The transition context carries no event.
func (sm *StateMachine[TState, TEvent]) EnterInitialState(ctx context.Context) error {
	if !sm.hasInitialState {
		return ErrNotInitialized
	}
	if sm.current != nil {
		return ErrAlreadyEntered
	}
	for _, ext := range sm.extensions {
		ext.EnteringInitialState(sm, sm.initialStateID)
	}

	var noEvent TEvent
	tc := newTransitionContext(nil, noEvent, false, nil, sm)
	leaf, err := enterInitial(ctx, sm.states[sm.initialStateID], tc)
	if err != nil {
		var missing *MissingInitialStateError
		if errors.As(err, &missing) {
			return err
		}
		return sm.routeError(tc, err)
	}
	sm.current = leaf

	for _, ext := range sm.extensions {
		ext.EnteredInitialState(sm, leaf.id)
	}
	sm.log.WithField("state", leaf.id).Debug("entered initial state")
	return nil
}

// Fire fires an event with an opaque argument against the current state.
//
// A fire that matches no transition is declined: the decline notifications
// run and Fire returns nil. Guard and action errors are routed to the
// exception listeners; only when none are registered does Fire return the
// error, wrapped in UnhandledTransitionError. The current-state pointer is
// committed once, after the full exit/entry path has run, so observers
// never see a partially-updated state.
//
// A Fire issued from within a transition's own action is queued and
// processed in order after the in-flight transition commits, so the inner
// event resolves against the committed state. Errors from queued events
// surface from the outermost Fire call.
func (sm *StateMachine[TState, TEvent]) Fire(ctx context.Context, eventID TEvent, argument any) error {
	if sm.current == nil {
		return ErrNotInitialized
	}
	if sm.firing {
		sm.queued = append(sm.queued, queuedEvent[TEvent]{eventID: eventID, argument: argument})
		return nil
	}

	sm.firing = true
	defer func() {
		sm.firing = false
		sm.queued = nil
	}()

	if err := sm.fireOne(ctx, eventID, argument); err != nil {
		return err
	}
	for len(sm.queued) > 0 {
		next := sm.queued[0]
		sm.queued = sm.queued[1:]
		if err := sm.fireOne(ctx, next.eventID, next.argument); err != nil {
			return err
		}
	}
	return nil
}

func (sm *StateMachine[TState, TEvent]) fireOne(ctx context.Context, eventID TEvent, argument any) error {
	for _, ext := range sm.extensions {
		ext.FiringEvent(sm, &eventID, &argument)
	}

	source := sm.current
	tc := newTransitionContext(source, eventID, true, argument, sm)
	sm.transitionBegin.invoke(TransitionEventArgs[TState, TEvent]{
		StateID:  source.id,
		EventID:  eventID,
		HasEvent: true,
		Argument: argument,
	})

	result, err := source.resolveTransition(ctx, tc)
	if err != nil {
		var missing *MissingInitialStateError
		if errors.As(err, &missing) {
			// Configuration error, raised to the caller directly.
			return err
		}
		return sm.routeError(tc, err)
	}

	if !result.Fired {
		for _, ext := range sm.extensions {
			ext.TransitionDeclined(sm, tc)
		}
		sm.transitionDeclined.invoke(TransitionEventArgs[TState, TEvent]{
			StateID:  source.id,
			EventID:  eventID,
			HasEvent: true,
			Argument: argument,
		})
		sm.log.WithFields(logrus.Fields{"state": source.id, "event": eventID}).Debug("transition declined")
		return nil
	}

	old := sm.current
	sm.current = result.NewState

	if result.NewState != old {
		for _, ext := range sm.extensions {
			ext.SwitchedState(sm, old.id, result.NewState.id)
		}
	}
	for _, ext := range sm.extensions {
		ext.FiredEvent(sm, tc)
	}
	for _, ext := range sm.extensions {
		ext.TransitionCompleted(sm, tc, result.NewState.id)
	}
	sm.transitionCompleted.invoke(TransitionEventArgs[TState, TEvent]{
		StateID:     source.id,
		EventID:     eventID,
		HasEvent:    true,
		Argument:    argument,
		NewStateID:  result.NewState.id,
		HasNewState: true,
	})
	sm.log.WithFields(logrus.Fields{
		"event": eventID,
		"from":  source.id,
		"to":    result.NewState.id,
	}).Debug("transition completed")
	return nil
}

// routeError delivers a guard/action error to the exception listeners. When
// none are registered the original error is returned wrapped, never
// swallowed. The current-state pointer is untouched either way.
func (sm *StateMachine[TState, TEvent]) routeError(tc *TransitionContext[TState, TEvent], err error) error {
	if len(sm.extensions) == 0 && sm.transitionException.empty() {
		return &UnhandledTransitionError{Err: err}
	}
	for _, ext := range sm.extensions {
		ext.TransitionExceptionThrown(sm, tc, err)
	}
	args := TransitionEventArgs[TState, TEvent]{Err: err}
	if tc.Source() != nil {
		args.StateID = tc.Source().id
	}
	args.EventID, args.HasEvent = tc.EventID()
	args.Argument = tc.Argument()
	sm.transitionException.invoke(args)
	sm.log.WithError(err).Warn("transition error routed to listeners")
	return nil
}
