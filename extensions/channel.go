package extensions

import (
	"github.com/corvid-labs/stategraph"
)

// NotificationKind discriminates forwarded notifications.
type NotificationKind int

const (
	NotifySwitched NotificationKind = iota
	NotifyDeclined
	NotifyCompleted
	NotifyException
	NotifyLoaded
)

// Notification is one forwarded lifecycle event.
type Notification[TState, TEvent comparable] struct {
	Kind     NotificationKind
	Machine  string
	From     TState
	To       TState
	EventID  TEvent
	HasEvent bool
	Err      error
}

// ChannelObserver forwards notifications to a Go channel, dropping when the
// receiver falls behind rather than stalling the fire path.
type ChannelObserver[TState, TEvent comparable] struct {
	stategraph.ExtensionBase[TState, TEvent]
	ch chan<- Notification[TState, TEvent]
}

// NewChannelObserver creates an observer writing to ch.
func NewChannelObserver[TState, TEvent comparable](ch chan<- Notification[TState, TEvent]) *ChannelObserver[TState, TEvent] {
	return &ChannelObserver[TState, TEvent]{ch: ch}
}

func (o *ChannelObserver[TState, TEvent]) send(n Notification[TState, TEvent]) {
	select {
	case o.ch <- n:
	default:
		// Non-blocking drop.
	}
}

func (o *ChannelObserver[TState, TEvent]) SwitchedState(m *stategraph.StateMachine[TState, TEvent], oldState, newState TState) {
	o.send(Notification[TState, TEvent]{
		Kind:    NotifySwitched,
		Machine: m.Name(),
		From:    oldState,
		To:      newState,
	})
}

func (o *ChannelObserver[TState, TEvent]) TransitionDeclined(m *stategraph.StateMachine[TState, TEvent], tc *stategraph.TransitionContext[TState, TEvent]) {
	n := Notification[TState, TEvent]{Kind: NotifyDeclined, Machine: m.Name()}
	n.EventID, n.HasEvent = tc.EventID()
	if src := tc.Source(); src != nil {
		n.From = src.ID()
	}
	o.send(n)
}

func (o *ChannelObserver[TState, TEvent]) TransitionCompleted(m *stategraph.StateMachine[TState, TEvent], tc *stategraph.TransitionContext[TState, TEvent], newState TState) {
	n := Notification[TState, TEvent]{Kind: NotifyCompleted, Machine: m.Name(), To: newState}
	n.EventID, n.HasEvent = tc.EventID()
	if src := tc.Source(); src != nil {
		n.From = src.ID()
	}
	o.send(n)
}

func (o *ChannelObserver[TState, TEvent]) TransitionExceptionThrown(m *stategraph.StateMachine[TState, TEvent], tc *stategraph.TransitionContext[TState, TEvent], err error) {
	n := Notification[TState, TEvent]{Kind: NotifyException, Machine: m.Name(), Err: err}
	n.EventID, n.HasEvent = tc.EventID()
	if src := tc.Source(); src != nil {
		n.From = src.ID()
	}
	o.send(n)
}

func (o *ChannelObserver[TState, TEvent]) Loaded(m *stategraph.StateMachine[TState, TEvent], currentState TState, hasCurrent bool, history map[TState]TState) {
	n := Notification[TState, TEvent]{Kind: NotifyLoaded, Machine: m.Name()}
	if hasCurrent {
		n.To = currentState
	}
	o.send(n)
}
